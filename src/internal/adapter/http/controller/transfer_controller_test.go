package controller_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api-sage/transfer-engine/src/internal/adapter/http/controller"
	"github.com/api-sage/transfer-engine/src/internal/adapter/http/models"
	"github.com/api-sage/transfer-engine/src/internal/adapter/repository/memory"
	"github.com/api-sage/transfer-engine/src/internal/commons"
	"github.com/api-sage/transfer-engine/src/internal/usecase/services"
)

func newMux(t *testing.T) *http.ServeMux {
	t.Helper()

	repo := memory.NewAccountRepository()
	accounts := services.NewAccountService(repo)
	_, err := accounts.SeedAccounts(context.Background(), map[string]decimal.Decimal{
		"123": decimal.RequireFromString("100.00"),
		"456": decimal.RequireFromString("50.00"),
	})
	require.NoError(t, err)

	mux := http.NewServeMux()
	controller.NewTransferController(services.NewTransferService(repo, nil, nil, 0)).RegisterRoutes(mux)
	controller.NewAccountController(accounts).RegisterRoutes(mux)
	return mux
}

func postTransfer(t *testing.T, mux http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/transfer-funds", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestTransferController_Success(t *testing.T) {
	mux := newMux(t)

	rr := postTransfer(t, mux, `{"fromAccountId":"123","toAccountId":"456","amount":"30.00"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var response commons.Response[models.TransferResponse]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	require.NotNil(t, response.Data)
	assert.True(t, response.Success)
	assert.True(t, decimal.RequireFromString("70").Equal(response.Data.FromBalance))
	assert.True(t, decimal.RequireFromString("80").Equal(response.Data.ToBalance))

	req := httptest.NewRequest(http.MethodGet, "/accounts/456", nil)
	getRR := httptest.NewRecorder()
	mux.ServeHTTP(getRR, req)
	require.Equal(t, http.StatusOK, getRR.Code)

	var account commons.Response[models.AccountResponse]
	require.NoError(t, json.Unmarshal(getRR.Body.Bytes(), &account))
	require.NotNil(t, account.Data)
	assert.True(t, decimal.RequireFromString("80").Equal(account.Data.Balance))
}

func TestTransferController_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed body", `{"fromAccountId":`, http.StatusBadRequest, ""},
		{"missing ids", `{"amount":"1"}`, http.StatusBadRequest, commons.CodeValidationFailed},
		{"zero amount", `{"fromAccountId":"123","toAccountId":"456","amount":"0"}`, http.StatusBadRequest, commons.CodeValidationFailed},
		{"negative amount", `{"fromAccountId":"123","toAccountId":"456","amount":-5}`, http.StatusBadRequest, commons.CodeValidationFailed},
		{"unknown account", `{"fromAccountId":"123","toAccountId":"999","amount":"1"}`, http.StatusNotFound, commons.CodeAccountNotFound},
		{"insufficient funds", `{"fromAccountId":"456","toAccountId":"123","amount":"50.01"}`, http.StatusUnprocessableEntity, commons.CodeInsufficientFunds},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := postTransfer(t, newMux(t), tc.body)
			assert.Equal(t, tc.status, rr.Code)

			var response commons.Response[models.TransferResponse]
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
			assert.False(t, response.Success)
			assert.Equal(t, tc.code, response.Code)
		})
	}
}

func TestTransferController_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/transfer-funds", nil)
	rr := httptest.NewRecorder()
	newMux(t).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestAccountController_NotFound(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/accounts/999", nil)
	rr := httptest.NewRecorder()
	newMux(t).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
