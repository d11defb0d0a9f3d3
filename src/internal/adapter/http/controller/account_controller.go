package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/api-sage/transfer-engine/src/internal/adapter/http/models"
	"github.com/api-sage/transfer-engine/src/internal/commons"
)

type AccountService interface {
	GetAccount(ctx context.Context, accountID string) (commons.Response[models.AccountResponse], error)
}

type AccountController struct {
	service AccountService
}

func NewAccountController(service AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /accounts/{id}", c.getAccount)
}

func (c *AccountController) getAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.GetAccount(r.Context(), r.PathValue("id"))
	if err != nil {
		status := statusForCode(response.Code)
		if status >= http.StatusInternalServerError {
			logError(r, err, nil)
		}
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
