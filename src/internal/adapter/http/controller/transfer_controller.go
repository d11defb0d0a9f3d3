package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/transfer-engine/src/internal/adapter/http/models"
	"github.com/api-sage/transfer-engine/src/internal/commons"
	"github.com/api-sage/transfer-engine/src/internal/logger"
)

type TransferService interface {
	TransferFunds(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error)
}

type TransferController struct {
	service TransferService
}

func NewTransferController(service TransferService) *TransferController {
	return &TransferController{service: service}
}

func (c *TransferController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/transfer-funds", c.transfer)
}

func (c *TransferController) transfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		response := commons.ErrorResponse[models.TransferResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransferResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.TransferFunds(r.Context(), req)
	if err != nil {
		status := statusForCode(response.Code)
		if status >= http.StatusInternalServerError {
			logError(r, err, logger.Fields{"code": response.Code})
		}
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func statusForCode(code string) int {
	switch code {
	case commons.CodeValidationFailed:
		return http.StatusBadRequest
	case commons.CodeAccountNotFound:
		return http.StatusNotFound
	case commons.CodeInsufficientFunds:
		return http.StatusUnprocessableEntity
	case commons.CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
