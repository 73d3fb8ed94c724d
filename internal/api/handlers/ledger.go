package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/baharkarakas/tiwiti-backend/internal/api/httpx"
	"github.com/baharkarakas/tiwiti-backend/internal/middleware"
	"github.com/baharkarakas/tiwiti-backend/internal/models"
)

type LedgerHandler struct {
	svc LedgerService
}

func NewLedgerHandler(svc LedgerService) *LedgerHandler {
	return &LedgerHandler{svc: svc}
}

type amountReq struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *LedgerHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaims(r.Context())

	var req amountReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_amount", "amount must be a decimal number", nil)
		return
	}

	b, err := h.svc.Deposit(r.Context(), claims.UserID, req.Amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, b)
}

func (h *LedgerHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaims(r.Context())

	var req amountReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_amount", "amount must be a decimal number", nil)
		return
	}

	b, err := h.svc.Withdraw(r.Context(), claims.UserID, req.Amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, b)
}

func (h *LedgerHandler) Balance(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaims(r.Context())

	b, err := h.svc.GetBalance(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNoBalanceRecord) {
			httpx.WriteError(w, http.StatusNotFound, "no_balance_record", "no balance record", nil)
			return
		}
		writeLedgerError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}

// Transactions lists only the caller's own log rows.
func (h *LedgerHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaims(r.Context())
	limit, offset := pagination(r)

	logs, total, err := h.svc.ListTransactions(r.Context(), claims.UserID, limit, offset)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	if logs == nil {
		logs = []models.TransactionLog{}
	}
	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	httpx.WriteJSON(w, http.StatusOK, logs)
}

func pagination(r *http.Request) (limit, offset int) {
	limit, offset = 50, 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidAmount):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_amount", err.Error(), nil)
	case errors.Is(err, models.ErrInsufficientFunds):
		httpx.WriteError(w, http.StatusBadRequest, "insufficient_funds", err.Error(), nil)
	case errors.Is(err, models.ErrNoBalanceRecord):
		httpx.WriteError(w, http.StatusBadRequest, "no_balance_record", err.Error(), nil)
	case errors.Is(err, models.ErrStoreUnavailable):
		httpx.WriteError(w, http.StatusServiceUnavailable, "store_unavailable", "try again later", nil)
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}
