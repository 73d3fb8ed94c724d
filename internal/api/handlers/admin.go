package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/baharkarakas/tiwiti-backend/internal/api/httpx"
	"github.com/baharkarakas/tiwiti-backend/internal/middleware"
	"github.com/baharkarakas/tiwiti-backend/internal/models"
)

type AdminHandler struct {
	svc AdminService
}

func NewAdminHandler(svc AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) TotalBalance(w http.ResponseWriter, r *http.Request) {
	tb, err := h.svc.TotalBalance(r.Context())
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tb)
}

func (h *AdminHandler) ListPersonalUsage(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	usages, err := h.svc.ListPersonalUsage(r.Context(), limit, offset)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	if usages == nil {
		usages = []models.PersonalUsage{}
	}
	httpx.WriteJSON(w, http.StatusOK, usages)
}

type personalUsageReq struct {
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

func (h *AdminHandler) CreatePersonalUsage(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaims(r.Context())

	var req personalUsageReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}

	u, err := h.svc.RecordPersonalUsage(r.Context(), claims.UserID, models.UsageType(req.Type), req.Amount, req.Description)
	if err != nil {
		if errors.Is(err, models.ErrInvalidUsageType) {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_usage_type", err.Error(), nil)
			return
		}
		writeLedgerError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, u)
}

func (h *AdminHandler) DeletePersonalUsage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.DeletePersonalUsage(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "personal usage entry not found", nil)
			return
		}
		writeLedgerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
