package leavehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"paghe/internal/domain/leave"
	"paghe/internal/transport/http/api"
	"paghe/internal/transport/http/middleware"
)

type Handler struct {
	Service *leave.Service
}

func NewHandler(service *leave.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.Get("/balances", h.handleListBalances)
		r.Post("/accruals/run", h.handleRunAccrual)
	})
}

func (h *Handler) handleListBalances(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employeeId")
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if employeeID == "" || err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_request", "employeeId and year required", middleware.GetRequestID(r.Context()))
		return
	}

	balances, err := h.Service.Balances(r.Context(), employeeID, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_balances_failed", "failed to list balances", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, balances, middleware.GetRequestID(r.Context()))
}

type accrualPayload struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (h *Handler) handleRunAccrual(w http.ResponseWriter, r *http.Request) {
	var payload accrualPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	summary, err := h.Service.RunMonthlyAccrual(r.Context(), payload.Year, payload.Month)
	if err != nil {
		if errors.Is(err, leave.ErrInvalidPeriod) {
			api.Fail(w, http.StatusBadRequest, "invalid_period", "month must be between 1 and 12", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "accrual_failed", "failed to run accrual", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}
