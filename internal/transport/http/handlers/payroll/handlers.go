package payrollhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"paghe/internal/domain/contracts"
	"paghe/internal/domain/payslip"
	"paghe/internal/transport/http/api"
	"paghe/internal/transport/http/middleware"
)

type Handler struct {
	Service *payslip.Service
	Catalog *contracts.Store
}

func NewHandler(service *payslip.Service, catalog *contracts.Store) *Handler {
	return &Handler{Service: service, Catalog: catalog}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Post("/payslips/compute", h.handleCompute)
		r.Get("/payslips", h.handleListPayslips)
		r.Get("/payslips/{payslipID}", h.handleGetPayslip)
		r.Post("/payslips/{payslipID}/confirm", h.handleConfirm)
		r.Get("/payslips/{payslipID}/pdf", h.handleDownloadPDF)
		r.Get("/summary", h.handleSummary)
		r.Get("/agreements", h.handleListAgreements)
		r.Get("/agreements/{agreementID}", h.handleGetAgreement)
	})
}

type computePayload struct {
	EmployeeID         string                     `json:"employeeId"`
	Year               int                        `json:"year"`
	Month              int                        `json:"month"`
	OrdinaryHours      decimal.Decimal            `json:"ordinaryHours"`
	Overtime           map[string]decimal.Decimal `json:"overtime"`
	Absences           map[string]decimal.Decimal `json:"absences"`
	Force              bool                       `json:"force"`
	AllowNegativeLeave bool                       `json:"allowNegativeLeave"`
}

func (h *Handler) handleCompute(w http.ResponseWriter, r *http.Request) {
	var payload computePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.EmployeeID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employee id required", middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.Service.ComputePayslip(r.Context(), payslip.ComputeRequest{
		EmployeeID: payload.EmployeeID,
		Year:       payload.Year,
		Month:      payload.Month,
		Hours: payslip.Hours{
			Ordinary: payload.OrdinaryHours,
			Overtime: payload.Overtime,
			Absences: payload.Absences,
		},
		Force:              payload.Force,
		AllowNegativeLeave: payload.AllowNegativeLeave,
	})
	if err != nil {
		h.failCompute(w, r, err)
		return
	}

	if result.Created {
		api.Created(w, result, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) failCompute(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, payslip.ErrPayslipConfirmed):
		api.Fail(w, http.StatusConflict, "payslip_confirmed", "payslip is confirmed; pass force to recompute", requestID)
	case errors.Is(err, contracts.ErrContractNotFound):
		api.Fail(w, http.StatusNotFound, "contract_not_found", "no active contract for employee", requestID)
	case errors.Is(err, payslip.ErrInvalidPeriod),
		errors.Is(err, payslip.ErrNegativeHours),
		errors.Is(err, payslip.ErrUnknownHoursKind):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), requestID)
	case errors.Is(err, contracts.ErrAgreementNotSet),
		errors.Is(err, contracts.ErrLevelNotSet),
		errors.Is(err, contracts.ErrZeroContractHours):
		api.Fail(w, http.StatusUnprocessableEntity, "contract_incomplete", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "compute_failed", "failed to compute payslip", requestID)
	}
}

func (h *Handler) handleListPayslips(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employeeId")
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if employeeID == "" || err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_request", "employeeId and year required", middleware.GetRequestID(r.Context()))
		return
	}

	slips, err := h.Service.ListPayslips(r.Context(), employeeID, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_list_failed", "failed to list payslips", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, slips, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetPayslip(w http.ResponseWriter, r *http.Request) {
	payslipID := chi.URLParam(r, "payslipID")
	result, err := h.Service.GetPayslip(r.Context(), payslipID)
	if err != nil {
		if errors.Is(err, payslip.ErrPayslipNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "payslip not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "payslip_get_failed", "failed to load payslip", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleConfirm(w http.ResponseWriter, r *http.Request) {
	payslipID := chi.URLParam(r, "payslipID")
	if err := h.Service.Confirm(r.Context(), payslipID); err != nil {
		switch {
		case errors.Is(err, payslip.ErrPayslipNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "payslip not found", middleware.GetRequestID(r.Context()))
		case errors.Is(err, payslip.ErrAlreadyConfirmed):
			api.Fail(w, http.StatusConflict, "already_confirmed", "payslip is already confirmed", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "confirm_failed", "failed to confirm payslip", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Success(w, map[string]string{"status": "confirmed"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDownloadPDF(w http.ResponseWriter, r *http.Request) {
	payslipID := chi.URLParam(r, "payslipID")
	data, err := h.Service.RenderPDF(r.Context(), payslipID)
	if err != nil {
		if errors.Is(err, payslip.ErrPayslipNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "payslip not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "pdf_failed", "failed to render payslip", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "payslip-"+payslipID+".pdf"))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employeeId")
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if employeeID == "" || err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_request", "employeeId and year required", middleware.GetRequestID(r.Context()))
		return
	}

	summary, err := h.Service.AnnualSummary(r.Context(), employeeID, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "summary_failed", "failed to load summary", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListAgreements(w http.ResponseWriter, r *http.Request) {
	agreements, err := h.Catalog.ListAgreements(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "agreement_list_failed", "failed to list agreements", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, agreements, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetAgreement(w http.ResponseWriter, r *http.Request) {
	agreementID := chi.URLParam(r, "agreementID")
	agreement, err := h.Catalog.GetAgreement(r.Context(), agreementID)
	if err != nil {
		if errors.Is(err, contracts.ErrAgreementNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "agreement not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "agreement_get_failed", "failed to load agreement", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, agreement, middleware.GetRequestID(r.Context()))
}
