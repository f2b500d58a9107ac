package http

import (
	"net/http"

	"cosmossdk.io/log"

	"finlear/domain"
	"finlear/service"
)

type LoanHandler struct {
	service *service.LoanService
	logger  log.Logger
}

func NewLoanHandler(service *service.LoanService, logger log.Logger) *LoanHandler {
	return &LoanHandler{service: service, logger: logger}
}

func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {
	var input domain.LoanInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.CalculateLoan(input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}

func (h *LoanHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var input domain.LoanInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.Schedule(input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}

func (h *LoanHandler) InterestSaver(w http.ResponseWriter, r *http.Request) {
	var input domain.InterestSaverInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.InterestSaver(input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}

func (h *LoanHandler) Affordability(w http.ResponseWriter, r *http.Request) {
	var input domain.AffordabilityInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.Affordability(input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}

func (h *LoanHandler) PlanFutureLoan(w http.ResponseWriter, r *http.Request) {
	var input domain.FutureLoanInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.PlanFutureLoan(input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}
