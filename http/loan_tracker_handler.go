package http

import (
	"net/http"

	"cosmossdk.io/log"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cast"

	"finlear/domain"
	"finlear/service"
)

type LoanTrackerHandler struct {
	service *service.LoanTrackerService
	logger  log.Logger
}

func NewLoanTrackerHandler(service *service.LoanTrackerService, logger log.Logger) *LoanTrackerHandler {
	return &LoanTrackerHandler{service: service, logger: logger}
}

func (h *LoanTrackerHandler) List(w http.ResponseWriter, r *http.Request) {
	loans, err := h.service.ListLoans(userID(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]any{"loans": loans})
}

func (h *LoanTrackerHandler) Add(w http.ResponseWriter, r *http.Request) {
	var input domain.TrackedLoanInput
	if !decodeJSON(w, r, &input) {
		return
	}

	loan, err := h.service.AddLoan(userID(r), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, loan)
}

func (h *LoanTrackerHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var input domain.TrackedLoanInput
	if !decodeJSON(w, r, &input) {
		return
	}

	loan, err := h.service.ReplaceLoan(userID(r), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, loan)
}

func (h *LoanTrackerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteLoan(userID(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Summary accepts an optional ?income= to classify the total EMI.
func (h *LoanTrackerHandler) Summary(w http.ResponseWriter, r *http.Request) {
	var income float64
	if raw := r.URL.Query().Get("income"); raw != "" {
		v, err := cast.ToFloat64E(raw)
		if err != nil {
			errorf(w, http.StatusBadRequest, "invalid income %q", raw)
			return
		}
		income = v
	}

	summary, err := h.service.Summary(userID(r), income)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, summary)
}
