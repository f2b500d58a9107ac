package http

import (
	"net/http"

	"cosmossdk.io/log"

	"finlear/domain"
	"finlear/service"
)

type BudgetHandler struct {
	service *service.BudgetService
	logger  log.Logger
}

func NewBudgetHandler(service *service.BudgetService, logger log.Logger) *BudgetHandler {
	return &BudgetHandler{service: service, logger: logger}
}

func (h *BudgetHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input domain.BudgetInput
	if !decodeJSON(w, r, &input) {
		return
	}

	analysis, err := h.service.SubmitBudget(r.Context(), userID(r), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, analysis)
}

func (h *BudgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.service.GetBudget(r.Context(), userID(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, analysis)
}
