package http

import (
	"net/http"

	"cosmossdk.io/log"

	"finlear/domain"
	"finlear/service"
)

type TermRecommendationHandler struct {
	service *service.TermRecommendationService
	logger  log.Logger
}

func NewTermRecommendationHandler(service *service.TermRecommendationService, logger log.Logger) *TermRecommendationHandler {
	return &TermRecommendationHandler{service: service, logger: logger}
}

func (h *TermRecommendationHandler) RecommendTerm(w http.ResponseWriter, r *http.Request) {
	var input domain.TermRecommendationInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.RecommendTerm(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}
