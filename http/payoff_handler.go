package http

import (
	"net/http"

	"cosmossdk.io/log"

	"finlear/domain"
	"finlear/service"
)

type PayoffHandler struct {
	service *service.PayoffService
	logger  log.Logger
}

func NewPayoffHandler(service *service.PayoffService, logger log.Logger) *PayoffHandler {
	return &PayoffHandler{service: service, logger: logger}
}

func (h *PayoffHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var input domain.PayoffInput
	if !decodeJSON(w, r, &input) {
		return
	}

	plan, err := h.service.Plan(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, plan)
}
