package http

import (
	"net/http"

	"cosmossdk.io/log"

	"finlear/domain"
	"finlear/service"
)

// FunctionsHandler serves the thin AI and video proxy endpoints.
type FunctionsHandler struct {
	ai     *service.AIService
	videos *service.VideoService
	logger log.Logger
}

func NewFunctionsHandler(ai *service.AIService, videos *service.VideoService, logger log.Logger) *FunctionsHandler {
	return &FunctionsHandler{ai: ai, videos: videos, logger: logger}
}

func (h *FunctionsHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req domain.ChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	raw, err := h.ai.Chat(r.Context(), req.Messages)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(raw); err != nil {
		h.logger.Error("failed to write chat response", "error", err)
	}
}

func (h *FunctionsHandler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	var req domain.FlashcardRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cards, err := h.ai.GenerateFlashcards(r.Context(), req.ChapterTitle, req.ChapterIntro)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]any{"flashcards": cards})
}

func (h *FunctionsHandler) FetchVideos(w http.ResponseWriter, r *http.Request) {
	var req domain.VideoSearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	videos, err := h.videos.Search(r.Context(), req.SearchQuery, req.MaxResults)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]any{"videos": videos})
}
