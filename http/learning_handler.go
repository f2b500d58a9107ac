package http

import (
	"net/http"

	"cosmossdk.io/log"
	"github.com/go-chi/chi/v5"

	"finlear/domain"
	"finlear/service"
)

type LearningHandler struct {
	service *service.LearningService
	logger  log.Logger
}

func NewLearningHandler(service *service.LearningService, logger log.Logger) *LearningHandler {
	return &LearningHandler{service: service, logger: logger}
}

func (h *LearningHandler) Questions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, map[string]any{"questions": service.OnboardingQuestions()})
}

func (h *LearningHandler) Onboarding(w http.ResponseWriter, r *http.Request) {
	var input domain.OnboardingInput
	if !decodeJSON(w, r, &input) {
		return
	}

	state, err := h.service.SubmitOnboarding(r.Context(), userID(r), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, state)
}

func (h *LearningHandler) State(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.State(r.Context(), userID(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, state)
}

func (h *LearningHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ResetState(r.Context(), userID(r)); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LearningHandler) Flashcards(w http.ResponseWriter, r *http.Request) {
	set, err := h.service.ChapterFlashcards(r.Context(), userID(r),
		chi.URLParam(r, "moduleID"), chi.URLParam(r, "chapterID"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, set)
}

func (h *LearningHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	var submission domain.QuizSubmission
	if !decodeJSON(w, r, &submission) {
		return
	}

	result, err := h.service.SubmitQuiz(r.Context(), userID(r),
		chi.URLParam(r, "moduleID"), chi.URLParam(r, "chapterID"), submission)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}

func (h *LearningHandler) Video(w http.ResponseWriter, r *http.Request) {
	video, err := h.service.ChapterVideo(r.Context(), userID(r),
		chi.URLParam(r, "moduleID"), chi.URLParam(r, "chapterID"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, video)
}
