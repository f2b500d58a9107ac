package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"cosmossdk.io/log"

	"finlear/domain"
	"finlear/repository"
)

type ModuleRecommender interface {
	RecommendModules(ctx context.Context, answers map[string]string, modules []domain.Module) (domain.ModuleRecommendation, error)
}

type FlashcardGenerator interface {
	GenerateFlashcards(ctx context.Context, title, intro string) ([]domain.Flashcard, error)
}

type VideoFinder interface {
	Search(ctx context.Context, query string, maxResults int) ([]domain.Video, error)
}

type LearningService struct {
	logger      log.Logger
	store       repository.StateStore
	recommender ModuleRecommender
	flashcards  FlashcardGenerator
	videos      VideoFinder
}

func NewLearningService(
	logger log.Logger,
	store repository.StateStore,
	recommender ModuleRecommender,
	flashcards FlashcardGenerator,
	videos VideoFinder,
) *LearningService {
	return &LearningService{
		logger:      logger.With("module", "learning"),
		store:       store,
		recommender: recommender,
		flashcards:  flashcards,
		videos:      videos,
	}
}

func newState(modules []domain.Module, answers map[string]string) domain.LearningState {
	if answers == nil {
		answers = map[string]string{}
	}
	return domain.LearningState{
		Version: repository.LearningStateVersion,
		Modules: modules,
		Answers: answers,
		Progress: domain.UserProgress{
			CompletedChapters: []string{},
			ModuleProgress:    map[string]int{},
			Level:             levelFor(0),
		},
	}
}

// State returns the user's learning state, or the default catalog for a
// user who has not onboarded yet.
func (s *LearningService) State(ctx context.Context, userID string) (domain.LearningState, error) {
	state, ok, err := s.store.Load(ctx, userID)
	if err != nil {
		return domain.LearningState{}, err
	}
	if !ok {
		return newState(DefaultCatalog(), nil), nil
	}
	return state, nil
}

// ResetState forgets the user's answers and progress, so the next State
// call returns the default catalog and onboarding can start over.
func (s *LearningService) ResetState(ctx context.Context, userID string) error {
	if err := s.store.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("learning path reset", "user", userID)
	return nil
}

// SubmitOnboarding builds a personalised learning path from the answers.
// The recommender decides the order; if it fails a rule-based order is used.
func (s *LearningService) SubmitOnboarding(ctx context.Context, userID string, input domain.OnboardingInput) (domain.LearningState, error) {
	answers := make(map[string]string, len(onboardingQuestions))
	for _, q := range onboardingQuestions {
		a := strings.TrimSpace(input.Answers[q.ID])
		if a == "" {
			return domain.LearningState{}, invalid("please provide an answer to %q", q.Question)
		}
		answers[q.ID] = a
	}

	modules := DefaultCatalog()
	var (
		priority       []string
		recommendation string
	)
	rec, err := s.recommender.RecommendModules(ctx, answers, modules)
	if err != nil {
		s.logger.Warn("module recommendation failed, using rule-based path", "user", userID, "error", err)
		priority = rulePath(answers)
		recommendation = "Your path starts with the topics that match your goal and current situation."
	} else {
		priority = rec.PriorityModules
		recommendation = rec.Explanation
	}

	modules = orderModules(modules, priority)
	state := newState(modules, answers)
	state.Recommendation = recommendation

	if err := s.store.Save(ctx, userID, state); err != nil {
		return domain.LearningState{}, err
	}
	s.logger.Info("learning path ready", "user", userID, "first", modules[0].ID)
	return state, nil
}

// orderModules sorts modules by their position in priority. Modules not in
// priority keep their relative order after the prioritised ones. Only the
// first module is unlocked.
func orderModules(modules []domain.Module, priority []string) []domain.Module {
	rank := make(map[string]int, len(priority))
	for i, id := range priority {
		if _, seen := rank[id]; !seen {
			rank[id] = i
		}
	}
	sort.SliceStable(modules, func(i, j int) bool {
		ri, iok := rank[modules[i].ID]
		rj, jok := rank[modules[j].ID]
		switch {
		case iok && jok:
			return ri < rj
		case iok:
			return true
		}
		return false
	})
	for i := range modules {
		modules[i].Locked = i > 0
	}
	return modules
}

func (s *LearningService) findChapter(state *domain.LearningState, moduleID, chapterID string) (int, int, error) {
	mi := state.Module(moduleID)
	if mi < 0 {
		return 0, 0, fmt.Errorf("%w: module %s", ErrNotFound, moduleID)
	}
	ci := state.Modules[mi].Chapter(chapterID)
	if ci < 0 {
		return 0, 0, fmt.Errorf("%w: chapter %s", ErrNotFound, chapterID)
	}
	return mi, ci, nil
}

// ChapterFlashcards returns generated flashcards for a chapter, falling back
// to the chapter's own cards when generation fails.
func (s *LearningService) ChapterFlashcards(ctx context.Context, userID, moduleID, chapterID string) (domain.FlashcardSet, error) {
	state, err := s.State(ctx, userID)
	if err != nil {
		return domain.FlashcardSet{}, err
	}
	mi, ci, err := s.findChapter(&state, moduleID, chapterID)
	if err != nil {
		return domain.FlashcardSet{}, err
	}
	chapter := state.Modules[mi].Chapters[ci]

	cards, err := s.flashcards.GenerateFlashcards(ctx, chapter.Title, chapter.Intro)
	if err != nil || len(cards) == 0 {
		s.logger.Warn("flashcard generation failed, using defaults", "chapter", chapterID, "error", err)
		return domain.FlashcardSet{Flashcards: chapter.Flashcards, Generated: false}, nil
	}
	return domain.FlashcardSet{Flashcards: cards, Generated: true}, nil
}

// ChapterVideo finds a tutorial video for the chapter. The chapter's default
// video is returned when the search fails or finds nothing.
func (s *LearningService) ChapterVideo(ctx context.Context, userID, moduleID, chapterID string) (domain.Video, error) {
	state, err := s.State(ctx, userID)
	if err != nil {
		return domain.Video{}, err
	}
	mi, ci, err := s.findChapter(&state, moduleID, chapterID)
	if err != nil {
		return domain.Video{}, err
	}
	chapter := state.Modules[mi].Chapters[ci]
	fallback := domain.Video{Title: chapter.Title, EmbedURL: chapter.VideoURL}

	videos, err := s.videos.Search(ctx, chapter.Title+" financial literacy tutorial", 1)
	if err != nil {
		s.logger.Warn("video search failed", "chapter", chapterID, "error", err)
		return fallback, nil
	}
	if len(videos) == 0 {
		return fallback, nil
	}
	return videos[0], nil
}

// SubmitQuiz scores a chapter quiz. A passing score completes the chapter,
// updates module and global progress, and unlocks the next module once the
// current one is fully complete.
func (s *LearningService) SubmitQuiz(
	ctx context.Context,
	userID, moduleID, chapterID string,
	submission domain.QuizSubmission,
) (domain.QuizResult, error) {
	state, err := s.State(ctx, userID)
	if err != nil {
		return domain.QuizResult{}, err
	}
	mi, ci, err := s.findChapter(&state, moduleID, chapterID)
	if err != nil {
		return domain.QuizResult{}, err
	}
	module := &state.Modules[mi]
	if module.Locked {
		return domain.QuizResult{}, invalid("module %s is locked", moduleID)
	}

	questions := module.Chapters[ci].Quiz
	if len(questions) == 0 {
		return domain.QuizResult{}, invalid("chapter %s has no quiz", chapterID)
	}
	correct := 0
	for _, q := range questions {
		answer, ok := submission.Answers[q.ID]
		if !ok {
			return domain.QuizResult{}, invalid("please answer all questions")
		}
		if answer == q.CorrectAnswer {
			correct++
		}
	}

	score := float64(correct) / float64(len(questions)) * 100
	result := domain.QuizResult{
		Score:   roundTo2Decimals(score),
		Correct: correct,
		Total:   len(questions),
		Passed:  score >= QuizPassScore,
	}
	if !result.Passed {
		return result, nil
	}

	completeChapter(&state, mi, ci)
	if err := s.store.Save(ctx, userID, state); err != nil {
		return domain.QuizResult{}, err
	}
	s.logger.Info("chapter completed", "user", userID, "module", moduleID, "chapter", chapterID,
		"global_progress", state.Progress.GlobalProgress)

	result.Module = &state.Modules[mi]
	result.Progress = &state.Progress
	return result, nil
}

func completeChapter(state *domain.LearningState, mi, ci int) {
	module := &state.Modules[mi]
	module.Chapters[ci].Completed = true

	done := 0
	for _, c := range module.Chapters {
		if c.Completed {
			done++
		}
	}
	module.Progress = int(math.Round(float64(done) / float64(len(module.Chapters)) * 100))
	if module.Progress == 100 && mi < len(state.Modules)-1 {
		state.Modules[mi+1].Locked = false
	}

	p := &state.Progress
	if p.ModuleProgress == nil {
		p.ModuleProgress = map[string]int{}
	}
	chapterID := module.Chapters[ci].ID
	seen := false
	for _, id := range p.CompletedChapters {
		if id == chapterID {
			seen = true
			break
		}
	}
	if !seen {
		p.CompletedChapters = append(p.CompletedChapters, chapterID)
	}
	p.ModuleProgress[module.ID] = module.Progress

	total := 0
	for _, m := range state.Modules {
		total += len(m.Chapters)
	}
	if total > 0 {
		p.GlobalProgress = int(math.Round(float64(len(p.CompletedChapters)) / float64(total) * 100))
	}
	p.Level = levelFor(p.GlobalProgress)
}

func levelFor(globalProgress int) string {
	switch {
	case globalProgress <= 0:
		return "Not Started"
	case globalProgress < 34:
		return "Beginner"
	case globalProgress < 67:
		return "Intermediate"
	case globalProgress < 100:
		return "Advanced"
	}
	return "Expert"
}
