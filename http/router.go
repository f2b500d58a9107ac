package http

import (
	"net/http"

	"cosmossdk.io/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handlers groups everything NewRouter mounts.
type Handlers struct {
	Loan      *LoanHandler
	Term      *TermRecommendationHandler
	Payoff    *PayoffHandler
	Tracker   *LoanTrackerHandler
	Budget    *BudgetHandler
	Learning  *LearningHandler
	Functions *FunctionsHandler
}

// NewRouter builds the API. limiter guards the routes that may reach the AI
// gateway or the video API; a nil limiter disables rate limiting.
func NewRouter(h Handlers, limiter *RateLimiter, logger log.Logger) http.Handler {
	limited := func(next http.HandlerFunc) http.Handler {
		if limiter == nil {
			return next
		}
		return RateLimitMiddleware(limiter, next)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/loan", func(r chi.Router) {
		r.Post("/emi", h.Loan.CalculateLoan)
		r.Post("/schedule", h.Loan.Schedule)
		r.Post("/interest-saver", h.Loan.InterestSaver)
		r.Post("/affordability", h.Loan.Affordability)
		r.Post("/plan", h.Loan.PlanFutureLoan)
		r.Method(http.MethodPost, "/recommend-term", limited(h.Term.RecommendTerm))
		r.Method(http.MethodPost, "/payoff-plan", limited(h.Payoff.Plan))
	})

	r.Group(func(r chi.Router) {
		r.Use(RequireUser)

		r.Get("/loans", h.Tracker.List)
		r.Post("/loans", h.Tracker.Add)
		r.Get("/loans/summary", h.Tracker.Summary)
		r.Put("/loans/{id}", h.Tracker.Replace)
		r.Delete("/loans/{id}", h.Tracker.Delete)

		r.Get("/budget", h.Budget.Get)
		r.Method(http.MethodPost, "/budget", limited(h.Budget.Submit))

		r.Route("/learning", func(r chi.Router) {
			r.Get("/questions", h.Learning.Questions)
			r.Method(http.MethodPost, "/onboarding", limited(h.Learning.Onboarding))
			r.Get("/state", h.Learning.State)
			r.Delete("/state", h.Learning.Reset)
			r.Route("/modules/{moduleID}/chapters/{chapterID}", func(r chi.Router) {
				r.Get("/flashcards", h.Learning.Flashcards)
				r.Post("/quiz", h.Learning.Quiz)
				r.Get("/video", h.Learning.Video)
			})
		})
	})

	r.Route("/functions", func(r chi.Router) {
		r.Method(http.MethodPost, "/chat", limited(h.Functions.Chat))
		r.Method(http.MethodPost, "/generate-flashcards", limited(h.Functions.GenerateFlashcards))
		r.Method(http.MethodPost, "/fetch-youtube-videos", limited(h.Functions.FetchVideos))
	})

	return r
}
