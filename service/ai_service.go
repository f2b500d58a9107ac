package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"cosmossdk.io/log"

	"finlear/domain"
	"finlear/repository"
)

const (
	DefaultGatewayURL = "https://ai.gateway.lovable.dev/v1/chat/completions"
	DefaultModel      = "google/gemini-2.5-flash"

	flashcardCacheTTL = 24 * time.Hour
)

const assistantPrompt = `You are FinLear, a friendly financial-guidance assistant.

Your job is to:
1. Collect the user's monthly spending details.
2. After getting spending details, always ask: "Do you earn? If yes, how much per month?"
3. If the user says yes, collect their monthly income amount.
4. Once you have both income + expenses, generate a clear financial management plan including:
   - Savings recommendation
   - EMI/loan management (if mentioned)
   - Budget allocation (needs/wants/savings)
   - Credit-score improvement suggestions
   - Personalized tips based on their spending behavior

Rules:
- Keep questions short and simple.
- Do not give advice until you have both income and expense details.
- If income or expenses are missing, ask again politely.
- Always end with a follow-up question until all data is collected.
- Give suggestions in simple, beginner-friendly language.
- Use bold text for emphasis and short lists when helpful.

When enough data is collected, provide:
1. Monthly snapshot (Income vs Expenses)
2. Savings % and how to increase it
3. Risk areas (overspending, high EMIs, irregular expenses)
4. A clear 30-day + 90-day improvement plan
5. Action steps the user can follow immediately

If asked about anything unrelated to finance, respond ONLY with:
"I can only assist with financial topics. Please ask something related to money management, budgeting, or personal finance."`

const flashcardPrompt = `You are a financial education expert. Generate exactly 5 flashcards based on the chapter content.
Each flashcard should have a clear question (front) and a concise answer (back).
Focus on key concepts, definitions, and practical knowledge.
Return ONLY valid JSON in this exact format, no markdown or extra text:
{
  "flashcards": [
    {
      "front": "Question or concept here?",
      "back": "Answer or explanation here"
    }
  ]
}`

const recommendPrompt = `You are a financial education advisor. Given a learner's onboarding answers and a list of
learning modules, decide which modules they should study first.
Return ONLY valid JSON in this exact format, no markdown or extra text:
{
  "priorityModules": ["module-id", "..."],
  "explanation": "One or two sentences explaining the order"
}`

const explainPrompt = `You are a friendly loan advisor for first-time borrowers. Explain the plan you are given
in at most three short sentences of plain English. Use ₹ for amounts. Do not invent numbers
that are not in the plan and do not use markdown.`

type AIConfig struct {
	APIKey  string
	URL     string
	Model   string
	Timeout time.Duration
}

type AIService struct {
	logger     log.Logger
	apiKey     string
	apiURL     string
	model      string
	enabled    bool
	httpClient *http.Client
	cache      repository.CacheRepository
}

type chatCompletionRequest struct {
	Model    string               `json:"model"`
	Messages []domain.ChatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message domain.ChatMessage `json:"message"`
	} `json:"choices"`
}

func NewAIService(logger log.Logger, cfg AIConfig, cache repository.CacheRepository) *AIService {
	if cfg.URL == "" {
		cfg.URL = DefaultGatewayURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &AIService{
		logger:  logger.With("module", "ai"),
		apiKey:  cfg.APIKey,
		apiURL:  cfg.URL,
		model:   cfg.Model,
		enabled: cfg.APIKey != "",
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache: cache,
	}
}

// Chat forwards a conversation behind the FinLear system prompt and returns
// the gateway's response body unchanged.
func (s *AIService) Chat(ctx context.Context, messages []domain.ChatMessage) (json.RawMessage, error) {
	if len(messages) == 0 {
		return nil, invalid("messages are required")
	}
	all := make([]domain.ChatMessage, 0, len(messages)+1)
	all = append(all, domain.ChatMessage{Role: "system", Content: assistantPrompt})
	all = append(all, messages...)
	return s.callGateway(ctx, all)
}

// BudgetAdvice asks the assistant for short advice on a month of spending.
func (s *AIService) BudgetAdvice(ctx context.Context, spendingSummary, total string) (string, error) {
	prompt := fmt.Sprintf(`My monthly spending: %s | Total: ₹%s

Give me SHORT, practical money advice:

1. Quick breakdown: Which expenses are needs vs wants?
2. Where can I save? (mention specific categories from MY spending)
3. Safe EMI limit: What's the max I should take based on ₹%s?
4. Quick tip: One immediate action to improve my budget

Keep it brief, friendly, and use simple language. Focus only on the categories I mentioned.`,
		spendingSummary, total, total)

	raw, err := s.Chat(ctx, []domain.ChatMessage{{Role: "user", Content: prompt}})
	if err != nil {
		return "", err
	}
	return firstContent(raw)
}

// GenerateFlashcards asks for five flashcards on a chapter. Results are
// cached per chapter title.
func (s *AIService) GenerateFlashcards(ctx context.Context, title, intro string) ([]domain.Flashcard, error) {
	if strings.TrimSpace(title) == "" {
		return nil, invalid("chapter title is required")
	}

	key := cacheKey("flashcards", title)
	if cards, ok := s.cachedFlashcards(ctx, key); ok {
		return cards, nil
	}

	s.logger.Info("generating flashcards", "chapter", title)
	raw, err := s.callGateway(ctx, []domain.ChatMessage{
		{Role: "system", Content: flashcardPrompt},
		{Role: "user", Content: fmt.Sprintf("Generate %d flashcards for this chapter:\nTitle: %s\nIntro: %s", FlashcardCount, title, intro)},
	})
	if err != nil {
		return nil, err
	}
	content, err := firstContent(raw)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Flashcards []domain.Flashcard `json:"flashcards"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: flashcards are not valid JSON: %v", ErrGateway, err)
	}
	if len(parsed.Flashcards) == 0 {
		return nil, fmt.Errorf("%w: no flashcards returned", ErrGateway)
	}
	s.logger.Info("generated flashcards", "chapter", title, "count", len(parsed.Flashcards))

	if encoded, err := json.Marshal(parsed.Flashcards); err == nil {
		if err := s.cache.Set(ctx, key, string(encoded), flashcardCacheTTL); err != nil {
			s.logger.Warn("failed to cache flashcards", "error", err)
		}
	}
	return parsed.Flashcards, nil
}

func (s *AIService) cachedFlashcards(ctx context.Context, key string) ([]domain.Flashcard, bool) {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("flashcard cache read failed", "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var cards []domain.Flashcard
	if err := json.Unmarshal([]byte(raw), &cards); err != nil || len(cards) == 0 {
		return nil, false
	}
	return cards, true
}

// RecommendModules asks which modules a learner should take first.
func (s *AIService) RecommendModules(
	ctx context.Context,
	answers map[string]string,
	modules []domain.Module,
) (domain.ModuleRecommendation, error) {
	var b strings.Builder
	b.WriteString("Onboarding answers:\n")
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "- %s: %s\n", k, answers[k])
	}
	b.WriteString("\nModules:\n")
	for _, m := range modules {
		fmt.Fprintf(&b, "- %s: %s (%s)\n", m.ID, m.Title, m.Description)
	}

	raw, err := s.callGateway(ctx, []domain.ChatMessage{
		{Role: "system", Content: recommendPrompt},
		{Role: "user", Content: b.String()},
	})
	if err != nil {
		return domain.ModuleRecommendation{}, err
	}
	content, err := firstContent(raw)
	if err != nil {
		return domain.ModuleRecommendation{}, err
	}

	var rec domain.ModuleRecommendation
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &rec); err != nil {
		return domain.ModuleRecommendation{}, fmt.Errorf("%w: recommendation is not valid JSON: %v", ErrGateway, err)
	}
	return rec, nil
}

// ExplainTerm explains why the best term was chosen over its alternatives.
func (s *AIService) ExplainTerm(
	ctx context.Context,
	input domain.TermRecommendationInput,
	best domain.TermOption,
	alternatives []domain.TermOption,
) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Loan of ₹%.2f at %.2f%% a year, EMI capped at ₹%.2f, preference %s.\n",
		input.Principal, input.InterestRate, input.MaxMonthlyPayment, input.Preference)
	fmt.Fprintf(&b, "Recommended: %d months, EMI ₹%.2f, total interest ₹%.2f.\n",
		best.TermMonths, best.MonthlyPayment, best.TotalInterest)
	for _, alt := range alternatives {
		fmt.Fprintf(&b, "Alternative: %d months, EMI ₹%.2f, total interest ₹%.2f.\n",
			alt.TermMonths, alt.MonthlyPayment, alt.TotalInterest)
	}
	return s.explain(ctx, b.String())
}

// ExplainPayoff explains a debt payoff plan.
func (s *AIService) ExplainPayoff(ctx context.Context, plan domain.PayoffPlan, debts []domain.Debt) (string, error) {
	var b strings.Builder
	b.WriteString("Debts:\n")
	for _, d := range debts {
		fmt.Fprintf(&b, "- %s: balance ₹%.2f at %.2f%%, minimum ₹%.2f\n", d.Name, d.Balance, d.InterestRate, d.MinimumPayment)
	}
	fmt.Fprintf(&b, "Strategy %s: debt free in %d months, total interest ₹%.2f.\n",
		plan.Strategy, plan.MonthsToPayoff, plan.TotalInterestPaid)
	if c := plan.Comparison; c != nil {
		fmt.Fprintf(&b, "Snowball: %d months, ₹%.2f interest. Avalanche: %d months, ₹%.2f interest.\n",
			c.Snowball.MonthsToPayoff, c.Snowball.TotalInterestPaid, c.Avalanche.MonthsToPayoff, c.Avalanche.TotalInterestPaid)
	}
	return s.explain(ctx, b.String())
}

func (s *AIService) explain(ctx context.Context, plan string) (string, error) {
	raw, err := s.callGateway(ctx, []domain.ChatMessage{
		{Role: "system", Content: explainPrompt},
		{Role: "user", Content: plan},
	})
	if err != nil {
		return "", err
	}
	content, err := firstContent(raw)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

func (s *AIService) callGateway(ctx context.Context, messages []domain.ChatMessage) (json.RawMessage, error) {
	if !s.enabled {
		return nil, fmt.Errorf("AI gateway API key is %w", ErrNotConfigured)
	}

	jsonData, err := json.Marshal(chatCompletionRequest{Model: s.model, Messages: messages})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrGateway, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		return nil, ErrPaymentRequired
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		s.logger.Error("AI gateway error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: status %d", ErrGateway, resp.StatusCode)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: response is not JSON", ErrGateway)
	}
	return json.RawMessage(body), nil
}

func firstContent(raw json.RawMessage) (string, error) {
	var resp chatCompletionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no response from AI", ErrGateway)
	}
	return resp.Choices[0].Message.Content, nil
}

// stripCodeFence removes a surrounding ```json ... ``` block, which models
// add despite being asked not to.
func stripCodeFence(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func cacheKey(kind, value string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(value))))
	return kind + ":" + hex.EncodeToString(sum[:12])
}
