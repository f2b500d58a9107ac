package service

import "finlear/domain"

var onboardingQuestions = []domain.OnboardingQuestion{
	{
		ID:       "goal",
		Question: "What is your main financial goal right now?",
		Options:  []string{"Build a budget", "Save for emergencies", "Manage loans and EMIs", "Start investing"},
	},
	{
		ID:       "experience",
		Question: "How would you rate your knowledge of personal finance?",
		Options:  []string{"Beginner", "Intermediate", "Advanced"},
	},
	{
		ID:       "debt",
		Question: "Do you currently have any loans or credit card dues?",
		Options:  []string{"Yes", "No"},
	},
	{
		ID:       "income",
		Question: "Do you earn a regular monthly income?",
		Options:  []string{"Yes", "No"},
	},
}

// OnboardingQuestions returns the fixed onboarding questionnaire.
func OnboardingQuestions() []domain.OnboardingQuestion {
	out := make([]domain.OnboardingQuestion, len(onboardingQuestions))
	copy(out, onboardingQuestions)
	return out
}

// DefaultCatalog returns a fresh copy of the learning modules in their
// default order with only the first module unlocked.
func DefaultCatalog() []domain.Module {
	modules := []domain.Module{
		{
			ID:          "budgeting-basics",
			Title:       "Budgeting Basics",
			Description: "Track where your money goes and plan every rupee.",
			Chapters: []domain.Chapter{
				{
					ID:       "what-is-a-budget",
					Title:    "What Is a Budget?",
					Intro:    "A budget is a plan for how you will spend and save the money you earn each month.",
					VideoURL: "https://www.youtube.com/embed/sVKQn2I4HDM",
					Flashcards: []domain.Flashcard{
						{Front: "What is a budget?", Back: "A plan that assigns your monthly income to spending, saving and debt repayment."},
						{Front: "Why track expenses?", Back: "Tracking shows where money actually goes so you can cut waste."},
						{Front: "Fixed vs variable expenses?", Back: "Fixed expenses stay the same each month (rent); variable ones change (groceries)."},
					},
					Quiz: []domain.QuizQuestion{
						{ID: "bb1-q1", Question: "Which of these is a fixed expense?", Options: []string{"Rent", "Eating out", "Movies", "Shopping"}, CorrectAnswer: 0},
						{ID: "bb1-q2", Question: "How often should you review your budget?", Options: []string{"Never", "Once a year", "Every month", "Only when broke"}, CorrectAnswer: 2},
					},
				},
				{
					ID:       "50-30-20-rule",
					Title:    "The 50/30/20 Rule",
					Intro:    "Split take-home pay into needs, wants and savings to keep spending balanced.",
					VideoURL: "https://www.youtube.com/embed/HQzoZfc3GwQ",
					Flashcards: []domain.Flashcard{
						{Front: "What does 50/30/20 stand for?", Back: "50% needs, 30% wants, 20% savings and debt repayment."},
						{Front: "Is a streaming subscription a need or a want?", Back: "A want."},
					},
					Quiz: []domain.QuizQuestion{
						{ID: "bb2-q1", Question: "Under 50/30/20, what share goes to savings?", Options: []string{"50%", "30%", "20%", "10%"}, CorrectAnswer: 2},
						{ID: "bb2-q2", Question: "Groceries are usually a...", Options: []string{"Need", "Want", "Saving", "Investment"}, CorrectAnswer: 0},
					},
				},
			},
		},
		{
			ID:          "emergency-savings",
			Title:       "Saving and Emergency Funds",
			Description: "Build a safety net before you need it.",
			Chapters: []domain.Chapter{
				{
					ID:       "emergency-fund",
					Title:    "Building an Emergency Fund",
					Intro:    "An emergency fund covers 3 to 6 months of expenses so surprises do not become debt.",
					VideoURL: "https://www.youtube.com/embed/fVToMS2Q3XQ",
					Flashcards: []domain.Flashcard{
						{Front: "How big should an emergency fund be?", Back: "3 to 6 months of essential expenses."},
						{Front: "Where should you keep it?", Back: "Somewhere safe and easy to reach, like a savings account."},
					},
					Quiz: []domain.QuizQuestion{
						{ID: "es1-q1", Question: "An emergency fund should cover...", Options: []string{"1 week", "3-6 months", "10 years", "Nothing"}, CorrectAnswer: 1},
						{ID: "es1-q2", Question: "Which is a real emergency?", Options: []string{"A sale", "A new phone", "A medical bill", "A holiday"}, CorrectAnswer: 2},
					},
				},
				{
					ID:       "pay-yourself-first",
					Title:    "Pay Yourself First",
					Intro:    "Move savings out on payday, before spending, so saving happens automatically.",
					VideoURL: "https://www.youtube.com/embed/y4lN7gKyj3M",
					Flashcards: []domain.Flashcard{
						{Front: "What does 'pay yourself first' mean?", Back: "Saving a fixed amount as soon as income arrives."},
					},
					Quiz: []domain.QuizQuestion{
						{ID: "es2-q1", Question: "When should savings be moved?", Options: []string{"End of month", "On payday", "Never", "Yearly"}, CorrectAnswer: 1},
					},
				},
			},
		},
		{
			ID:          "credit-and-loans",
			Title:       "Credit, Loans and EMIs",
			Description: "Borrow wisely and keep EMIs under control.",
			Chapters: []domain.Chapter{
				{
					ID:       "understanding-emi",
					Title:    "Understanding EMI",
					Intro:    "An EMI is the fixed monthly payment that repays a loan's principal and interest over its tenure.",
					VideoURL: "https://www.youtube.com/embed/Pj6uD8xgGhQ",
					Flashcards: []domain.Flashcard{
						{Front: "What is an EMI?", Back: "Equated Monthly Installment: a fixed monthly loan payment."},
						{Front: "What decides the EMI?", Back: "Principal, interest rate and tenure."},
						{Front: "Safe EMI burden?", Back: "Keep total EMIs below 30% of monthly income."},
					},
					Quiz: []domain.QuizQuestion{
						{ID: "cl1-q1", Question: "A longer tenure usually means...", Options: []string{"Higher EMI", "Lower EMI, more interest", "No interest", "Lower interest"}, CorrectAnswer: 1},
						{ID: "cl1-q2", Question: "EMIs above what share of income are risky?", Options: []string{"5%", "10%", "50%", "1%"}, CorrectAnswer: 2},
					},
				},
				{
					ID:       "credit-score",
					Title:    "Your Credit Score",
					Intro:    "Lenders use your credit score to judge how reliably you repay.",
					VideoURL: "https://www.youtube.com/embed/Vn9ounAgG0w",
					Flashcards: []domain.Flashcard{
						{Front: "What improves a credit score?", Back: "Paying every EMI and card bill on time and using little of your credit limit."},
					},
					Quiz: []domain.QuizQuestion{
						{ID: "cl2-q1", Question: "Missing an EMI payment will...", Options: []string{"Raise your score", "Lower your score", "Do nothing", "Close the loan"}, CorrectAnswer: 1},
					},
				},
			},
		},
		{
			ID:          "investing-basics",
			Title:       "Investing Basics",
			Description: "Make your savings grow with compounding.",
			Chapters: []domain.Chapter{
				{
					ID:       "power-of-compounding",
					Title:    "The Power of Compounding",
					Intro:    "Compounding earns returns on past returns, so starting early matters more than starting big.",
					VideoURL: "https://www.youtube.com/embed/wf91rEGw88Q",
					Flashcards: []domain.Flashcard{
						{Front: "What is compounding?", Back: "Earning returns on both your money and its past returns."},
						{Front: "What is an SIP?", Back: "A Systematic Investment Plan: investing a fixed amount every month."},
					},
					Quiz: []domain.QuizQuestion{
						{ID: "ib1-q1", Question: "Compounding works best with...", Options: []string{"Time", "Luck", "Loans", "Cash at home"}, CorrectAnswer: 0},
						{ID: "ib1-q2", Question: "An SIP invests...", Options: []string{"Once", "A fixed amount regularly", "Only in gold", "Borrowed money"}, CorrectAnswer: 1},
					},
				},
			},
		},
	}
	for i := range modules {
		modules[i].Locked = i > 0
	}
	return modules
}

// rulePath orders module ids from onboarding answers when no recommendation
// is available.
func rulePath(answers map[string]string) []string {
	var path []string
	add := func(id string) {
		for _, p := range path {
			if p == id {
				return
			}
		}
		path = append(path, id)
	}

	switch answers["goal"] {
	case "Save for emergencies":
		add("emergency-savings")
	case "Manage loans and EMIs":
		add("credit-and-loans")
	case "Start investing":
		if answers["experience"] == "Beginner" {
			add("budgeting-basics")
		}
		add("investing-basics")
	}
	if answers["debt"] == "Yes" {
		add("credit-and-loans")
	}
	if answers["income"] == "No" {
		add("budgeting-basics")
	}
	for _, m := range DefaultCatalog() {
		add(m.ID)
	}
	return path
}
