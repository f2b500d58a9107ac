package domain

type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type QuizQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

type Chapter struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Intro      string         `json:"intro"`
	VideoURL   string         `json:"videoUrl,omitempty"`
	Flashcards []Flashcard    `json:"flashcards"`
	Quiz       []QuizQuestion `json:"quiz"`
	Completed  bool           `json:"completed"`
}

type Module struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Chapters    []Chapter `json:"chapters"`
	Progress    int       `json:"progress"`
	Locked      bool      `json:"locked"`
}

// Chapter returns the index of the chapter with the given id, or -1.
func (m *Module) Chapter(id string) int {
	for i := range m.Chapters {
		if m.Chapters[i].ID == id {
			return i
		}
	}
	return -1
}

type OnboardingQuestion struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type UserProgress struct {
	CompletedChapters []string       `json:"completedChapters"`
	ModuleProgress    map[string]int `json:"moduleProgress"`
	GlobalProgress    int            `json:"globalProgress"`
	Level             string         `json:"level"`
}

// LearningState is everything the learning path keeps per user. Version is
// bumped whenever the stored shape changes; loaders migrate older documents.
type LearningState struct {
	Version        int               `json:"version"`
	Modules        []Module          `json:"modules"`
	Answers        map[string]string `json:"answers"`
	Recommendation string            `json:"recommendation,omitempty"`
	Progress       UserProgress      `json:"progress"`
}

// Module returns the index of the module with the given id, or -1.
func (s *LearningState) Module(id string) int {
	for i := range s.Modules {
		if s.Modules[i].ID == id {
			return i
		}
	}
	return -1
}

type OnboardingInput struct {
	Answers map[string]string `json:"answers"`
}

type QuizSubmission struct {
	Answers map[string]int `json:"answers"`
}

type QuizResult struct {
	Score    float64       `json:"score"`
	Correct  int           `json:"correct"`
	Total    int           `json:"total"`
	Passed   bool          `json:"passed"`
	Module   *Module       `json:"module,omitempty"`
	Progress *UserProgress `json:"progress,omitempty"`
}

type FlashcardSet struct {
	Flashcards []Flashcard `json:"flashcards"`
	Generated  bool        `json:"generated"`
}
