package domain

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

type FlashcardRequest struct {
	ChapterTitle string `json:"chapterTitle"`
	ChapterIntro string `json:"chapterIntro"`
}

type VideoSearchRequest struct {
	SearchQuery string `json:"searchQuery"`
	MaxResults  int    `json:"maxResults"`
}

type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	EmbedURL    string `json:"embedUrl"`
	WatchURL    string `json:"watchUrl"`
	PublishedAt string `json:"publishedAt"`
}

type ModuleRecommendation struct {
	PriorityModules []string `json:"priorityModules"`
	Explanation     string   `json:"explanation"`
}
