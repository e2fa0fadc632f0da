package model

// TitleSuggestion AI 推荐的书名与作者，需再经检索落到具体书目
type TitleSuggestion struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Reason string `json:"reason,omitempty"`
}
