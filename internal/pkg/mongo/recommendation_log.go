package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const RecommendationLogCollection = "recommendation_logs"

// RecommendationLog 一次推荐响应的审计快照
type RecommendationLog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      uint64             `bson:"user_id" json:"user_id"`
	TraceID     string             `bson:"trace_id" json:"trace_id"`
	Source      string             `bson:"source" json:"source"`       // ai / genres / popular
	UseAI       bool               `bson:"use_ai" json:"use_ai"`       // 请求是否要求 AI
	Limit       int                `bson:"limit" json:"limit"`         // 请求条数
	Genres      []string           `bson:"genres" json:"genres"`       // 当时的 favoriteGenres 快照
	Items       []LoggedBook       `bson:"items" json:"items"`         // 返回顺序
	ContextMood []string           `bson:"context_mood" json:"context_mood,omitempty"`
	Purpose     string             `bson:"purpose,omitempty" json:"purpose,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

type LoggedBook struct {
	ExternalID string  `bson:"external_id" json:"external_id"`
	Title      string  `bson:"title" json:"title"`
	Score      float64 `bson:"score" json:"score"`
}
