package api

import "Lumina/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	RecommendHandler *handler.RecommendHandler
	ProfileHandler   *handler.ProfileHandler
	SwipeHandler     *handler.SwipeHandler
	BookHandler      *handler.BookHandler
}
