package api

import (
	"Lumina/internal/api/config"
	"Lumina/internal/api/middleware"
	"Lumina/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, logstash config.LogstashConfig) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})
	r.Use(gin.Recovery())

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware("/api/ping"))
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r, logstash)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		// 检索类接口不需要身份
		bookGroup := apiGroup.Group("/books")
		{
			bookGroup.GET("/search", group.BookHandler.Search)
			bookGroup.GET("/search-by-title", group.BookHandler.SearchByTitle)
			bookGroup.GET("/:book_id/similar", group.BookHandler.Similar)
			bookGroup.POST("/analyze", group.BookHandler.Analyze)
			bookGroup.POST("/enhance", group.BookHandler.Enhance)
		}

		authGroup := apiGroup.Group("")
		authGroup.Use(middleware.IdentityMiddleware())
		{
			recommendGroup := authGroup.Group("/recommendations")
			{
				recommendGroup.GET("", group.RecommendHandler.Recommend)
				recommendGroup.POST("/score", group.RecommendHandler.Score)
				recommendGroup.GET("/history", group.RecommendHandler.History)
			}

			profileGroup := authGroup.Group("/profile")
			{
				profileGroup.GET("", group.ProfileHandler.GetProfile)
				profileGroup.POST("", group.ProfileHandler.UpsertProfile)
			}

			swipeGroup := authGroup.Group("/swipes")
			{
				swipeGroup.GET("", group.SwipeHandler.ListSwipes)
				swipeGroup.POST("", group.SwipeHandler.RecordSwipe)
			}
		}
	}

	return r
}
