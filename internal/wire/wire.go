package wire

import (
	"Lumina/internal/api"
	"Lumina/internal/api/config"
	"Lumina/internal/api/handler"
	"Lumina/internal/job"
	"Lumina/internal/pkg/books"
	"Lumina/internal/pkg/cron"
	"Lumina/internal/pkg/es"
	"Lumina/internal/pkg/kafka"
	"Lumina/internal/pkg/llm"
	"Lumina/internal/pkg/mongo"
	"Lumina/internal/pkg/recommend"
	"Lumina/internal/pkg/redis"
	"Lumina/internal/repository"
	"Lumina/internal/service"

	"github.com/gin-gonic/gin"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

// Externals 可选依赖，未配置时为 nil
type Externals struct {
	Mongo   *mongodrv.Database
	Advisor *llm.BookAdvisor
	Elastic bool
}

func BuildApplication(db *gorm.DB, ext Externals, cfg *config.Config) (*ApplicationContainer, error) {
	catalog, err := books.NewCatalog(cfg.GoogleBooks, redis.GetRdbClient())
	if err != nil {
		return nil, err
	}

	profileRepo := repository.NewProfileRepo(db)
	bookRepo := repository.NewBookRepo(db)
	swipeRepo := repository.NewSwipeRepo(db)

	var bookESRepo es.BookRepo
	if ext.Elastic {
		bookESRepo = es.NewBookRepo(es.Client)
	}
	var logRepo mongo.RecommendationLogRepo
	if ext.Mongo != nil {
		logRepo = mongo.NewRecommendationLogRepo(ext.Mongo)
	}
	// 接口变量保持 nil，避免持有空指针的非 nil 接口
	var advisor service.BookAdvisor
	var suggester recommend.Suggester
	if ext.Advisor != nil {
		advisor = ext.Advisor
		suggester = ext.Advisor
	}

	aggregator := recommend.NewAggregator(catalog, cfg.Recommend.PopularQuery, recommend.NewRand())
	pipeline := recommend.NewPipeline(aggregator, catalog, suggester, cfg.Recommend.AISuggestions)

	profileService := service.NewProfileService(profileRepo)
	swipeService := service.NewSwipeService(bookRepo, swipeRepo, profileService)
	bookService := service.NewBookService(catalog, bookRepo, bookESRepo, advisor, profileService)
	recommendationService := service.NewRecommendationService(cfg.Recommend, pipeline, profileService, swipeRepo, logRepo)

	handlers := &api.HandlersGroup{
		RecommendHandler: handler.NewRecommendHandler(recommendationService, bookService),
		ProfileHandler:   handler.NewProfileHandler(profileService),
		SwipeHandler:     handler.NewSwipeHandler(swipeService),
		BookHandler:      handler.NewBookHandler(bookService),
	}

	router := api.SetupRouter(handlers, cfg.Logstash)

	var kafkaMgr *kafka.ConsumerManager
	if cfg.KafkaBookConsumer.Enable && bookESRepo != nil {
		kafkaMgr, err = kafka.NewConsumerManager(cfg, bookESRepo)
		if err != nil {
			return nil, err
		}
	}

	popularWarmJob := job.NewPopularWarmJob(catalog, cfg.Recommend.PopularQuery, cfg.Recommend.DefaultLimit)
	cronMgr := cron.NewCronManager(popularWarmJob, cfg.Recommend.PopularWarmCron)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
