package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"press-lens/cmd/api/handlers"
	"press-lens/cmd/api/middleware"
	_ "press-lens/docs"
)

// Deps 는 라우터가 필요로 하는 서비스다. Jobs 가 nil 이면 비동기 API 를 등록하지 않는다.
type Deps struct {
	Analyzer    handlers.Analyzer
	Importer    handlers.Importer
	Feeds       handlers.FeedLister
	Jobs        handlers.JobQueue
	MongoPing   handlers.Pinger
	CORSOrigins []string
}

func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.CORS(d.CORSOrigins))

	// Health check
	r.GET("/health", handlers.HealthHandler(d.MongoPing))

	// Swagger
	r.GET("/swagger/*any", middleware.AccessLog(), ginSwagger.WrapHandler(swaggerFiles.Handler))

	// v1 routes
	api := r.Group("/api/v1", middleware.RequestTrace())
	{
		api.POST("/analyze", handlers.AnalyzeHandler(d.Analyzer))
		if d.Importer != nil {
			api.POST("/analyze/url", handlers.AnalyzeURLHandler(d.Importer, d.Analyzer))
		}
		if d.Feeds != nil {
			api.GET("/feed", handlers.ListFeedHandler(d.Feeds))
		}
		if d.Jobs != nil {
			api.POST("/analyses", handlers.SubmitAnalysisHandler(d.Jobs))
			api.GET("/analyses/:id", handlers.GetAnalysisHandler(d.Jobs))
		}
	}

	return r
}
