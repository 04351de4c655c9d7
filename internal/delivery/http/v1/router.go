package v1

import (
	"net/http"

	"matchgo-backend/config"
	"matchgo-backend/internal/delivery/http/middleware"
	"matchgo-backend/internal/delivery/http/response"
	"matchgo-backend/internal/domain"
	"matchgo-backend/pkg/auth"
	"matchgo-backend/pkg/monitoring"
	"matchgo-backend/pkg/storage"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	QuizUC        domain.QuizUsecase
	QuestionUC    domain.QuestionUsecase
	SubmissionUC  domain.SubmissionUsecase
	ApplicationUC domain.ApplicationUsecase
	InterviewUC   domain.InterviewUsecase
	FileStore     storage.FileStore
	JWKSProvider  *auth.Provider
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(monitoring.MetricsMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(
		deps.Config.RateLimitGlobalThreshold, deps.Config.RateLimitWindowSeconds,
	)))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Metrics
	r.GET("/metrics", monitoring.PrometheusHandler())

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	submitLimit := middleware.RateLimitMiddleware(middleware.SubmitRateLimitConfig(
		deps.Config.RateLimitSubmitThreshold, deps.Config.RateLimitWindowSeconds,
	))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config))
	{
		NewQuizHandler(protected, deps.QuizUC)
		NewQuestionHandler(protected, deps.QuestionUC)
		NewSubmissionHandler(protected, deps.SubmissionUC, submitLimit)
		NewApplicationHandler(protected, deps.ApplicationUC, deps.FileStore, submitLimit)
		NewInterviewHandler(protected, deps.InterviewUC)
	}

	return r
}
