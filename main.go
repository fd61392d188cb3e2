package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assessment-service/internal/config"
	"assessment-service/internal/db"
	"assessment-service/internal/event"
	"assessment-service/internal/handlers"
	"assessment-service/internal/repository"
	"assessment-service/internal/scheduler"
	"assessment-service/internal/scoring"
	"assessment-service/internal/selection"
	"assessment-service/internal/service"
	"assessment-service/pkg/discovery"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	db.InitMongo(cfg.MongoURI)
	defer db.CloseMongo()

	if cfg.RedisAddr != "" {
		db.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer db.CloseRedis()
	} else {
		log.Println("Redis not configured, caching and rate limiting disabled")
	}

	var publisher *event.EventPublisher
	if cfg.RabbitMQURI != "" && cfg.RabbitMQExchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(cfg.RabbitMQURI, cfg.RabbitMQExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, events will not be published")
	}

	database := db.Client.Database(cfg.MongoDatabase)

	// Repositories
	questionRepo := repository.NewQuestionRepository(database)
	answerRepo := repository.NewAnswerRepository(database)
	sessionRepo := repository.NewSessionRepository(database)
	resultRepo := repository.NewResultRepository(database)
	cacheRepo := repository.NewCacheRepository(db.RedisClient)

	if err := answerRepo.EnsureIndexes(context.Background()); err != nil {
		log.Printf("Failed to ensure answer indexes: %v", err)
	}

	// Core assessment pipeline
	composer := selection.NewTestComposer(questionRepo, answerRepo, cfg.QuestionsPerTest, cfg.MinPoolSize)
	persister := scoring.NewPersister(answerRepo, resultRepo)

	// Services
	questionService := service.NewQuestionService(questionRepo, publisher)
	answerService := service.NewAnswerService(answerRepo)
	assessmentService := service.NewAssessmentService(
		sessionRepo,
		questionRepo,
		composer,
		persister,
		cacheRepo,
		publisher,
		cfg.StartRateLimit,
	)
	resultService := service.NewResultService(resultRepo, cacheRepo)
	analyticsService := service.NewAnalyticsService(resultRepo, cacheRepo)

	// Handlers
	questionHandler := handlers.NewQuestionHandler(questionService)
	sessionHandler := handlers.NewSessionHandler(assessmentService)
	resultHandler := handlers.NewResultHandler(resultService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	answerHandler := handlers.NewAnswerHandler(answerService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://evolvia.phrimp.io.vn"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	publicQuestion := r.Group("/public/assessment/question")
	{
		publicQuestion.GET("/categories", questionHandler.ListCategories)
	}

	// Protected routes - identity comes from the gateway headers
	protectedSession := r.Group("/protected/assessment/session")
	protectedSession.Use(handlers.AuthRequired())
	{
		protectedSession.POST("/start", sessionHandler.StartTest)
		protectedSession.POST("/:id/submit", sessionHandler.SubmitTest)
		protectedSession.GET("/pool/info", sessionHandler.GetPoolInfo)
		protectedSession.GET("/:id", sessionHandler.GetSession)
		protectedSession.GET("/", sessionHandler.ListSessions)
	}

	protectedResult := r.Group("/protected/assessment/result")
	protectedResult.Use(handlers.AuthRequired())
	{
		protectedResult.GET("/", resultHandler.GetMyHistory)
		protectedResult.GET("/latest", resultHandler.GetLatestOverall)
	}

	// Admin routes
	protectedQuestion := r.Group("/protected/assessment/question")
	protectedQuestion.Use(handlers.AuthRequired(), handlers.AdminRequired())
	{
		protectedQuestion.GET("/", questionHandler.ListQuestions)
		protectedQuestion.GET("/:id", questionHandler.GetQuestion)
		protectedQuestion.POST("/", questionHandler.CreateQuestion)
		protectedQuestion.PUT("/:id", questionHandler.UpdateQuestion)
		protectedQuestion.DELETE("/:id", questionHandler.DeleteQuestion)
		protectedQuestion.POST("/import", questionHandler.ImportQuestions)
	}

	protectedAnalytics := r.Group("/protected/assessment/analytics")
	protectedAnalytics.Use(handlers.AuthRequired(), handlers.AdminRequired())
	{
		protectedAnalytics.GET("/", analyticsHandler.GetReport)
		protectedAnalytics.POST("/refresh", analyticsHandler.Refresh)
	}

	protectedUser := r.Group("/protected/assessment/user")
	protectedUser.Use(handlers.AuthRequired(), handlers.AdminRequired())
	{
		protectedUser.GET("/:id/results", resultHandler.GetUserHistory)
		protectedUser.GET("/:id/answers", answerHandler.GetUserAnswers)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	var registry *discovery.ServiceRegistry
	if cfg.ConsulAddress != "" {
		reg, err := discovery.NewServiceRegistry(cfg)
		if err != nil {
			log.Printf("Service discovery unavailable: %v", err)
		} else if err := reg.Register(); err != nil {
			log.Printf("Consul registration failed: %v", err)
		} else {
			registry = reg
		}
	} else {
		log.Println("Consul not configured, skipping service registration")
	}

	sched := scheduler.New(analyticsService, cfg.AnalyticsRefresh)
	sched.Start()

	<-shutdownChan
	log.Println("Shutting down server...")

	sched.Stop()
	if registry != nil {
		if err := registry.Deregister(); err != nil {
			log.Printf("Consul deregistration failed: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	log.Println("Server exited, goodbye!")
}
