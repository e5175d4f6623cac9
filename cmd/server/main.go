package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/seokkiyoon07-sys/omrsheet/internal/cache"
	"github.com/seokkiyoon07-sys/omrsheet/internal/config"
	"github.com/seokkiyoon07-sys/omrsheet/internal/repository"
	"github.com/seokkiyoon07-sys/omrsheet/internal/service"
	"github.com/seokkiyoon07-sys/omrsheet/internal/transport/rest"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()
	gradingDefaults := config.DefaultGradingConfig()
	log.Printf("Engine: %s", cfg.EngineURL)
	log.Printf("Grade timeout: %s", cfg.GradeTimeout)
	log.Printf("Grading defaults: T=%.2f tie=%.2f", gradingDefaults.Threshold, gradingDefaults.Tie)

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.DatabaseName)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize repositories
	layoutRepo := repository.NewLayoutRepo(db)
	templateRepo := repository.NewTemplateRepo(db)
	answerKeyRepo := repository.NewAnswerKeyRepo(db)
	reportRepo := repository.NewReportRepo(db)

	// Initialize caches
	sessionCache := cache.NewSessionCache(rdb, cfg.SessionTTL)
	layoutCache := cache.NewLayoutCache(rdb, cfg.SessionTTL)

	// Initialize services
	engine := service.NewEngineClient(cfg)
	layoutSvc := service.NewLayoutService(layoutRepo, layoutCache, engine)
	sessionSvc := service.NewSessionService(engine, sessionCache, layoutSvc)
	gradeSvc := service.NewGradeService(layoutSvc, engine, reportRepo, gradingDefaults, cfg.GradeTimeout)
	answerKeySvc := service.NewAnswerKeyService(answerKeyRepo)

	// Create router with container
	container := &rest.Container{
		SessionService:   sessionSvc,
		LayoutService:    layoutSvc,
		GradeService:     gradeSvc,
		AnswerKeyService: answerKeySvc,
		TemplateRepo:     templateRepo,
		Engine:           engine,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /api/upload")
		log.Println("  GET  /api/preview")
		log.Println("  POST/GET /api/layout")
		log.Println("  POST /api/editor/apply")
		log.Println("  GET  /api/templates")
		log.Println("  POST /api/grade")
		log.Println("  POST /api/grade/correct-names")
		log.Println("  POST /api/exams/answer-keys/fetch")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
