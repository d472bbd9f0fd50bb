package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/loanpilot/backend/config"
	"github.com/loanpilot/backend/internal/api/handlers"
	"github.com/loanpilot/backend/internal/api/middleware"
	"github.com/loanpilot/backend/internal/api/routes"
	"github.com/loanpilot/backend/internal/auth"
	"github.com/loanpilot/backend/internal/cache"
	"github.com/loanpilot/backend/internal/extract"
	"github.com/loanpilot/backend/internal/logger"
	"github.com/loanpilot/backend/internal/models"
	"github.com/loanpilot/backend/internal/notify"
	"github.com/loanpilot/backend/internal/providers/mlmodel"
	"github.com/loanpilot/backend/internal/providers/ocr"
	pgrepo "github.com/loanpilot/backend/internal/repositories/postgres"
	"github.com/loanpilot/backend/internal/services"
	"github.com/loanpilot/backend/internal/storage"
)

func main() {
	_ = godotenv.Load()

	settings := config.Load()
	log := logger.New(settings.LogLevel)
	ctx := context.Background()

	db, err := config.OpenPostgres(settings.PostgresURI)
	if err != nil {
		log.WithError(err).Fatal("postgres init failed")
	}
	if err := db.AutoMigrate(&models.Application{}, &models.ChatMessage{}, &models.Manager{}); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	rdb, err := config.OpenRedis(settings.RedisAddr)
	if err != nil {
		log.WithError(err).Fatal("redis init failed")
	}

	apps := pgrepo.NewApplicationRepo(db)
	history := pgrepo.NewChatHistoryRepo(db)
	managers := pgrepo.NewManagerRepo(db)

	// Providers: real impls only when their mock flag is off.
	var (
		ocrClient   ocr.Extractor            = ocr.NewMockExtractor()
		objectStore storage.ObjectStore      = storage.NewMockStore(settings.S3Bucket, settings.S3UploadExpiration)
		notifier    notify.Notifier          = notify.NewMockNotifier(log)
		model       mlmodel.EligibilityModel = mlmodel.NewRulesModel()
	)
	if !settings.UseMockTextract {
		if c, err := ocr.NewTextractExtractor(ctx, settings.AWSRegion); err != nil {
			log.WithError(err).Warn("textract unavailable, using mock")
		} else {
			ocrClient = c
		}
	}
	if !settings.UseMockS3 {
		if s, err := storage.NewS3Store(ctx, settings.AWSRegion, settings.S3Bucket, settings.S3UploadExpiration); err != nil {
			log.WithError(err).Warn("s3 unavailable, using mock")
		} else {
			objectStore = s
		}
	}
	if !settings.UseMockSNS {
		if n, err := notify.NewAWSNotifier(ctx, settings.AWSRegion, settings.SNSTopicARN, settings.SESSender); err != nil {
			log.WithError(err).Warn("sns/ses unavailable, using mock")
		} else {
			notifier = n
		}
	}
	if !settings.UseMockSageMaker {
		if m, err := mlmodel.NewSageMakerModel(ctx, settings.AWSRegion, settings.SageMakerEndpoint, log); err != nil {
			log.WithError(err).Warn("sagemaker unavailable, using rules model")
		} else {
			model = m
		}
	}

	issuer := auth.NewTokenIssuer(settings.JWTSecret, settings.JWTIssuer, settings.JWTExpiration)
	redisCache := cache.NewRedisCache(rdb)
	statement := extract.NewBankStatementExtractor(rand.New(rand.NewSource(time.Now().UnixNano())))

	sessionSvc := services.NewSessionService(apps, history)
	chatSvc := services.NewChatService(apps, history)
	documentSvc := services.NewDocumentService(apps, objectStore, ocrClient, statement, settings.S3Bucket, log)
	predictionSvc := services.NewPredictionService(apps, model)
	reviewSvc := services.NewReviewService(apps, history, redisCache, notifier, settings.ApplicationsCacheTTL, log)
	authSvc := services.NewAuthService(managers, issuer)

	if err := authSvc.EnsureDefaultManager(ctx, settings.DefaultManagerEmail, settings.DefaultManagerPassword, settings.DefaultManagerName); err != nil {
		log.WithError(err).Fatal("default manager bootstrap failed")
	}

	if settings.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		TokenIssuer: issuer,
		Session:     handlers.NewSessionHandler(sessionSvc),
		Chat:        handlers.NewChatHandler(chatSvc),
		Document:    handlers.NewDocumentHandler(documentSvc),
		Predict:     handlers.NewPredictHandler(predictionSvc),
		Manager:     handlers.NewManagerHandler(authSvc, reviewSvc),
	})

	log.WithField("port", settings.Port).Info("starting server")
	if err := r.Run(":" + settings.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
