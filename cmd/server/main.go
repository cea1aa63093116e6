package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"townhub-backend/internal/api"
	"townhub-backend/internal/config"
	"townhub-backend/internal/core"
	"townhub-backend/internal/db"
	"townhub-backend/internal/middleware"
	"townhub-backend/pkg/cache"
	"townhub-backend/pkg/mailer"
	"townhub-backend/pkg/messagequeue"
)

func main() {
	// --- 1. Initialize Logger (Zap) ---
	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Zap logger initialized successfully.")

	// --- 2. Load Application Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to load application configuration", zap.Error(err))
	}
	zapLogger.Info("Application configuration loaded successfully.")

	// --- 3. Initialize Firebase Admin SDK (Firestore, Auth, Storage) ---
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	if err := db.InitFirebase(initCtx, appConfig); err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firebase Admin SDK", zap.Error(err))
	}

	firestoreClient := db.GetFirestoreClient()
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firestoreClient == nil || firebaseAuthClient == nil {
		zapLogger.Fatal("CRITICAL_ERROR: Firebase clients are nil after initialization. Application cannot start.")
	}
	defer firestoreClient.Close()
	zapLogger.Info("Firebase Admin SDK initialized successfully.")

	// --- 4. Optional infrastructure: Redis, RabbitMQ, SMTP ---
	// Each of these degrades gracefully when unconfigured or unreachable.
	var statsCache cache.Cache
	if appConfig.RedisAddr != "" {
		statsCache, err = cache.NewRedisCache(initCtx, cache.NewRedisCacheConfig{
			Address:  appConfig.RedisAddr,
			Password: appConfig.RedisPassword,
		})
		if err != nil {
			zapLogger.Warn("Redis unavailable; dashboard stats will not be cached", zap.Error(err))
			statsCache = nil
		} else {
			zapLogger.Info("Redis cache connected", zap.String("addr", appConfig.RedisAddr))
		}
	}

	var eventQueue messagequeue.MessageQueue
	if appConfig.AMQPURL != "" {
		eventQueue, err = messagequeue.NewRabbitMQService(messagequeue.NewRabbitMQServiceConfig{URL: appConfig.AMQPURL})
		if err != nil {
			zapLogger.Warn("RabbitMQ unavailable; portal events will not be published", zap.Error(err))
			eventQueue = nil
		} else {
			defer eventQueue.Close()
			zapLogger.Info("RabbitMQ connected", zap.String("queue", appConfig.EventQueue))
		}
	}

	mail := mailer.New(appConfig.SMTPHost, appConfig.SMTPPort, appConfig.SMTPUser, appConfig.SMTPPassword, appConfig.SMTPUser)
	if mail == nil {
		zapLogger.Warn("SMTP_HOST not configured; admin emails disabled.")
	}

	// --- 5. Initialize Repositories ---
	userRepo := db.NewFirestoreUserRepository(firestoreClient)
	notificationRepo := db.NewFirestoreNotificationRepository(firestoreClient)
	feedRepo := db.NewFirestoreFeedRepository(firestoreClient)
	pollRepo := db.NewFirestorePollRepository(firestoreClient)
	jobRepo := db.NewFirestoreJobRepository(firestoreClient)
	applicationRepo := db.NewFirestoreApplicationRepository(firestoreClient)
	messageRepo := db.NewFirestoreMessageRepository(firestoreClient)
	newsRepo := db.NewFirestoreNewsRepository(firestoreClient)
	eventRepo := db.NewFirestoreEventRepository(firestoreClient)
	alertRepo := db.NewFirestoreAlertRepository(firestoreClient)
	submissionRepo := db.NewFirestoreSubmissionRepository(firestoreClient)
	listingRepo := db.NewFirestoreListingRepository(firestoreClient)
	donationRepo := db.NewFirestoreDonationRepository(firestoreClient)
	statsRepo := db.NewFirestoreStatsRepository(firestoreClient)
	zapLogger.Info("Repositories initialized successfully.")

	// --- 6. Initialize Services ---
	notificationService := core.NewNotificationService(notificationRepo, eventQueue, appConfig.EventQueue, core.DefaultInboxLimit, zapLogger)
	activityService := core.NewActivityService(feedRepo, core.DefaultActivitySources(), core.DefaultSourceWindow, core.DefaultFeedLimit, zapLogger)
	userService := core.NewUserService(userRepo, notificationService, mail, appConfig.AdminEmail, zapLogger)
	pollService := core.NewPollService(pollRepo)
	applicationService := core.NewApplicationService(jobRepo, applicationRepo, notificationService)
	chatService := core.NewChatService(messageRepo)
	contentService := core.NewContentService(newsRepo, eventRepo, alertRepo)
	communityService := core.NewCommunityService(submissionRepo, listingRepo, donationRepo, notificationService)
	statsService := core.NewStatsService(statsRepo, donationRepo, statsCache, zapLogger)
	storageService := core.NewStorageService(db.GetStorageBucket(), appConfig.StorageBucket)
	zapLogger.Info("Core services initialized successfully.")

	// --- 7. Setup Gin HTTP Engine ---
	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	// --- 8. Apply Global Middleware (order matters) ---
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig))
		zapLogger.Info("CORS Middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	} else {
		zapLogger.Warn("CORS Middleware SKIPPED: CLIENT_URL is not configured. API might not be accessible from a web frontend.")
	}

	// --- 9. Setup API Routes ---
	api.SetupRoutes(router, zapLogger, userRepo, api.Services{
		User:         userService,
		Activity:     activityService,
		Notification: notificationService,
		Poll:         pollService,
		Application:  applicationService,
		Chat:         chatService,
		Content:      contentService,
		Community:    communityService,
		Stats:        statsService,
		Storage:      storageService,
	})

	// --- 10. Configure and Start HTTP Server ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- 11. Graceful Shutdown Handling ---
	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	zapLogger.Info("Attempting graceful shutdown of HTTP server...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown due to error during graceful shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully.")
}
