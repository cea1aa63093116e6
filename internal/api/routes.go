package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"townhub-backend/internal/core"
	"townhub-backend/internal/db"
	"townhub-backend/internal/middleware"
)

// Services bundles everything SetupRoutes wires into handlers.
type Services struct {
	User         core.UserService
	Activity     core.ActivityService
	Notification core.NotificationService
	Poll         core.PollService
	Application  core.ApplicationService
	Chat         core.ChatService
	Content      core.ContentService
	Community    core.CommunityService
	Stats        core.StatsService
	Storage      core.StorageService
}

// SetupRoutes configures all application routes. Global middleware
// (logging, recovery, CORS) is applied to the router in main before this
// runs.
func SetupRoutes(router *gin.Engine, logger *zap.Logger, userRepo db.UserRepository, svc Services) {
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firebaseAuthClient == nil {
		logger.Fatal("CRITICAL_SETUP_ERROR: Firebase Auth client is not initialized; routes cannot be secured.")
	}
	authMW := middleware.NewAuthMiddleware(firebaseAuthClient, userRepo)

	registerValidations()

	userHandler := NewUserHandler(svc.User)
	activityHandler := NewActivityHandler(svc.Activity)
	notificationHandler := NewNotificationHandler(svc.Notification)
	pollHandler := NewPollHandler(svc.Poll)
	jobHandler := NewJobHandler(svc.Application)
	chatHandler := NewChatHandler(svc.Chat)
	contentHandler := NewContentHandler(svc.Content)
	communityHandler := NewCommunityHandler(svc.Community)
	statsHandler := NewStatsHandler(svc.Stats)
	uploadHandler := NewUploadHandler(svc.Storage)

	apiV1 := router.Group("/api/v1")
	{
		// Public content surface. No authentication.
		apiV1.GET("/news", contentHandler.ListNews)
		apiV1.GET("/news/:newsId", contentHandler.GetNews)
		apiV1.GET("/events", contentHandler.ListEvents)
		apiV1.GET("/events/:eventId", contentHandler.GetEvent)
		apiV1.GET("/alerts", contentHandler.ListAlerts)
		apiV1.GET("/polls", pollHandler.ListPolls)
		apiV1.GET("/jobs", jobHandler.ListJobs)
		apiV1.GET("/listings", communityHandler.ListListings)
		apiV1.GET("/donations", communityHandler.ListDonations)
		apiV1.GET("/donations/total", communityHandler.DonationTotal)

		// Authenticated resident surface.
		userGroup := apiV1.Group("/users")
		{
			userGroup.POST("/initialize", authMW.VerifyToken(), userHandler.InitializeUserProfile)
			userGroup.GET("/me", authMW.VerifyToken(), userHandler.GetCurrentUserProfile)
		}

		residentGroup := apiV1.Group("", authMW.VerifyToken())
		{
			residentGroup.POST("/polls/:pollId/vote", pollHandler.CastVote)
			residentGroup.GET("/polls/:pollId/vote", pollHandler.GetMyVote)
			residentGroup.GET("/polls/:pollId/vote/stream", pollHandler.StreamMyVote)

			residentGroup.POST("/jobs/:jobId/apply", jobHandler.Apply)
			residentGroup.GET("/jobs/:jobId/application", jobHandler.GetMyApplication)

			residentGroup.POST("/chat", chatHandler.SendMessage)
			residentGroup.GET("/chat/stream", chatHandler.StreamThread)

			residentGroup.POST("/submissions", communityHandler.CreateSubmission)
			residentGroup.GET("/submissions/mine", communityHandler.ListMySubmissions)

			residentGroup.POST("/listings", communityHandler.CreateListing)
			residentGroup.PUT("/listings/:listingId", communityHandler.UpdateListing)
			residentGroup.DELETE("/listings/:listingId", communityHandler.DeleteListing)

			residentGroup.POST("/donations", communityHandler.CreateDonation)
			residentGroup.POST("/uploads", uploadHandler.Upload)
		}

		// Admin console. Every route requires the admin role.
		adminGroup := apiV1.Group("/admin", authMW.VerifyToken(), authMW.RequireAdmin())
		{
			adminGroup.GET("/activity/stream", activityHandler.StreamFeed)
			adminGroup.GET("/stats", statsHandler.GetDashboard)

			adminGroup.GET("/notifications", notificationHandler.ListNotifications)
			adminGroup.GET("/notifications/stream", notificationHandler.StreamInbox)
			adminGroup.PATCH("/notifications/:notificationId/read", notificationHandler.MarkRead)
			adminGroup.POST("/notifications/markallread", notificationHandler.MarkAllRead)

			adminGroup.GET("/users/pending", userHandler.ListPendingUsers)
			adminGroup.PATCH("/users/:userId/approval", userHandler.SetApproval)

			adminGroup.POST("/polls", pollHandler.CreatePoll)
			adminGroup.PATCH("/polls/:pollId/close", pollHandler.ClosePoll)
			adminGroup.GET("/polls/:pollId/tally", pollHandler.Tally)

			adminGroup.POST("/jobs", jobHandler.CreateJob)
			adminGroup.PATCH("/jobs/:jobId/close", jobHandler.CloseJob)
			adminGroup.GET("/jobs/:jobId/applications", jobHandler.ListApplications)
			adminGroup.PATCH("/jobs/:jobId/applications", jobHandler.SetApplicationStatus)

			adminGroup.GET("/chat/stream", chatHandler.StreamThreads)
			adminGroup.GET("/chat/threads/:userId/stream", chatHandler.StreamThread)
			adminGroup.POST("/chat/threads/:userId", chatHandler.SendAdminReply)
			adminGroup.POST("/chat/markread", chatHandler.MarkThreadRead)

			adminGroup.POST("/news", contentHandler.CreateNews)
			adminGroup.PUT("/news/:newsId", contentHandler.UpdateNews)
			adminGroup.DELETE("/news/:newsId", contentHandler.DeleteNews)

			adminGroup.POST("/events", contentHandler.CreateEvent)
			adminGroup.PUT("/events/:eventId", contentHandler.UpdateEvent)
			adminGroup.DELETE("/events/:eventId", contentHandler.DeleteEvent)

			adminGroup.GET("/alerts", contentHandler.ListAllAlerts)
			adminGroup.POST("/alerts", contentHandler.CreateAlert)
			adminGroup.DELETE("/alerts/:alertId", contentHandler.DeleteAlert)

			adminGroup.GET("/submissions", communityHandler.ListSubmissions)
			adminGroup.PATCH("/submissions/:submissionId/resolve", communityHandler.ResolveSubmission)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "TownHub backend is healthy."})
	})

	logger.Info("API routes configured successfully under /api/v1 and /health.")
}
