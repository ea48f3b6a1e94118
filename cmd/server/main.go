// Package main runs the campus event platform HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/campushub/backend/config"
	"github.com/campushub/backend/internal/access"
	"github.com/campushub/backend/internal/auth"
	"github.com/campushub/backend/internal/communities"
	"github.com/campushub/backend/internal/crew"
	"github.com/campushub/backend/internal/events"
	"github.com/campushub/backend/internal/middleware"
	"github.com/campushub/backend/internal/notifications"
	"github.com/campushub/backend/internal/registrations"
	"github.com/campushub/backend/internal/venues"
	"github.com/campushub/backend/pkg/database"
	"github.com/campushub/backend/pkg/queue"
	"github.com/campushub/backend/pkg/redis"
	"github.com/campushub/backend/pkg/response"
	"github.com/campushub/backend/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	var s3Client *storage.S3
	if cfg.AWS.Region != "" {
		s3Cfg := storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			PostersBucket:        cfg.AWS.PostersBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}
		s3Client, err = storage.NewS3(ctx, s3Cfg, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	// Access kernel: the one gate every event mutation goes through.
	accessRepo := access.NewRepository(pool)
	resolver := access.NewResolver(accessRepo)

	jobQueue := queue.NewQueue(rdb.Client, logger)

	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, jwtService, logger)

	eventRepo := events.NewRepository(pool)
	eventHandler := events.NewHandler(eventRepo, resolver, s3Client, jobQueue, logger)

	communityRepo := communities.NewRepository(pool)
	communityHandler := communities.NewHandler(communityRepo)

	crewRepo := crew.NewRepository(pool)
	crewHandler := crew.NewHandler(crewRepo, resolver)

	venueRepo := venues.NewRepository(pool)
	venueHandler := venues.NewHandler(venueRepo)

	registrationRepo := registrations.NewRepository(pool)
	registrationHandler := registrations.NewHandler(registrationRepo, eventRepo, resolver, logger)

	notifRepo := notifications.NewRepository(pool)
	notifHandler := notifications.NewHandler(notifRepo, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Auth (public)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/register", authHandler.Register)
	}

	// Public browsing. OptionalJWT widens what an identified caller can see:
	// a pending event's detail view answers for its stakeholders but 403s
	// for everyone else.
	public := router.Group("")
	public.Use(middleware.OptionalJWT(jwtService))
	{
		public.GET("/events", eventHandler.List)
		public.GET("/events/:id", eventHandler.Get)
		public.GET("/events/:id/poster-url", eventHandler.GetPosterURL)
		public.POST("/events/:id/register", registrationHandler.Register)
		public.GET("/communities", communityHandler.List)
		public.GET("/venues", venueHandler.List)
	}

	// Protected API (JWT required)
	api := router.Group("")
	api.Use(middleware.JWT(jwtService))
	{
		// Users (admin only)
		api.GET("/users", middleware.RequireRole("admin"), authHandler.List)
		api.PATCH("/users/:id/organizer-approval", middleware.RequireRole("admin"), authHandler.SetOrganizerApproval)

		// Events
		api.GET("/events/managed", eventHandler.ListManaged)
		api.GET("/events/all", middleware.RequireRole("admin"), eventHandler.ListAll)
		api.POST("/events", middleware.RequireRole("organizer", "admin"), eventHandler.Create)
		api.PATCH("/events/:id", events.RequireEventAction(resolver, eventRepo, access.ActionEditEvent), eventHandler.Update)
		api.PATCH("/events/:id/status", middleware.RequireRole("admin"), eventHandler.UpdateStatus)
		api.DELETE("/events/:id", events.RequireEventAction(resolver, eventRepo, access.ActionDeleteEvent), eventHandler.Delete)
		api.POST("/events/:id/broadcast", eventHandler.Broadcast)
		api.POST("/events/:id/poster", events.RequireEventAction(resolver, eventRepo, access.ActionEditEvent), eventHandler.UploadPoster)

		// Crew
		api.POST("/events/:id/crew", events.RequireEventAction(resolver, eventRepo, access.ActionManageCrew), crewHandler.Invite)
		api.GET("/events/:id/crew", events.RequireEventAction(resolver, eventRepo, access.ActionManageCrew), crewHandler.List)
		api.PATCH("/crew/:id/respond", crewHandler.Respond)
		api.DELETE("/crew/:id", crewHandler.Remove)

		// Registrations
		api.GET("/events/:id/registrations", events.RequireEventAction(resolver, eventRepo, access.ActionViewRegistrations), registrationHandler.ListByEvent)
		api.PATCH("/registrations/:id/attended", registrationHandler.MarkAttended)

		// Communities
		api.POST("/communities", middleware.RequireRole("admin"), communityHandler.Create)
		api.POST("/communities/:id/apply", communityHandler.Apply)
		api.GET("/communities/:id/members", communityHandler.ListMembers)
		api.PATCH("/memberships/:id", communityHandler.UpdateMembership)

		// Venues (admin manages the catalog)
		api.POST("/venues", middleware.RequireRole("admin"), venueHandler.Create)
		api.PATCH("/venues/:id", middleware.RequireRole("admin"), venueHandler.Update)
		api.DELETE("/venues/:id", middleware.RequireRole("admin"), venueHandler.Delete)

		// Notifications
		api.GET("/notifications", notifHandler.List)
		api.PATCH("/notifications/:id/read", notifHandler.MarkRead)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
