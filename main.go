package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"notevault/config"
	"notevault/handler"
	"notevault/media"
	"notevault/middleware"
	"notevault/repository"
	"notevault/services"
	"notevault/usecase"
	"notevault/utils"
)

func newMediaStore(ctx context.Context, cfg *config.Server) (media.Store, error) {
	switch cfg.Media.Driver {
	case config.MediaDriverS3:
		return media.NewS3Store(ctx, media.S3Config{
			Bucket:    cfg.Media.S3Bucket,
			Region:    cfg.Media.S3Region,
			KeyPrefix: cfg.Media.S3KeyPrefix,
			AccessID:  cfg.Media.S3AccessID,
			AccessKey: cfg.Media.S3AccessKey,
		})
	default:
		return media.NewLocalStore(cfg.Media.UploadsDir, cfg.Media.BaseURL)
	}
}

func setupRouter(cfg *config.Server, notesService *usecase.NotesService, health *handler.HealthHandler, authCfg middleware.AuthConfig) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Logger(),
		middleware.RecoveryMiddleware(),
		middleware.RequestTracingMiddleware(),
		middleware.CORSMiddleware(),
		middleware.MetricsMiddleware(),
	)

	// Legacy deployment: the authenticator runs on every route and tolerates
	// anonymous requests. Handlers see whatever claim was attached.
	if cfg.AuthMode == config.GlobalOptionalAuth {
		router.Use(middleware.OptionalAuth(authCfg))
	}

	router.GET("/health", health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Locally stored media is served straight off disk.
	if cfg.Media.Driver == config.MediaDriverLocal {
		router.Static("/uploads", cfg.Media.UploadsDir)
	}

	noteHandler := handler.NewNoteHandler(notesService)

	notes := router.Group("/api/notes")
	if cfg.AuthMode == config.PerRouteRequiredAuth {
		notes.Use(middleware.RequireAuth(authCfg))
	}
	{
		notes.GET("", noteHandler.ListNotes)
		notes.GET("/:id", noteHandler.GetNote)
		notes.POST("", noteHandler.CreateNote)
		notes.PUT("/:id", noteHandler.UpdateNote)
		notes.PATCH("/:id", noteHandler.UpdateNote)
		notes.DELETE("/:id", noteHandler.DeleteNote)
	}

	return router
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("loading configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, err := utils.NewMongoClient(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("connecting to MongoDB")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logrus.WithError(err).Warn("disconnecting from MongoDB")
		}
	}()

	db := mongoClient.Database(cfg.Database.DatabaseName)
	if err := repository.SetupIndexes(db, cfg.Database.NotesCollection); err != nil {
		logrus.WithError(err).Warn("creating indexes")
	}

	var blacklist *services.RedisTokenBlacklist
	if cfg.RedisURL != "" {
		blacklist, err = services.NewTokenBlacklist(cfg.RedisURL)
		if err != nil {
			logrus.WithError(err).Fatal("connecting to Redis")
		}
		defer blacklist.Close()
	}

	mediaStore, err := newMediaStore(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("initializing media store")
	}

	notesRepo := repository.GetNotesRepo(mongoClient, cfg.Database.DatabaseName, cfg.Database.NotesCollection)
	notesService := &usecase.NotesService{
		NotesRepo:   notesRepo,
		Media:       mediaStore,
		OwnerScoped: cfg.AuthMode == config.PerRouteRequiredAuth,
	}

	health := &handler.HealthHandler{Mongo: mongoClient, Blacklist: blacklist}

	authCfg := middleware.AuthConfig{
		Secret: cfg.JWT.SecretKey,
		Issuer: cfg.JWT.Issuer,
	}
	if blacklist != nil {
		authCfg.Blacklist = blacklist
	}

	router := setupRouter(cfg, notesService, health, authCfg)

	go utils.CollectSystemMetrics(ctx, 15*time.Second)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"port":      cfg.Port,
			"auth_mode": cfg.AuthMode,
			"media":     cfg.Media.Driver,
		}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("forced shutdown")
	}
}
