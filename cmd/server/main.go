package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Vu1can09/twitch-clone/internal/config"
	apphttp "github.com/Vu1can09/twitch-clone/internal/http"
	"github.com/Vu1can09/twitch-clone/internal/seed"
	"github.com/Vu1can09/twitch-clone/internal/service"
	"github.com/Vu1can09/twitch-clone/internal/store/sqlite"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if cfg.Auth.JWTSecret == "" {
		logger.Warn("auth jwt secret not set, mutating endpoints are unauthenticated")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userStore := sqlite.NewUserStore(db)
	streamStore := sqlite.NewLiveStreamStore(db)

	if err := userStore.Init(ctx); err != nil {
		logger.Fatalf("init user store: %v", err)
	}
	if err := streamStore.Init(ctx); err != nil {
		logger.Fatalf("init livestream store: %v", err)
	}

	directory := service.NewDirectory(userStore)
	users := service.NewUsers(userStore)
	follows := service.NewFollowCoordinator(directory, userStore, logger)
	streams := service.NewLiveStreamRegistry(streamStore)

	if cfg.Demo.SeedOnStart {
		if err := seed.Install(ctx, streamStore); err != nil {
			logger.Warnf("seed demo livestreams: %v", err)
		}
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(users, directory, follows, streams, streamStore, cfg.Auth.JWTSecret)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}
