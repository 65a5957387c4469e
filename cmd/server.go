package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Triaksa-Space/be-landing-cms/config"
	"github.com/Triaksa-Space/be-landing-cms/domain/content"
	"github.com/Triaksa-Space/be-landing-cms/domain/health"
	"github.com/Triaksa-Space/be-landing-cms/pkg/apperrors"
	"github.com/Triaksa-Space/be-landing-cms/pkg/logger"
	"github.com/Triaksa-Space/be-landing-cms/pkg/pagecache"
	"github.com/Triaksa-Space/be-landing-cms/routes"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func runServer(ctx context.Context) error {
	log := logger.Get().WithComponent("server")

	srvCfg := config.LoadServer()
	if srvCfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	cmsCfg := config.LoadCMS()

	if err := config.InitDB(); err != nil {
		return err
	}
	defer config.CloseDB()

	config.InitRedis()
	defer config.CloseRedis()

	cache := pagecache.New[content.Snapshot](cmsCfg.Revalidate)
	cache.Start()
	defer cache.Stop()

	broadcaster := pagecache.NewRedisBroadcaster(config.RedisClient, cmsCfg.InvalidationChannel, cache, logger.Get())
	go func() {
		if err := broadcaster.Listen(ctx); err != nil {
			log.Error("Cache invalidation listener stopped", err)
		}
	}()

	store := content.NewSQLStore(config.DB)
	reader := content.NewCachedReader(store, cache, content.ReaderConfig{
		Revalidate:  cmsCfg.Revalidate,
		FallbackTTL: cmsCfg.FallbackTTL,
		LoadTimeout: cmsCfg.LoadTimeout,
	})
	service := content.NewService(store, content.NewSQLAdminChecker(config.DB), broadcaster)

	checks := map[string]health.Pinger{"database": config.DB.PingContext}
	if config.RedisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return config.RedisClient.Ping(ctx).Err() }
	}

	e := newEcho(logger.Get(), srvCfg)
	routes.RegisterRoutes(e, routes.Deps{
		Content:   content.NewHandler(reader, service),
		Health:    health.NewHandler(version, checks),
		JWTSecret: srvCfg.JWTSecret,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", logger.String("addr", srvCfg.Addr))
		if err := e.Start(srvCfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), srvCfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newEcho(log logger.Logger, cfg config.ServerConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler(log)

	e.Use(logger.RecoveryMiddleware(log))
	e.Use(logger.RequestLoggerMiddleware(log))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPatch, http.MethodPut, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders:    []string{echo.HeaderContentLength, logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           86400,
	}))
	return e
}
