package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"tnb-api/core/config"
	"tnb-api/core/constants"
	"tnb-api/core/database"
	"tnb-api/core/logger"
	"tnb-api/core/metrics"
	"tnb-api/modules/account"
	"tnb-api/modules/admin"
	"tnb-api/modules/availability"
	"tnb-api/modules/booking"
	catalogrepo "tnb-api/modules/catalog/repository"
	"tnb-api/modules/notification"
	"tnb-api/modules/payment"
)

// Run boots the API server and the background worker, then blocks until a
// shutdown signal arrives.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.Server.LogLevel, cfg.Server.LogPretty)
	metrics.Register()

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Server:Run:RedisUnreachable", "addr", cfg.Redis.Addr, "error", err)
	}
	cancelPing()

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()

	asynqServer := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: constants.AsynqConcurrency,
	})
	mux := asynq.NewServeMux()

	notifier := notification.Init(asynqClient, mux)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	serviceRepo := catalogrepo.NewServiceRepository(db)
	checkout := payment.NewCheckoutClient(cfg)

	availabilityRepo := availability.Init(e, db)
	bookingRepo := booking.Init(e, db, serviceRepo, checkout)
	accountSvc := account.Init(e, db, bookingRepo)
	payment.Init(e, cfg, bookingRepo, accountSvc, notifier, rdb)
	admin.Init(e, cfg, availabilityRepo, bookingRepo)

	go func() {
		if err := asynqServer.Run(mux); err != nil {
			logger.Error("Server:Run:Worker", "error", err)
		}
	}()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		logger.Info("Server:Run:Listening", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Run:Start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server:Run:ShuttingDown")
	asynqServer.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
