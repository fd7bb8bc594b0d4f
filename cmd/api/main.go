package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	httpadp "hdb-financing/internal/adapter/http"
	idem "hdb-financing/internal/adapter/middleware"
	"hdb-financing/internal/adapter/repository/mysql"
	"hdb-financing/internal/adapter/repository/rediscache"
	"hdb-financing/internal/config"
	"hdb-financing/internal/domain/financing"
	"hdb-financing/internal/infrastructure/cache"
	"hdb-financing/internal/infrastructure/db"
	"hdb-financing/internal/infrastructure/logger"
	financinguc "hdb-financing/internal/usecase/financing"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	schedule := financing.DefaultSchedule()
	if cfg.ScheduleFile != "" {
		if schedule, err = config.LoadSchedule(cfg.ScheduleFile); err != nil {
			lg.Fatal("schedule", zap.String("file", cfg.ScheduleFile), zap.Error(err))
		}
		lg.Info("schedule loaded", zap.String("file", cfg.ScheduleFile))
	}
	engine, err := financing.NewEngine(schedule)
	if err != nil {
		lg.Fatal("engine", zap.Error(err))
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), lg)
	if err != nil {
		lg.Fatal("mysql", zap.Error(err))
	}
	if err := db.Migrate(gdb); err != nil {
		lg.Fatal("migrate", zap.Error(err))
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		lg.Fatal("mysql handle", zap.Error(err))
	}
	defer sqlDB.Close()

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		lg.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	var quoteCache financing.QuoteCache
	if cfg.QuoteCacheTTL() > 0 {
		quoteCache = rediscache.NewQuoteCache(rdb)
	}
	uc := financinguc.NewUsecase(
		engine,
		mysql.NewRunRepository(gdb),
		mysql.NewRecordRepository(gdb),
		mysql.NewGormUoW(gdb),
		quoteCache,
		cfg.QuoteCacheTTL(),
		lg,
	)

	h := httpadp.NewHandler(
		httpadp.DependencyCheck{Name: "mysql", Ping: sqlDB.PingContext},
		httpadp.DependencyCheck{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
	)
	qh := httpadp.NewQuoteHandler(uc, lg)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	// routes
	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	quotes := e.Group("/financing/quotes")
	quotes.POST("", qh.CreateQuote, idem.IdempotencyMiddleware(rdb, cfg.IdempotencyTTL(), lg))
	quotes.GET("/:run_id", qh.GetQuote)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.AppPort
	go func() {
		lg.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		lg.Error("shutdown", zap.Error(err))
	}
}
