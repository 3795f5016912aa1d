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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pos_sales/api"
	"pos_sales/internal/config"
	"pos_sales/internal/metrics"
	"pos_sales/internal/pos"
	"pos_sales/internal/sales"
	"pos_sales/internal/scheduler"
	"pos_sales/internal/sellers"
	"pos_sales/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	loc, err := cfg.Location()
	if err != nil {
		baseLogger.Fatal("failed to load timezone", zap.Error(err))
	}

	var roster []sellers.Seller
	if cfg.Sales.SeedSellers {
		roster = sellers.Seed()
	}

	opts := []pos.Option{}
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		opts = append(opts, pos.WithMetrics(metrics.New(reg)))
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
		baseLogger.Info("metrics endpoint enabled")
	}

	svc := pos.NewService(sales.NewLocalStorage(), roster, baseLogger.Named("svc.pos"), opts...)

	sched := scheduler.NewScheduler(svc, cfg.Reporting.CronSchedule, cfg.Sales.DefaultCommissionPercent, loc, baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	api.InitRoutes(r, svc, baseLogger.Named("router"), api.Options{
		DefaultCommission: cfg.Sales.DefaultCommissionPercent,
		Location:          loc,
		Metrics:           metricsHandler,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
