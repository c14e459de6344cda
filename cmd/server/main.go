package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/milkbill/internal/app"
	"github.com/mamadbah2/milkbill/internal/config"
	"github.com/mamadbah2/milkbill/internal/scheduler"
	"github.com/mamadbah2/milkbill/internal/server/handlers"
	"github.com/mamadbah2/milkbill/internal/server/router"
	forwardingsvc "github.com/mamadbah2/milkbill/internal/service/forwarding"
	reportingsvc "github.com/mamadbah2/milkbill/internal/service/reporting"
	"github.com/mamadbah2/milkbill/pkg/clients/webhook"
	"github.com/mamadbah2/milkbill/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	svcs, err := app.NewServices(context.Background(), cfg, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to init services", zap.Error(err))
	}
	defer func() {
		if err := svcs.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close store", zap.Error(err))
		}
	}()

	if !cfg.Forwarding.Configured() {
		baseLogger.Warn("SECRET_KEY or GOOGLE_SHEET_WEBAPP_URL missing, /api/add-data will answer 500")
	}

	// No timeout: the downstream call runs with the transport defaults.
	forwardingSvc := forwardingsvc.NewService(cfg.Forwarding, webhook.NewClient(0), baseLogger.Named("svc.forwarding"))
	reportingSvc := reportingsvc.NewService(svcs.Directory, baseLogger.Named("svc.reporting"))

	billingHandler := handlers.NewBillingHandler(svcs.Directory, svcs.Submissions, svcs.Messaging, svcs.Invoices, cfg.Billing.DefaultPricePerLiter, baseLogger.Named("handlers.billing"))
	forwardingHandler := handlers.NewForwardingHandler(forwardingSvc, baseLogger.Named("handlers.forwarding"))
	engine := router.New(billingHandler, forwardingHandler, cfg.Server, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(*cfg, reportingSvc, svcs.Messaging, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("store", cfg.Store.Driver), zap.String("sheet_sink", cfg.Sheets.Sink))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
