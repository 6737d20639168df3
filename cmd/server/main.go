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

	"github.com/mamadbah2/autotrade/internal/config"
	"github.com/mamadbah2/autotrade/internal/repository"
	"github.com/mamadbah2/autotrade/internal/repository/memory"
	"github.com/mamadbah2/autotrade/internal/repository/mongodb"
	"github.com/mamadbah2/autotrade/internal/repository/sheets"
	"github.com/mamadbah2/autotrade/internal/scheduler"
	"github.com/mamadbah2/autotrade/internal/server/handlers"
	"github.com/mamadbah2/autotrade/internal/server/router"
	employeesvc "github.com/mamadbah2/autotrade/internal/service/employees"
	expensesvc "github.com/mamadbah2/autotrade/internal/service/expenses"
	inventorysvc "github.com/mamadbah2/autotrade/internal/service/inventory"
	purchasesvc "github.com/mamadbah2/autotrade/internal/service/purchases"
	reportingsvc "github.com/mamadbah2/autotrade/internal/service/reporting"
	salesvc "github.com/mamadbah2/autotrade/internal/service/sales"
	suppliersvc "github.com/mamadbah2/autotrade/internal/service/suppliers"
	"github.com/mamadbah2/autotrade/pkg/clients/mail"
	whatsappclient "github.com/mamadbah2/autotrade/pkg/clients/whatsapp"
	"github.com/mamadbah2/autotrade/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStore := openStore(ctx, cfg, baseLogger)
	defer closeStore()

	loc := cfg.Location()

	supplierSvc := suppliersvc.NewService(repos.Suppliers, logger.Named(baseLogger, "svc.suppliers"))
	inventorySvc := inventorysvc.NewService(repos.Stocks, logger.Named(baseLogger, "svc.inventory"))
	purchaseSvc := purchasesvc.NewService(repos, supplierSvc, loc, logger.Named(baseLogger, "svc.purchases"))
	saleSvc := salesvc.NewService(repos.Sales, repos.Counters, inventorySvc, logger.Named(baseLogger, "svc.sales"))
	expenseSvc := expensesvc.NewService(repos.Expenses, logger.Named(baseLogger, "svc.expenses"))
	employeeSvc := employeesvc.NewService(repos.Employees, logger.Named(baseLogger, "svc.employees"))
	reportingSvc := reportingsvc.NewService(repos, loc, logger.Named(baseLogger, "svc.reporting"))

	handlerLogger := logger.Named(baseLogger, "handlers")
	engine := router.New(router.Handlers{
		Purchases: handlers.NewPurchaseHandler(purchaseSvc, inventorySvc, loc, handlerLogger),
		Sales:     handlers.NewSaleHandler(saleSvc, loc, handlerLogger),
		Expenses:  handlers.NewExpenseHandler(expenseSvc, loc, handlerLogger),
		Suppliers: handlers.NewSupplierHandler(supplierSvc, handlerLogger),
		Employees: handlers.NewEmployeeHandler(employeeSvc, handlerLogger),
		Reports:   handlers.NewReportHandler(reportingSvc, loc, handlerLogger),
	}, cfg.Server.CORSAllowedOrigins, logger.Named(baseLogger, "router"))

	if cfg.Reporting.Enabled {
		sched := newScheduler(ctx, cfg, repos, reportingSvc, baseLogger)
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	} else {
		baseLogger.Info("daily report disabled")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("storage", cfg.Storage.Driver))
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

func openStore(ctx context.Context, cfg *config.Config, baseLogger *zap.Logger) (repository.Store, func()) {
	if cfg.Storage.Driver == config.StorageMemory {
		baseLogger.Warn("using in-memory storage, data is lost on restart")
		return memory.NewStore().Repositories(), func() {}
	}

	connectCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	db, err := mongodb.NewDatabase(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName, logger.Named(baseLogger, "repo.mongodb"))
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	if err := db.EnsureIndexes(connectCtx); err != nil {
		baseLogger.Fatal("failed to ensure mongodb indexes", zap.Error(err))
	}

	return db.Repositories(), func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Close(closeCtx); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}
}

func newScheduler(ctx context.Context, cfg *config.Config, repos repository.Store, reports *reportingsvc.Service, baseLogger *zap.Logger) *scheduler.Scheduler {
	deps := scheduler.Deps{
		Reports:   reports,
		Snapshots: repos.Reports,
		Mailer:    mail.NewSMTPClient(cfg.SMTP),
	}

	if cfg.Sheets.Enabled() {
		archive, err := sheets.NewArchive(ctx, cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Error("sheets archive disabled", zap.Error(err))
		} else {
			deps.Archive = archive
		}
	}

	if cfg.WhatsApp.Enabled() {
		deps.WhatsApp = whatsappclient.NewClient(cfg.WhatsApp)
	}

	return scheduler.NewScheduler(scheduler.Options{
		Schedule:          cfg.Reporting.CronSchedule,
		Location:          cfg.Location(),
		MailFrom:          cfg.Reporting.MailFrom,
		MailTo:            cfg.Reporting.MailTo,
		WhatsAppRecipient: cfg.WhatsApp.ReportRecipient,
	}, deps, logger.Named(baseLogger, "scheduler"))
}
