package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-employee-import/internal/config"
	"github.com/cmlabs-hris/hris-employee-import/internal/domain/ingest"
	appHTTP "github.com/cmlabs-hris/hris-employee-import/internal/handler/http"
	"github.com/cmlabs-hris/hris-employee-import/internal/pkg/auditlog"
	"github.com/cmlabs-hris/hris-employee-import/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-employee-import/internal/pkg/database"
	"github.com/cmlabs-hris/hris-employee-import/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-employee-import/internal/pkg/resultstore"
	"github.com/cmlabs-hris/hris-employee-import/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-employee-import/internal/repository/postgresql"
	employeeService "github.com/cmlabs-hris/hris-employee-import/internal/service/employee"
	ingestService "github.com/cmlabs-hris/hris-employee-import/internal/service/ingest"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := appHTTP.NewLogger(os.Stdout, cfg.App.Env, cfg.SlogLevel())
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	archive, err := storage.NewLocalStorage(cfg.Upload.ArchiveDir)
	if err != nil {
		return fmt.Errorf("initialize upload archive: %w", err)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	transactor := postgresql.NewTransactor(db)
	auditSink := auditlog.NewFileSink(cfg.Audit.LogPath)
	results := resultstore.New[ingest.ImportResponse](cfg.Import.ResultTTL)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	importSvc := ingestService.NewIngestService(
		employeeRepo,
		transactor,
		auditSink,
		archive,
		results,
		ingest.ValidationMode(cfg.Import.ValidationMode),
	)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)

	importHandler := appHTTP.NewImportHandler(importSvc, cfg.Upload.MaxFileSize)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			AllowedOrigins: strings.Split(cfg.App.FrontendURL, ","),
			Logger:         logger,
			LogLevel:       cfg.SlogLevel(),
		},
		JWTService,
		importHandler,
		employeeHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewImportJobs(results, cfg.Import.ResultSweepInterval).RegisterJobs(scheduler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server running", "addr", server.Addr, "validation_mode", cfg.Import.ValidationMode, "actor_tokens", JWTService.Enabled())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return scheduler.Run(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
