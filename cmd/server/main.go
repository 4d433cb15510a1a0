package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"royalcert/internal/auth"
	"royalcert/internal/cache"
	"royalcert/internal/config"
	"royalcert/internal/database"
	"royalcert/internal/logging"
	"royalcert/internal/repository"
	"royalcert/internal/server"
	"royalcert/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := logging.Init(cfg.Env); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if err := run(cfg); err != nil {
		logging.Log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg.DBDSN)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}
	if err := database.SeedAdmin(ctx, db, database.AdminSeed{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
		Email:    cfg.AdminEmail,
	}); err != nil {
		return err
	}

	users := repository.NewUserRepository(db)
	customers := repository.NewCustomerRepository(db)
	inspections := repository.NewInspectionRepository(db)
	var templates repository.TemplateRepository = repository.NewTemplateRepository(db)

	if cfg.RedisURL != "" {
		rdb, err := cache.ConnectRedis(ctx, cache.Config{
			RedisURL:      cfg.RedisURL,
			RedisPassword: cfg.RedisPassword,
			RedisDB:       cfg.RedisDB,
		})
		if err != nil {
			logging.Log.Warn("redis unavailable, template cache disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			templates = cache.NewCachedTemplateRepository(templates, rdb, cfg.CacheTTL)
			logging.Log.Info("template cache enabled", zap.Duration("ttl", cfg.CacheTTL))
		}
	}

	audit := service.NewAuditService(repository.NewAuditRepository(db))
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	svc := server.Services{
		Auth:        service.NewAuthService(users, tokens, audit),
		Users:       service.NewUserService(users, audit),
		Customers:   service.NewCustomerService(customers, inspections, audit),
		Templates:   service.NewTemplateService(templates, audit),
		Inspections: service.NewInspectionService(inspections, customers, users, templates, audit),
		Dashboard:   service.NewDashboardService(users, customers, templates, inspections),
		Audit:       audit,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           server.NewRouter(cfg, svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Log.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
