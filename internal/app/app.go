package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/favhome/deliveries/internal/config"
	"github.com/favhome/deliveries/internal/database"
	"github.com/favhome/deliveries/internal/handlers"
	"github.com/favhome/deliveries/internal/keepalive"
	"github.com/favhome/deliveries/internal/logger"
	"github.com/favhome/deliveries/internal/middleware"
	"github.com/favhome/deliveries/internal/mirror"
	"github.com/favhome/deliveries/internal/repository"
	"github.com/favhome/deliveries/internal/service"
	appsync "github.com/favhome/deliveries/internal/sync"
	"go.uber.org/zap"
)

type App struct {
	server  *http.Server
	db      *sql.DB
	adminDB *sql.DB
	pusher  *appsync.Pusher
	pinger  *keepalive.Pinger
}

func NewApp(ctx context.Context) (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ParseFlags()

	if err := logger.Initialize("info"); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	mirrorClient := mirror.NewClient(cfg.GithubAPIBase, cfg.GithubRepo, cfg.GithubDBPath, cfg.GithubToken)

	// Reconcile before the database is opened so the file on disk is still the
	// raw boot-time state when local and remote histories are compared.
	reconciler := appsync.NewReconciler(mirrorClient, cfg.DatabasePath, cfg.GithubDBPath)
	reconciler.Run(ctx)

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		logger.Log.Error("database open failed", zap.Error(err))
		return nil, err
	}

	adminDB, err := database.OpenAdmin(cfg.AdminDBPath)
	if err != nil {
		logger.Log.Error("admin database open failed", zap.Error(err))
		return nil, err
	}

	adminRepo := repository.NewAdminRepository(adminDB)
	passwordHash, err := adminRepo.PasswordHash(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve admin credential: %w", err)
	}
	cred := middleware.NewAdminCredential(cfg.AdminKey, passwordHash, cfg.SecretKey)

	pusher := appsync.NewPusher(mirrorClient, cfg.DatabasePath, cfg.GithubDBPath)

	orderRepo := repository.NewOrderRepository(db)
	listingRepo := repository.NewListingRepository(db)

	orderService := service.NewOrderService(orderRepo, pusher)
	listingService := service.NewListingService(listingRepo, pusher)

	handler := handlers.NewHandler(orderService, listingService, cred,
		cfg.Paybill, cfg.UploadDir, cfg.AdminPath)
	r := handlers.NewRouter(handler)

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: r,
	}

	return &App{
		server:  server,
		db:      db,
		adminDB: adminDB,
		pusher:  pusher,
		pinger:  keepalive.NewPinger(pingURL(cfg.RunAddress)),
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	go a.pusher.Run(ctx)
	go a.pinger.Run(ctx)

	go func() {
		logger.Log.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("server failed to start", zap.Error(err))
		}
	}()
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	logger.Log.Info("shutting down server...")
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("server shutdown failed", zap.Error(err))
		return err
	}

	logger.Log.Info("closing databases...")
	if err := a.db.Close(); err != nil {
		logger.Log.Error("failed to close database", zap.Error(err))
		return err
	}
	if err := a.adminDB.Close(); err != nil {
		logger.Log.Error("failed to close admin database", zap.Error(err))
		return err
	}

	return nil
}

func pingURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr + "/ping"
}
