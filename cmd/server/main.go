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

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yukikurage/blog-api/internal/config"
	"github.com/yukikurage/blog-api/internal/database"
	"github.com/yukikurage/blog-api/internal/logger"
	"github.com/yukikurage/blog-api/internal/router"
	"gorm.io/gorm"
)

var cfgFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "blog-server",
		Short:         "Blog content site: articles, comments, tags and accounts",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (environment variables take precedence)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP server",
		RunE:  runServe,
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap()
			if err != nil {
				return err
			}
			return closeDB(db)
		},
	})
	return root
}

// bootstrap loads configuration, initializes logging and opens a migrated
// database.
func bootstrap() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		return nil, nil, err
	}

	logger.Init(os.Stdout, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, nil, err
	}

	if err := database.Migrate(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		return nil, nil, err
	}
	return cfg, db, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer closeDB(db)

	store, err := newSessionStore(cfg)
	if err != nil {
		logger.Error("failed to create session store", "store", cfg.SessionStore, "error", err)
		return err
	}

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router.New(db, store),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		return err
	}
	logger.Info("server stopped")
	return nil
}

func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.SessionStore {
	case "cookie":
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	default:
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		s, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, err
		}
		store = s
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
