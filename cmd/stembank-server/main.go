package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/stembank/stembank/internal/config"
	"github.com/stembank/stembank/internal/domain/dashboard"
	"github.com/stembank/stembank/internal/domain/donor"
	"github.com/stembank/stembank/internal/domain/records"
	"github.com/stembank/stembank/internal/domain/stemcell"
	"github.com/stembank/stembank/internal/domain/user"
	"github.com/stembank/stembank/internal/platform/db"
	"github.com/stembank/stembank/internal/platform/middleware"
	"github.com/stembank/stembank/internal/platform/notification"
	"github.com/stembank/stembank/internal/platform/seed"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stembank-server",
		Short: "Stem-cell bank administrative API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			pool, cleanup, err := openPool()
			if err != nil {
				return err
			}
			defer cleanup()

			count, err := db.NewMigrator(pool, dir).Up(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("Applied %d migration(s)\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			pool, cleanup, err := openPool()
			if err != nil {
				return err
			}
			defer cleanup()

			statuses, err := db.NewMigrator(pool, dir).Status(context.Background())
			if err != nil {
				return err
			}
			for _, s := range statuses {
				state := "pending"
				appliedAt := ""
				if s.Applied {
					state = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, state, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, cleanup, err := openPool()
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := seed.Run(context.Background(), pool)
			if err != nil {
				return err
			}
			fmt.Printf("Seeded %d hospitals, %d doctors, %d donors, %d patients, %d stem cells, %d storage units\n",
				res.Hospitals, res.Doctors, res.Donors, res.Patients, res.StemCells, res.StorageUnits)
			return nil
		},
	}
}

func openPool() (*pgxpool.Pool, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("DATABASE_URL is required")
	}

	p, err := db.NewPool(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, nil, err
	}
	return p, p.Close, nil
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{"Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))

	api := e.Group("/api")

	// Accounts and login
	userSvc := user.NewService(user.NewRepoPG(pool), []byte(cfg.JWTSecret))
	user.NewHandler(userSvc, cfg.IsProduction()).RegisterRoutes(api)

	// Dashboard
	dashboardSvc := dashboard.NewService(dashboard.NewRepoPG(pool))
	dashboard.NewHandler(dashboardSvc).RegisterRoutes(api)

	// Donor contact projection
	donorSvc := donor.NewService(donor.NewRepoPG(pool))
	donor.NewHandler(donorSvc).RegisterRoutes(api)

	// Bulk messaging
	if cfg.MessagingEnabled() {
		sender := notification.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber)
		notification.NewHandler(notification.NewManager(sender), logger).RegisterRoutes(api)
		logger.Info().Msg("messaging enabled")
	} else {
		logger.Warn().Msg("Twilio credentials not set; /api/sendMessage is disabled")
	}

	// Stem-cell assignment
	stemcellSvc := stemcell.NewService(stemcell.NewRepoPG(pool))
	stemcell.NewHandler(stemcellSvc).RegisterRoutes(api)

	// Table-generic CRUD. Registered last so the static routes above stay
	// readable; echo routes static paths before the :table parameter either
	// way.
	recordsSvc := records.NewService(records.NewRepoPG(pool))
	records.NewHandler(recordsSvc).RegisterRoutes(api)

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
