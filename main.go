package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gavelworks/baymimic/baymimic"
	"github.com/gavelworks/baymimic/baymimic/database"
	"github.com/gavelworks/baymimic/baymimic/logger"
	"github.com/joho/godotenv"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	slog.SetDefault(slog.New(logger.NewHandler(slog.LevelInfo)))

	slog.Info("Starting BayMimic marketplace core",
		slog.String("version", version),
		slog.String("commit", commit))

	shouldSeed := flag.Bool("seed", false, "Whether to load the demo data set on startup")
	shouldReset := flag.Bool("reset", false, "Whether to truncate all marketplace tables before startup")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := baymimic.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.SetDefault(slog.New(logger.NewHandler(cfg.Log.Level)))
	slog.Info("Configuration loaded successfully")

	slog.Info("Initializing database connection...")
	dbStartTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// Convert baymimic.DBConfig to database.DBConfig
	dbConfig := database.DBConfig{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Database,
		PoolSize: cfg.DB.PoolSize,
	}

	db, err := database.New(ctx, dbConfig)
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	defer db.Close()

	slog.Info("Database connected successfully",
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	slog.Info("Initializing database schema...")
	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize database schema",
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	slog.Info("Database schema initialized successfully")

	if *shouldReset {
		if err := db.ResetAppTables(ctx); err != nil {
			slog.Error("Failed to reset marketplace tables", slog.Any("error", err))
			os.Exit(-1)
		}
	}

	if *shouldSeed || cfg.Market.SeedDemoData {
		if err := database.SeedDemoData(ctx, db); err != nil {
			slog.Error("Failed to seed demo data", slog.Any("error", err))
			os.Exit(-1)
		}
	}

	app := baymimic.New(*cfg, version, commit)
	app.Setup(db)

	// Warm the session snapshots so the first report read is served from
	// cache. A warm failure is not fatal; reads fall back to lazy loads.
	if err := app.Snapshots.Warm(ctx); err != nil {
		slog.Warn("Failed to warm report snapshots",
			slog.String("type", "market"),
			slog.Any("error", err))
	}

	sweepInterval := time.Duration(cfg.Market.SweepIntervalSeconds) * time.Second
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}

	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	defer sweepCancel()

	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
				settled, err := app.Finalizer.SweepExpired(ctx)
				if err != nil {
					slog.Error("Expired listing sweep failed",
						slog.String("type", "market"),
						slog.Any("error", err))
				}
				if settled > 0 {
					app.Snapshots.Invalidate()
				}
				cancel()
			case <-sweepCtx.Done():
				return
			}
		}
	}()

	slog.Info("Marketplace core is running. Press CTRL-C to exit.",
		slog.Duration("sweep_interval", sweepInterval))
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	slog.Info("Shutting down marketplace core...")
}
