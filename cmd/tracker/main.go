package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/limbo/squirrels/internal/api"
	"github.com/limbo/squirrels/internal/repository"
	"github.com/limbo/squirrels/internal/service"
	"github.com/limbo/squirrels/pkg/cleanup"
	"github.com/limbo/squirrels/pkg/config"
	"github.com/limbo/squirrels/pkg/entity"
)

func main() {
	cfg := config.New()
	setupLogger(cfg.GetStringOr("LOG_LEVEL", "info"))
	defer cleanup.CleanUp()

	catalog := entity.DefaultCatalog()
	repo := repository.NewStateRepo(buildStore(cfg), catalog, repository.StateKeys{
		Database: cfg.GetString("DB_KEY"),
		Session:  cfg.GetString("SESSION_KEY"),
	}, slog.Default())
	tracker := service.NewTracker(repo, catalog)
	tracker.Load(context.Background())

	serv := api.New(&api.ServicesList{
		Tracker:        tracker,
		AllowedOrigins: cfg.GetList("ALLOWED_ORIGINS"),
	})
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err := serv.Run(ctx, cfg.GetStringOr("API_ADDRESS", "127.0.0.1:8080"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}

func buildStore(cfg *config.Config) repository.KVStore {
	backend := strings.ToLower(cfg.GetStringOr("STORAGE_BACKEND", "memory"))
	switch backend {
	case "postgres":
		return repository.NewPostgresStore(&repository.PGCfg{
			Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
			Username: cfg.GetString("POSTGRES_USER"),
			Password: cfg.GetString("POSTGRES_PASSWORD"),
			DB:       cfg.GetString("POSTGRES_DB"),
		})
	case "redis":
		return repository.NewRedisStore(&repository.RedisCfg{
			Address:  cfg.GetStringOr("REDIS_ADDRESS", "localhost:6379"),
			Password: cfg.GetString("REDIS_PASSWORD"),
			DB:       cfg.GetInt("REDIS_DB", 0),
			Prefix:   cfg.GetString("REDIS_PREFIX"),
		})
	case "memory":
		slog.Warn("using in-memory storage, state is lost on exit")
		return repository.NewMemoryStore()
	default:
		log.Fatal("unknown STORAGE_BACKEND: " + backend)
		return nil
	}
}

func setupLogger(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}
