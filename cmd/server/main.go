package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/ignite/jarvis-crm/internal/api"
	"github.com/ignite/jarvis-crm/internal/config"
	"github.com/ignite/jarvis-crm/internal/content"
	"github.com/ignite/jarvis-crm/internal/repository/memory"
	"github.com/ignite/jarvis-crm/internal/repository/postgres"
	"github.com/ignite/jarvis-crm/internal/repository/redisstore"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		log.Fatalf("[main] load config: %v", err)
	}

	templates, history, cleanup, err := buildRepositories(cfg)
	if err != nil {
		log.Fatalf("[main] storage: %v", err)
	}
	defer cleanup()

	svc := content.NewService(templates, history,
		content.WithSources(nil, cfg.Generation.LookupTimeout()),
	)

	server := api.NewServer(cfg, svc)

	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("[main] server: %v", err)
	case sig := <-stop:
		log.Printf("[main] received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[main] shutdown: %v", err)
	}
}

func buildRepositories(cfg *config.Config) (content.TemplateRepository, content.HistoryRepository, func(), error) {
	cleanups := []func(){}
	cleanup := func() {
		for _, fn := range cleanups {
			fn()
		}
	}

	var templates content.TemplateRepository
	switch cfg.Storage.Type {
	case "postgres":
		db, err := sql.Open("postgres", cfg.Storage.DatabaseURL)
		if err != nil {
			return nil, nil, cleanup, err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, nil, cleanup, err
		}
		cleanups = append(cleanups, func() { db.Close() })
		templates = postgres.NewTemplateRepo(db)
		log.Printf("[main] template storage: postgres")
	default:
		templates = memory.NewTemplateStore()
		log.Printf("[main] template storage: memory")
	}

	var history content.HistoryRepository
	switch cfg.History.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr: cfg.History.RedisAddr,
			DB:   cfg.History.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			cleanup()
			return nil, nil, func() {}, err
		}
		cleanups = append(cleanups, func() { client.Close() })
		history = redisstore.NewHistoryStore(client, cfg.History.RetentionLimit)
		log.Printf("[main] history storage: redis")
	default:
		history = memory.NewHistoryStore(cfg.History.RetentionLimit)
		log.Printf("[main] history storage: memory")
	}

	return templates, history, cleanup, nil
}
