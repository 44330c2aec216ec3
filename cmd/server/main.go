package main

import (
	"context"
	"database/sql"
	"delivery-cost-service/internal/adapters/cache"
	"delivery-cost-service/internal/adapters/distance"
	"delivery-cost-service/internal/adapters/load"
	"delivery-cost-service/internal/adapters/repositories"
	"delivery-cost-service/internal/api"
	"delivery-cost-service/internal/api/handlers"
	"delivery-cost-service/internal/config"
	"delivery-cost-service/internal/platform/db"
	"delivery-cost-service/internal/ports"
	"delivery-cost-service/internal/services"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Postgres or SQLite, Redis, ORS) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	conn, repo, err := openRepository(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	checks := map[string]handlers.HealthCheck{"database": conn.PingContext}

	var (
		loads         ports.LoadStore
		distanceCache distance.DistanceCache
		geocodeCache  distance.GeocodeCache
	)

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("parse REDIS_URL: %v", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = rdb.Ping(ctx).Err()
		cancel()
		if err != nil {
			log.Fatalf("verify redis connection: %v", err)
		}

		store, err := load.NewRedisLoadStore(rdb, cfg.DefaultLoad)
		if err != nil {
			log.Fatal(err)
		}
		loads = store
		distanceCache = cache.NewRedisDistanceCache(rdb, cfg.DistanceCacheTTL)
		geocodeCache = cache.NewRedisGeocodeCache(rdb)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		log.Printf("Redis enabled addr=%s db=%d", opts.Addr, opts.DB)
	} else {
		loads = load.NewMemoryLoadStore(cfg.DefaultLoad)
		log.Printf("REDIS_URL not set, service load kept in memory default=%s", cfg.DefaultLoad)
	}

	var provider ports.DistanceProvider
	if cfg.ORSAPIKey != "" {
		ors, err := distance.NewORSDistanceProvider(distance.ORSConfig{
			APIKey:  cfg.ORSAPIKey,
			BaseURL: cfg.ORSBaseURL,
			Country: cfg.ORSCountry,
		}, distanceCache, geocodeCache)
		if err != nil {
			log.Fatal(err)
		}
		provider = ors
	} else {
		log.Println("ORS_API_KEY not set, quotes require distance_km")
	}

	svc := services.NewQuoteService(repo, loads, provider)
	router := api.NewRouter(svc, api.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins,
		HealthChecks:   checks,
	})

	// WriteTimeout leaves room for a cold-cache ORS lookup with retries.
	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openRepository uses Postgres when DATABASE_URL is set and a local SQLite file otherwise.
func openRepository(cfg config.Config) (*sql.DB, ports.QuoteRepository, error) {
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := repositories.InitSchema(conn, repositories.Postgres); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("open repository: %w", err)
		}
		log.Println("Quote store: postgres")
		return conn, repositories.NewSQLQuoteRepository(conn), nil
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("open repository: create %q: %w", dir, err)
		}
	}

	conn, err := db.OpenSqlite(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	if err := repositories.InitSchema(conn, repositories.SQLite); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open repository: %w", err)
	}
	log.Printf("Quote store: sqlite path=%s", cfg.DBPath)
	return conn, repositories.NewSqliteQuoteRepository(conn), nil
}
