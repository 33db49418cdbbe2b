package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"topmovies/proj/internal/clients/tmdb"
	"topmovies/proj/internal/config"
	"topmovies/proj/internal/lib/logger"
	"topmovies/proj/internal/services"
	"topmovies/proj/internal/services/catalog"
	"topmovies/proj/internal/services/movies"
	"topmovies/proj/internal/storage/postgres"
	"topmovies/proj/internal/storage/sqlite"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

const version = "1.0.0"

type storage interface {
	movies.MoviesStorage
	Close() error
}

func main() {
	cfgPath := flag.String("config", "config/local.yml", "path to config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		panic(err)
	}
	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug, os.Stdout)

	store, err := openStorage(cfg)
	if err != nil {
		panic(err)
	}
	defer store.Close()
	log.Info("storage ready", "driver", cfg.DB.Driver)

	provider, closeProvider, err := newProvider(log, cfg)
	if err != nil {
		panic(err)
	}
	defer closeProvider()

	app := NewApplication(cfg, log, services.New(log, store, provider))
	if err := app.serve(); err != nil {
		log.Error("server stopped", "errMsg", err.Error())
		os.Exit(1)
	}
}

func openStorage(cfg *config.Config) (storage, error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return postgres.New(ctx, cfg.DB.Dsn, cfg.DB.MaxConns, cfg.DB.MaxConnIdleTime)
	case config.DriverSQLite:
		return sqlite.New(cfg.DB.Dsn, cfg.Debug)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DB.Driver)
	}
}

// newProvider builds the TMDB client, fronted by the Redis cache when one is
// configured.
func newProvider(log *slog.Logger, cfg *config.Config) (catalog.MetadataProvider, func(), error) {
	client, err := tmdb.New(log, cfg.TMDB)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Cache.RedisAddr == "" {
		return client, func() {}, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis is unreachable, provider responses won't be cached until it's back", "addr", cfg.Cache.RedisAddr, "errMsg", err.Error())
	} else {
		log.Info("provider cache enabled", "addr", cfg.Cache.RedisAddr, "ttl", cfg.Cache.TTL)
	}
	return tmdb.NewCachedProvider(log, client, rdb, cfg.Cache.TTL), func() { rdb.Close() }, nil
}
