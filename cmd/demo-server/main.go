package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ytget/playlist-demo/internal/config"
	"github.com/ytget/playlist-demo/internal/logger"
	"github.com/ytget/playlist-demo/internal/notify"
	"github.com/ytget/playlist-demo/internal/platform"
	"github.com/ytget/playlist-demo/internal/server"
	"github.com/ytget/playlist-demo/internal/storage"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const connectTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.LoadServerConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.LogLevel)
	logger.Logger.Info("Playlist demo server starting", "version", version)

	deps := server.Deps{
		Rand: platform.NewRandom(cfg.Pipeline.Seed),
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if cfg.Minio.Endpoint != "" {
		client, err := storage.NewMinioClient(ctx, cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.Bucket, cfg.Minio.UseSSL)
		if err != nil {
			logger.Logger.Error("MinIO unavailable", "error", err.Error())
			os.Exit(1)
		}
		deps.Store = storage.NewObjectStore(client)
	} else {
		if err := platform.CreateDirectoryIfNotExists(cfg.DownloadDir); err != nil {
			logger.Logger.Error("Failed to ensure download dir", "error", err.Error())
			os.Exit(1)
		}
		deps.Store = storage.NewLocalStore(cfg.DownloadDir)
	}

	if cfg.Redis.Host != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host,
			Password: cfg.Redis.Password,
			DB:       0,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Logger.Error("Redis unavailable", "error", err.Error())
			os.Exit(1)
		}
		defer rdb.Close()
		deps.Redis = rdb
	}

	if cfg.RabbitMQ.URL != "" {
		sender, err := notify.NewSender(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
		if err != nil {
			logger.Logger.Error("RabbitMQ unavailable", "error", err.Error())
			os.Exit(1)
		}
		defer sender.Close()
		deps.Notifier = sender
	}

	s := server.NewServer(cfg, deps)
	if err := s.Start(); err != nil {
		logger.Logger.Error("Server error", "error", err.Error())
		os.Exit(1)
	}
}
