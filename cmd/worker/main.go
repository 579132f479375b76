package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/project-tktt/go-jobstats/internal/batch"
	"github.com/project-tktt/go-jobstats/internal/cleaner"
	"github.com/project-tktt/go-jobstats/internal/config"
	"github.com/project-tktt/go-jobstats/internal/fx"
	"github.com/project-tktt/go-jobstats/internal/indexer"
	"github.com/project-tktt/go-jobstats/internal/normalizer"
	"github.com/project-tktt/go-jobstats/internal/queue"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Salary Worker Service")

	cfg := config.Load()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	log.Println("Redis connected")

	pgIndexer, err := indexer.NewPostgresIndexer(cfg.Postgres.ConnectionString, cfg.Postgres.TableName)
	if err != nil {
		log.Fatalf("Postgres connection failed: %v", err)
	}
	defer pgIndexer.Close()
	log.Printf("Postgres connected, table: %s", cfg.Postgres.TableName)

	esIndexer, err := indexer.NewElasticsearchIndexer(cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Index)
	if err != nil {
		log.Fatalf("Elasticsearch connection failed: %v", err)
	}
	log.Printf("Elasticsearch connected, index: %s", cfg.Elasticsearch.Index)

	if err := esIndexer.EnsureIndex(ctx); err != nil {
		log.Printf("Warning: Failed to ensure index: %v", err)
	}

	consumer := queue.NewConsumer(rdb, cfg.Redis.ListingQueue, cfg.Worker.ConsumeTimeout)
	runner := batch.NewRunner(normalizer.New(nil), fx.NewClient(), cfg.Worker.Concurrency)
	worker := batch.NewWorker(consumer, cleaner.NewCleaner(), runner, cfg.Worker.BatchSize, pgIndexer, esIndexer)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := worker.Run(ctx); err != nil && err != context.Canceled {
			log.Printf("Worker error: %v", err)
		}
	}()

	<-sigChan
	log.Println("Shutdown signal received, stopping...")
	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("Graceful shutdown complete")
	case <-time.After(30 * time.Second):
		log.Println("Shutdown timeout, forcing exit")
	}
}
