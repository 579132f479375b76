package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/project-tktt/go-jobstats/internal/config"
	"github.com/project-tktt/go-jobstats/internal/dedup"
	"github.com/project-tktt/go-jobstats/internal/queue"
	"github.com/project-tktt/go-jobstats/internal/scraper"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Listing Crawler Service")

	cfg := config.Load()

	selectors, err := config.LoadSelectors(cfg.Crawler.SelectorFile)
	if err != nil {
		log.Fatalf("Selector config failed: %v", err)
	}
	log.Printf("Loaded selectors for %d sites", len(selectors.Sites))

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

	deduplicator := dedup.NewDeduplicator(rdb, cfg.Redis.SeenSetPrefix, cfg.Redis.SeenTTL)
	publisher := queue.NewPublisher(rdb, cfg.Redis.ListingQueue)

	opts := scraper.Options{
		RequestDelay: cfg.Crawler.RequestDelay,
		MaxRetries:   cfg.Crawler.MaxRetries,
		UserAgent:    cfg.Crawler.UserAgent,
	}

	crawlAll := func() {
		for _, site := range selectors.Sites {
			if err := crawlSite(ctx, site.Name, scraper.New(site, opts), deduplicator, publisher); err != nil {
				log.Printf("Crawl %s failed: %v", site.Name, err)
			}
		}
	}

	if cfg.Crawler.Schedule == "" {
		crawlAll()
		return
	}

	c := cron.New(cron.WithLogger(cron.DefaultLogger))
	if _, err := c.AddFunc(cfg.Crawler.Schedule, crawlAll); err != nil {
		log.Fatalf("Bad cron schedule %q: %v", cfg.Crawler.Schedule, err)
	}
	c.Start()
	log.Printf("Cron started, spec: %s", cfg.Crawler.Schedule)

	// First run immediately so the queue fills without waiting a tick.
	go crawlAll()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutdown signal received, stopping...")
	cancel()
	<-c.Stop().Done()
	log.Println("Cron stopped")
}

func crawlSite(ctx context.Context, name string, s *scraper.Scraper, dd *dedup.Deduplicator, pub *queue.Publisher) error {
	links, err := s.CollectLinks(ctx)
	if err != nil {
		return err
	}
	log.Printf("%s: %d detail links", name, len(links))

	published := 0
	for _, link := range links {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		seen, err := dd.IsSeen(ctx, name, link)
		if err != nil {
			log.Printf("%s: dedup check failed for %s: %v", name, link, err)
		}
		if seen {
			continue
		}

		listing, err := s.Extract(ctx, link)
		if err != nil {
			log.Printf("%s: extract failed for %s: %v", name, link, err)
			continue
		}

		if err := pub.Publish(ctx, listing); err != nil {
			log.Printf("%s: publish failed for %s: %v", name, listing.ID, err)
			continue
		}
		if err := dd.MarkSeen(ctx, name, link); err != nil {
			log.Printf("%s: mark seen failed for %s: %v", name, link, err)
		}
		published++
	}

	log.Printf("%s: published %d new listings", name, published)
	return nil
}
