package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/project-tktt/go-jobstats/internal/domain"
)

// Consumer pulls raw listings off the Redis work queue
type Consumer struct {
	client    *redis.Client
	queueName string
	timeout   time.Duration
}

// NewConsumer creates a new queue consumer
func NewConsumer(client *redis.Client, queueName string, timeout time.Duration) *Consumer {
	if queueName == "" {
		queueName = "listings:raw"
	}
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Consumer{
		client:    client,
		queueName: queueName,
		timeout:   timeout,
	}
}

// Consume blocks and waits for one listing from the queue.
// Returns nil, nil if the wait times out with nothing queued.
func (c *Consumer) Consume(ctx context.Context) (*domain.RawListing, error) {
	result, err := c.client.BRPop(ctx, c.timeout, c.queueName).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("brpop: %w", err)
	}

	if len(result) < 2 {
		return nil, nil
	}

	var l domain.RawListing
	if err := json.Unmarshal([]byte(result[1]), &l); err != nil {
		return nil, fmt.Errorf("unmarshal listing: %w", err)
	}

	return &l, nil
}

// ConsumeBatch pulls up to maxBatch listings. BRPOP blocks for the first
// item so an empty queue does not spin; the rest drain with RPOP.
func (c *Consumer) ConsumeBatch(ctx context.Context, maxBatch int) ([]*domain.RawListing, error) {
	listings := make([]*domain.RawListing, 0, maxBatch)

	result, err := c.client.BRPop(ctx, c.timeout, c.queueName).Result()
	if err != nil {
		if err == redis.Nil {
			return listings, nil
		}
		return nil, fmt.Errorf("brpop: %w", err)
	}

	if len(result) >= 2 {
		var l domain.RawListing
		if err := json.Unmarshal([]byte(result[1]), &l); err == nil {
			listings = append(listings, &l)
		}
	}

	for i := 1; i < maxBatch; i++ {
		result, err := c.client.RPop(ctx, c.queueName).Result()
		if err != nil {
			if err == redis.Nil {
				break
			}
			return listings, fmt.Errorf("rpop: %w", err)
		}

		var l domain.RawListing
		if err := json.Unmarshal([]byte(result), &l); err != nil {
			// Skip malformed entries rather than wedging the queue.
			continue
		}

		listings = append(listings, &l)
	}

	return listings, nil
}
