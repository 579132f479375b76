package dedup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Deduplicator tracks already-crawled listings in Redis so repeat runs
// do not re-publish unchanged pages
type Deduplicator struct {
	client     *redis.Client
	prefix     string
	defaultTTL time.Duration
}

// NewDeduplicator creates a new Redis-based deduplicator
func NewDeduplicator(client *redis.Client, prefix string, defaultTTL time.Duration) *Deduplicator {
	if prefix == "" {
		prefix = "listings:seen"
	}
	if defaultTTL == 0 {
		defaultTTL = 72 * time.Hour
	}
	return &Deduplicator{
		client:     client,
		prefix:     prefix,
		defaultTTL: defaultTTL,
	}
}

// IsSeen checks whether a listing ID has already been published
func (d *Deduplicator) IsSeen(ctx context.Context, source, listingID string) (bool, error) {
	exists, err := d.client.Exists(ctx, d.makeKey(source, listingID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return exists > 0, nil
}

// MarkSeen records a listing ID with the default TTL
func (d *Deduplicator) MarkSeen(ctx context.Context, source, listingID string) error {
	err := d.client.Set(ctx, d.makeKey(source, listingID), time.Now().Unix(), d.defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// IsSeenByContent dedups on a hash of the page body, catching listings
// reposted under a new URL
func (d *Deduplicator) IsSeenByContent(ctx context.Context, source, content string) (bool, error) {
	return d.IsSeen(ctx, source, "content:"+hashContent(content))
}

// MarkSeenByContent records the content hash as seen
func (d *Deduplicator) MarkSeenByContent(ctx context.Context, source, content string) error {
	return d.MarkSeen(ctx, source, "content:"+hashContent(content))
}

func (d *Deduplicator) makeKey(source, id string) string {
	return fmt.Sprintf("%s:%s:%s", d.prefix, source, id)
}

func hashContent(content string) string {
	h := sha256.Sum256([]byte(content))
	return hex.EncodeToString(h[:16])
}
