package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient dials redis and verifies the connection before handing the
// client out.
func NewRedisClient(ctx context.Context, addr, password string, db int, timeout time.Duration) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: timeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

// SummaryCachedStore overlays the summary side of the wrapped Store with
// redis, so cached summaries survive restarts of the in-memory store. All
// other operations pass through untouched.
type SummaryCachedStore struct {
	Store
	client *redis.Client
}

// WithRedisSummaryCache wraps a Store with a redis summary cache.
func WithRedisSummaryCache(s Store, client *redis.Client) *SummaryCachedStore {
	return &SummaryCachedStore{Store: s, client: client}
}

func summaryKey(transcriptID int) string {
	return fmt.Sprintf("transcript:%d:summary", transcriptID)
}

// GetSummary checks redis first and falls back to the wrapped store.
func (s *SummaryCachedStore) GetSummary(ctx context.Context, transcriptID int) (string, bool, error) {
	summary, err := s.client.Get(ctx, summaryKey(transcriptID)).Result()
	if err == nil {
		return summary, true, nil
	}
	if !errors.Is(err, redis.Nil) {
		return "", false, fmt.Errorf("failed to read summary cache: %w", err)
	}
	return s.Store.GetSummary(ctx, transcriptID)
}

// SaveSummary writes through to both redis and the wrapped store. Entries
// never expire; summaries are not invalidated.
func (s *SummaryCachedStore) SaveSummary(ctx context.Context, transcriptID int, summary string) error {
	if err := s.client.Set(ctx, summaryKey(transcriptID), summary, 0).Err(); err != nil {
		return fmt.Errorf("failed to write summary cache: %w", err)
	}
	return s.Store.SaveSummary(ctx, transcriptID, summary)
}
