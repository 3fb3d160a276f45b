package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/credkit/issuerd/internal/domain/model"
)

// RedisStatusCacheRepo caches the derived per-(user, listing) issue status
// in Redis. It implements core.StatusCacheRepository.
type RedisStatusCacheRepo struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisStatusCacheRepo creates a new RedisStatusCacheRepo with the given
// Redis client and entry TTL.
func NewRedisStatusCacheRepo(client redis.UniversalClient, ttl time.Duration) *RedisStatusCacheRepo {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisStatusCacheRepo{client: client, ttl: ttl}
}

func statusKey(userID, listingID string) string {
	return "issuerd:issue-status:" + userID + ":" + listingID
}

// Get retrieves a cached issue status. A missing key is not an error; the
// second return value reports whether the entry was present.
func (r *RedisStatusCacheRepo) Get(
	ctx context.Context,
	userID, listingID string,
) (model.IssueStatus, bool, error) {
	if userID == "" || listingID == "" {
		return model.IssueStatusNone, false, errors.New("user id and listing id are required")
	}

	result, err := r.client.Get(ctx, statusKey(userID, listingID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.IssueStatusNone, false, nil
		}
		return model.IssueStatusNone, false, fmt.Errorf("redis get: %w", err)
	}
	return model.IssueStatus(result), true, nil
}

// Set stores the issue status for a pair with the repo's TTL.
func (r *RedisStatusCacheRepo) Set(
	ctx context.Context,
	userID, listingID string,
	status model.IssueStatus,
) error {
	if userID == "" || listingID == "" {
		return errors.New("user id and listing id are required")
	}
	if err := r.client.Set(ctx, statusKey(userID, listingID), string(status), r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Invalidate removes the cached status for a pair. Called whenever a job
// row for the pair is written.
func (r *RedisStatusCacheRepo) Invalidate(ctx context.Context, userID, listingID string) error {
	if userID == "" || listingID == "" {
		return errors.New("user id and listing id are required")
	}
	if err := r.client.Del(ctx, statusKey(userID, listingID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
