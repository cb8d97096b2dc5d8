package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/whiteboardhq/backend/domain"
	"github.com/whiteboardhq/backend/repository"
)

type rosterCache struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewRosterCache creates a Redis-backed cache for board rosters. The roster
// only ever grows (members are never removed), so a short TTL plus explicit
// invalidation on register keeps it honest.
func NewRosterCache(client *redislib.Client, ttl time.Duration) repository.RosterCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &rosterCache{
		client: client,
		prefix: "roster:",
		ttl:    ttl,
	}
}

func (c *rosterCache) Get(ctx context.Context, boardID string) ([]domain.BoardMember, error) {
	result, err := c.client.Get(ctx, c.key(boardID)).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, nil
		}
		return nil, err
	}

	var members []domain.BoardMember
	if err := json.Unmarshal([]byte(result), &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (c *rosterCache) Set(ctx context.Context, boardID string, members []domain.BoardMember, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}
	payload, err := json.Marshal(members)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(boardID), payload, ttl).Err()
}

func (c *rosterCache) Invalidate(ctx context.Context, boardID string) error {
	return c.client.Del(ctx, c.key(boardID)).Err()
}

func (c *rosterCache) key(boardID string) string {
	return fmt.Sprintf("%s%s", c.prefix, boardID)
}
