package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/maxhum-sudo/LifeCost/internal/domain"
)

// ResultStore is a Redis implementation of app.ResultRepository.
// Results are stored as: SET result:{sessionID} {json} EX ttl
type ResultStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResultStore(client *redis.Client, ttl time.Duration) *ResultStore {
	return &ResultStore{client: client, ttl: ttl}
}

func (s *ResultStore) Save(ctx context.Context, result domain.SavedResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return s.client.Set(ctx, s.key(result.SessionID), data, s.ttl).Err()
}

func (s *ResultStore) Get(ctx context.Context, sessionID string) (domain.SavedResult, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.SavedResult{}, domain.ErrResultNotFound
	}
	if err != nil {
		return domain.SavedResult{}, fmt.Errorf("get result: %w", err)
	}
	var result domain.SavedResult
	if err := json.Unmarshal(data, &result); err != nil {
		return domain.SavedResult{}, fmt.Errorf("unmarshal result: %w", err)
	}
	return result, nil
}

func (s *ResultStore) key(sessionID string) string {
	return "result:" + sessionID
}
