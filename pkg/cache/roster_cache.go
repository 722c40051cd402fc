package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/hoopsdfs/roster-optimizer/internal/optimizer"
)

// RosterCacheService handles caching for optimization results
type RosterCacheService struct {
	client *redis.Client
	logger *logrus.Logger
}

// NewRosterCacheService creates a new roster cache service
func NewRosterCacheService(client *redis.Client, logger *logrus.Logger) *RosterCacheService {
	return &RosterCacheService{
		client: client,
		logger: logger,
	}
}

// SetRosterOutcome stores a full-rebuild outcome in cache
func (c *RosterCacheService) SetRosterOutcome(ctx context.Context, key string, outcome *optimizer.RosterOutcome, expiration time.Duration) error {
	data, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("failed to marshal roster outcome: %w", err)
	}

	fullKey := fmt.Sprintf("roster:%s", key)
	if err := c.client.Set(ctx, fullKey, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set roster outcome in cache: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"cache_key":  fullKey,
		"expiration": expiration,
		"feasible":   outcome.Feasible,
	}).Debug("Cached roster outcome")

	return nil
}

// GetRosterOutcome retrieves a full-rebuild outcome from cache
func (c *RosterCacheService) GetRosterOutcome(ctx context.Context, key string) (*optimizer.RosterOutcome, error) {
	fullKey := fmt.Sprintf("roster:%s", key)
	data, err := c.client.Get(ctx, fullKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("roster outcome not found in cache")
		}
		return nil, fmt.Errorf("failed to get roster outcome from cache: %w", err)
	}

	var outcome optimizer.RosterOutcome
	if err := json.Unmarshal([]byte(data), &outcome); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roster outcome: %w", err)
	}

	c.logger.WithField("cache_key", fullKey).Debug("Retrieved roster outcome from cache")
	return &outcome, nil
}

// SetTradeOutcome stores a trade outcome in cache
func (c *RosterCacheService) SetTradeOutcome(ctx context.Context, key string, outcome *optimizer.TradeOutcome, expiration time.Duration) error {
	data, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("failed to marshal trade outcome: %w", err)
	}

	fullKey := fmt.Sprintf("trade:%s", key)
	if err := c.client.Set(ctx, fullKey, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set trade outcome in cache: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"cache_key":  fullKey,
		"expiration": expiration,
		"feasible":   outcome.Feasible,
	}).Debug("Cached trade outcome")

	return nil
}

// GetTradeOutcome retrieves a trade outcome from cache
func (c *RosterCacheService) GetTradeOutcome(ctx context.Context, key string) (*optimizer.TradeOutcome, error) {
	fullKey := fmt.Sprintf("trade:%s", key)
	data, err := c.client.Get(ctx, fullKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("trade outcome not found in cache")
		}
		return nil, fmt.Errorf("failed to get trade outcome from cache: %w", err)
	}

	var outcome optimizer.TradeOutcome
	if err := json.Unmarshal([]byte(data), &outcome); err != nil {
		return nil, fmt.Errorf("failed to unmarshal trade outcome: %w", err)
	}

	c.logger.WithField("cache_key", fullKey).Debug("Retrieved trade outcome from cache")
	return &outcome, nil
}

// Ping verifies the cache connection for health checks
func (c *RosterCacheService) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// GetStatus returns cache statistics
func (c *RosterCacheService) GetStatus(ctx context.Context) map[string]interface{} {
	dbSize := c.client.DBSize(ctx)

	status := map[string]interface{}{
		"service":   "roster-cache",
		"timestamp": time.Now(),
		"connected": true,
	}

	if dbSize.Err() == nil {
		status["db_size"] = dbSize.Val()
	}

	rosterKeys, err := c.client.Keys(ctx, "roster:*").Result()
	if err == nil {
		status["roster_keys"] = len(rosterKeys)
	}

	tradeKeys, err := c.client.Keys(ctx, "trade:*").Result()
	if err == nil {
		status["trade_keys"] = len(tradeKeys)
	}

	return status
}

// FlushRosterCache clears all cached optimization outcomes
func (c *RosterCacheService) FlushRosterCache(ctx context.Context) error {
	for _, pattern := range []string{"roster:*", "trade:*"} {
		keys, err := c.client.Keys(ctx, pattern).Result()
		if err != nil {
			return fmt.Errorf("failed to get %s keys: %w", pattern, err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete %s keys: %w", pattern, err)
			}
		}
		c.logger.WithFields(logrus.Fields{
			"pattern":      pattern,
			"deleted_keys": len(keys),
		}).Info("Flushed cache keys")
	}
	return nil
}
