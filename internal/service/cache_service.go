package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Payphone-Digital/auth-service/internal/constants"
	"github.com/Payphone-Digital/auth-service/internal/dto"
	"github.com/Payphone-Digital/auth-service/pkg/circuit"
	"github.com/Payphone-Digital/auth-service/pkg/logger"
	"github.com/Payphone-Digital/auth-service/pkg/redis"
)

// CacheService keeps public user profiles in redis. Cache failures are
// logged and treated as misses; they never fail a request.
type CacheService struct {
	redisClient redis.Client
	ttl         time.Duration
	breaker     *circuit.Breaker
}

// NewCacheService creates a new cache service. A nil client disables caching.
func NewCacheService(redisClient redis.Client, ttl time.Duration) *CacheService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CacheService{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

// WithBreaker routes cache calls through b so an unreachable redis is
// skipped instead of costing a timeout on every lookup
func (s *CacheService) WithBreaker(b *circuit.Breaker) *CacheService {
	s.breaker = b
	return s
}

// guard runs fn through the breaker when one is set. A cache miss is a
// healthy answer and counts as a success.
func (s *CacheService) guard(fn func() error) error {
	if s.breaker == nil {
		return fn()
	}
	if err := s.breaker.Allow(); err != nil {
		return err
	}

	err := fn()
	if errors.Is(err, redis.ErrCacheMiss) {
		s.breaker.Record(nil)
	} else {
		s.breaker.Record(err)
	}
	return err
}

func isCircuitRejection(err error) bool {
	return errors.Is(err, circuit.ErrCircuitOpen) || errors.Is(err, circuit.ErrTooManyRequests)
}

func userCacheKey(id uint) string {
	return fmt.Sprintf("%s%d", constants.CacheKeyUser, id)
}

func (s *CacheService) enabled() bool {
	return s != nil && s.redisClient != nil && s.redisClient.IsEnabled()
}

// GetUser returns a cached profile, or false on a miss or any cache error
func (s *CacheService) GetUser(ctx context.Context, id uint) (*dto.UserResponse, bool) {
	if !s.enabled() {
		return nil, false
	}

	key := userCacheKey(id)
	var data []byte
	err := s.guard(func() error {
		var getErr error
		data, getErr = s.redisClient.Get(ctx, key)
		return getErr
	})
	if err != nil {
		if !errors.Is(err, redis.ErrCacheMiss) && !isCircuitRejection(err) {
			logger.WarnWithContext(ctx, "Failed to read user from cache").
				String("cache_key", key).
				Err(err).
				Log()
		}
		return nil, false
	}

	var user dto.UserResponse
	if err := json.Unmarshal(data, &user); err != nil {
		logger.WarnWithContext(ctx, "Discarding undecodable cache entry").
			String("cache_key", key).
			Err(err).
			Log()
		_ = s.redisClient.Delete(ctx, key)
		return nil, false
	}

	return &user, true
}

// SetUser caches a profile for the configured TTL
func (s *CacheService) SetUser(ctx context.Context, user *dto.UserResponse) {
	if !s.enabled() || user == nil {
		return
	}

	key := userCacheKey(user.ID)
	data, err := json.Marshal(user)
	if err != nil {
		logger.WarnWithContext(ctx, "Failed to encode user for cache").
			String("cache_key", key).
			Err(err).
			Log()
		return
	}

	err = s.guard(func() error {
		return s.redisClient.Set(ctx, key, data, s.ttl)
	})
	if err != nil && !isCircuitRejection(err) {
		logger.WarnWithContext(ctx, "Failed to cache user").
			String("cache_key", key).
			Err(err).
			Log()
	}
}
