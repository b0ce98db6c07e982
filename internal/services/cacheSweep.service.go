package services

import (
	"context"
	"time"

	"healthtracker/internal/database"
	"healthtracker/internal/metrics"
	"healthtracker/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
)

type CacheSweepResult struct {
	Scanned int
	Removed int
	Clamped int
}

type sweepAction int

const (
	sweepKeep sweepAction = iota
	sweepRemove
	sweepClamp
)

// CacheSweepService keeps the tracker list caches bounded. Lists are always
// written with TRACKER_CACHE_EXPIRY, so a longer lifetime can only come from
// an earlier release with a different expiry; those keys are clamped back.
// Keys without any expiry (restored dumps, manual writes) are removed.
type CacheSweepService struct {
	cache  database.CacheClient
	expiry time.Duration
	log    logger.Logger
}

func NewCacheSweepService(cache database.CacheClient) *CacheSweepService {
	return &CacheSweepService{
		cache:  cache,
		expiry: repositories.TRACKER_CACHE_EXPIRY,
		log:    logger.New("CacheSweepService"),
	}
}

// decide maps a TTL reply (seconds, -1 no expiry, -2 missing) to an action.
func (s *CacheSweepService) decide(ttl int64) sweepAction {
	switch {
	case ttl == -1:
		return sweepRemove
	case ttl > int64(s.expiry.Seconds()):
		return sweepClamp
	default:
		return sweepKeep
	}
}

func (s *CacheSweepService) Sweep(ctx context.Context) (CacheSweepResult, error) {
	log := s.log.Function("Sweep")

	var result CacheSweepResult
	if s.cache == nil {
		log.Debug("Cache disabled, nothing to sweep")
		return result, nil
	}

	keys, err := database.NewCacheBuilder(s.cache, "*").
		WithContext(ctx).
		WithHash(repositories.TRACKER_CACHE_PREFIX).
		ScanKeys()
	if err != nil {
		return result, log.Err("failed to scan tracker cache keys", err)
	}
	result.Scanned = len(keys)

	for _, key := range keys {
		builder := database.NewCacheBuilder(s.cache, key).WithContext(ctx).WithTTL(s.expiry)

		ttl, err := builder.TTL()
		if err != nil {
			log.Warn("failed to read cache key ttl", "key", key, "error", err)
			continue
		}

		switch s.decide(ttl) {
		case sweepRemove:
			if err := builder.Delete(); err != nil {
				log.Warn("failed to remove cache key without expiry", "key", key, "error", err)
				continue
			}
			result.Removed++
		case sweepClamp:
			if err := builder.Expire(); err != nil {
				log.Warn("failed to clamp cache key expiry", "key", key, "ttl", ttl, "error", err)
				continue
			}
			result.Clamped++
		}
	}

	metrics.SetCachedRecordLists(result.Scanned - result.Removed)
	log.Info(
		"Tracker cache sweep finished",
		"scanned", result.Scanned,
		"removed", result.Removed,
		"clamped", result.Clamped,
	)

	return result, nil
}
