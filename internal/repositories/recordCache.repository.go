package repositories

import (
	"context"
	"time"

	"healthtracker/internal/database"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

const (
	TRACKER_CACHE_PREFIX      = "tracker"
	SYMPTOM_LIST_CACHE_PREFIX = TRACKER_CACHE_PREFIX + ":symptoms"
	MEAL_LIST_CACHE_PREFIX    = TRACKER_CACHE_PREFIX + ":meals"
	MED_LIST_CACHE_PREFIX     = TRACKER_CACHE_PREFIX + ":medications"
	MOOD_LIST_CACHE_PREFIX    = TRACKER_CACHE_PREFIX + ":moods"
	TRACKER_CACHE_EXPIRY      = 1 * time.Hour
)

// TrackerListCachePrefixes holds the per-kind list cache hashes, one key per
// user under each.
var TrackerListCachePrefixes = []string{
	SYMPTOM_LIST_CACHE_PREFIX,
	MEAL_LIST_CACHE_PREFIX,
	MED_LIST_CACHE_PREFIX,
	MOOD_LIST_CACHE_PREFIX,
}

// recordListCache is a read-through cache of one user's full record list.
// A nil client disables it.
type recordListCache[T any] struct {
	cache  database.CacheClient
	prefix string
	log    logger.Logger
}

func newRecordListCache[T any](cache database.CacheClient, prefix string, log logger.Logger) recordListCache[T] {
	return recordListCache[T]{cache: cache, prefix: prefix, log: log}
}

func (c recordListCache[T]) get(ctx context.Context, userID uuid.UUID) ([]*T, bool) {
	if c.cache == nil {
		return nil, false
	}

	var cached []*T
	found, err := database.NewCacheBuilder(c.cache, userID).
		WithContext(ctx).
		WithHash(c.prefix).
		Get(&cached)
	if err != nil {
		c.log.Warn("failed to get records from cache", "userID", userID, "cache", c.prefix, "error", err)
		return nil, false
	}

	return cached, found
}

func (c recordListCache[T]) set(ctx context.Context, userID uuid.UUID, records []*T) {
	if c.cache == nil {
		return
	}

	err := database.NewCacheBuilder(c.cache, userID).
		WithContext(ctx).
		WithHash(c.prefix).
		WithStruct(records).
		WithTTL(TRACKER_CACHE_EXPIRY).
		Set()
	if err != nil {
		c.log.Warn("failed to set records in cache", "userID", userID, "cache", c.prefix, "error", err)
	}
}

func (c recordListCache[T]) clear(ctx context.Context, userID uuid.UUID) error {
	if c.cache == nil {
		return nil
	}

	return database.NewCacheBuilder(c.cache, userID).
		WithContext(ctx).
		WithHash(c.prefix).
		Delete()
}
