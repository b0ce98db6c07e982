package repositories

import (
	"context"

	"healthtracker/internal/database"
	. "healthtracker/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MoodRepository interface {
	Upsert(ctx context.Context, tx *gorm.DB, mood *MoodRecord) (*MoodRecord, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*MoodRecord, error)
	ClearUserCache(ctx context.Context, userID uuid.UUID) error
}

type moodRepository struct {
	cache recordListCache[MoodRecord]
	log   logger.Logger
}

func NewMoodRepository(cache database.CacheClient) MoodRepository {
	log := logger.New("moodRepository")
	return &moodRepository{
		cache: newRecordListCache[MoodRecord](cache, MOOD_LIST_CACHE_PREFIX, log),
		log:   log,
	}
}

// Upsert stores the mood for (user, date) in a single statement, replacing
// the mood of an existing row, and returns the stored row.
func (r *moodRepository) Upsert(ctx context.Context, tx *gorm.DB, mood *MoodRecord) (*MoodRecord, error) {
	log := r.log.Function("Upsert")

	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"mood", "updated_at"}),
	}

	if err := gorm.G[MoodRecord](tx, onConflict).Create(ctx, mood); err != nil {
		return nil, log.Err("failed to upsert mood record", err, "userID", mood.UserID)
	}

	stored, err := gorm.G[MoodRecord](tx).
		Where("user_id = ? AND date = ?", mood.UserID, mood.Date).
		First(ctx)
	if err != nil {
		return nil, log.Err("failed to read upserted mood record", err, "userID", mood.UserID)
	}

	if err := r.cache.clear(ctx, mood.UserID); err != nil {
		log.Warn("failed to clear mood cache", "userID", mood.UserID, "error", err)
	}

	return &stored, nil
}

func (r *moodRepository) ListByUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) ([]*MoodRecord, error) {
	log := r.log.Function("ListByUser")

	if cached, found := r.cache.get(ctx, userID); found {
		log.Debug("Moods retrieved from cache", "userID", userID, "count", len(cached))
		return cached, nil
	}

	records, err := gorm.G[*MoodRecord](tx).
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to list mood records", err, "userID", userID)
	}

	r.cache.set(ctx, userID, records)

	return records, nil
}

func (r *moodRepository) ClearUserCache(ctx context.Context, userID uuid.UUID) error {
	return r.cache.clear(ctx, userID)
}
