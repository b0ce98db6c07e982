package repositories

import (
	"context"

	"healthtracker/internal/database"
	. "healthtracker/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MealRepository interface {
	Create(ctx context.Context, tx *gorm.DB, record *MealRecord) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*MealRecord, error)
	ClearUserCache(ctx context.Context, userID uuid.UUID) error
}

type mealRepository struct {
	cache recordListCache[MealRecord]
	log   logger.Logger
}

func NewMealRepository(cache database.CacheClient) MealRepository {
	log := logger.New("mealRepository")
	return &mealRepository{
		cache: newRecordListCache[MealRecord](cache, MEAL_LIST_CACHE_PREFIX, log),
		log:   log,
	}
}

func (r *mealRepository) Create(ctx context.Context, tx *gorm.DB, record *MealRecord) error {
	log := r.log.Function("Create")

	if err := gorm.G[MealRecord](tx).Create(ctx, record); err != nil {
		return log.Err("failed to create meal record", err, "userID", record.UserID)
	}

	if err := r.cache.clear(ctx, record.UserID); err != nil {
		log.Warn("failed to clear meal cache", "userID", record.UserID, "error", err)
	}

	return nil
}

func (r *mealRepository) ListByUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) ([]*MealRecord, error) {
	log := r.log.Function("ListByUser")

	if cached, found := r.cache.get(ctx, userID); found {
		log.Debug("Meals retrieved from cache", "userID", userID, "count", len(cached))
		return cached, nil
	}

	records, err := gorm.G[*MealRecord](tx).
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to list meal records", err, "userID", userID)
	}

	r.cache.set(ctx, userID, records)

	return records, nil
}

func (r *mealRepository) ClearUserCache(ctx context.Context, userID uuid.UUID) error {
	return r.cache.clear(ctx, userID)
}
