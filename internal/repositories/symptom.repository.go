package repositories

import (
	"context"

	"healthtracker/internal/database"
	. "healthtracker/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SymptomRepository interface {
	Create(ctx context.Context, tx *gorm.DB, symptom *SymptomRecord) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*SymptomRecord, error)
	ClearUserCache(ctx context.Context, userID uuid.UUID) error
}

type symptomRepository struct {
	cache recordListCache[SymptomRecord]
	log   logger.Logger
}

func NewSymptomRepository(cache database.CacheClient) SymptomRepository {
	log := logger.New("symptomRepository")
	return &symptomRepository{
		cache: newRecordListCache[SymptomRecord](cache, SYMPTOM_LIST_CACHE_PREFIX, log),
		log:   log,
	}
}

func (r *symptomRepository) Create(ctx context.Context, tx *gorm.DB, symptom *SymptomRecord) error {
	log := r.log.Function("Create")

	if err := gorm.G[SymptomRecord](tx).Create(ctx, symptom); err != nil {
		return log.Err("failed to create symptom record", err, "userID", symptom.UserID)
	}

	if err := r.cache.clear(ctx, symptom.UserID); err != nil {
		log.Warn("failed to clear symptom cache", "userID", symptom.UserID, "error", err)
	}

	return nil
}

func (r *symptomRepository) ListByUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) ([]*SymptomRecord, error) {
	log := r.log.Function("ListByUser")

	if cached, found := r.cache.get(ctx, userID); found {
		log.Debug("Symptoms retrieved from cache", "userID", userID, "count", len(cached))
		return cached, nil
	}

	symptoms, err := gorm.G[*SymptomRecord](tx).
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to list symptom records", err, "userID", userID)
	}

	r.cache.set(ctx, userID, symptoms)

	return symptoms, nil
}

func (r *symptomRepository) ClearUserCache(ctx context.Context, userID uuid.UUID) error {
	return r.cache.clear(ctx, userID)
}
