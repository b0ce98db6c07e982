package repositories

import (
	"context"

	"healthtracker/internal/database"
	. "healthtracker/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, record *MedicationRecord) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*MedicationRecord, error)
	ClearUserCache(ctx context.Context, userID uuid.UUID) error
}

type medicationRepository struct {
	cache recordListCache[MedicationRecord]
	log   logger.Logger
}

func NewMedicationRepository(cache database.CacheClient) MedicationRepository {
	log := logger.New("medicationRepository")
	return &medicationRepository{
		cache: newRecordListCache[MedicationRecord](cache, MED_LIST_CACHE_PREFIX, log),
		log:   log,
	}
}

func (r *medicationRepository) Create(ctx context.Context, tx *gorm.DB, record *MedicationRecord) error {
	log := r.log.Function("Create")

	if err := gorm.G[MedicationRecord](tx).Create(ctx, record); err != nil {
		return log.Err("failed to create medication record", err, "userID", record.UserID)
	}

	if err := r.cache.clear(ctx, record.UserID); err != nil {
		log.Warn("failed to clear medication cache", "userID", record.UserID, "error", err)
	}

	return nil
}

func (r *medicationRepository) ListByUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) ([]*MedicationRecord, error) {
	log := r.log.Function("ListByUser")

	if cached, found := r.cache.get(ctx, userID); found {
		log.Debug("Medications retrieved from cache", "userID", userID, "count", len(cached))
		return cached, nil
	}

	records, err := gorm.G[*MedicationRecord](tx).
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to list medication records", err, "userID", userID)
	}

	r.cache.set(ctx, userID, records)

	return records, nil
}

func (r *medicationRepository) ClearUserCache(ctx context.Context, userID uuid.UUID) error {
	return r.cache.clear(ctx, userID)
}
