package repositories

import (
	"context"
	"time"

	"healthtracker/internal/database"
	. "healthtracker/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	USER_CACHE_EXPIRY            = 7 * 24 * time.Hour
	SUBJECT_MAPPING_CACHE_PREFIX = "subject"
)

type UserRepository interface {
	GetBySubject(ctx context.Context, tx *gorm.DB, subject string) (*User, error)
	FindOrCreateBySubject(ctx context.Context, tx *gorm.DB, user *User) (*User, error)
	Update(ctx context.Context, tx *gorm.DB, user *User) error
	ClearUserCacheBySubject(ctx context.Context, subject string) error
}

type userRepository struct {
	cache database.CacheClient
	log   logger.Logger
}

func NewUserRepository(cache database.CacheClient) UserRepository {
	return &userRepository{
		cache: cache,
		log:   logger.New("userRepository"),
	}
}

func (r *userRepository) GetBySubject(ctx context.Context, tx *gorm.DB, subject string) (*User, error) {
	log := r.log.Function("GetBySubject")

	if user, found := r.getCacheBySubject(ctx, subject); found {
		return user, nil
	}

	user, err := gorm.G[User](tx).Where("subject = ?", subject).First(ctx)
	if err != nil {
		return nil, log.Err("failed to get user by subject", err, "subject", subject)
	}

	r.addUserToCache(ctx, &user)

	return &user, nil
}

// FindOrCreateBySubject returns the user owning the subject, provisioning it
// on first sight. Concurrent first requests converge on the same row.
func (r *userRepository) FindOrCreateBySubject(ctx context.Context, tx *gorm.DB, user *User) (*User, error) {
	log := r.log.Function("FindOrCreateBySubject")

	if existing, err := r.GetBySubject(ctx, tx, user.Subject); err == nil {
		return existing, nil
	}

	user.IsActive = true
	if user.DisplayName == "" {
		user.DisplayName = user.Subject
	}
	if user.LastSeenAt == nil {
		now := time.Now().UTC()
		user.LastSeenAt = &now
	}

	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "subject"}},
		DoNothing: true,
	}
	if err := gorm.G[User](tx, onConflict).Create(ctx, user); err != nil {
		return nil, log.Err("failed to create user", err, "subject", user.Subject)
	}

	created, err := gorm.G[User](tx).Where("subject = ?", user.Subject).First(ctx)
	if err != nil {
		return nil, log.Err("failed to read provisioned user", err, "subject", user.Subject)
	}

	log.Info("Provisioned user", "userID", created.ID)
	r.addUserToCache(ctx, &created)

	return &created, nil
}

func (r *userRepository) Update(ctx context.Context, tx *gorm.DB, user *User) error {
	log := r.log.Function("Update")

	if err := tx.WithContext(ctx).Save(user).Error; err != nil {
		return log.Err("failed to update user", err, "userID", user.ID)
	}

	if err := r.ClearUserCacheBySubject(ctx, user.Subject); err != nil {
		log.Warn("failed to clear user cache after update", "userID", user.ID, "error", err)
	}

	return nil
}

func (r *userRepository) ClearUserCacheBySubject(ctx context.Context, subject string) error {
	if r.cache == nil {
		return nil
	}

	return database.NewCacheBuilder(r.cache, subject).
		WithContext(ctx).
		WithHash(SUBJECT_MAPPING_CACHE_PREFIX).
		Delete()
}

func (r *userRepository) getCacheBySubject(ctx context.Context, subject string) (*User, bool) {
	if r.cache == nil {
		return nil, false
	}

	var user User
	found, err := database.NewCacheBuilder(r.cache, subject).
		WithContext(ctx).
		WithHash(SUBJECT_MAPPING_CACHE_PREFIX).
		Get(&user)
	if err != nil {
		r.log.Function("getCacheBySubject").
			Warn("failed to get user from cache", "subject", subject, "error", err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	user.Subject = subject
	return &user, true
}

// addUserToCache stores the user keyed by subject. The subject is excluded
// from the user's JSON, so it is restored on read by the key itself.
func (r *userRepository) addUserToCache(ctx context.Context, user *User) {
	if r.cache == nil {
		return
	}

	if err := database.NewCacheBuilder(r.cache, user.Subject).
		WithContext(ctx).
		WithHash(SUBJECT_MAPPING_CACHE_PREFIX).
		WithStruct(user).
		WithTTL(USER_CACHE_EXPIRY).
		Set(); err != nil {
		r.log.Function("addUserToCache").
			Warn("failed to add user to cache", "userID", user.ID, "error", err)
	}
}
