package database

import (
	"testing"
	"time"

	"healthtracker/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestCacheConstants(t *testing.T) {
	assert.Equal(t, 0, GENERAL_CACHE_INDEX)
	assert.Equal(t, 1, USER_CACHE_INDEX)
	assert.Equal(t, 2, EVENTS_CACHE_INDEX)
}

func TestCacheClientForIndex_Unknown(t *testing.T) {
	_, _, ok := cacheClientForIndex(42, Cache{})
	assert.False(t, ok)
}

func TestCacheBuilder_KeyComposition(t *testing.T) {
	userID := uuid.MustParse("0190a6d4-5b1e-7c3a-8f00-000000000001")

	builder := NewCacheBuilder(nil, userID).WithHash("tracker:symptoms")
	assert.Equal(t, "tracker:symptoms:0190a6d4-5b1e-7c3a-8f00-000000000001", builder.Key())

	assert.Equal(t, "plain", NewCacheBuilder(nil, "plain").WithHash("").Key())
}

func TestCacheBuilder_SetRequiresValue(t *testing.T) {
	err := NewCacheBuilder(nil, "key").Set()
	assert.Error(t, err)
}

func TestCacheBuilder_MarshalErrorSurfaces(t *testing.T) {
	err := NewCacheBuilder(nil, "key").WithStruct(make(chan int)).Set()
	assert.ErrorContains(t, err, "marshal")
}

func TestOpenSQLite_MigratesTrackerModels(t *testing.T) {
	sql, err := OpenSQLite(":memory:")
	require.NoError(t, err)

	db := NewFromGorm(sql)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.MigrateModels())
	require.NoError(t, db.CreateIndexes())
	assert.False(t, db.HasCache())

	user := models.User{Subject: "sqlite-user", DisplayName: "sqlite-user", IsActive: true}
	require.NoError(t, db.SQL.Create(&user).Error)

	record := models.MoodRecord{
		UserID: user.ID,
		Date:   datatypes.Date(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)),
		Mood:   "good",
	}
	require.NoError(t, db.SQL.Create(&record).Error)

	duplicate := models.MoodRecord{UserID: user.ID, Date: record.Date, Mood: "low"}
	assert.Error(t, db.SQL.Create(&duplicate).Error)
}
