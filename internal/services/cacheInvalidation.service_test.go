package services

import (
	"context"
	"testing"

	"healthtracker/config"
	"healthtracker/internal/events"
	"healthtracker/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type symptomCacheRecorder struct {
	repositories.SymptomRepository
	cleared []uuid.UUID
}

func (r *symptomCacheRecorder) ClearUserCache(ctx context.Context, userID uuid.UUID) error {
	r.cleared = append(r.cleared, userID)
	return nil
}

type moodCacheRecorder struct {
	repositories.MoodRepository
	cleared []uuid.UUID
}

func (r *moodCacheRecorder) ClearUserCache(ctx context.Context, userID uuid.UUID) error {
	r.cleared = append(r.cleared, userID)
	return nil
}

func TestCacheInvalidationService_HandleEvent(t *testing.T) {
	symptoms := &symptomCacheRecorder{}
	moods := &moodCacheRecorder{}
	service := NewCacheInvalidationService(
		events.New(nil, config.Config{}),
		repositories.Repository{Symptom: symptoms, Mood: moods},
	)

	userID := uuid.New()

	require.NoError(t, service.HandleEvent(events.Event{
		Type:   events.RECORD_LOGGED,
		UserID: &userID,
		Data:   map[string]any{"kind": string(events.KIND_MOOD)},
	}))
	assert.Equal(t, []uuid.UUID{userID}, moods.cleared)
	assert.Empty(t, symptoms.cleared)

	require.NoError(t, service.HandleEvent(events.Event{
		Type:   events.RECORD_LOGGED,
		UserID: &userID,
		Data:   map[string]any{"kind": "unknown"},
	}))
	require.NoError(t, service.HandleEvent(events.Event{Type: events.RECORD_LOGGED}))

	assert.Len(t, moods.cleared, 1)
	assert.Empty(t, symptoms.cleared)
}
