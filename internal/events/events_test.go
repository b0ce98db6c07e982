package events

import (
	"testing"
	"time"

	"healthtracker/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_LocalDeliveryWithoutClient(t *testing.T) {
	bus := New(nil, config.Config{})
	t.Cleanup(func() { _ = bus.Close() })

	received := make(chan Event, 1)
	require.NoError(t, bus.Subscribe(TRACKER_CHANNEL, func(event Event) error {
		received <- event
		return nil
	}))

	userID := uuid.New()
	recordID := uuid.New()
	require.NoError(t, bus.PublishRecordLogged(userID, KIND_MOOD, recordID))

	select {
	case event := <-received:
		assert.Equal(t, RECORD_LOGGED, event.Type)
		assert.Equal(t, TRACKER_CHANNEL, event.Channel)
		assert.Equal(t, KIND_MOOD, event.Kind())
		require.NotNil(t, event.UserID)
		assert.Equal(t, userID, *event.UserID)
		assert.Equal(t, recordID.String(), event.Data["recordId"])
		assert.NotEmpty(t, event.ID)
		assert.False(t, event.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestEvent_KindMissing(t *testing.T) {
	assert.Equal(t, RecordKind(""), Event{}.Kind())
}
