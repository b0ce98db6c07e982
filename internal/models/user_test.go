package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUser_UpdateFromClaims(t *testing.T) {
	t.Run("Updates all fields correctly", func(t *testing.T) {
		user := &User{Subject: "sub-123"}

		user.UpdateFromClaims("test@example.com", "Test User")

		assert.NotNil(t, user.Email)
		assert.Equal(t, "test@example.com", *user.Email)
		assert.Equal(t, "Test User", user.DisplayName)
		assert.NotNil(t, user.LastSeenAt)
	})

	t.Run("Empty claims keep existing values", func(t *testing.T) {
		email := "kept@example.com"
		user := &User{Subject: "sub-123", DisplayName: "Kept", Email: &email}

		user.UpdateFromClaims("  ", "")

		assert.Equal(t, "kept@example.com", *user.Email)
		assert.Equal(t, "Kept", user.DisplayName)
	})

	t.Run("Display name falls back to subject", func(t *testing.T) {
		user := &User{Subject: "sub-123"}

		user.UpdateFromClaims("", "")

		assert.Equal(t, "sub-123", user.DisplayName)
		assert.Nil(t, user.Email)
	})
}

func TestUser_ToProfile(t *testing.T) {
	id := uuid.New()
	email := "test@example.com"
	user := &User{
		BaseUUIDModel: BaseUUIDModel{ID: id},
		DisplayName:   "Test User",
		Email:         &email,
		Subject:       "secret-subject",
		IsActive:      true,
	}

	profile := user.ToProfile()

	assert.Equal(t, id.String(), profile.ID)
	assert.Equal(t, "Test User", profile.DisplayName)
	assert.Equal(t, &email, profile.Email)
	assert.True(t, profile.IsActive)
}

func TestBaseUUIDModel_BeforeCreate(t *testing.T) {
	t.Run("assigns id when empty", func(t *testing.T) {
		model := &BaseUUIDModel{}
		assert.NoError(t, model.BeforeCreate(nil))
		assert.NotEqual(t, uuid.Nil, model.ID)
		assert.Equal(t, uuid.Version(7), model.ID.Version())
	})

	t.Run("keeps preset id", func(t *testing.T) {
		id := uuid.New()
		model := &BaseUUIDModel{ID: id}
		assert.NoError(t, model.BeforeCreate(nil))
		assert.Equal(t, id, model.ID)
	})
}
