package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MoodRecord holds at most one row per user and calendar day. The unique
// index backs the ON CONFLICT target used by the mood upsert.
type MoodRecord struct {
	BaseUUIDModel
	UserID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_mood_records_user_date,priority:1" json:"userId"`
	User   *User          `gorm:"foreignKey:UserID"                                                    json:"-"`
	Date   datatypes.Date `gorm:"not null;uniqueIndex:idx_mood_records_user_date,priority:2"           json:"date"`
	Mood   string         `gorm:"type:text;not null"                                                   json:"mood"`
}
