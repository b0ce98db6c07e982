package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MealRecord struct {
	BaseUUIDModel
	UserID uuid.UUID      `gorm:"type:uuid;not null;index:idx_meal_records_user_date,priority:1" json:"userId"`
	User   *User          `gorm:"foreignKey:UserID"                                              json:"-"`
	Date   datatypes.Date `gorm:"not null;index:idx_meal_records_user_date,priority:2"           json:"date"`
	Meal   string         `gorm:"type:text;not null"                                             json:"meal"`
	Notes  string         `gorm:"type:text"                                                      json:"notes,omitempty"`
}
