package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Severities lists the accepted severity values in reporting order.
var Severities = []Severity{SeverityMild, SeverityModerate, SeveritySevere}

func (s Severity) IsValid() bool {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere:
		return true
	}
	return false
}

type SymptomRecord struct {
	BaseUUIDModel
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_symptom_records_user_date,priority:1" json:"userId"`
	User        *User          `gorm:"foreignKey:UserID"                                                 json:"-"`
	Date        datatypes.Date `gorm:"not null;index:idx_symptom_records_user_date,priority:2"           json:"date"`
	Description string         `gorm:"type:text;not null"                                                json:"description"`
	Severity    Severity       `gorm:"type:text;not null"                                                json:"severity"`
	Notes       string         `gorm:"type:text"                                                         json:"notes,omitempty"`
}
