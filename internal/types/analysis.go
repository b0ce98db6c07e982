package types

import "healthtracker/internal/models"

// AnalysisSummary is derived from a user's tracker records on every request
// and never stored.
type AnalysisSummary struct {
	SymptomSummary    SymptomSummary    `json:"symptomSummary"`
	MedicationSummary MedicationSummary `json:"medicationSummary"`
	MoodSummary       MoodSummary       `json:"moodSummary"`
}

type SymptomSummary struct {
	Total      int                     `json:"total"`
	BySeverity map[models.Severity]int `json:"bySeverity"`
	MostCommon []SymptomCount          `json:"mostCommon"`
}

type SymptomCount struct {
	Description string `json:"description"`
	Count       int    `json:"count"`
}

type MedicationSummary struct {
	Total         int `json:"total"`
	AdherenceDays int `json:"adherenceDays"`
}

type MoodSummary struct {
	Total  int            `json:"total"`
	ByMood map[string]int `json:"byMood"`
}

// TrackerRecords is the full record set of one user, in store order.
type TrackerRecords struct {
	Symptoms    []*models.SymptomRecord
	Meals       []*models.MealRecord
	Medications []*models.MedicationRecord
	Moods       []*models.MoodRecord
}
