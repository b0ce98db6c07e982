package services

import (
	"testing"
	"time"

	"healthtracker/internal/models"
	"healthtracker/internal/types"
	"healthtracker/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func day(t *testing.T, value string) datatypes.Date {
	t.Helper()
	parsed, err := time.Parse(utils.DayLayout, value)
	require.NoError(t, err)
	return datatypes.Date(parsed)
}

func symptom(t *testing.T, date, description string, severity models.Severity) *models.SymptomRecord {
	return &models.SymptomRecord{Date: day(t, date), Description: description, Severity: severity}
}

func medication(t *testing.T, date, name string) *models.MedicationRecord {
	return &models.MedicationRecord{Date: day(t, date), Medication: name, Dose: "1 tablet"}
}

func mood(t *testing.T, date, value string) *models.MoodRecord {
	return &models.MoodRecord{Date: day(t, date), Mood: value}
}

func TestAnalyze_SymptomExample(t *testing.T) {
	service := NewAnalysisService()

	summary := service.Analyze([]*models.SymptomRecord{
		symptom(t, "2024-01-01", "headache", models.SeverityMild),
		symptom(t, "2024-01-02", "headache", models.SeveritySevere),
		symptom(t, "2024-01-03", "nausea", models.SeverityMild),
	}, nil, nil, nil)

	assert.Equal(t, 3, summary.SymptomSummary.Total)
	assert.Equal(t, map[models.Severity]int{
		models.SeverityMild:     2,
		models.SeverityModerate: 0,
		models.SeveritySevere:   1,
	}, summary.SymptomSummary.BySeverity)
	assert.Equal(t, []types.SymptomCount{
		{Description: "headache", Count: 2},
		{Description: "nausea", Count: 1},
	}, summary.SymptomSummary.MostCommon)
}

func TestAnalyze_MedicationAdherenceExample(t *testing.T) {
	service := NewAnalysisService()

	summary := service.Analyze(nil, nil, []*models.MedicationRecord{
		medication(t, "2024-01-01", "ibuprofen"),
		medication(t, "2024-01-01", "vitamin d"),
		medication(t, "2024-01-02", "ibuprofen"),
	}, nil)

	assert.Equal(t, 3, summary.MedicationSummary.Total)
	assert.Equal(t, 2, summary.MedicationSummary.AdherenceDays)
}

func TestAnalyze_AdherenceIgnoresTimeOfDay(t *testing.T) {
	service := NewAnalysisService()

	morning := &models.MedicationRecord{
		Date: datatypes.Date(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)),
	}
	evening := &models.MedicationRecord{
		Date: datatypes.Date(time.Date(2024, 1, 1, 21, 30, 0, 0, time.UTC)),
	}

	summary := service.Analyze(nil, nil, []*models.MedicationRecord{morning, evening}, nil)

	assert.Equal(t, 2, summary.MedicationSummary.Total)
	assert.Equal(t, 1, summary.MedicationSummary.AdherenceDays)
}

func TestAnalyze_EmptyInput(t *testing.T) {
	service := NewAnalysisService()

	summary := service.Analyze(nil, nil, nil, nil)

	assert.Equal(t, 0, summary.SymptomSummary.Total)
	assert.Equal(t, map[models.Severity]int{"mild": 0, "moderate": 0, "severe": 0}, summary.SymptomSummary.BySeverity)
	assert.NotNil(t, summary.SymptomSummary.MostCommon)
	assert.Empty(t, summary.SymptomSummary.MostCommon)
	assert.Equal(t, 0, summary.MedicationSummary.Total)
	assert.Equal(t, 0, summary.MedicationSummary.AdherenceDays)
	assert.Equal(t, 0, summary.MoodSummary.Total)
	assert.NotNil(t, summary.MoodSummary.ByMood)
	assert.Empty(t, summary.MoodSummary.ByMood)
}

func TestAnalyze_MostCommonRanking(t *testing.T) {
	service := NewAnalysisService()

	tests := []struct {
		name     string
		symptoms []string
		expected []types.SymptomCount
	}{
		{
			name:     "limited to three",
			symptoms: []string{"a", "b", "b", "c", "c", "c", "d", "d", "d", "d"},
			expected: []types.SymptomCount{{Description: "d", Count: 4}, {Description: "c", Count: 3}, {Description: "b", Count: 2}},
		},
		{
			name:     "ties keep first occurrence order",
			symptoms: []string{"fatigue", "nausea", "headache", "nausea", "fatigue", "headache"},
			expected: []types.SymptomCount{{Description: "fatigue", Count: 2}, {Description: "nausea", Count: 2}, {Description: "headache", Count: 2}},
		},
		{
			name:     "case sensitive grouping",
			symptoms: []string{"Headache", "headache", "headache"},
			expected: []types.SymptomCount{{Description: "headache", Count: 2}, {Description: "Headache", Count: 1}},
		},
		{
			name:     "fewer than three distinct",
			symptoms: []string{"cramps"},
			expected: []types.SymptomCount{{Description: "cramps", Count: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]*models.SymptomRecord, 0, len(tt.symptoms))
			for _, description := range tt.symptoms {
				records = append(records, symptom(t, "2024-01-01", description, models.SeverityMild))
			}

			summary := service.Analyze(records, nil, nil, nil)

			assert.Equal(t, tt.expected, summary.SymptomSummary.MostCommon)
		})
	}
}

func TestAnalyze_Invariants(t *testing.T) {
	service := NewAnalysisService()

	severities := []models.Severity{models.SeverityMild, models.SeverityModerate, models.SeveritySevere}
	descriptions := []string{"headache", "nausea", "fatigue", "dizziness", "cramps"}
	dates := []string{"2024-01-01", "2024-01-02", "2024-01-03"}

	var symptoms []*models.SymptomRecord
	var medications []*models.MedicationRecord
	for i := 0; i < 40; i++ {
		symptoms = append(symptoms, symptom(
			t,
			dates[i%len(dates)],
			descriptions[(i*7)%len(descriptions)],
			severities[(i*5)%len(severities)],
		))
		medications = append(medications, medication(t, dates[(i*3)%len(dates)], "med"))
	}

	summary := service.Analyze(symptoms, nil, medications, nil)

	bySeverity := summary.SymptomSummary.BySeverity
	assert.Equal(t, summary.SymptomSummary.Total,
		bySeverity[models.SeverityMild]+bySeverity[models.SeverityModerate]+bySeverity[models.SeveritySevere])

	assert.LessOrEqual(t, summary.MedicationSummary.AdherenceDays, summary.MedicationSummary.Total)

	mostCommon := summary.SymptomSummary.MostCommon
	assert.LessOrEqual(t, len(mostCommon), MostCommonSymptomLimit)
	for i := 1; i < len(mostCommon); i++ {
		assert.GreaterOrEqual(t, mostCommon[i-1].Count, mostCommon[i].Count)
	}
}

func TestAnalyze_MoodBreakdown(t *testing.T) {
	service := NewAnalysisService()

	summary := service.AnalyzeRecords(types.TrackerRecords{
		Moods: []*models.MoodRecord{
			mood(t, "2024-01-01", "good"),
			mood(t, "2024-01-02", "low"),
			mood(t, "2024-01-03", "good"),
		},
		Meals: []*models.MealRecord{{Meal: "oatmeal"}},
	})

	assert.Equal(t, 3, summary.MoodSummary.Total)
	assert.Equal(t, map[string]int{"good": 2, "low": 1}, summary.MoodSummary.ByMood)
	assert.Equal(t, 0, summary.SymptomSummary.Total)
}
