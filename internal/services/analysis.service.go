package services

import (
	"sort"

	"healthtracker/internal/models"
	"healthtracker/internal/types"
	"healthtracker/internal/utils"
)

// MostCommonSymptomLimit caps the ranked symptom list in the summary.
const MostCommonSymptomLimit = 3

// AnalysisService aggregates a user's tracker records into an
// AnalysisSummary. It performs no I/O and knows nothing about ownership:
// callers pass records that already belong to a single user.
type AnalysisService struct{}

func NewAnalysisService() *AnalysisService {
	return &AnalysisService{}
}

// Analyze builds the summary for one user's records. Meals are accepted so
// the call mirrors the report input, but they are not aggregated.
func (s *AnalysisService) Analyze(
	symptoms []*models.SymptomRecord,
	meals []*models.MealRecord,
	medications []*models.MedicationRecord,
	moods []*models.MoodRecord,
) types.AnalysisSummary {
	return types.AnalysisSummary{
		SymptomSummary:    summarizeSymptoms(symptoms),
		MedicationSummary: summarizeMedications(medications),
		MoodSummary:       summarizeMoods(moods),
	}
}

func (s *AnalysisService) AnalyzeRecords(records types.TrackerRecords) types.AnalysisSummary {
	return s.Analyze(records.Symptoms, records.Meals, records.Medications, records.Moods)
}

func summarizeSymptoms(symptoms []*models.SymptomRecord) types.SymptomSummary {
	bySeverity := make(map[models.Severity]int, len(models.Severities))
	for _, severity := range models.Severities {
		bySeverity[severity] = 0
	}

	// Descriptions in first-seen order; the stable sort below keeps that
	// order between equal counts.
	ranked := make([]types.SymptomCount, 0)
	positions := make(map[string]int)

	for _, symptom := range symptoms {
		bySeverity[symptom.Severity]++

		if idx, ok := positions[symptom.Description]; ok {
			ranked[idx].Count++
			continue
		}
		positions[symptom.Description] = len(ranked)
		ranked = append(ranked, types.SymptomCount{Description: symptom.Description, Count: 1})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > MostCommonSymptomLimit {
		ranked = ranked[:MostCommonSymptomLimit]
	}

	return types.SymptomSummary{
		Total:      len(symptoms),
		BySeverity: bySeverity,
		MostCommon: ranked,
	}
}

func summarizeMedications(medications []*models.MedicationRecord) types.MedicationSummary {
	days := make(map[string]struct{})
	for _, medication := range medications {
		days[utils.DayKey(medication.Date)] = struct{}{}
	}

	return types.MedicationSummary{
		Total:         len(medications),
		AdherenceDays: len(days),
	}
}

func summarizeMoods(moods []*models.MoodRecord) types.MoodSummary {
	byMood := make(map[string]int)
	for _, mood := range moods {
		byMood[mood.Mood]++
	}

	return types.MoodSummary{
		Total:  len(moods),
		ByMood: byMood,
	}
}
