package trackerController

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"healthtracker/config"
	"healthtracker/internal/database"
	"healthtracker/internal/events"
	. "healthtracker/internal/models"
	"healthtracker/internal/repositories"
	"healthtracker/internal/services"
	"healthtracker/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupController(t *testing.T) (*TrackerController, *User) {
	t.Helper()

	sql, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)

	db := database.NewFromGorm(sql)
	require.NoError(t, db.MigrateModels())
	t.Cleanup(func() { _ = db.Close() })

	bus := events.New(nil, config.Config{})
	t.Cleanup(func() { _ = bus.Close() })

	repos := repositories.New(db)
	controller := New(repos, services.New(db, config.Config{}, bus, repos), bus, config.Config{}, db).(*TrackerController)
	controller.now = func() time.Time { return time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC) }

	user, err := repos.User.FindOrCreateBySubject(context.Background(), sql, &User{Subject: "controller-user"})
	require.NoError(t, err)

	return controller, user
}

func TestLogSymptom_Validation(t *testing.T) {
	controller, user := setupController(t)

	tests := []struct {
		name    string
		request LogSymptomRequest
	}{
		{name: "missing description", request: LogSymptomRequest{Severity: "mild"}},
		{name: "blank description", request: LogSymptomRequest{Description: "   ", Severity: "mild"}},
		{name: "unknown severity", request: LogSymptomRequest{Description: "headache", Severity: "extreme"}},
		{name: "bad date", request: LogSymptomRequest{Date: "yesterday", Description: "headache", Severity: "mild"}},
		{
			name: "notes too long",
			request: LogSymptomRequest{
				Description: "headache",
				Severity:    "mild",
				Notes:       string(bytes.Repeat([]byte("a"), MaxNotesLength+1)),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := controller.LogSymptom(context.Background(), user, &tt.request)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	symptoms, err := controller.ListSymptoms(context.Background(), user)
	require.NoError(t, err)
	assert.Empty(t, symptoms)
	assert.NotNil(t, symptoms)
}

func TestLogSymptom_LengthLimitsCountCharacters(t *testing.T) {
	controller, user := setupController(t)

	tests := []struct {
		name    string
		request LogSymptomRequest
		wantErr bool
	}{
		{
			name:    "multibyte description at limit",
			request: LogSymptomRequest{Description: strings.Repeat("头", MaxTextLength), Severity: "mild"},
		},
		{
			name:    "multibyte description over limit",
			request: LogSymptomRequest{Description: strings.Repeat("头", MaxTextLength+1), Severity: "mild"},
			wantErr: true,
		},
		{
			name: "multibyte notes at limit",
			request: LogSymptomRequest{
				Description: "headache",
				Severity:    "mild",
				Notes:       strings.Repeat("é", MaxNotesLength),
			},
		},
		{
			name: "multibyte notes over limit",
			request: LogSymptomRequest{
				Description: "headache",
				Severity:    "mild",
				Notes:       strings.Repeat("😣", MaxNotesLength+1),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := controller.LogSymptom(context.Background(), user, &tt.request)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLogSymptom_NormalizesInput(t *testing.T) {
	controller, user := setupController(t)

	symptom, err := controller.LogSymptom(context.Background(), user, &LogSymptomRequest{
		Date:        "2024-01-02T23:30:00-05:00",
		Description: "  headache ",
		Severity:    "severe",
		Notes:       " after lunch ",
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-01-03", utils.DayKey(symptom.Date))
	assert.Equal(t, "headache", symptom.Description)
	assert.Equal(t, SeveritySevere, symptom.Severity)
	assert.Equal(t, "after lunch", symptom.Notes)
	assert.Equal(t, user.ID, symptom.UserID)
}

func TestLogMeal_DefaultsToToday(t *testing.T) {
	controller, user := setupController(t)

	meal, err := controller.LogMeal(context.Background(), user, &LogMealRequest{Meal: "soup"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", utils.DayKey(meal.Date))
}

func TestLogMedication_RequiresDose(t *testing.T) {
	controller, user := setupController(t)

	_, err := controller.LogMedication(context.Background(), user, &LogMedicationRequest{Medication: "ibuprofen"})
	assert.ErrorIs(t, err, ErrValidation)

	record, err := controller.LogMedication(context.Background(), user, &LogMedicationRequest{
		Medication: "ibuprofen",
		Dose:       "200mg",
	})
	require.NoError(t, err)
	assert.Equal(t, "200mg", record.Dose)
}

func TestLogMood_ReplacesSameDay(t *testing.T) {
	controller, user := setupController(t)
	ctx := context.Background()

	first, err := controller.LogMood(ctx, user, &LogMoodRequest{Date: "2024-01-01", Mood: "happy"})
	require.NoError(t, err)

	again, err := controller.LogMood(ctx, user, &LogMoodRequest{Date: "2024-01-01", Mood: "happy"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	replaced, err := controller.LogMood(ctx, user, &LogMoodRequest{Date: "2024-01-01T18:00:00Z", Mood: "tired"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, replaced.ID)

	moods, err := controller.ListMoods(ctx, user)
	require.NoError(t, err)
	require.Len(t, moods, 1)
	assert.Equal(t, "tired", moods[0].Mood)

	_, err = controller.LogMood(ctx, user, &LogMoodRequest{Date: "2024-01-01"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetAnalysis_WorkedExamples(t *testing.T) {
	controller, user := setupController(t)
	ctx := context.Background()

	for _, request := range []LogSymptomRequest{
		{Date: "2024-01-01", Description: "headache", Severity: "mild"},
		{Date: "2024-01-02", Description: "headache", Severity: "severe"},
		{Date: "2024-01-03", Description: "nausea", Severity: "mild"},
	} {
		_, err := controller.LogSymptom(ctx, user, &request)
		require.NoError(t, err)
	}

	for _, request := range []LogMedicationRequest{
		{Date: "2024-01-01", Medication: "ibuprofen", Dose: "200mg"},
		{Date: "2024-01-01", Medication: "vitamin d", Dose: "1000iu"},
		{Date: "2024-01-02", Medication: "ibuprofen", Dose: "200mg"},
	} {
		_, err := controller.LogMedication(ctx, user, &request)
		require.NoError(t, err)
	}

	summary, err := controller.GetAnalysis(ctx, user)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.SymptomSummary.Total)
	assert.Equal(t, 2, summary.SymptomSummary.BySeverity[SeverityMild])
	assert.Equal(t, 0, summary.SymptomSummary.BySeverity[SeverityModerate])
	assert.Equal(t, 1, summary.SymptomSummary.BySeverity[SeveritySevere])
	require.Len(t, summary.SymptomSummary.MostCommon, 2)
	assert.Equal(t, "headache", summary.SymptomSummary.MostCommon[0].Description)
	assert.Equal(t, 3, summary.MedicationSummary.Total)
	assert.Equal(t, 2, summary.MedicationSummary.AdherenceDays)
	assert.Equal(t, 0, summary.MoodSummary.Total)
}

func TestGetAnalysis_ScopedToUser(t *testing.T) {
	controller, user := setupController(t)
	ctx := context.Background()

	other := &User{BaseUUIDModel: BaseUUIDModel{ID: uuid.New()}, Subject: "other"}
	require.NoError(t, controller.db.SQL.Create(other).Error)

	_, err := controller.LogSymptom(ctx, other, &LogSymptomRequest{Description: "cramps", Severity: "mild"})
	require.NoError(t, err)

	summary, err := controller.GetAnalysis(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.SymptomSummary.Total)
}

func TestBuildReport_EmptyUser(t *testing.T) {
	controller, user := setupController(t)

	report, err := controller.BuildReport(context.Background(), user)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

type failingMealRepository struct {
	repositories.MealRepository
}

func (failingMealRepository) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*MealRecord, error) {
	return nil, errors.New("connection refused")
}

func TestFetchFailureIsStoreUnavailable(t *testing.T) {
	controller, user := setupController(t)
	controller.mealRepo = failingMealRepository{}

	_, err := controller.GetAnalysis(context.Background(), user)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = controller.BuildReport(context.Background(), user)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.False(t, errors.Is(err, ErrGeneration))
}

func TestErrGeneration_MatchesReportSentinel(t *testing.T) {
	err := fmt.Errorf("%w: failed to assemble report", ErrGeneration)

	assert.ErrorIs(t, err, services.ErrReportGeneration)
	assert.ErrorIs(t, fmt.Errorf("%w: page overflow", services.ErrReportGeneration), ErrGeneration)
}
