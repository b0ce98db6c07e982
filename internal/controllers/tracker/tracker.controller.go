package trackerController

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"healthtracker/config"
	"healthtracker/internal/database"
	"healthtracker/internal/events"
	"healthtracker/internal/metrics"
	. "healthtracker/internal/models"
	"healthtracker/internal/repositories"
	"healthtracker/internal/services"
	"healthtracker/internal/types"
	"healthtracker/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MaxNotesLength = 1000
	MaxTextLength  = 200
)

var (
	ErrValidation       = errors.New("validation error")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrGeneration       = services.ErrReportGeneration
)

type LogSymptomRequest struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Notes       string `json:"notes,omitempty"`
}

type LogMealRequest struct {
	Date  string `json:"date"`
	Meal  string `json:"meal"`
	Notes string `json:"notes,omitempty"`
}

type LogMedicationRequest struct {
	Date       string `json:"date"`
	Medication string `json:"medication"`
	Dose       string `json:"dose"`
	Notes      string `json:"notes,omitempty"`
}

type LogMoodRequest struct {
	Date string `json:"date"`
	Mood string `json:"mood"`
}

type TrackerControllerInterface interface {
	LogSymptom(ctx context.Context, user *User, request *LogSymptomRequest) (*SymptomRecord, error)
	ListSymptoms(ctx context.Context, user *User) ([]*SymptomRecord, error)
	LogMeal(ctx context.Context, user *User, request *LogMealRequest) (*MealRecord, error)
	ListMeals(ctx context.Context, user *User) ([]*MealRecord, error)
	LogMedication(
		ctx context.Context,
		user *User,
		request *LogMedicationRequest,
	) (*MedicationRecord, error)
	ListMedications(ctx context.Context, user *User) ([]*MedicationRecord, error)
	LogMood(ctx context.Context, user *User, request *LogMoodRequest) (*MoodRecord, error)
	ListMoods(ctx context.Context, user *User) ([]*MoodRecord, error)
	GetAnalysis(ctx context.Context, user *User) (types.AnalysisSummary, error)
	BuildReport(ctx context.Context, user *User) (*services.Report, error)
}

type TrackerController struct {
	symptomRepo        repositories.SymptomRepository
	mealRepo           repositories.MealRepository
	medicationRepo     repositories.MedicationRepository
	moodRepo           repositories.MoodRepository
	analysisService    *services.AnalysisService
	reportService      *services.ReportService
	transactionService *services.TransactionService
	eventBus           *events.EventBus
	db                 database.DB
	Config             config.Config
	log                logger.Logger
	now                func() time.Time
}

func New(
	repos repositories.Repository,
	services services.Service,
	eventBus *events.EventBus,
	config config.Config,
	db database.DB,
) TrackerControllerInterface {
	return &TrackerController{
		symptomRepo:        repos.Symptom,
		mealRepo:           repos.Meal,
		medicationRepo:     repos.Medication,
		moodRepo:           repos.Mood,
		analysisService:    services.Analysis,
		reportService:      services.Report,
		transactionService: services.Transaction,
		eventBus:           eventBus,
		db:                 db,
		Config:             config,
		log:                logger.New("trackerController"),
		now:                time.Now,
	}
}

func (c *TrackerController) LogSymptom(
	ctx context.Context,
	user *User,
	request *LogSymptomRequest,
) (*SymptomRecord, error) {
	log := c.log.TraceFromContext(ctx).Function("LogSymptom")

	date, err := c.parseDate(log, request.Date)
	if err != nil {
		return nil, err
	}

	description, err := requiredText(log, "description", request.Description)
	if err != nil {
		return nil, err
	}

	severity := Severity(utils.NormalizeInput(request.Severity))
	if !severity.IsValid() {
		return nil, log.ErrorWithType(
			ErrValidation,
			"severity must be one of mild, moderate, severe",
			"severity", request.Severity,
		)
	}

	notes, err := optionalNotes(log, request.Notes)
	if err != nil {
		return nil, err
	}

	symptom := &SymptomRecord{
		UserID:      user.ID,
		Date:        date,
		Description: description,
		Severity:    severity,
		Notes:       notes,
	}

	if err := c.symptomRepo.Create(ctx, c.db.SQL, symptom); err != nil {
		return nil, log.ErrorWithType(ErrStoreUnavailable, "failed to create symptom record", "error", err)
	}

	c.recordLogged(ctx, user.ID, events.KIND_SYMPTOM, symptom.ID)

	return symptom, nil
}

func (c *TrackerController) ListSymptoms(ctx context.Context, user *User) ([]*SymptomRecord, error) {
	log := c.log.TraceFromContext(ctx).Function("ListSymptoms")

	symptoms, err := c.symptomRepo.ListByUser(ctx, c.db.SQL, user.ID)
	if err != nil {
		return nil, log.ErrorWithType(ErrStoreUnavailable, "failed to list symptom records", "error", err)
	}

	return nonNil(symptoms), nil
}

func (c *TrackerController) LogMeal(
	ctx context.Context,
	user *User,
	request *LogMealRequest,
) (*MealRecord, error) {
	log := c.log.TraceFromContext(ctx).Function("LogMeal")

	date, err := c.parseDate(log, request.Date)
	if err != nil {
		return nil, err
	}

	meal, err := requiredText(log, "meal", request.Meal)
	if err != nil {
		return nil, err
	}

	notes, err := optionalNotes(log, request.Notes)
	if err != nil {
		return nil, err
	}

	record := &MealRecord{
		UserID: user.ID,
		Date:   date,
		Meal:   meal,
		Notes:  notes,
	}

	if err := c.mealRepo.Create(ctx, c.db.SQL, record); err != nil {
		return nil, log.ErrorWithType(ErrStoreUnavailable, "failed to create meal record", "error", err)
	}

	c.recordLogged(ctx, user.ID, events.KIND_MEAL, record.ID)

	return record, nil
}

func (c *TrackerController) ListMeals(ctx context.Context, user *User) ([]*MealRecord, error) {
	log := c.log.TraceFromContext(ctx).Function("ListMeals")

	meals, err := c.mealRepo.ListByUser(ctx, c.db.SQL, user.ID)
	if err != nil {
		return nil, log.ErrorWithType(ErrStoreUnavailable, "failed to list meal records", "error", err)
	}

	return nonNil(meals), nil
}

func (c *TrackerController) LogMedication(
	ctx context.Context,
	user *User,
	request *LogMedicationRequest,
) (*MedicationRecord, error) {
	log := c.log.TraceFromContext(ctx).Function("LogMedication")

	date, err := c.parseDate(log, request.Date)
	if err != nil {
		return nil, err
	}

	medication, err := requiredText(log, "medication", request.Medication)
	if err != nil {
		return nil, err
	}

	dose, err := requiredText(log, "dose", request.Dose)
	if err != nil {
		return nil, err
	}

	notes, err := optionalNotes(log, request.Notes)
	if err != nil {
		return nil, err
	}

	record := &MedicationRecord{
		UserID:     user.ID,
		Date:       date,
		Medication: medication,
		Dose:       dose,
		Notes:      notes,
	}

	if err := c.medicationRepo.Create(ctx, c.db.SQL, record); err != nil {
		return nil, log.ErrorWithType(ErrStoreUnavailable, "failed to create medication record", "error", err)
	}

	c.recordLogged(ctx, user.ID, events.KIND_MEDICATION, record.ID)

	return record, nil
}

func (c *TrackerController) ListMedications(ctx context.Context, user *User) ([]*MedicationRecord, error) {
	log := c.log.TraceFromContext(ctx).Function("ListMedications")

	medications, err := c.medicationRepo.ListByUser(ctx, c.db.SQL, user.ID)
	if err != nil {
		return nil, log.ErrorWithType(ErrStoreUnavailable, "failed to list medication records", "error", err)
	}

	return nonNil(medications), nil
}

// LogMood records the user's mood for a day, replacing any mood already
// stored for that day.
func (c *TrackerController) LogMood(
	ctx context.Context,
	user *User,
	request *LogMoodRequest,
) (*MoodRecord, error) {
	log := c.log.TraceFromContext(ctx).Function("LogMood")

	date, err := c.parseDate(log, request.Date)
	if err != nil {
		return nil, err
	}

	mood, err := requiredText(log, "mood", request.Mood)
	if err != nil {
		return nil, err
	}

	var stored *MoodRecord
	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var upsertErr error
		stored, upsertErr = c.moodRepo.Upsert(ctx, tx, &MoodRecord{
			UserID: user.ID,
			Date:   date,
			Mood:   mood,
		})
		return upsertErr
	})
	if err != nil {
		return nil, log.ErrorWithType(ErrStoreUnavailable, "failed to upsert mood record", "error", err)
	}

	c.recordLogged(ctx, user.ID, events.KIND_MOOD, stored.ID)

	return stored, nil
}

func (c *TrackerController) ListMoods(ctx context.Context, user *User) ([]*MoodRecord, error) {
	log := c.log.TraceFromContext(ctx).Function("ListMoods")

	moods, err := c.moodRepo.ListByUser(ctx, c.db.SQL, user.ID)
	if err != nil {
		return nil, log.ErrorWithType(ErrStoreUnavailable, "failed to list mood records", "error", err)
	}

	return nonNil(moods), nil
}

func (c *TrackerController) GetAnalysis(ctx context.Context, user *User) (types.AnalysisSummary, error) {
	records, err := c.fetchRecords(ctx, user)
	if err != nil {
		return types.AnalysisSummary{}, err
	}

	return c.analysisService.AnalyzeRecords(records), nil
}

// BuildReport assembles the complete PDF for the user. The returned report
// has not been written anywhere yet.
func (c *TrackerController) BuildReport(ctx context.Context, user *User) (*services.Report, error) {
	log := c.log.TraceFromContext(ctx).Function("BuildReport")
	started := time.Now()

	records, err := c.fetchRecords(ctx, user)
	if err != nil {
		metrics.ReportFailed("fetch")
		return nil, err
	}

	summary := c.analysisService.AnalyzeRecords(records)

	report, err := c.reportService.Generate(records, summary)
	if err != nil {
		metrics.ReportFailed("assemble")
		return nil, log.ErrorWithType(ErrGeneration, "failed to assemble report", "error", err, "userID", user.ID)
	}

	metrics.ObserveReportGeneration(started)
	log.Info("Report built", "userID", user.ID, "pages", report.Pages)

	return report, nil
}

// fetchRecords loads all four record kinds of the user concurrently; the
// first failure cancels the remaining reads.
func (c *TrackerController) fetchRecords(ctx context.Context, user *User) (types.TrackerRecords, error) {
	log := c.log.TraceFromContext(ctx).Function("fetchRecords")

	var records types.TrackerRecords
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		records.Symptoms, err = c.symptomRepo.ListByUser(groupCtx, c.db.SQL, user.ID)
		return err
	})
	group.Go(func() error {
		var err error
		records.Meals, err = c.mealRepo.ListByUser(groupCtx, c.db.SQL, user.ID)
		return err
	})
	group.Go(func() error {
		var err error
		records.Medications, err = c.medicationRepo.ListByUser(groupCtx, c.db.SQL, user.ID)
		return err
	})
	group.Go(func() error {
		var err error
		records.Moods, err = c.moodRepo.ListByUser(groupCtx, c.db.SQL, user.ID)
		return err
	})

	if err := group.Wait(); err != nil {
		return types.TrackerRecords{}, log.ErrorWithType(
			ErrStoreUnavailable,
			"failed to fetch tracker records",
			"error", err,
			"userID", user.ID,
		)
	}

	return records, nil
}

func (c *TrackerController) recordLogged(ctx context.Context, userID uuid.UUID, kind events.RecordKind, recordID uuid.UUID) {
	metrics.RecordLogged(string(kind))

	if c.eventBus == nil {
		return
	}

	if err := c.eventBus.PublishRecordLogged(userID, kind, recordID); err != nil {
		c.log.TraceFromContext(ctx).Function("recordLogged").
			Warn("failed to publish record logged event", "kind", kind, "userID", userID, "error", err)
	}
}

func (c *TrackerController) parseDate(log logger.Logger, input string) (datatypes.Date, error) {
	parsed, err := utils.ParseRecordDate(input, c.now())
	if err != nil {
		return datatypes.Date{}, log.ErrorWithType(ErrValidation, utils.ErrInvalidDate.Error(), "date", input)
	}
	return utils.ToDate(parsed), nil
}

func requiredText(log logger.Logger, field, value string) (string, error) {
	value = utils.NormalizeInput(value)
	if value == "" {
		return "", log.ErrorWithType(ErrValidation, field+" is required")
	}
	if length := utf8.RuneCountInString(value); length > MaxTextLength {
		return "", log.ErrorWithType(ErrValidation, field+" exceeds maximum length", "length", length, "max", MaxTextLength)
	}
	return value, nil
}

func optionalNotes(log logger.Logger, value string) (string, error) {
	value = utils.NormalizeInput(value)
	if length := utf8.RuneCountInString(value); length > MaxNotesLength {
		return "", log.ErrorWithType(
			ErrValidation,
			"notes exceed maximum length",
			"length", length,
			"max", MaxNotesLength,
		)
	}
	return value, nil
}

func nonNil[T any](records []*T) []*T {
	if records == nil {
		return []*T{}
	}
	return records
}
