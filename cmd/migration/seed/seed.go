package seed

import (
	"context"
	"time"

	"healthtracker/config"
	"healthtracker/internal/database"
	. "healthtracker/internal/models"
	"healthtracker/internal/repositories"
	"healthtracker/internal/services"
	"healthtracker/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

const defaultSeedSubject = "dev-user"

func stringPtr(s string) *string {
	return &s
}

// Seed fills a week of sample tracker data for the development user.
func Seed(db database.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	subject := config.DevUserSubject
	if subject == "" {
		subject = defaultSeedSubject
	}

	repos := repositories.New(db)
	transactionService := services.NewTransactionService(db)
	today := utils.StartOfDay(time.Now())
	day := func(offset int) time.Time { return today.AddDate(0, 0, -offset) }

	return transactionService.Execute(context.Background(), func(ctx context.Context, tx *gorm.DB) error {
		user, err := repos.User.FindOrCreateBySubject(ctx, tx, &User{
			Subject:     subject,
			DisplayName: "Development User",
			Email:       stringPtr("dev@example.com"),
		})
		if err != nil {
			return log.Err("failed to create user", err, "subject", subject)
		}

		symptoms := []SymptomRecord{
			{Date: utils.ToDate(day(6)), Description: "headache", Severity: SeverityMild},
			{Date: utils.ToDate(day(5)), Description: "headache", Severity: SeverityModerate, Notes: "after screen time"},
			{Date: utils.ToDate(day(3)), Description: "bloating", Severity: SeverityMild},
			{Date: utils.ToDate(day(1)), Description: "fatigue", Severity: SeveritySevere, Notes: "poor sleep"},
		}
		for _, symptom := range symptoms {
			symptom.UserID = user.ID
			if err := repos.Symptom.Create(ctx, tx, &symptom); err != nil {
				return log.Err("failed to seed symptom", err, "symptom", symptom.Description)
			}
		}

		meals := []MealRecord{
			{Date: utils.ToDate(day(6)), Meal: "oatmeal with berries"},
			{Date: utils.ToDate(day(5)), Meal: "chicken salad", Notes: "light dressing"},
			{Date: utils.ToDate(day(3)), Meal: "pasta"},
			{Date: utils.ToDate(day(1)), Meal: "vegetable soup"},
		}
		for _, meal := range meals {
			meal.UserID = user.ID
			if err := repos.Meal.Create(ctx, tx, &meal); err != nil {
				return log.Err("failed to seed meal", err, "meal", meal.Meal)
			}
		}

		medications := []MedicationRecord{
			{Date: utils.ToDate(day(6)), Medication: "ibuprofen", Dose: "200mg"},
			{Date: utils.ToDate(day(5)), Medication: "ibuprofen", Dose: "200mg"},
			{Date: utils.ToDate(day(5)), Medication: "vitamin d", Dose: "1000iu"},
		}
		for _, medication := range medications {
			medication.UserID = user.ID
			if err := repos.Medication.Create(ctx, tx, &medication); err != nil {
				return log.Err("failed to seed medication", err, "medication", medication.Medication)
			}
		}

		for offset, mood := range []string{"tired", "okay", "happy", "okay", "calm"} {
			if _, err := repos.Mood.Upsert(ctx, tx, &MoodRecord{
				UserID: user.ID,
				Date:   utils.ToDate(day(offset)),
				Mood:   mood,
			}); err != nil {
				return log.Err("failed to seed mood", err, "mood", mood)
			}
		}

		log.Info("Seeded development data", "userID", user.ID, "subject", subject)
		return nil
	})
}
