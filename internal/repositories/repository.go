package repositories

import (
	"healthtracker/internal/database"
)

type Repository struct {
	User       UserRepository
	Symptom    SymptomRepository
	Meal       MealRepository
	Medication MedicationRepository
	Mood       MoodRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:       NewUserRepository(db.Cache.User),
		Symptom:    NewSymptomRepository(db.Cache.User),
		Meal:       NewMealRepository(db.Cache.User),
		Medication: NewMedicationRepository(db.Cache.User),
		Mood:       NewMoodRepository(db.Cache.User),
	}
}
