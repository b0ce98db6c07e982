package main

import (
	"strings"
	"testing"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadConstraintMigration(t *testing.T) *migrate.Migration {
	t.Helper()

	source := migrate.FileMigrationSource{Dir: "migrations"}
	migrations, err := source.FindMigrations()
	require.NoError(t, err)

	for _, migration := range migrations {
		if migration.Id == "0001_tracker_constraints.sql" {
			return migration
		}
	}

	t.Fatal("tracker constraint migration not found")
	return nil
}

func findStatement(statements []string, fragment string) string {
	for _, statement := range statements {
		if strings.Contains(statement, fragment) {
			return statement
		}
	}
	return ""
}

func TestTrackerConstraints_RequiredColumns(t *testing.T) {
	migration := loadConstraintMigration(t)

	tests := []struct {
		name       string
		table      string
		constraint string
		check      string
	}{
		{
			name:       "symptom severity is enumerated",
			table:      "symptom_records",
			constraint: "chk_symptom_records_severity",
			check:      "severity IN ('mild', 'moderate', 'severe')",
		},
		{
			name:       "symptom description is required",
			table:      "symptom_records",
			constraint: "chk_symptom_records_description",
			check:      "length(trim(description)) > 0",
		},
		{
			name:       "meal is required",
			table:      "meal_records",
			constraint: "chk_meal_records_meal",
			check:      "length(trim(meal)) > 0",
		},
		{
			name:       "medication name is required",
			table:      "medication_records",
			constraint: "chk_medication_records_medication",
			check:      "length(trim(medication)) > 0",
		},
		{
			name:       "medication dose is required",
			table:      "medication_records",
			constraint: "chk_medication_records_dose",
			check:      "length(trim(dose)) > 0",
		},
		{
			name:       "mood is required",
			table:      "mood_records",
			constraint: "chk_mood_records_mood",
			check:      "length(trim(mood)) > 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := findStatement(migration.Up, tt.constraint)
			require.NotEmpty(t, up, "missing up statement for %s", tt.constraint)
			assert.Contains(t, up, "ALTER TABLE "+tt.table)
			assert.Contains(t, up, "CHECK ("+tt.check+")")

			down := findStatement(migration.Down, tt.constraint)
			require.NotEmpty(t, down, "missing down statement for %s", tt.constraint)
			assert.Contains(t, down, "ALTER TABLE "+tt.table)
			assert.Contains(t, down, "DROP CONSTRAINT IF EXISTS "+tt.constraint)
		})
	}

	assert.Len(t, migration.Up, len(tests))
	assert.Len(t, migration.Down, len(tests))
}

func TestMaxSteps(t *testing.T) {
	tests := []struct {
		name      string
		direction migrate.MigrationDirection
		expected  int
	}{
		{name: "up applies everything pending", direction: migrate.Up, expected: 0},
		{name: "down rolls back one file", direction: migrate.Down, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, maxSteps(tt.direction))
		})
	}
}
