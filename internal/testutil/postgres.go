package testutil

import (
	"os"
	"testing"

	"anoa.com/schoolmanagement/internal/bootstrap"
	"anoa.com/schoolmanagement/pkg/database"
	"gorm.io/gorm"
)

// OpenTestDB connects to TEST_DATABASE_URL, migrates, and empties every
// table. The test is skipped when the variable is unset. Packages using it
// share one database, so run them with -p 1.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.Connect(dsn, false)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := bootstrap.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Exec("TRUNCATE admins, students, library_cards, timetable_entries, fee_structures").Error; err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return db
}
