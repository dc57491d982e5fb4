package repositories

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB opens an in-memory sqlite database with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&DBAccount{}, &DBCredential{}, &DBSession{}, &DBAvailabilityRecord{}, &DBLeavePeriod{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		db.Exec("DELETE FROM sessions")
		db.Exec("DELETE FROM leave_periods")
		db.Exec("DELETE FROM availability_records")
		db.Exec("DELETE FROM credentials")
		db.Exec("DELETE FROM accounts")
	})
	return db
}
