package testhelpers

import (
	"fmt"
	"strings"
	"testing"

	"interviewprep/api/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	openSQLite = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	}
	migrateSchema = func(db *gorm.DB) error { return models.AutoMigrate(db) }
)

// SetupTestDB creates an isolated in-memory SQLite database for tests.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := openSQLite(dsn)
	if err != nil {
		panic(fmt.Sprintf("failed to open test database: %v", err))
	}
	// a single connection keeps the shared in-memory database free of table locks
	sqlDB, err := db.DB()
	if err != nil {
		panic(fmt.Sprintf("failed to access test database handle: %v", err))
	}
	sqlDB.SetMaxOpenConns(1)

	if err := migrateSchema(db); err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// SeedUser inserts an account for the given identity provider subject.
func SeedUser(t *testing.T, db *gorm.DB, externalID string) *models.User {
	t.Helper()
	user := &models.User{ExternalID: externalID, Email: externalID + "@example.com"}
	if err := db.Create(user).Error; err != nil {
		panic(fmt.Sprintf("failed to seed user: %v", err))
	}
	return user
}

// SeedInterview inserts an interview owned by ownerID, or a template when ownerID is empty.
func SeedInterview(t *testing.T, db *gorm.DB, ownerID string) *models.Interview {
	t.Helper()
	interview := &models.Interview{
		Title:      "Backend Engineer",
		Category:   models.CategoryTechnical,
		Difficulty: models.DifficultyIntermediate,
		Duration:   models.DefaultDuration,
		Topics:     []string{"go", "sql"},
		Role:       "backend",
		Level:      "mid",
	}
	if ownerID == "" {
		interview.IsTemplate = true
	} else {
		interview.UserID = &ownerID
	}
	if err := db.Create(interview).Error; err != nil {
		panic(fmt.Sprintf("failed to seed interview: %v", err))
	}
	return interview
}

// DropTable removes a model's table to force repository errors.
func DropTable(t *testing.T, db *gorm.DB, model interface{}) {
	t.Helper()
	if err := db.Migrator().DropTable(model); err != nil {
		panic(fmt.Sprintf("failed to drop table: %v", err))
	}
}
