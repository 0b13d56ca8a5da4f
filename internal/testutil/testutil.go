package testutil

import (
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/inkwell-app/inkwell/internal/hashid"
	"github.com/inkwell-app/inkwell/internal/models"
	"github.com/inkwell-app/inkwell/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TestDatabase holds test database connection (in-memory SQLite)
type TestDatabase struct {
	DB  *gorm.DB
	DSN string
}

// TestRedis holds test Redis mock (miniredis)
type TestRedis struct {
	Server *miniredis.Miniredis
	URL    string
}

// SetupTestDatabase creates an in-memory SQLite database for integration tests
// No Docker required! Fast and isolated.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	// Use in-memory SQLite database (":memory:" means RAM-only)
	dsn := "file::memory:?cache=shared"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.UserCredential{},
		&models.UserOption{},
		&models.UserDetail{},
		&models.Permission{},
		&models.UserPermission{},
		&models.Category{},
		&models.Blog{},
		&models.Comment{},
		&models.Message{},
		&models.Like{},
		&models.Request{},
	)
	if err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return &TestDatabase{
		DB:  db,
		DSN: dsn,
	}
}

// Teardown cleans up the test database (closes connection)
func (td *TestDatabase) Teardown(t *testing.T) {
	sqlDB, err := td.DB.DB()
	if err != nil {
		t.Logf("Warning: Failed to get underlying DB: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Logf("Warning: Failed to close database: %v", err)
	}
}

// SetupTestRedis creates an in-memory Redis mock (miniredis)
// No Docker required! Fast and isolated.
func SetupTestRedis(t *testing.T) *TestRedis {
	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	redisURL := fmt.Sprintf("redis://%s", server.Addr())

	return &TestRedis{
		Server: server,
		URL:    redisURL,
	}
}

// Teardown cleans up the test Redis mock
func (tr *TestRedis) Teardown(t *testing.T) {
	tr.Server.Close()
}

// CleanDatabase deletes all records from tables (for test isolation)
func CleanDatabase(t *testing.T, db *gorm.DB) {
	// Child tables first (SQLite doesn't support TRUNCATE)
	tables := []string{
		"likes", "comments", "messages", "requests", "blogs", "categories",
		"user_permissions", "permissions",
		"user_credentials", "user_options", "user_details", "users",
	}
	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("Warning: Failed to clean table %s: %v", table, err)
		}
	}
}

// NewTestHasher builds a credential hasher keyed with a throwaway secret.
func NewTestHasher(t *testing.T) *utils.Hasher {
	hasher, err := utils.NewHasher("test-hash-secret")
	if err != nil {
		t.Fatalf("Failed to build test hasher: %v", err)
	}
	return hasher
}

// NewTestCodec builds a public-id codec with a throwaway salt.
func NewTestCodec(t *testing.T) *hashid.Codec {
	ids, err := hashid.New(hashid.Config{Salt: "test-hashid-salt"})
	if err != nil {
		t.Fatalf("Failed to build test id codec: %v", err)
	}
	return ids
}
