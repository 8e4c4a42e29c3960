// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"navhub/internal/database"
	"navhub/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "navhub")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "navhub")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// mustCategory inserts a category and registers cleanup of its subtree.
func mustCategory(t *testing.T, s *CategoryStore, parentID *int64, name string, level, sortOrder int, public bool) *models.Category {
	t.Helper()

	c := &models.Category{
		ParentID:  parentID,
		Name:      name,
		SortOrder: sortOrder,
		Level:     level,
		IsPublic:  public,
	}
	if _, err := s.Create(c); err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	t.Cleanup(func() { s.Delete(c.ID, true) })
	return c
}

// mustNav inserts a nav and registers cleanup.
func mustNav(t *testing.T, s *NavStore, categoryID int64, title string, public bool) *models.Nav {
	t.Helper()

	n := &models.Nav{
		CategoryID: categoryID,
		Title:      title,
		URL:        "https://example.com/" + title,
		IsPublic:   public,
	}
	if _, err := s.Create(n); err != nil {
		t.Fatalf("create nav %q: %v", title, err)
	}
	t.Cleanup(func() { s.Delete(n.ID) })
	return n
}

// cleanUsers removes test users by username. Call in t.Cleanup().
func cleanUsers(t *testing.T, db *sql.DB, usernames ...string) {
	t.Helper()
	for _, u := range usernames {
		db.Exec("DELETE FROM users WHERE username = $1", u)
	}
}
