// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"navhub/internal/database"
	"navhub/internal/hierarchy"
	"navhub/internal/homeview"
	"navhub/internal/models"
	"navhub/internal/store"
	"navhub/internal/token"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "navhub")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "navhub")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "revoked:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB         *sql.DB
	Valkey     *redis.Client
	Users      *store.UserStore
	CatStore   *store.CategoryStore
	NavStore   *store.NavStore
	ViewCache  *homeview.Cache
	Tokens     *token.Manager
	Blacklist  *token.Blacklist
	Auth       *Auth
	Categories *Categories
	Navs       *Navs
	Home       *Home
}

// newTestEnv creates a complete test environment with all handler dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	users := store.NewUserStore(db)
	cats := store.NewCategoryStore(db)
	navs := store.NewNavStore(db)

	validator := hierarchy.NewValidator(cats)
	composer := homeview.New(cats, navs)
	viewCache := homeview.NewCache()

	tokens := token.NewManager("handler-test-secret", time.Hour, 24*time.Hour)
	blacklist := token.NewBlacklist(vk)

	return &testEnv{
		DB:         db,
		Valkey:     vk,
		Users:      users,
		CatStore:   cats,
		NavStore:   navs,
		ViewCache:  viewCache,
		Tokens:     tokens,
		Blacklist:  blacklist,
		Auth:       NewAuth(users, tokens, blacklist),
		Categories: NewCategories(cats, validator, viewCache),
		Navs:       NewNavs(navs, cats, viewCache),
		Home:       NewHome(composer, viewCache),
	}
}

// withID attaches an {id} route parameter the way chi would during routing.
func withID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// decodeEnvelope unmarshals a recorded response body, leaving data raw for
// the caller to decode into the expected shape.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (int, string, json.RawMessage) {
	t.Helper()

	var env struct {
		Code int             `json:"code"`
		Msg  string          `json:"msg"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, rec.Body.String())
	}
	return env.Code, env.Msg, env.Data
}

// seedCategory inserts a category and registers cleanup of its subtree.
func seedCategory(t *testing.T, env *testEnv, parentID *int64, name string, level, sortOrder int, public bool) *models.Category {
	t.Helper()

	c := &models.Category{
		ParentID:  parentID,
		Name:      name,
		SortOrder: sortOrder,
		Level:     level,
		IsPublic:  public,
	}
	if _, err := env.CatStore.Create(c); err != nil {
		t.Fatalf("seed category %q: %v", name, err)
	}
	t.Cleanup(func() { env.CatStore.Delete(c.ID, true) })
	return c
}

// seedNav inserts a nav and registers cleanup.
func seedNav(t *testing.T, env *testEnv, categoryID int64, title string, public bool) *models.Nav {
	t.Helper()

	n := &models.Nav{
		CategoryID: categoryID,
		Title:      title,
		URL:        "https://example.com/" + title,
		IsPublic:   public,
	}
	if _, err := env.NavStore.Create(n); err != nil {
		t.Fatalf("seed nav %q: %v", title, err)
	}
	t.Cleanup(func() { env.NavStore.Delete(n.ID) })
	return n
}

// seedUser inserts a user and registers cleanup by username.
func seedUser(t *testing.T, env *testEnv, username, password string) *models.User {
	t.Helper()

	env.DB.Exec("DELETE FROM users WHERE username = $1", username)
	u, err := env.Users.Create(username, username+"@test.local", password)
	if err != nil {
		t.Fatalf("seed user %q: %v", username, err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM users WHERE username = $1", username) })
	return u
}
