package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"murmur/internal/cache"
	"murmur/internal/config"
	"murmur/internal/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	app *fiber.App
	srv *Server
	mr  *miniredis.Miniredis
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		cache.SetClient(nil)
	})

	cfg := &config.Config{
		JWTSecret:     "test-secret-that-is-long-enough-for-hs256",
		TokenTTLHours: 24,
		Port:          "0",
		Env:           "test",
	}
	srv, err := NewServerWithDeps(cfg, db, rdb)
	require.NoError(t, err)

	return &testEnv{app: srv.NewApp(), srv: srv, mr: mr}
}

// do sends a request and returns the status and raw body.
func (e *testEnv) do(t *testing.T, method, path, token, body string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func (e *testEnv) register(t *testing.T, username, mail string) {
	t.Helper()
	status, body := e.do(t, http.MethodPost, "/api/register", "",
		`{"username":"`+username+`","mail":"`+mail+`","password":"password123"}`)
	require.Equal(t, http.StatusCreated, status, body)
}

func (e *testEnv) login(t *testing.T, mail string) string {
	t.Helper()
	status, body := e.do(t, http.MethodPost, "/api/authenticate", "",
		`{"mail":"`+mail+`","password":"password123"}`)
	require.Equal(t, http.StatusOK, status, body)
	return body
}

func decode[T any](t *testing.T, body string) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	return out
}

func newRawRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}
