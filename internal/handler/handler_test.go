package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"schema_bootstrap/internal/config"
	"schema_bootstrap/internal/schema"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupTestServer(t *testing.T) (*sql.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = db.Close()
	})

	require.NoError(t, schema.New(db, schema.SQLite{}).Run(context.Background()))

	cfg := &config.Config{AppName: "findev-backend", AppPort: "8000"}
	// nil metrics keeps the default prometheus registry untouched across tests
	return db, SetupHandler(db, nil, schema.SQLite{}, cfg, nil)
}

func doRequest(t *testing.T, r *gin.Engine, path string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestRoot(t *testing.T) {
	_, r := setupTestServer(t)

	code, body := doRequest(t, r, "/")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Hello, World! This is findev-backend.", body["message"])
}

func TestVersion(t *testing.T) {
	_, r := setupTestServer(t)

	code, body := doRequest(t, r, "/version")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "findev-backend", body["service"])
	assert.Equal(t, Version, body["version"])
}

func TestHealth_RedisDown(t *testing.T) {
	_, r := setupTestServer(t)

	code, body := doRequest(t, r, "/health")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "unhealthy", body["status"])

	services, ok := body["services"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "up", services["postgres"])
	assert.Equal(t, "down", services["redis"])
}

func TestSeedUser(t *testing.T) {
	_, r := setupTestServer(t)

	code, body := doRequest(t, r, "/users/seed")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, schema.SeedUsername, body["username"])
	assert.Equal(t, schema.SeedEmail, body["email"])
	assert.GreaterOrEqual(t, body["id"].(float64), float64(1))
}

func TestSeedUser_Missing(t *testing.T) {
	db, r := setupTestServer(t)

	_, err := db.Exec(`DELETE FROM users`)
	require.NoError(t, err)

	code, body := doRequest(t, r, "/users/seed")

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Seed user not found", body["error"])
}
