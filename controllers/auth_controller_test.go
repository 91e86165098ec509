package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stock_advisor_backend/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupAuthRouter(t *testing.T, passwordHash string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:         "test-secret",
		AdminUsername:     "admin",
		AdminPasswordHash: passwordHash,
	}

	router := gin.New()
	controller := NewAuthController(cfg)
	router.POST("/api/v1/admin/login", controller.Login)
	return router
}

func login(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginIssuesToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	router := setupAuthRouter(t, string(hash))

	w := login(router, `{"username":"admin","password":"hunter2"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
		ExpiresIn int    `json:"expires_in"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Greater(t, resp.ExpiresIn, 0)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	router := setupAuthRouter(t, string(hash))

	w := login(router, `{"username":"admin","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRejectsWrongUsername(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	router := setupAuthRouter(t, string(hash))

	w := login(router, `{"username":"root","password":"hunter2"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginDisabledWithoutHash(t *testing.T) {
	router := setupAuthRouter(t, "")

	w := login(router, `{"username":"admin","password":"hunter2"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestLoginRequiresCredentials(t *testing.T) {
	router := setupAuthRouter(t, "x")

	w := login(router, `{"username":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
