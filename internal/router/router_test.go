package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/t2-user-service/config"
	"github.com/oksasatya/t2-user-service/internal/container"
	"github.com/oksasatya/t2-user-service/internal/infrastructure/hash"
	"github.com/oksasatya/t2-user-service/internal/infrastructure/memory"
	"github.com/oksasatya/t2-user-service/internal/infrastructure/storage"
	"github.com/oksasatya/t2-user-service/internal/interface/middleware"
	"github.com/oksasatya/t2-user-service/pkg/helpers"
	"github.com/oksasatya/t2-user-service/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	os.Exit(m.Run())
}

func newEngine(t *testing.T, debug bool) *gin.Engine {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		StorageDriver:       config.StorageDisk,
		AppAPIURL:           "http://api.local",
		TmpFolder:           dir + "/tmp",
		UploadsFolder:       dir + "/uploads",
		AvatarMaxBytes:      1 << 20,
		DebugMetricsEnabled: debug,
	}
	disk, err := storage.NewDisk(cfg.TmpFolder, cfg.UploadsFolder)
	require.NoError(t, err)

	c := &container.Container{
		Config:  cfg,
		Logger:  helpers.NopLogger(),
		JWT:     helpers.NewJWTManager("a", "r", time.Minute, time.Hour),
		Users:   memory.NewUserRepository(),
		Hash:    hash.NewBCrypt(4),
		Storage: disk,
		URLs:    storage.NewURLBuilder(cfg),
	}

	engine := gin.New()
	engine.Use(middleware.RealIP())
	reg := NewRegistry(engine)
	reg.Use(middleware.RequestIDMiddleware())
	InitModules(reg, c)
	reg.RegisterAll()
	return engine
}

func call(engine *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRoutes_SignupLoginList(t *testing.T) {
	engine := newEngine(t, false)

	w := call(engine, http.MethodPost, "/api/users", "", map[string]string{
		"name":     "John Doe",
		"email":    "johndoe@example.com",
		"phone":    "(47) 3533-3333",
		"cpf":      "165.432.190-76",
		"password": "123456",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	assert.Equal(t, http.StatusUnauthorized, call(engine, http.MethodGet, "/api/users", "", nil).Code)

	w = call(engine, http.MethodPost, "/api/sessions", "", map[string]string{"email": "johndoe@example.com", "password": "123456"})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	w = call(engine, http.MethodGet, "/api/users", login.Data.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data struct {
			TotalElements int               `json:"totalElements"`
			Size          int               `json:"size"`
			Items         []json.RawMessage `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Data.TotalElements)
	assert.Equal(t, 5, list.Data.Size)
	assert.Len(t, list.Data.Items, 1)

	assert.Equal(t, http.StatusOK, call(engine, http.MethodGet, "/api/profile", login.Data.Token, nil).Code)
	assert.Equal(t, http.StatusNoContent, call(engine, http.MethodDelete, "/api/sessions", login.Data.Token, nil).Code)
}

func TestRoutes_DebugVars(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, call(newEngine(t, false), http.MethodGet, "/api/debug/vars", "", nil).Code)

	engine := newEngine(t, true)
	req := httptest.NewRequest(http.MethodGet, "/api/debug/vars", nil)
	req.Header.Set("X-Forwarded-For", "127.0.0.1")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/debug/vars", nil)
	req.Header.Set("X-Forwarded-For", "8.8.8.8")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRegistry_Files(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dir+"/a.png", []byte("png"), 0o644))

	engine := gin.New()
	reg := NewRegistry(engine)
	reg.Files("/files", dir)
	reg.RegisterAll()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/files/a.png", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png", w.Body.String())
}
