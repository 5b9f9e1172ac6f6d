package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/t2-user-service/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	jwt := helpers.NewJWTManager("a", "r", time.Minute, time.Hour)
	access, _, err := jwt.GenerateAccessToken("user-1", "sid-1")
	require.NoError(t, err)
	refresh, _, err := jwt.GenerateRefreshToken("user-1", "sid-1")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", Auth(nil, jwt), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUserIDKey))
	})

	tests := []struct {
		name   string
		setup  func(req *http.Request)
		status int
	}{
		{name: "missing token", setup: func(*http.Request) {}, status: http.StatusUnauthorized},
		{name: "bearer header", setup: func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+access) }, status: http.StatusOK},
		{name: "cookie", setup: func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: helpers.AccessTokenCookie, Value: access})
		}, status: http.StatusOK},
		{name: "refresh token rejected", setup: func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+refresh) }, status: http.StatusUnauthorized},
		{name: "wrong scheme", setup: func(req *http.Request) { req.Header.Set("Authorization", "Basic "+access) }, status: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.setup(req)
			w := do(r, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "user-1", w.Body.String())
			}
		})
	}
}

func TestRateLimit_InProcess(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.POST("/sessions", RateLimit(nil, 2, time.Minute, KeyByIP(), nil), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
		req.Header.Set("X-Forwarded-For", ip)
		return do(r, req).Code
	}

	assert.Equal(t, http.StatusNoContent, send("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, send("10.0.0.2"))
}

func TestRateLimit_AllowBypass(t *testing.T) {
	r := gin.New()
	r.GET("/x", RateLimit(nil, 1, time.Minute, KeyByIP(), func(*gin.Context) bool { return true }), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(r, httptest.NewRequest(http.MethodGet, "/x", nil)).Code)
	}
}

func TestRealIP(t *testing.T) {
	var got string
	r := gin.New()
	r.GET("/", RealIP(), func(c *gin.Context) { got = c.GetString("real_ip") })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", " 203.0.113.9 , 10.0.0.1")
	do(r, req)
	assert.Equal(t, "203.0.113.9", got)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("CF-Connecting-IP", "198.51.100.7")
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	do(r, req)
	assert.Equal(t, "198.51.100.7", got)
}

func TestOnlyPrivateIP(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/debug", Only(AllowPrivateIP()), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/debug", nil)
	req.Header.Set("X-Forwarded-For", "192.168.1.10")
	assert.Equal(t, http.StatusOK, do(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/debug", nil)
	req.Header.Set("X-Forwarded-For", "8.8.8.8")
	assert.Equal(t, http.StatusForbidden, do(r, req).Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := do(r, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(w.Body.String())
	assert.NoError(t, err)
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, id)
	assert.Equal(t, id, do(r, req).Body.String())
}

func TestAccessLog(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := gin.New()
	r.Use(AccessLog(logger))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	levels := map[string]logrus.Level{
		"/ok":      logrus.InfoLevel,
		"/missing": logrus.WarnLevel,
		"/boom":    logrus.ErrorLevel,
	}
	for path, level := range levels {
		hook.Reset()
		do(r, httptest.NewRequest(http.MethodGet, path, nil))
		entry := hook.LastEntry()
		require.NotNil(t, entry, path)
		assert.Equal(t, level, entry.Level, path)
		assert.Equal(t, path, entry.Data["path"])
	}
}
