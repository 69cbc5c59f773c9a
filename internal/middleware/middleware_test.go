package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func sign(t *testing.T, key string, method jwt.SigningMethod, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(method, jwt.MapClaims{"sub": "admin", "exp": exp.Unix()})
	s, err := tok.SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func newRouter(secret string) (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	var forwarded string
	r := gin.New()
	r.Use(RequireJWT(secret), ForwardToken())
	r.GET("/", func(c *gin.Context) {
		forwarded = Token(c)
		c.Status(http.StatusNoContent)
	})
	return r, &forwarded
}

func serve(r http.Handler, auth string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireJWT_Disabled(t *testing.T) {
	r, forwarded := newRouter("")

	rec := serve(r, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, *forwarded)

	rec = serve(r, "Bearer anything")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "Bearer anything", *forwarded)
}

func TestRequireJWT_Enabled(t *testing.T) {
	r, forwarded := newRouter(secret)
	valid := "Bearer " + sign(t, secret, jwt.SigningMethodHS256, time.Now().Add(time.Hour))

	rec := serve(r, valid)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, valid, *forwarded)

	tests := []struct {
		name string
		auth string
	}{
		{"missing", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"wrong key", "Bearer " + sign(t, "other", jwt.SigningMethodHS256, time.Now().Add(time.Hour))},
		{"wrong alg", "Bearer " + sign(t, secret, jwt.SigningMethodHS512, time.Now().Add(time.Hour))},
		{"expired", "Bearer " + sign(t, secret, jwt.SigningMethodHS256, time.Now().Add(-time.Hour))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(r, tt.auth)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), `"code":4010`)
		})
	}
}

func TestAccessLog_OmitsToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(log.WithContext(c.Request.Context()))
		c.Next()
	}, AccessLog())
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/items/7", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	r.ServeHTTP(rec, req)

	assert.Contains(t, buf.String(), `"path":"/items/:id"`)
	assert.Contains(t, buf.String(), `"status":200`)
	assert.NotContains(t, buf.String(), "secret-token")
}

func TestAccessLog_LogsVerifiedSubject(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(log.WithContext(c.Request.Context()))
		c.Next()
	}, AccessLog(), RequireJWT(secret))
	r.GET("/", func(c *gin.Context) {
		assert.Equal(t, "admin", GetClaims(c)["sub"])
		c.Status(http.StatusNoContent)
	})

	tok := sign(t, secret, jwt.SigningMethodHS256, time.Now().Add(time.Hour))
	rec := serve(r, "Bearer "+tok)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, buf.String(), `"subject":"admin"`)
	assert.NotContains(t, buf.String(), tok)

	buf.Reset()
	serve(r, "")
	assert.Contains(t, buf.String(), `"status":401`)
	assert.NotContains(t, buf.String(), "subject")
}
