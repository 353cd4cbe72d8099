package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workviyo/taskboard-api/internal/auth"
	"github.com/workviyo/taskboard-api/internal/constants"
)

func newRouter(tokens *auth.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("test-secret"))))

	r.POST("/login", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(constants.ContextKeyUserID, "session-user")
		_ = session.Save()
		c.Status(http.StatusNoContent)
	})
	r.GET("/protected", RequireAuth(tokens), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.String(http.StatusOK, userID)
	})
	return r
}

func TestRequireAuth_NoCredentials(t *testing.T) {
	r := newRouter(auth.NewTokenService("secret", time.Hour))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"message"`)
}

func TestRequireAuth_BearerToken(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	r := newRouter(tokens)
	token, err := tokens.Issue("token-user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "token-user", w.Body.String())
}

func TestRequireAuth_InvalidBearerToken(t *testing.T) {
	r := newRouter(auth.NewTokenService("secret", time.Hour))

	for _, header := range []string{"Bearer nope", "Basic dXNlcjpwYXNz"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}
}

func TestRequireAuth_Session(t *testing.T) {
	r := newRouter(auth.NewTokenService("secret", time.Hour))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "session-user", w.Body.String())
}
