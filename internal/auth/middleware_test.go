package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dom "tailspin/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserFinder struct {
	users map[int64]dom.User
}

func (f *fakeUserFinder) GetByID(_ context.Context, id int64) (dom.User, error) {
	u, ok := f.users[id]
	if !ok {
		return dom.User{}, errors.New("not found")
	}
	return u, nil
}

func newAuthRouter(tokens *TokenService, users UserFinder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(tokens, users), func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": u.Email})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func envelopeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "null", string(body.Data))
	return body.Message
}

func TestRequireAuth(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour, 7*24*time.Hour)
	finder := &fakeUserFinder{users: map[int64]dom.User{
		1: {ID: 1, Email: "a@b.com"},
	}}
	r := newAuthRouter(tokens, finder)

	t.Run("missing header", func(t *testing.T) {
		w := doRequest(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Missing authorization header", envelopeMessage(t, w))
	})

	t.Run("wrong scheme", func(t *testing.T) {
		w := doRequest(r, "Basic abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid authorization header format", envelopeMessage(t, w))
	})

	t.Run("too many parts", func(t *testing.T) {
		w := doRequest(r, "Bearer one two")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid authorization header format", envelopeMessage(t, w))
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doRequest(r, "Bearer garbage")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid or expired token", envelopeMessage(t, w))
		assert.NotContains(t, w.Body.String(), "a@b.com")
	})

	t.Run("unknown subject", func(t *testing.T) {
		// A deleted account can still hold an unexpired token.
		tok, err := tokens.IssueAccessToken(999)
		require.NoError(t, err)
		w := doRequest(r, "Bearer "+tok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "User not found", envelopeMessage(t, w))
	})

	t.Run("valid token", func(t *testing.T) {
		tok, err := tokens.IssueAccessToken(1)
		require.NoError(t, err)
		w := doRequest(r, "Bearer "+tok)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "a@b.com")
	})

	t.Run("scheme is case-insensitive", func(t *testing.T) {
		tok, err := tokens.IssueAccessToken(1)
		require.NoError(t, err)
		w := doRequest(r, "bearer "+tok)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCurrentUser_NotSet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := CurrentUser(c)
	assert.False(t, ok)
}
