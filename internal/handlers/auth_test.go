package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tailspin/internal/auth"
	dom "tailspin/internal/domain"
	"tailspin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo backs the real service stack in these tests; it mimics
// Postgres error behavior (pgx.ErrNoRows, unique violation 23505).
type fakeUserRepo struct {
	nextID int64
	users  map[int64]dom.User

	// getByIDErr, when set, is returned by GetByID to simulate a storage outage.
	getByIDErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int64]dom.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, email, passwordHash string) (dom.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return dom.User{}, &pgconn.PgError{Code: "23505"}
		}
	}
	now := time.Now().UTC()
	u := dom.User{ID: f.nextID, Email: email, PasswordHash: passwordHash, CreatedAt: now, UpdatedAt: now}
	f.users[u.ID] = u
	f.nextID++
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (dom.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (dom.User, error) {
	if f.getByIDErr != nil {
		return dom.User{}, f.getByIDErr
	}
	u, ok := f.users[id]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserRepo) UpdateEmail(_ context.Context, id int64, email string) (dom.User, error) {
	u, ok := f.users[id]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	u.Email = email
	u.UpdatedAt = time.Now().UTC()
	f.users[id] = u
	return u, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) EmailTaken(_ context.Context, email string, excludeID int64) (bool, error) {
	for _, u := range f.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message"`
	Timestamp string          `json:"timestamp"`
}

func newAccountRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userSvc := service.NewUserService(newFakeUserRepo())
	tokens := auth.NewTokenService("test-secret", time.Hour, 7*24*time.Hour)
	requireAuth := auth.RequireAuth(tokens, userSvc)

	r := gin.New()
	api := r.Group("/api/v1")

	h := NewAuthHandler(tokens, userSvc)
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.POST("/auth/refresh", h.Refresh)
	api.POST("/auth/logout", requireAuth, h.Logout)

	uh := NewUserHandler(userSvc)
	users := api.Group("/users", requireAuth)
	users.GET("/profile", uh.GetProfile)
	users.PUT("/profile", uh.UpdateProfile)
	users.DELETE("/account", uh.DeleteAccount)

	return r
}

func post(r *gin.Engine, path string, body any, bearer string) *httptest.ResponseRecorder {
	return request(r, http.MethodPost, path, body, bearer)
}

func request(r *gin.Engine, method, path string, body any, bearer string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func registerUser(t *testing.T, r *gin.Engine, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	w := post(r, "/api/v1/auth/register", gin.H{"email": email, "password": password}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	env := parseEnvelope(t, w)
	var data struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.AccessToken, data.RefreshToken
}

func TestRegister(t *testing.T) {
	r := newAccountRouter(t)

	w := post(r, "/api/v1/auth/register", gin.H{"email": "a@b.com", "password": "longenough1"}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	env := parseEnvelope(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "User registered successfully", env.Message)
	assert.NotEmpty(t, env.Timestamp)

	var data struct {
		User struct {
			ID    int64  `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "a@b.com", data.User.Email)
	assert.NotEmpty(t, data.AccessToken)
	assert.NotEmpty(t, data.RefreshToken)
	assert.NotContains(t, w.Body.String(), "password")

	t.Run("duplicate email", func(t *testing.T) {
		w := post(r, "/api/v1/auth/register", gin.H{"email": "  A@B.COM ", "password": "longenough2"}, "")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "User with this email already exists", parseEnvelope(t, w).Message)
	})

	t.Run("weak password", func(t *testing.T) {
		w := post(r, "/api/v1/auth/register", gin.H{"email": "c@d.com", "password": "short"}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Password must be at least 8 characters", parseEnvelope(t, w).Message)
	})

	t.Run("invalid email", func(t *testing.T) {
		w := post(r, "/api/v1/auth/register", gin.H{"email": "nope", "password": "longenough1"}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid email format", parseEnvelope(t, w).Message)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := post(r, "/api/v1/auth/register", gin.H{"email": "c@d.com"}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Email and password are required", parseEnvelope(t, w).Message)
	})
}

func TestLogin(t *testing.T) {
	r := newAccountRouter(t)
	registerUser(t, r, "a@b.com", "longenough1")

	w := post(r, "/api/v1/auth/login", gin.H{"email": "a@b.com", "password": "longenough1"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	env := parseEnvelope(t, w)
	assert.Equal(t, "Login successful", env.Message)

	t.Run("wrong password", func(t *testing.T) {
		w := post(r, "/api/v1/auth/login", gin.H{"email": "a@b.com", "password": "wrongpassword"}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid email or password", parseEnvelope(t, w).Message)
	})

	t.Run("unknown email is indistinguishable", func(t *testing.T) {
		w := post(r, "/api/v1/auth/login", gin.H{"email": "nobody@b.com", "password": "longenough1"}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid email or password", parseEnvelope(t, w).Message)
	})
}

func TestRegisterThenLoginResolvesSameSubject(t *testing.T) {
	r := newAccountRouter(t)
	access, _ := registerUser(t, r, "a@b.com", "longenough1")

	// The access token from registration and a fresh login both resolve to
	// the same profile.
	w := request(r, http.MethodGet, "/api/v1/users/profile", nil, access)
	require.Equal(t, http.StatusOK, w.Code)
	first := parseEnvelope(t, w)

	lw := post(r, "/api/v1/auth/login", gin.H{"email": "a@b.com", "password": "longenough1"}, "")
	require.Equal(t, http.StatusOK, lw.Code)
	var loginData struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(parseEnvelope(t, lw).Data, &loginData))

	w2 := request(r, http.MethodGet, "/api/v1/users/profile", nil, loginData.AccessToken)
	require.Equal(t, http.StatusOK, w2.Code)
	second := parseEnvelope(t, w2)

	var p1, p2 struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(first.Data, &p1))
	require.NoError(t, json.Unmarshal(second.Data, &p2))
	assert.Equal(t, p1.ID, p2.ID)
}

func TestRefresh(t *testing.T) {
	r := newAccountRouter(t)
	access, refresh := registerUser(t, r, "a@b.com", "longenough1")

	w := post(r, "/api/v1/auth/refresh", gin.H{"refreshToken": refresh}, "")
	require.Equal(t, http.StatusOK, w.Code)
	env := parseEnvelope(t, w)
	assert.Equal(t, "Token refreshed successfully", env.Message)

	var data struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.AccessToken)

	// The original refresh token is unaffected and can be used again.
	w2 := post(r, "/api/v1/auth/refresh", gin.H{"refreshToken": refresh}, "")
	assert.Equal(t, http.StatusOK, w2.Code)

	// A still-valid access token also passes verification: the service does
	// not distinguish token roles.
	w3 := post(r, "/api/v1/auth/refresh", gin.H{"refreshToken": access}, "")
	assert.Equal(t, http.StatusOK, w3.Code)

	t.Run("garbage token", func(t *testing.T) {
		w := post(r, "/api/v1/auth/refresh", gin.H{"refreshToken": "garbage"}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid or expired refresh token", parseEnvelope(t, w).Message)
	})

	t.Run("missing token", func(t *testing.T) {
		w := post(r, "/api/v1/auth/refresh", gin.H{}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Refresh token is required", parseEnvelope(t, w).Message)
	})
}

// A missing subject and a failing user store must not look the same:
// the first is an auth failure, the second an internal error.
func TestRefreshUserLookup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := newFakeUserRepo()
	userSvc := service.NewUserService(repo)
	tokens := auth.NewTokenService("test-secret", time.Hour, 7*24*time.Hour)

	r := gin.New()
	h := NewAuthHandler(tokens, userSvc)
	r.POST("/api/v1/auth/refresh", h.Refresh)

	u, err := userSvc.Register(context.Background(), "a@b.com", "longenough1")
	require.NoError(t, err)
	refresh, err := tokens.IssueRefreshToken(u.ID)
	require.NoError(t, err)

	t.Run("deleted subject", func(t *testing.T) {
		require.NoError(t, userSvc.Delete(context.Background(), u.ID))
		w := post(r, "/api/v1/auth/refresh", gin.H{"refreshToken": refresh}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "User not found", parseEnvelope(t, w).Message)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo.getByIDErr = errors.New("connection reset")
		defer func() { repo.getByIDErr = nil }()

		w := post(r, "/api/v1/auth/refresh", gin.H{"refreshToken": refresh}, "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "An error occurred during token refresh", parseEnvelope(t, w).Message)
	})
}

func TestLogout(t *testing.T) {
	r := newAccountRouter(t)
	access, _ := registerUser(t, r, "a@b.com", "longenough1")

	w := post(r, "/api/v1/auth/logout", nil, access)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logout successful", parseEnvelope(t, w).Message)

	// Stateless tokens: logout cannot invalidate the token.
	w2 := request(r, http.MethodGet, "/api/v1/users/profile", nil, access)
	assert.Equal(t, http.StatusOK, w2.Code)

	t.Run("without token", func(t *testing.T) {
		w := post(r, "/api/v1/auth/logout", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestProfile(t *testing.T) {
	r := newAccountRouter(t)
	access, _ := registerUser(t, r, "a@b.com", "longenough1")

	w := request(r, http.MethodGet, "/api/v1/users/profile", nil, access)
	require.Equal(t, http.StatusOK, w.Code)
	env := parseEnvelope(t, w)
	assert.Equal(t, "Profile retrieved successfully", env.Message)

	var profile struct {
		ID        int64  `json:"id"`
		Email     string `json:"email"`
		CreatedAt string `json:"createdAt"`
		UpdatedAt string `json:"updatedAt"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "a@b.com", profile.Email)
	assert.NotEmpty(t, profile.CreatedAt)
	assert.NotContains(t, w.Body.String(), "password")

	t.Run("garbage bearer leaks nothing", func(t *testing.T) {
		w := request(r, http.MethodGet, "/api/v1/users/profile", nil, "garbage")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.NotContains(t, w.Body.String(), "a@b.com")
	})

	t.Run("update email", func(t *testing.T) {
		w := request(r, http.MethodPut, "/api/v1/users/profile", gin.H{"email": "new@b.com"}, access)
		require.Equal(t, http.StatusOK, w.Code)
		env := parseEnvelope(t, w)
		assert.Equal(t, "Profile updated successfully", env.Message)
		assert.Contains(t, string(env.Data), "new@b.com")
	})

	t.Run("update to taken email", func(t *testing.T) {
		other, _ := registerUser(t, r, "taken@b.com", "longenough2")
		_ = other
		w := request(r, http.MethodPut, "/api/v1/users/profile", gin.H{"email": "taken@b.com"}, access)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Email already in use", parseEnvelope(t, w).Message)
	})

	t.Run("empty email", func(t *testing.T) {
		w := request(r, http.MethodPut, "/api/v1/users/profile", gin.H{"email": ""}, access)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Email cannot be empty", parseEnvelope(t, w).Message)
	})
}

func TestDeleteAccount(t *testing.T) {
	r := newAccountRouter(t)
	access, _ := registerUser(t, r, "a@b.com", "longenough1")

	w := request(r, http.MethodDelete, "/api/v1/users/account", nil, access)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Account deleted successfully", parseEnvelope(t, w).Message)

	// The token is still unexpired but the subject is gone: the gate must
	// reject it.
	w2 := request(r, http.MethodGet, "/api/v1/users/profile", nil, access)
	assert.Equal(t, http.StatusUnauthorized, w2.Code)
	assert.Equal(t, "User not found", parseEnvelope(t, w2).Message)
}
