package dto

import (
	"time"

	dom "tailspin/internal/domain"
)

// RegisterRequest is the JSON body for POST /auth/register.
// Fields are checked in the handler so the error messages stay exact.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the JSON body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the JSON body for POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// UserResponse is the public shape of a user. Never carries the password hash.
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// ProfileResponse adds timestamps for the profile endpoints.
type ProfileResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TokenPairResponse is returned by register and login.
type TokenPairResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// AccessTokenResponse is returned by refresh.
type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// UpdateProfileRequest is the JSON body for PUT /users/profile.
// Email is a pointer so "absent" and "empty" are distinguishable.
type UpdateProfileRequest struct {
	Email *string `json:"email"`
}

func UserToResponse(u dom.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email}
}

func UserToProfile(u dom.User) ProfileResponse {
	return ProfileResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}
