package handlers

import (
	"errors"
	"net/http"

	"tailspin/internal/auth"
	"tailspin/internal/dto"
	"tailspin/internal/respond"
	"tailspin/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles register, login, refresh and logout.
type AuthHandler struct {
	tokens  *auth.TokenService
	userSvc *service.UserService
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(tokens *auth.TokenService, userSvc *service.UserService) *AuthHandler {
	return &AuthHandler{tokens: tokens, userSvc: userSvc}
}

// issuePair mints an access and refresh token for the user.
func (h *AuthHandler) issuePair(userID int64) (access, refresh string, err error) {
	if access, err = h.tokens.IssueAccessToken(userID); err != nil {
		return "", "", err
	}
	if refresh, err = h.tokens.IssueRefreshToken(userID); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Register godoc
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterRequest  true  "Credentials"
// @Success      201   {object}  respond.Envelope
// @Failure      400   {object}  respond.Envelope
// @Failure      409   {object}  respond.Envelope
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Request body is required")
		return
	}
	if req.Email == "" || req.Password == "" {
		respond.Error(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.userSvc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			respond.Error(c, http.StatusConflict, "User with this email already exists")
		case errors.Is(err, service.ErrInvalidEmail):
			respond.Error(c, http.StatusBadRequest, "Invalid email format")
		case errors.Is(err, service.ErrWeakPassword):
			respond.Error(c, http.StatusBadRequest, "Password must be at least 8 characters")
		default:
			respond.Error(c, http.StatusInternalServerError, "An error occurred during registration")
		}
		return
	}

	access, refresh, err := h.issuePair(user.ID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "An error occurred during registration")
		return
	}

	respond.Success(c, http.StatusCreated, dto.TokenPairResponse{
		User:         dto.UserToResponse(user),
		AccessToken:  access,
		RefreshToken: refresh,
	}, "User registered successfully")
}

// Login godoc
// @Summary      Authenticate and receive tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  respond.Envelope
// @Failure      400   {object}  respond.Envelope
// @Failure      401   {object}  respond.Envelope
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Request body is required")
		return
	}
	if req.Email == "" || req.Password == "" {
		respond.Error(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.userSvc.ValidateCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Deliberately vague: never reveal which factor failed.
			respond.Error(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "An error occurred during login")
		return
	}

	access, refresh, err := h.issuePair(user.ID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "An error occurred during login")
		return
	}

	respond.Success(c, http.StatusOK, dto.TokenPairResponse{
		User:         dto.UserToResponse(user),
		AccessToken:  access,
		RefreshToken: refresh,
	}, "Login successful")
}

// Refresh godoc
// @Summary      Exchange a refresh token for a new access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RefreshRequest  true  "Refresh token"
// @Success      200   {object}  respond.Envelope
// @Failure      400   {object}  respond.Envelope
// @Failure      401   {object}  respond.Envelope
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Request body is required")
		return
	}
	if req.RefreshToken == "" {
		respond.Error(c, http.StatusBadRequest, "Refresh token is required")
		return
	}

	userID, ok := h.tokens.Verify(req.RefreshToken)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	user, err := h.userSvc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respond.Error(c, http.StatusUnauthorized, "User not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "An error occurred during token refresh")
		return
	}

	access, err := h.tokens.IssueAccessToken(user.ID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "An error occurred during token refresh")
		return
	}

	respond.Success(c, http.StatusOK, dto.AccessTokenResponse{AccessToken: access}, "Token refreshed successfully")
}

// Logout godoc
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  respond.Envelope
// @Failure      401  {object}  respond.Envelope
// @Router       /auth/logout [post]
//
// Tokens are stateless, so logout performs no server-side change: it only
// confirms the presented token was valid. Clients discard their tokens.
func (h *AuthHandler) Logout(c *gin.Context) {
	respond.Success(c, http.StatusOK, nil, "Logout successful")
}
