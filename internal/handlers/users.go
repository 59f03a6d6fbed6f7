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

// UserHandler handles the protected profile and account endpoints.
// All of them run behind auth.RequireAuth.
type UserHandler struct {
	userSvc *service.UserService
}

// NewUserHandler returns a new UserHandler.
func NewUserHandler(userSvc *service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// GetProfile godoc
// @Summary      Get current user's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  respond.Envelope
// @Failure      401  {object}  respond.Envelope
// @Router       /users/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "Missing authorization header")
		return
	}
	respond.Success(c, http.StatusOK, dto.UserToProfile(user), "Profile retrieved successfully")
}

// UpdateProfile godoc
// @Summary      Update current user's profile (email only)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.UpdateProfileRequest  true  "Profile fields"
// @Success      200   {object}  respond.Envelope
// @Failure      400   {object}  respond.Envelope
// @Failure      401   {object}  respond.Envelope
// @Failure      409   {object}  respond.Envelope
// @Router       /users/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "Missing authorization header")
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Request body is required")
		return
	}

	// Nothing to change: return the profile as-is, like the original API.
	if req.Email == nil {
		respond.Success(c, http.StatusOK, dto.UserToProfile(user), "Profile updated successfully")
		return
	}
	if *req.Email == "" {
		respond.Error(c, http.StatusBadRequest, "Email cannot be empty")
		return
	}

	updated, err := h.userSvc.UpdateEmail(c.Request.Context(), user.ID, *req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			respond.Error(c, http.StatusConflict, "Email already in use")
		case errors.Is(err, service.ErrInvalidEmail):
			respond.Error(c, http.StatusBadRequest, "Invalid email format")
		default:
			respond.Error(c, http.StatusInternalServerError, "An error occurred while updating profile")
		}
		return
	}

	respond.Success(c, http.StatusOK, dto.UserToProfile(updated), "Profile updated successfully")
}

// DeleteAccount godoc
// @Summary      Delete current user's account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  respond.Envelope
// @Failure      401  {object}  respond.Envelope
// @Router       /users/account [delete]
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "Missing authorization header")
		return
	}
	if err := h.userSvc.Delete(c.Request.Context(), user.ID); err != nil {
		respond.Error(c, http.StatusInternalServerError, "An error occurred while deleting account")
		return
	}
	respond.Success(c, http.StatusOK, nil, "Account deleted successfully")
}
