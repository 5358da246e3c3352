package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"suburbia-skate.backend/internal/domain/entities"
	domainerrors "suburbia-skate.backend/internal/domain/errors"
	"suburbia-skate.backend/internal/interfaces/http/middleware"
	"suburbia-skate.backend/internal/interfaces/http/response"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*entities.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, username, email string, bio, profileImage null.String) (*entities.User, error)
}

// ProfileHandler handles the authenticated user's profile endpoints
type ProfileHandler struct {
	profileUsecase ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileUsecase ProfileService) *ProfileHandler {
	return &ProfileHandler{profileUsecase: profileUsecase}
}

// GetMe returns the caller's profile with board references resolved
// and the wallet balance attached.
// GET /api/v1/users/me
func (h *ProfileHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	profile, err := h.profileUsecase.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("User not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// UpdateMe updates the caller's profile fields. Omitted fields keep
// their current values.
// PUT /api/v1/users/me
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input struct {
		Username     string  `json:"username"`
		Email        string  `json:"email"`
		Bio          *string `json:"bio"`
		ProfileImage *string `json:"profileImage"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.profileUsecase.UpdateProfile(
		c.Request.Context(),
		userID,
		input.Username,
		input.Email,
		null.StringFromPtr(input.Bio),
		null.StringFromPtr(input.ProfileImage),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}
