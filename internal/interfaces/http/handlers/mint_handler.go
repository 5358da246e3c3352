package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"suburbia-skate.backend/internal/domain/entities"
	domainerrors "suburbia-skate.backend/internal/domain/errors"
	"suburbia-skate.backend/internal/interfaces/http/middleware"
	"suburbia-skate.backend/internal/interfaces/http/response"
	"suburbia-skate.backend/pkg/utils"
)

type MintService interface {
	Mint(ctx context.Context, userID uuid.UUID, input *entities.MintInput) (*entities.MintResult, error)
	ListRecords(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.MintRecord, int64, error)
}

// MintHandler handles the mint workflow endpoints
type MintHandler struct {
	mintUsecase MintService
}

// NewMintHandler creates a new mint handler
func NewMintHandler(mintUsecase MintService) *MintHandler {
	return &MintHandler{mintUsecase: mintUsecase}
}

// Mint runs the full mint workflow: capture validation, asset upload,
// on-chain mint and database persistence. Clients should send an
// Idempotency-Key header so retries do not mint twice.
// POST /api/v1/mints
func (h *MintHandler) Mint(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.MintInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	if input.Name == "" {
		response.Error(c, domainerrors.BadRequest("Board name is required"))
		return
	}

	result, err := h.mintUsecase.Mint(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// ListRecords returns the caller's mint history, newest first
// GET /api/v1/mints
func (h *MintHandler) ListRecords(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	records, total, err := h.mintUsecase.ListRecords(c.Request.Context(), userID, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"records": records,
		"meta":    utils.CalculateMeta(total, params.Page, params.Limit),
	})
}
