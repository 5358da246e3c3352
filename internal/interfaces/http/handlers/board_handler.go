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

type BoardService interface {
	Get(ctx context.Context, id uuid.UUID) (*entities.Board, error)
	GetByMint(ctx context.Context, mintAddress string) (*entities.Board, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Board, int64, error)
	Favorite(ctx context.Context, userID, boardID uuid.UUID) (*entities.User, error)
	Unfavorite(ctx context.Context, userID, boardID uuid.UUID) (*entities.User, error)
}

// BoardHandler handles board catalog endpoints
type BoardHandler struct {
	boardUsecase BoardService
}

// NewBoardHandler creates a new board handler
func NewBoardHandler(boardUsecase BoardService) *BoardHandler {
	return &BoardHandler{boardUsecase: boardUsecase}
}

// List returns minted boards, newest first
// GET /api/v1/boards
func (h *BoardHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	boards, total, err := h.boardUsecase.List(c.Request.Context(), params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"boards": boards,
		"meta":   utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// Get returns a board by ID
// GET /api/v1/boards/:id
func (h *BoardHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid board ID"))
		return
	}

	board, err := h.boardUsecase.Get(c.Request.Context(), id)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Board not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, board)
}

// GetByMint returns a board by its on-chain mint address
// GET /api/v1/boards/mint/:mintAddress
func (h *BoardHandler) GetByMint(c *gin.Context) {
	mintAddress := c.Param("mintAddress")
	if mintAddress == "" {
		response.Error(c, domainerrors.BadRequest("Mint address is required"))
		return
	}

	board, err := h.boardUsecase.GetByMint(c.Request.Context(), mintAddress)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Board not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, board)
}

// Favorite adds a board to the caller's favorites
// POST /api/v1/boards/:id/favorite
func (h *BoardHandler) Favorite(c *gin.Context) {
	h.setFavorite(c, true)
}

// Unfavorite removes a board from the caller's favorites
// DELETE /api/v1/boards/:id/favorite
func (h *BoardHandler) Unfavorite(c *gin.Context) {
	h.setFavorite(c, false)
}

func (h *BoardHandler) setFavorite(c *gin.Context, favorite bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid board ID"))
		return
	}

	var user *entities.User
	if favorite {
		user, err = h.boardUsecase.Favorite(c.Request.Context(), userID, boardID)
	} else {
		user, err = h.boardUsecase.Unfavorite(c.Request.Context(), userID, boardID)
	}
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Board not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"favoriteBoards": user.FavoriteBoards,
	})
}
