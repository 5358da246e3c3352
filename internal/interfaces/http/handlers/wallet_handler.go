package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"suburbia-skate.backend/internal/domain/entities"
	domainerrors "suburbia-skate.backend/internal/domain/errors"
	"suburbia-skate.backend/internal/interfaces/http/middleware"
	"suburbia-skate.backend/internal/interfaces/http/response"
)

type FundingService interface {
	Balance(ctx context.Context, userID uuid.UUID) (*entities.BalanceInfo, error)
	Airdrop(ctx context.Context, userID uuid.UUID) (*entities.BalanceInfo, error)
}

type TransferService interface {
	Transfer(ctx context.Context, userID uuid.UUID, input *entities.TransferInput) (*entities.TransferResult, error)
}

// WalletHandler handles embedded wallet endpoints
type WalletHandler struct {
	fundingUsecase FundingService
	walletUsecase  TransferService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(fundingUsecase FundingService, walletUsecase TransferService) *WalletHandler {
	return &WalletHandler{
		fundingUsecase: fundingUsecase,
		walletUsecase:  walletUsecase,
	}
}

// Balance returns the caller's wallet balance
// GET /api/v1/wallets/balance
func (h *WalletHandler) Balance(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	info, err := h.fundingUsecase.Balance(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, info)
}

// Airdrop requests devnet SOL for the caller's wallet
// POST /api/v1/wallets/airdrop
func (h *WalletHandler) Airdrop(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	info, err := h.fundingUsecase.Airdrop(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, info)
}

// Transfer sends SOL from the caller's wallet to another address
// POST /api/v1/wallets/transfer
func (h *WalletHandler) Transfer(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.TransferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.walletUsecase.Transfer(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}
