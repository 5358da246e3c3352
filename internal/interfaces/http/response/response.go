package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "suburbia-skate.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error maps a domain error to an HTTP response
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, gin.H{
			"error": appErr.Message,
		})
		return
	}

	c.JSON(statusFor(err), gin.H{
		"error": err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domainerrors.ErrInvalidInput),
		errors.Is(err, domainerrors.ErrBadRequest),
		errors.Is(err, domainerrors.ErrCaptureInvalid),
		errors.Is(err, domainerrors.ErrNoWallet):
		return http.StatusBadRequest
	case errors.Is(err, domainerrors.ErrUnauthorized),
		errors.Is(err, domainerrors.ErrInvalidCredentials),
		errors.Is(err, domainerrors.ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, domainerrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domainerrors.ErrFundingRequired):
		return http.StatusPaymentRequired
	case errors.Is(err, domainerrors.ErrUploadFailed),
		errors.Is(err, domainerrors.ErrMintFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
