package handlers

import (
	"errors"
	"net/http"

	"aerozone_backend/internal/middleware"
	"aerozone_backend/internal/models"
	"aerozone_backend/internal/services"
	"aerozone_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// mapServiceError converts a service error into the API error returned to the client.
func mapServiceError(err error) *utils.APIError {
	var stockErr *services.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		return utils.NewAPIError(http.StatusConflict, utils.ErrCodeInsufficientStock, "Insufficient stock.", stockErr.Error())
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrRoleNotAllowed):
		return utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Input validation failed.", err.Error())
	case errors.Is(err, services.ErrInsufficientFunds):
		return utils.NewAPIError(http.StatusPaymentRequired, utils.ErrCodeInsufficientFunds, "Cash received does not cover the total.", err.Error())
	case errors.Is(err, services.ErrStockItemNotFound),
		errors.Is(err, services.ErrSaleNotFound),
		errors.Is(err, services.ErrStoreNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Resource not found.", err.Error())
	case errors.Is(err, services.ErrStoreExists),
		errors.Is(err, services.ErrStoreNotPending),
		errors.Is(err, services.ErrUsernameExists):
		return utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Conflict with the current state.", err.Error())
	case errors.Is(err, services.ErrForbidden), errors.Is(err, services.ErrStoreNotApproved):
		return utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Operation not permitted.", err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid username or password.", "")
	case errors.Is(err, services.ErrPersistence):
		return utils.NewAPIError(http.StatusServiceUnavailable, utils.ErrCodeServiceUnavailable, "Storage is temporarily unavailable. Please retry.", "")
	default:
		return utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Internal server error.", "")
	}
}

// respondServiceError logs err and writes the mapped API error.
// Server-side failures are logged at error level, client mistakes at warn level.
func respondServiceError(c *gin.Context, err error, operation string) {
	apiErr := mapServiceError(err)
	fields := map[string]interface{}{
		"operation":  operation,
		"request_id": c.Writer.Header().Get(utils.RequestIDHeader),
	}
	if apiErr.StatusCode >= http.StatusInternalServerError {
		utils.LogError(err, operation+" failed", fields)
	} else {
		utils.LogWarn(err, operation+" rejected", fields)
	}
	utils.RespondWithError(c, apiErr)
}

func respondBindError(c *gin.Context, err error, operation string) {
	utils.LogWarn(err, operation+": failed to bind request")
	utils.RespondValidationFailed(c, err.Error())
}

// principal returns the authenticated caller or writes a 401.
func principal(c *gin.Context) (models.Principal, bool) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated.", ""))
	}
	return p, ok
}

// listResponse is the envelope of paginated listings.
func listResponse(data interface{}, total, page, pageSize int) gin.H {
	return gin.H{
		"data":      data,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	}
}
