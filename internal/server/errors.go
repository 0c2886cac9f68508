package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authdomain "github.com/raizsolar/backoffice/internal/auth/domain"
	clientdomain "github.com/raizsolar/backoffice/internal/client/domain"
	distributiondomain "github.com/raizsolar/backoffice/internal/distribution/domain"
	invoicedomain "github.com/raizsolar/backoffice/internal/invoice/domain"
	ledgerdomain "github.com/raizsolar/backoffice/internal/ledger/domain"
	operatordomain "github.com/raizsolar/backoffice/internal/operator/domain"
	plantdomain "github.com/raizsolar/backoffice/internal/plant/domain"
	productiondomain "github.com/raizsolar/backoffice/internal/production/domain"
	statementdomain "github.com/raizsolar/backoffice/internal/statement/domain"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidRequest = errors.New("invalid_request")
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// ErrorHandlingMiddleware turns domain sentinel errors collected on the gin
// context into structured JSON responses.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrSessionNotFound),
		errors.Is(err, authdomain.ErrSessionExpired):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}

	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}

	case errors.Is(err, distributiondomain.ErrCapExceeded):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "distribution percentages exceed 100%",
		}

	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, distributiondomain.ErrInvalidShare),
		errors.Is(err, ledgerdomain.ErrInvalidAmount):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "invalid request",
		}

	case errors.Is(err, plantdomain.ErrPlantExists),
		errors.Is(err, clientdomain.ErrClientExists),
		errors.Is(err, operatordomain.ErrOperatorExists):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}

	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	}

	return http.StatusInternalServerError, errorPayload{
		Type:    "internal_error",
		Message: "internal server error",
	}
}

func isNotFoundError(err error) bool {
	for _, target := range []error{
		plantdomain.ErrPlantNotFound,
		clientdomain.ErrClientNotFound,
		productiondomain.ErrProductionNotFound,
		productiondomain.ErrPlantNotFound,
		invoicedomain.ErrInvoiceNotFound,
		invoicedomain.ErrClientNotFound,
		operatordomain.ErrOperatorNotFound,
		distributiondomain.ErrPlantNotFound,
		distributiondomain.ErrClientNotFound,
		statementdomain.ErrClientNotFound,
		ledgerdomain.ErrClientNotFound,
		gorm.ErrRecordNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
