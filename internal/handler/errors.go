package handler

import (
	"errors"
	"net/http"

	"fulfillment/internal/returns"
	"fulfillment/pkg/response"

	"github.com/gin-gonic/gin"
)

// statusFor maps a domain code to its HTTP status.
func statusFor(code returns.Code) int {
	switch code {
	case returns.CodeNotFound, returns.CodePolicyNotFound:
		return http.StatusNotFound
	case returns.CodeDuplicateActiveReturn, returns.CodeInvalidStateTransition,
		returns.CodePolicyInUse, returns.CodeRefundInProgress:
		return http.StatusConflict
	case returns.CodeNotDelivered, returns.CodePolicyExcludesReturns, returns.CodeWindowExpired,
		returns.CodeExchangeWindowExpired, returns.CodeReasonNotAllowed, returns.CodeRefundMethodNotAllowed,
		returns.CodeQuantityMismatch, returns.CodeRefundBelowZero:
		return http.StatusUnprocessableEntity
	case returns.CodeRefundGatewayFailure:
		return http.StatusBadGateway
	case returns.CodeForbidden:
		return http.StatusForbidden
	case returns.CodeValidation, returns.CodeInvalidAmount:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError renders err in the response envelope. Domain errors carry
// their code; anything else is reported as a 500.
func respondError(c *gin.Context, err error) {
	var de *returns.Error
	if !errors.As(err, &de) {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Internal server error"))
		return
	}

	status := statusFor(de.Code)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, response.Fail(status, string(de.Code), de.Message))
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
}
