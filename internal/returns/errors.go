package returns

import (
	"errors"
	"fmt"
)

// Code identifies a failure kind. Codes are surfaced verbatim to callers.
type Code string

const (
	CodePolicyNotFound         Code = "PolicyNotFound"
	CodeNotDelivered           Code = "NotDelivered"
	CodePolicyExcludesReturns  Code = "PolicyExcludesReturns"
	CodeDuplicateActiveReturn  Code = "DuplicateActiveReturn"
	CodeWindowExpired          Code = "WindowExpired"
	CodeInvalidStateTransition Code = "InvalidStateTransition"
	CodeQuantityMismatch       Code = "QuantityMismatch"
	CodeRefundBelowZero        Code = "RefundBelowZero"
	CodeRefundGatewayFailure   Code = "RefundGatewayFailure"
	CodeRefundInProgress       Code = "RefundInProgress"
	CodeReasonNotAllowed       Code = "ReasonNotAllowed"
	CodeRefundMethodNotAllowed Code = "RefundMethodNotAllowed"
	CodeExchangeWindowExpired  Code = "ExchangeWindowExpired"
	CodeInvalidAmount          Code = "InvalidAmount"
	CodePolicyInUse            Code = "PolicyInUse"
	CodeValidation             Code = "ValidationFailed"
	CodeNotFound               Code = "NotFound"
	CodeForbidden              Code = "Forbidden"
)

// Error is a domain failure with a stable code.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error with the same code, so wrapped variants still satisfy
// errors.Is against the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrPolicyNotFound         = &Error{Code: CodePolicyNotFound, Message: "no applicable return policy"}
	ErrNotDelivered           = &Error{Code: CodeNotDelivered, Message: "order has not been delivered"}
	ErrPolicyExcludesReturns  = &Error{Code: CodePolicyExcludesReturns, Message: "item is not returnable under its policy"}
	ErrDuplicateActiveReturn  = &Error{Code: CodeDuplicateActiveReturn, Message: "an active return already exists for this item"}
	ErrWindowExpired          = &Error{Code: CodeWindowExpired, Message: "return window has expired"}
	ErrInvalidStateTransition = &Error{Code: CodeInvalidStateTransition, Message: "invalid state transition"}
	ErrQuantityMismatch       = &Error{Code: CodeQuantityMismatch, Message: "inspection quantities do not add up"}
	ErrRefundBelowZero        = &Error{Code: CodeRefundBelowZero, Message: "refund amount floored at zero"}
	ErrRefundGatewayFailure   = &Error{Code: CodeRefundGatewayFailure, Message: "payment gateway refused the refund"}
	ErrRefundInProgress       = &Error{Code: CodeRefundInProgress, Message: "a refund for this return is already in flight"}
	ErrReasonNotAllowed       = &Error{Code: CodeReasonNotAllowed, Message: "reason code is not accepted by the policy"}
	ErrRefundMethodNotAllowed = &Error{Code: CodeRefundMethodNotAllowed, Message: "refund method is not permitted by the policy"}
	ErrExchangeWindowExpired  = &Error{Code: CodeExchangeWindowExpired, Message: "exchange window has expired"}
	ErrInvalidAmount          = &Error{Code: CodeInvalidAmount, Message: "invalid amount"}
	ErrPolicyInUse            = &Error{Code: CodePolicyInUse, Message: "policy is referenced by an open return"}
	ErrValidation             = &Error{Code: CodeValidation, Message: "validation failed"}
	ErrNotFound               = &Error{Code: CodeNotFound, Message: "not found"}
	ErrForbidden              = &Error{Code: CodeForbidden, Message: "not allowed"}
)

// Errorf derives an error of the sentinel's kind with a specific message.
func Errorf(kind *Error, format string, args ...interface{}) *Error {
	return &Error{Code: kind.Code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the domain code from err, if any.
func CodeOf(err error) (Code, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Code, true
	}
	return "", false
}
