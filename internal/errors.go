package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	ErrorTypeConflict   ErrorType = "CONFLICT"
	ErrorTypeInternal   ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidAmount    ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"
	ErrCodeEmptyItems       ErrorCode = "EMPTY_ITEMS"
	ErrCodeEmptyInstallment ErrorCode = "EMPTY_INSTALLMENTS"

	ErrCodeExpenseNotFound     ErrorCode = "EXPENSE_NOT_FOUND"
	ErrCodeInstallmentNotFound ErrorCode = "INSTALLMENT_NOT_FOUND"
	ErrCodePaymentNotFound     ErrorCode = "PAYMENT_NOT_FOUND"
	ErrCodeVendorNotFound      ErrorCode = "VENDOR_NOT_FOUND"
	ErrCodeCategoryNotFound    ErrorCode = "CATEGORY_NOT_FOUND"
	ErrCodeAccountNotFound     ErrorCode = "ACCOUNT_NOT_FOUND"
	ErrCodeContactNotFound     ErrorCode = "CONTACT_NOT_FOUND"

	ErrCodeAmountExceedsRemaining ErrorCode = "AMOUNT_EXCEEDS_REMAINING"
	ErrCodeInstallmentCancelled   ErrorCode = "INSTALLMENT_CANCELLED"
	ErrCodeInvalidExpenseStatus   ErrorCode = "INVALID_EXPENSE_STATUS"
	ErrCodeHasDependents          ErrorCode = "HAS_DEPENDENTS"

	ErrCodePersistenceFailure ErrorCode = "PERSISTENCE_FAILURE"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// NewAmountExceedsRemainingError rejects a payment larger than the
// installment's outstanding balance. The write is refused entirely; there is
// no partial clamping.
func NewAmountExceedsRemainingError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeAmountExceedsRemaining,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

// NewPersistenceError wraps an unexpected database error. The cause is kept
// for logging only and never serialized to the caller.
func NewPersistenceError(cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       ErrCodePersistenceFailure,
		Message:    "an unexpected error occurred, please try again",
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrExpenseNotFound     = NewNotFoundError("expense not found", ErrCodeExpenseNotFound)
	ErrInstallmentNotFound = NewNotFoundError("installment not found", ErrCodeInstallmentNotFound)
	ErrPaymentNotFound     = NewNotFoundError("payment not found", ErrCodePaymentNotFound)
	ErrVendorNotFound      = NewNotFoundError("vendor not found", ErrCodeVendorNotFound)
	ErrCategoryNotFound    = NewNotFoundError("category not found", ErrCodeCategoryNotFound)
	ErrAccountNotFound     = NewNotFoundError("account not found", ErrCodeAccountNotFound)
	ErrContactNotFound     = NewNotFoundError("contact not found", ErrCodeContactNotFound)

	ErrInstallmentCancelled   = NewValidationError("cannot apply a payment to a cancelled installment", ErrCodeInstallmentCancelled)
	ErrInstallmentHasPayments = NewConflictError("installment has payments and cannot be removed", ErrCodeHasDependents)
	ErrAccountHasDependents   = NewConflictError("account has child accounts or payments and cannot be removed", ErrCodeHasDependents)
	ErrInvalidExpenseStatus   = NewValidationError("invalid expense status for this operation", ErrCodeInvalidExpenseStatus)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
