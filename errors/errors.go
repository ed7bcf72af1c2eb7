package errors

import (
	"fmt"
	"net/http"

	"github.com/MileWise/milewise-backend/logger"
)

type ErrorType string

const (
	ValidationError        ErrorType = "VALIDATION_ERROR"
	NotFoundError          ErrorType = "NOT_FOUND"
	AuthError              ErrorType = "AUTHENTICATION_ERROR"
	DatabaseError          ErrorType = "DATABASE_ERROR"
	ServerError            ErrorType = "SERVER_ERROR"
	ForbiddenError         ErrorType = "FORBIDDEN"
	WalletNotFoundError    ErrorType = "WALLET_ENTRY_NOT_FOUND"
	ItineraryNotFoundError ErrorType = "ITINERARY_NOT_FOUND"
	ItineraryAccessError   ErrorType = "ITINERARY_ACCESS_DENIED"
	ConflictError          ErrorType = "CONFLICT"
	RateLimitError         ErrorType = "RATE_LIMIT_EXCEEDED"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

// GetHTTPStatus returns the HTTP status code for the error, falling back to
// the status implied by the error type when none was set explicitly.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return getHTTPStatus(e.Type)
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// New creates a new AppError
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// Helper functions for common errors
func NotFound(entity string, id interface{}) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    fmt.Sprintf("%s not found", entity),
		Detail:     fmt.Sprintf("ID: %v", id),
		HTTPStatus: http.StatusNotFound,
	}
}

func ValidationFailed(message string, details string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    message,
		Detail:     details,
		HTTPStatus: http.StatusBadRequest,
	}
}

func AuthenticationFailed(message string) *AppError {
	return &AppError{
		Type:       AuthError,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

func NewDatabaseError(err error) *AppError {
	// Log original error but return sanitized message
	logger.GetLogger().Errorw("Database error", "error", err)
	return &AppError{
		Type:       DatabaseError,
		Message:    "Database operation failed",
		Detail:     "Please try again later",
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

func Forbidden(message string, details string) *AppError {
	return &AppError{
		Type:       ForbiddenError,
		Message:    message,
		Detail:     details,
		HTTPStatus: http.StatusForbidden,
	}
}

func WalletEntryNotFound(id string) *AppError {
	return &AppError{
		Type:       WalletNotFoundError,
		Message:    "Wallet entry not found",
		Detail:     fmt.Sprintf("Wallet entry ID: %s", id),
		HTTPStatus: http.StatusNotFound,
	}
}

func ItineraryNotFound(id string) *AppError {
	return &AppError{
		Type:       ItineraryNotFoundError,
		Message:    "Itinerary not found",
		Detail:     fmt.Sprintf("Itinerary ID: %s", id),
		HTTPStatus: http.StatusNotFound,
	}
}

func ItineraryAccessDenied(userID, itineraryID string) *AppError {
	return &AppError{
		Type:       ItineraryAccessError,
		Message:    "Access to itinerary denied",
		Detail:     fmt.Sprintf("User %s cannot access itinerary %s", userID, itineraryID),
		HTTPStatus: http.StatusForbidden,
	}
}

func NewConflictError(message string, detail string) *AppError {
	return &AppError{
		Type:       ConflictError,
		Message:    message,
		Detail:     detail,
		HTTPStatus: http.StatusConflict,
	}
}

// RateLimitExceeded returns a 429 error carrying the retry-after window in seconds.
func RateLimitExceeded(message string, retryAfterSeconds int) *AppError {
	return &AppError{
		Type:       RateLimitError,
		Message:    message,
		Detail:     fmt.Sprintf("Retry after %d seconds", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

func Unauthorized(code, message string) error {
	return NewError(
		AuthError,
		code,
		message,
		http.StatusUnauthorized,
	)
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case NotFoundError, WalletNotFoundError, ItineraryNotFoundError:
		return http.StatusNotFound
	case AuthError:
		return http.StatusUnauthorized
	case DatabaseError:
		return http.StatusInternalServerError
	case ForbiddenError, ItineraryAccessError:
		return http.StatusForbidden
	case ConflictError:
		return http.StatusConflict
	case RateLimitError:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func NewError(errType ErrorType, code string, message string, status int) error {
	return &AppError{
		Type:       errType,
		Code:       code,
		Message:    message,
		HTTPStatus: status,
	}
}
