package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrPermission   = errors.New("permission denied")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal server error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUpstream     = errors.New("upstream error")
)

// FieldError is a single field-level validation message.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type AppError struct {
	BaseError error
	Message   string
	Details   string
	Err       error
	Fields    []FieldError
	// Status overrides the status derived from BaseError when non-zero.
	Status int
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (Details: %s, Cause: %v)", e.BaseError.Error(), e.Message, e.Details, e.Err)
	}
	return fmt.Sprintf("%s: %s (Details: %s)", e.BaseError.Error(), e.Message, e.Details)
}

func (e *AppError) Unwrap() error {
	return e.BaseError
}

// WithStatus pins the HTTP status for routes that answer differently from the default mapping.
func (e *AppError) WithStatus(status int) *AppError {
	e.Status = status
	return e
}

func NewAppError(base error, msg, details string, err error) *AppError {
	return &AppError{BaseError: base, Message: msg, Details: details, Err: err}
}

func NewNotFound(resource, identifier string) *AppError {
	msg := fmt.Sprintf("%s not found", resource)
	details := fmt.Sprintf("%s with identifier '%s' was not found", resource, identifier)
	return NewAppError(ErrNotFound, msg, details, nil)
}

func NewInvalidInput(details string, err error) *AppError {
	return NewAppError(ErrInvalidInput, "Invalid input provided", details, err)
}

// NewValidation reports missing or malformed fields before any storage access.
func NewValidation(fields ...FieldError) *AppError {
	e := NewAppError(ErrInvalidInput, "Validation failed", "", nil)
	e.Fields = fields
	return e
}

// NewConflict reports a request that contradicts the current state of a resource.
func NewConflict(msg, details string) *AppError {
	return NewAppError(ErrConflict, msg, details, nil)
}

func NewInternal(details string, err error) *AppError {
	return NewAppError(ErrInternal, "An internal server error occurred", details, err)
}

func NewUnauthorized(details string, err error) *AppError {
	return NewAppError(ErrUnauthorized, "Invalid credentials", details, err)
}

func NewPermissionDenied(details string) *AppError {
	return NewAppError(ErrPermission, "User not authorized", details, nil)
}

func NewUpstream(msg string, err error) *AppError {
	return NewAppError(ErrUpstream, msg, "", err)
}

// FromBinding converts a gin binding error into a validation error with one entry per field.
func FromBinding(err error) *AppError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewInvalidInput("malformed request body", err)
	}
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Msg: fieldMessage(fe)})
	}
	return NewValidation(fields...)
}

// fieldMessage names the Go field; Field stays whatever name the validator reports (the json key under gin).
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.StructField())
	case "email":
		return "Please include a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.StructField(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.StructField())
	}
}

func ToHTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Status != 0 {
		return appErr.Status
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	// ownership failures answer 401, matching the public API contract
	if errors.Is(err, ErrPermission) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrConflict) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrUpstream) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (e *AppError) ToJSON() gin.H {
	if errors.Is(e.BaseError, ErrInternal) {
		return gin.H{"error": "Server Error"}
	}
	body := gin.H{
		"error": e.BaseError.Error(),
		"msg":   e.Message,
	}
	if len(e.Fields) > 0 {
		body["errors"] = e.Fields
	}
	return body
}
