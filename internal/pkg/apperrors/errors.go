package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrTokenNotFound = errors.New("token not found")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Student errors
var (
	ErrStudentNotFound = errors.New("student not found")
)

// Report pipeline errors
var (
	ErrTemplateNotFound = errors.New("report template not found")
	ErrReportNotFound   = errors.New("report not found")

	// ErrRenderEngineUnavailable means the shared rendering engine could not
	// be started; fatal for the current render call.
	ErrRenderEngineUnavailable = errors.New("render engine unavailable")

	// ErrRenderFailure means markup load or document export failed mid-render.
	// The artifact is recorded as failed with the underlying message.
	ErrRenderFailure = errors.New("document render failed")

	// ErrBatchTooLarge means the batch request exceeded the configured cap.
	ErrBatchTooLarge = errors.New("batch size exceeds limit")

	// ErrInvalidStateTransition means an artifact state change violated the
	// generating -> completed|failed, completed -> archived lifecycle.
	ErrInvalidStateTransition = errors.New("invalid report state transition")
)

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewRenderError wraps a mid-render failure so callers can match on
// ErrRenderFailure while keeping the engine's message.
func NewRenderError(err error) error {
	return &CustomError{
		Err:     ErrRenderFailure,
		Message: "document render failed: " + err.Error(),
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// WithStatusMsg adds a user-friendly status message
func (e *CustomError) WithStatusMsg(msg string) *CustomError {
	e.StatusMsg = msg
	return e
}
