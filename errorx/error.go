package errorx

import (
	"fmt"

	"github.com/pkg/errors"
)

// CliniaError is the typed error returned by every package of this module.
// OriginalError is kept for errors.Is/errors.As but never rendered.
type CliniaError struct {
	Type    ErrorType     `json:"type"`
	Message string        `json:"message"`
	Details []CliniaError `json:"details,omitempty"`

	OriginalError error `json:"-"`
}

var _ error = (*CliniaError)(nil)

func (e CliniaError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Type.String(), e.Message)
}

func (e CliniaError) Unwrap() error {
	return e.OriginalError
}

// WithDetails returns a copy of the error with the given details appended.
func (e CliniaError) WithDetails(details ...CliniaError) CliniaError {
	out := e
	out.Details = make([]CliniaError, 0, len(e.Details)+len(details))
	out.Details = append(out.Details, e.Details...)
	out.Details = append(out.Details, details...)
	return out
}

// Wrap attaches err as the original error.
func (e CliniaError) Wrap(err error) CliniaError {
	out := e
	out.OriginalError = err
	return out
}

func IsCliniaError(e error) (*CliniaError, bool) {
	var mE CliniaError
	if !errors.As(e, &mE) {
		var pE *CliniaError
		if !errors.As(e, &pE) || pE == nil {
			return nil, false
		}
		mE = *pE
	}

	if mE.Type == ErrorTypeUnspecified {
		return nil, false
	}

	return &mE, true
}

func isType(e error, t ErrorType) bool {
	mE, ok := IsCliniaError(e)
	if !ok {
		return false
	}

	return mE.Type == t
}

func IsAlreadyExistsError(e error) bool {
	return isType(e, ErrorTypeAlreadyExists)
}

func IsFailedPreconditionError(e error) bool {
	return isType(e, ErrorTypeFailedPrecondition)
}

func IsInternalError(e error) bool {
	return isType(e, ErrorTypeInternal)
}

func IsInvalidArgumentError(e error) bool {
	return isType(e, ErrorTypeInvalidArgument)
}

func IsNotFoundError(e error) bool {
	return isType(e, ErrorTypeNotFound)
}

func IsUnimplemented(e error) bool {
	return isType(e, ErrorTypeUnimplemented)
}

// AlreadyExistsErrorf creates a CliniaError with type ErrorTypeAlreadyExists and a formatted message
func AlreadyExistsErrorf(format string, args ...any) CliniaError {
	return CliniaError{
		Type:    ErrorTypeAlreadyExists,
		Message: fmt.Sprintf(format, args...),
	}
}

// FailedPreconditionErrorf creates a CliniaError with type ErrorTypeFailedPrecondition and a formatted message
func FailedPreconditionErrorf(format string, args ...any) CliniaError {
	return CliniaError{
		Type:    ErrorTypeFailedPrecondition,
		Message: fmt.Sprintf(format, args...),
	}
}

// InternalErrorf creates a CliniaError with type ErrorTypeInternal and a formatted message
func InternalErrorf(format string, args ...any) CliniaError {
	return CliniaError{
		Type:    ErrorTypeInternal,
		Message: fmt.Sprintf(format, args...),
	}
}

// InvalidArgumentErrorf creates a CliniaError with type ErrorTypeInvalidArgument and a formatted message
func InvalidArgumentErrorf(format string, args ...any) CliniaError {
	return CliniaError{
		Type:    ErrorTypeInvalidArgument,
		Message: fmt.Sprintf(format, args...),
	}
}

// NotFoundErrorf creates a CliniaError with type ErrorTypeNotFound and a formatted message
func NotFoundErrorf(format string, args ...any) CliniaError {
	return CliniaError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

// UnimplementedErrorf creates a CliniaError with type ErrorTypeUnimplemented and a formatted message
func UnimplementedErrorf(format string, args ...any) CliniaError {
	return CliniaError{
		Type:    ErrorTypeUnimplemented,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewInternalError wraps an unexpected error without leaking its message.
func NewInternalError(e error) CliniaError {
	return CliniaError{
		Type:          ErrorTypeInternal,
		Message:       "Internal Error",
		OriginalError: e,
	}
}
