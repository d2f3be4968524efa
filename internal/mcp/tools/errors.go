package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/usestring/jsonlscan/internal/source"
)

// Error codes for MCP tool responses.
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeSourceUnavailable = "SOURCE_UNAVAILABLE"
	ErrCodeScanFailed        = "SCAN_FAILED"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapScanError converts a scan failure to a coded error.
func WrapScanError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	switch {
	case errors.As(err, &coded):
		return coded
	case errors.Is(err, source.ErrSourceUnavailable):
		coded = &CodedError{
			Code:    ErrCodeSourceUnavailable,
			Message: "scan root cannot be read",
			Cause:   err,
		}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		coded = &CodedError{
			Code:    ErrCodeScanFailed,
			Message: "scan interrupted",
			Cause:   err,
		}
	default:
		coded = &CodedError{
			Code:    ErrCodeScanFailed,
			Message: "scan failed",
			Cause:   err,
		}
	}

	slog.Warn("scan error",
		slog.String("code", coded.Code),
		slog.String("error", err.Error()),
	)

	return coded
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
