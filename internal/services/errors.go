package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors classifying every failure the engine can surface. Callers
// test with errors.Is; the CLI boundary renders them as flat strings.
var (
	ErrMissingCredential = errors.New("missing credential")
	ErrFileNotFound      = errors.New("file not found")
	ErrFileTooLarge      = errors.New("file too large")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrNetwork           = errors.New("network error")
	ErrService           = errors.New("service error")
	ErrMalformedResponse = errors.New("malformed model response")
	ErrEmptyInput        = errors.New("empty input")
	ErrInvalidPreset     = errors.New("invalid preset")
	ErrHostUnavailable   = errors.New("host unavailable")
	ErrStorageIO         = errors.New("storage io error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrService
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsValidation reports whether err is a fail-fast input problem detected
// before any external call or filesystem mutation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrInvalidPreset) ||
		errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrFileTooLarge)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
