package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMetadata marks failures reading or parsing catalog sources.
	ErrMetadata = errors.New("metadata error")
	// ErrConfiguration marks unusable configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrJournal marks run journal storage failures.
	ErrJournal = errors.New("journal error")
	// ErrRename marks failures applying a planned rename.
	ErrRename = errors.New("rename failure")
	// ErrLocked marks a second instance contending for the apply lock.
	ErrLocked = errors.New("another instance is active")
	// ErrInternal marks failures with no more specific classification.
	ErrInternal = errors.New("internal error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrInternal
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
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
		return "failure"
	}
	return strings.Join(parts, ": ")
}
