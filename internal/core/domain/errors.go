package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDocumentNotFound is a lookup failure: the id does not exist.
	// Never conflated with the in-band no-evidence sentinel result.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrInvalidInput covers input-contract violations such as
	// unsupported file types or malformed requests.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoReadableContent is the terminal ingestion failure for a
	// document whose pages yield zero sections.
	ErrNoReadableContent = errors.New("no readable content")

	// ErrTemporary marks transient collaborator failures.
	ErrTemporary = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
