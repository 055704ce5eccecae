package domain

import "errors"

var (
	// ErrSourceUnavailable signals that the organization store could not be read.
	ErrSourceUnavailable = errors.New("organization source unavailable")
	// ErrOrganizationNotFound signals a missing organization document.
	ErrOrganizationNotFound = errors.New("organization not found")
	// ErrInvalidRequest signals malformed caller input (coordinates, radius, upload).
	ErrInvalidRequest = errors.New("invalid request")
	// ErrCompletionProviderError signals a completion provider failure.
	ErrCompletionProviderError = errors.New("completion provider error")
	// ErrDocumentEmpty signals a PDF with no extractable text.
	ErrDocumentEmpty = errors.New("document has no extractable text")
)
