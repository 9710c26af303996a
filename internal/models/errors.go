package models

import "errors"

// Document-level failures are fatal and surface to the caller.
// Page-, line-, and field-level failures are absorbed by the pipeline
// with a logged best-effort continuation.
var (
	// ErrDocumentUnreadable means the PDF could not be opened or decoded
	// at all (corrupt, encrypted without a password, or image-only).
	ErrDocumentUnreadable = errors.New("document unreadable")

	// ErrUnsupportedFormat means the input is not a PDF.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)
