package driven

import (
	"context"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// Extractor pulls plain text out of files of one or more kinds.
type Extractor interface {
	// SupportedKinds returns the file kinds this extractor handles.
	SupportedKinds() []domain.FileKind

	// Extract returns the text of the file at path.
	// Empty text is returned as-is; callers decide whether it counts as a failure.
	Extract(ctx context.Context, path string) (string, error)
}

// TextExtractor detects file kinds and dispatches to the matching extractor.
type TextExtractor interface {
	// Detect determines the kind of the file at path.
	Detect(path string) domain.FileKind

	// Extract returns trimmed, non-empty text or an error.
	// Unknown kinds fail with domain.ErrUnsupportedType, and empty text with
	// domain.ErrExtractionFailed.
	Extract(ctx context.Context, path string, kind domain.FileKind) (string, error)
}

// LegacyDocConverter converts legacy binary .doc files to text.
type LegacyDocConverter interface {
	// Convert returns the text content of the .doc file at path.
	Convert(ctx context.Context, path string) (string, error)

	// Available reports whether the converter can run.
	// Returns domain.ErrConverterUnavailable when it cannot.
	Available() error
}

// CommandRunner executes external commands.
type CommandRunner interface {
	// Run executes name with args and returns its standard output.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
