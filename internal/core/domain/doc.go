// Package domain defines the core business entities for Juris.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A file discovered in the corpus folder
//   - DocumentContent: Extracted text, summary and keywords of a document
//   - FileKind: The detected format of a corpus file
//   - ScheduledTask: A recurring background job
//   - Device: A user device record subject to periodic cleanup
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
