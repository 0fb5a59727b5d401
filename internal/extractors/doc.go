// Package extractors turns corpus files into plain text.
//
// Detect identifies a file's kind from its content, falling back to the
// file extension. Registry dispatches extraction to the per-format
// extractors in the subpackages:
//
//   - pdf: PDF documents
//   - docx: Office Open XML word processing documents
//   - msdoc: legacy binary Word documents, through an external converter
//   - plaintext: text files, UTF-8 with a Latin-1 fallback
//
// Every failure, panic or timeout during extraction is returned as an
// error value.
package extractors
