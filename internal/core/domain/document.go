package domain

import (
	"strings"
	"time"
)

// FileKind identifies the format of a corpus file.
type FileKind string

// Supported file kinds.
const (
	FileKindPDF     FileKind = "pdf"
	FileKindDOC     FileKind = "doc"
	FileKindDOCX    FileKind = "docx"
	FileKindTXT     FileKind = "txt"
	FileKindUnknown FileKind = "unknown"
)

// AllFileKinds lists the supported kinds in display order.
func AllFileKinds() []FileKind {
	return []FileKind{FileKindPDF, FileKindDOC, FileKindDOCX, FileKindTXT}
}

// ParseFileKind maps a string (with or without a leading dot) to a FileKind.
// Unrecognised values map to FileKindUnknown.
func ParseFileKind(s string) FileKind {
	switch FileKind(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))) {
	case FileKindPDF:
		return FileKindPDF
	case FileKindDOC:
		return FileKindDOC
	case FileKindDOCX:
		return FileKindDOCX
	case FileKindTXT:
		return FileKindTXT
	default:
		return FileKindUnknown
	}
}

// IsSupported returns true if text can be extracted from this kind.
func (k FileKind) IsSupported() bool {
	return k != FileKindUnknown && ParseFileKind(string(k)) == k
}

// String returns the string representation.
func (k FileKind) String() string {
	return string(k)
}

// Document represents a file discovered in the corpus folder.
// The filename is the natural key correlating files with records.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Filename is the base name of the file within the corpus folder.
	Filename string

	// FilePath is the location the file was discovered at.
	FilePath string

	// Kind is the detected file format.
	Kind FileKind

	// Size is the file size in bytes.
	Size int64

	// Processed is true once content has been extracted and persisted.
	Processed bool

	// CreatedAt is when the document was first discovered.
	CreatedAt time.Time

	// UpdatedAt is when the record last changed.
	UpdatedAt time.Time

	// Content is populated when the document is loaded together with its content.
	Content *DocumentContent
}

// Title returns the display title used for title similarity.
func (d *Document) Title() string {
	return d.Filename
}

// DocumentContent holds the derived content of a document.
// It is replaced wholesale whenever the document is reprocessed.
type DocumentContent struct {
	// DocumentID links to the owning Document.
	DocumentID string

	// RawText is the full extracted text.
	RawText string

	// Summary is the extractive summary.
	Summary string

	// Keywords is a set of key phrases. Order carries no meaning.
	Keywords []string

	// WordCount is the number of whitespace separated tokens in RawText.
	WordCount int

	// ProcessedAt is when the content was generated.
	ProcessedAt time.Time
}

// ProcessingResult is the output of feature derivation for one document.
type ProcessingResult struct {
	RawText   string
	Summary   string
	Keywords  []string
	WordCount int
}

// ToContent converts the result into content owned by documentID.
func (r ProcessingResult) ToContent(documentID string, at time.Time) DocumentContent {
	keywords := make([]string, len(r.Keywords))
	copy(keywords, r.Keywords)
	return DocumentContent{
		DocumentID:  documentID,
		RawText:     r.RawText,
		Summary:     r.Summary,
		Keywords:    keywords,
		WordCount:   r.WordCount,
		ProcessedAt: at,
	}
}

// CountWords returns the number of whitespace separated tokens in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// DocumentStats summarises the corpus state.
type DocumentStats struct {
	// Total is the number of known documents.
	Total int

	// Processed is the number of processed documents.
	Processed int

	// ByKind holds total and processed counts per file kind.
	ByKind map[FileKind]KindStats
}

// KindStats holds counts for a single file kind.
type KindStats struct {
	Total     int
	Processed int
}

// ProcessedPercentage returns the share of processed documents, rounded to 2 decimals.
func (s DocumentStats) ProcessedPercentage() float64 {
	if s.Total == 0 {
		return 0
	}
	return roundTo(float64(s.Processed)/float64(s.Total)*100, 2)
}
