// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/juris/internal/core/domain"
)

// SearchCompleted carries one page of search results back to the model.
type SearchCompleted struct {
	Query    string
	Response *domain.SearchResponse
	Err      error
}

// CompletionsLoaded carries completions for the word being typed.
type CompletionsLoaded struct {
	Prefix string
	Words  []string
	Err    error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the search input and results view.
	ViewSearch
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewDocuments lists the corpus.
	ViewDocuments
	// ViewDocContent shows extracted text.
	ViewDocContent
	// ViewDocDetails shows metadata, summary and similar documents.
	ViewDocDetails
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewHelp:
		return "help"
	case ViewDocuments:
		return "documents"
	case ViewDocContent:
		return "doc_content"
	case ViewDocDetails:
		return "doc_details"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// DocumentsLoaded carries one page of the document list.
type DocumentsLoaded struct {
	Documents  []domain.Document
	Pagination domain.Pagination
	Err        error
}

// DocumentSelected asks to show a document's text.
// Back is the view to return to.
type DocumentSelected struct {
	Document domain.Document
	Back     ViewType
}

// DetailsRequested asks to show a document's details.
type DetailsRequested struct {
	Document domain.Document
	Back     ViewType
}

// DocumentLoaded carries a document with its content.
type DocumentLoaded struct {
	DocumentID string
	Document   *domain.Document
	Err        error
}

// SimilarLoaded carries documents related to DocumentID.
type SimilarLoaded struct {
	DocumentID string
	Similar    []domain.SimilarDocument
	Err        error
}

// DocumentReprocessed signals a single document was processed again.
type DocumentReprocessed struct {
	DocumentID string
	Err        error
}

// ProcessRequested asks for a corpus processing run.
type ProcessRequested struct{}

// ProcessingCompleted carries the outcome of a processing run.
type ProcessingCompleted struct {
	Report domain.ProcessingReport
	Err    error
}

// StatsLoaded carries corpus processing progress for the menu.
type StatsLoaded struct {
	Stats *domain.DocumentStats
	Err   error
}
