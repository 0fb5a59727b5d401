package domain

// Analysis is the result of linguistic analysis of a text.
type Analysis struct {
	// Sentences in document order.
	Sentences []string

	// Entities are named entity mentions in document order.
	Entities []string

	// NounPhrases are noun phrase chunks in document order.
	NounPhrases []string
}
