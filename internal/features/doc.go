// Package features derives a summary, keywords and a word count from
// extracted document text.
//
// Linguistic work is delegated to a driven.LanguageAnalyzer. When no
// analyzer is configured, or analysis fails, derivation degrades: the
// summary becomes a prefix of the text and the keyword set is empty.
// Derivation itself never fails.
package features
