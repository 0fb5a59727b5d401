// Package similarity scores lexical similarity between texts.
//
// Each comparison fits a TF-IDF model over exactly the two texts being
// compared (lowercased, tokens of two or more word characters, raw term
// counts, smoothed inverse document frequency) and returns the cosine of
// the resulting vectors. Scores lie in [0,1]; empty or token-free input
// scores 0.
//
// Scorer combines per-field similarities of a query against a document's
// title, summary and full text into a weighted overall score.
package similarity
