// Package searchindex implements the in-memory inverted index and the
// ranking pipeline behind site search.
//
// An Index is built once from a slice of documents and never mutated.
// Searching is a pure function of the index, the query, the options and
// the reference time used for recency boosts, so any number of goroutines
// may search the same Index concurrently.
//
// Ranking runs in fixed stages:
//
//  1. Tokenize the query (lowercase, split on non-word characters,
//     drop short tokens and stop words).
//  2. Exact matches add tf*idf for every document holding the token.
//  3. Fuzzy matches add tf*idf scaled by length similarity and 0.7 for
//     every indexed term that contains, or is contained in, the token.
//  4. Matching documents are filtered by type, boosted for title,
//     description and recency, stably sorted and truncated.
//
// Terms and postings are kept in insertion order so that floating point
// accumulation happens in the same order on every run.
package searchindex
