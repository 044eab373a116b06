// Package unify turns noisy raw source batches into a clean unified record
// set: it validates and type-normalizes fields, merges republished
// duplicates under a fuzzy title key, and maps free-text department names
// onto a controlled vocabulary.
package unify
