// Package main provides the entry point for the regwatch CLI.
//
// Regwatch unifies scraped Chinese AI policy documents from multiple
// regulators, removes duplicates, filters for AI relevance, and annotates
// each surviving policy with a quantitative regulatory assessment.
//
// Usage:
//
//	regwatch run
//	regwatch alert --threshold 8.5
//	regwatch trends --granularity quarter
//
// See --help for all available options.
package main

// main is the entry point for regwatch.
func main() {
	Execute()
}
