// Package analyze implements the deterministic lexical rule engine behind
// regwatch's quantitative annotations: the topical relevance score, the
// regulatory strictness score, topic-domain tagging, enforcement-level
// classification, and the boolean/numeric risk features.
//
// The engine is intentionally not a learned model. All assessments derive
// from fixed keyword tables, so the same input and tables always yield
// byte-identical output. Keyword tables are ordered slices rather than maps:
// the accumulation order of floating-point contributions is part of the
// reproducibility contract.
package analyze
