// Package language provides caption language tag derivation and
// normalization.
//
// All language-related conversions (filename suffix extraction, Chinese
// variant collapsing, BCP 47 canonicalization) are consolidated here to
// avoid duplication across the caption and pipeline packages.
package language
