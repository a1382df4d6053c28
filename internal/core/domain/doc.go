// Package domain defines the core business entities for newsrank.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Article: A collected news item for one analysis window
//   - TaxonomyEntry: A leaf of the budget-category taxonomy
//   - Classification: An article matched to a taxonomy leaf
//   - CriticalityRecord: An article's policy-severity score
//   - ImpactRecord: An article's composite impact score with sub-scores
//   - CategoryScore: A per-category RFC aggregate across a window range
//   - Run: The audit trail of one pipeline execution
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
