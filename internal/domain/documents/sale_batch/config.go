package sale_batch

import "treefnio/pkg/numerator"

const (
	// NumeratorStrategy defines the numbering strategy for this document type.
	// Batch numbers surface in the UI and gaps confuse operators, so Strict.
	NumeratorStrategy = numerator.StrategyStrict
)
