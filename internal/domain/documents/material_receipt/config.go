package material_receipt

import "treefnio/pkg/numerator"

const (
	// NumeratorStrategy defines the numbering strategy for this document type.
	// MaterialReceipt is a primary inventory document, so we use Strict strategy.
	NumeratorStrategy = numerator.StrategyStrict
)
