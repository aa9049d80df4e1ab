package domain

// StopType identifies which risk check fired.
type StopType string

const (
	StopProfitLocked    StopType = "profit_locked"
	StopUnhedgedTimeout StopType = "unhedged_timeout"
	StopPairCostHigh    StopType = "pair_cost_too_high"
	StopMaxCapital      StopType = "max_capital_exceeded"
	StopMaxPosPerWindow StopType = "max_pos_exceeded"
	StopSettlementNear  StopType = "settlement_time_near"
)

// StopConditionResult is the outcome of one risk evaluation. It is
// recomputed every tick and never persisted. Details carries the numbers
// behind the decision so a presentation layer can render a drill-down
// without re-deriving the diagnosis.
type StopConditionResult struct {
	ShouldStop bool
	Type       StopType
	Reason     string
	Details    map[string]any
}

// Continue is the all-checks-passed result.
func Continue() StopConditionResult {
	return StopConditionResult{Reason: "all risk checks passed"}
}
