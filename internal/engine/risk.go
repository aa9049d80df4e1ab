package engine

import (
	"fmt"
	"time"

	"github.com/hedgepair/hedgepair/config"
	"github.com/hedgepair/hedgepair/internal/domain"
)

// exposureState is the unhedged-duration clock, an explicit two-state
// machine driven solely by which sides hold units. The transition table
// here is the only place the clock starts or resets.
type exposureState struct {
	unhedged bool
	side     domain.Side
	since    time.Time
}

// observe applies one tick's position reading and returns the updated
// state. A side flip restarts the clock from scratch; becoming hedged or
// flat clears it.
func (s exposureState) observe(pp *domain.PairPosition, now time.Time) exposureState {
	side, unhedged := pp.IsUnhedged()
	if !unhedged {
		return exposureState{}
	}
	if !s.unhedged || s.side != side {
		return exposureState{unhedged: true, side: side, since: now}
	}
	return s
}

// RiskController evaluates every stop condition in strict priority order
// and owns the unhedged-exposure clock. It mutates only its own state,
// never the position.
type RiskController struct {
	cfg   config.RiskConfig
	state exposureState
	now   func() time.Time
}

// NewRiskController creates a controller with the given limits.
func NewRiskController(cfg config.RiskConfig) *RiskController {
	return &RiskController{cfg: cfg, now: utcNow}
}

// utcNow pins every clock reading to UTC so naive and aware timestamps are
// never compared across zones.
func utcNow() time.Time {
	return time.Now().UTC()
}

// CheckStopConditions evaluates all stop conditions against the current
// position and returns the first matching reason. book is the latest
// snapshot, nil when none arrived this tick; settlement is the market's end
// time, zero when unknown. Calling twice with unchanged inputs and no
// elapsed time yields the same result and mutates nothing further.
func (rc *RiskController) CheckStopConditions(pp *domain.PairPosition, book *domain.OrderBook, settlement time.Time) domain.StopConditionResult {
	now := rc.now().UTC()

	// 1. Profit lock: both sides held and the scarce side out-earns the
	// total spend. Nothing left to do but stop and wait for settlement.
	if pp.IsProfitable() {
		return domain.StopConditionResult{
			ShouldStop: true,
			Type:       domain.StopProfitLocked,
			Reason:     "profit locked, stopping",
			Details: map[string]any{
				"min_qty":    pp.MinQty(),
				"total_cost": pp.TotalCost(),
				"profit":     pp.MinQty() - pp.TotalCost(),
			},
		}
	}

	// 2. Unhedged exposure: duration is the only control enforced here.
	// Pair-cost and loss checks are skipped on purpose while unhedged —
	// the synthetic opposite-side price they would need is not a price
	// anything can actually be bought at.
	rc.state = rc.state.observe(pp, now)
	if rc.state.unhedged {
		elapsed := now.Sub(rc.state.since)
		if elapsed > rc.cfg.MaxUnhedged() {
			return domain.StopConditionResult{
				ShouldStop: true,
				Type:       domain.StopUnhedgedTimeout,
				Reason: fmt.Sprintf("unhedged timeout: %ds with only %s (max %ds)",
					int(elapsed.Seconds()), rc.state.side, rc.cfg.MaxUnhedgedSeconds),
				Details: map[string]any{
					"side":             rc.state.side.String(),
					"duration_seconds": elapsed.Seconds(),
					"max_allowed":      rc.cfg.MaxUnhedgedSeconds,
				},
			}
		}
	} else if pp.MinQty() > 0 && book != nil {
		// 3. Hedged: both averages come from real fills, so the realized
		// pair cost is checked strictly. Without a snapshot this tick the
		// check waits; the numbers will not have moved without fills.
		pairCost := pp.PairCost()
		if pairCost > rc.cfg.MaxPairCost {
			return domain.StopConditionResult{
				ShouldStop: true,
				Type:       domain.StopPairCostHigh,
				Reason: fmt.Sprintf("pair cost too high: %.4f > %.4f, hedged position cannot profit",
					pairCost, rc.cfg.MaxPairCost),
				Details: map[string]any{
					"pair_cost":   pairCost,
					"max_allowed": rc.cfg.MaxPairCost,
					"yes_avg":     pp.Yes.AveragePrice(),
					"no_avg":      pp.No.AveragePrice(),
				},
			}
		}
	}

	// 4. Total capital across both sides.
	if total := pp.TotalCost(); total > rc.cfg.MaxTotalCapital {
		return domain.StopConditionResult{
			ShouldStop: true,
			Type:       domain.StopMaxCapital,
			Reason: fmt.Sprintf("total capital exceeded: $%.2f > $%.2f",
				total, rc.cfg.MaxTotalCapital),
			Details: map[string]any{
				"total_cost":  total,
				"max_allowed": rc.cfg.MaxTotalCapital,
			},
		}
	}

	// 5. Per-side window cap, each side independent.
	for _, side := range []domain.Side{domain.SideYes, domain.SideNo} {
		if cost := pp.Side(side).Cost; cost > rc.cfg.MaxPosPerWindow {
			return domain.StopConditionResult{
				ShouldStop: true,
				Type:       domain.StopMaxPosPerWindow,
				Reason: fmt.Sprintf("%s position cost exceeded: $%.2f > $%.2f",
					side, cost, rc.cfg.MaxPosPerWindow),
				Details: map[string]any{
					"side":        side.String(),
					"cost":        cost,
					"max_allowed": rc.cfg.MaxPosPerWindow,
				},
			}
		}
	}

	// 6. Settlement proximity.
	if !settlement.IsZero() {
		remaining := settlement.UTC().Sub(now)
		if remaining <= rc.cfg.SettlementBuffer() {
			return domain.StopConditionResult{
				ShouldStop: true,
				Type:       domain.StopSettlementNear,
				Reason: fmt.Sprintf("settlement near: %ds remaining (buffer %ds)",
					int(remaining.Seconds()), rc.cfg.SettlementBufferSeconds),
				Details: map[string]any{
					"time_to_settlement": remaining.Seconds(),
					"buffer_seconds":     rc.cfg.SettlementBufferSeconds,
				},
			}
		}
	}

	return domain.Continue()
}

// Reset clears the exposure clock for a new market window.
func (rc *RiskController) Reset() {
	rc.state = exposureState{}
}
