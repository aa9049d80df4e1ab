package notify

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/hedgepair/hedgepair/internal/domain"
	"github.com/hedgepair/hedgepair/internal/ports"
)

// Console implements ports.Notifier. Compact mode prints one line per tick;
// table mode adds a position table when something changed.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole creates a notifier that writes to stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter creates a notifier for tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// NotifyTick renders the state after one engine tick.
func (c *Console) NotifyTick(status ports.TickStatus) {
	now := time.Now().Format("15:04:05")

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] yes %.2f | no %.2f", now, status.YesMid, status.NoMid)

	if pos := status.Position; pos != nil {
		fmt.Fprintf(&sb, " | pos Y %.0f@%.3f N %.0f@%.3f",
			pos.Yes.Qty, pos.Yes.AveragePrice(),
			pos.No.Qty, pos.No.AveragePrice())
		if pos.MinQty() > 0 {
			fmt.Fprintf(&sb, " | pair %.3f", pos.PairCost())
		}
	}
	if status.Triggered != "" {
		fmt.Fprintf(&sb, " | trigger=%s", status.Triggered)
	}
	for _, fill := range status.NewFills {
		fmt.Fprintf(&sb, "\n  >> fill %s %.0f @ %.3f", fill.Side, fill.FilledQty, fill.FilledPrice)
	}
	fmt.Fprintln(c.out, sb.String())

	if c.table && len(status.NewFills) > 0 && status.Position != nil {
		c.printPosition(status.Position)
	}
}

// NotifyStop renders the final stop decision with its details map and the
// session's fill history.
func (c *Console) NotifyStop(stop domain.StopConditionResult, position *domain.PairPosition, fills []domain.Order) {
	fmt.Fprintf(c.out, "\n========================================================\n")
	fmt.Fprintf(c.out, "  SESSION STOPPED: %s\n", stop.Type)
	fmt.Fprintf(c.out, "  %s\n", stop.Reason)
	fmt.Fprintf(c.out, "========================================================\n")

	for k, v := range stop.Details {
		fmt.Fprintf(c.out, "  %-24s %v\n", k+":", v)
	}

	if position != nil {
		c.printPosition(position)
	}
	if len(fills) > 0 {
		c.printFills(fills)
	}
}

func (c *Console) printPosition(pos *domain.PairPosition) {
	table := tablewriter.NewWriter(c.out)
	table.Header("Side", "Qty", "Avg", "Cost")
	table.Append("YES",
		fmt.Sprintf("%.2f", pos.Yes.Qty),
		fmt.Sprintf("%.4f", pos.Yes.AveragePrice()),
		fmt.Sprintf("$%.2f", pos.Yes.Cost),
	)
	table.Append("NO",
		fmt.Sprintf("%.2f", pos.No.Qty),
		fmt.Sprintf("%.4f", pos.No.AveragePrice()),
		fmt.Sprintf("$%.2f", pos.No.Cost),
	)
	table.Append("PAIR",
		fmt.Sprintf("%.2f", pos.MinQty()),
		fmt.Sprintf("%.4f", pos.PairCost()),
		fmt.Sprintf("$%.2f", pos.TotalCost()),
	)
	table.Render()
}

func (c *Console) printFills(fills []domain.Order) {
	fmt.Fprintf(c.out, "\n  Fills (%d):\n", len(fills))
	table := tablewriter.NewWriter(c.out)
	table.Header("Time", "Side", "Filled", "Price", "Cost")
	for _, f := range fills {
		table.Append(
			f.PlacedAt.UTC().Format("15:04:05"),
			f.Side.String(),
			fmt.Sprintf("%.2f", f.FilledQty),
			fmt.Sprintf("%.4f", f.FilledPrice),
			fmt.Sprintf("$%.2f", f.FilledQty*f.FilledPrice),
		)
	}
	table.Render()
}
