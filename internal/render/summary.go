package render

import (
	"fmt"
	"io"

	"TradingDashboard/internal/dashboard"
	"TradingDashboard/internal/model"

	"github.com/olekukonko/tablewriter"
)

// Summary prints one row per panel: series, readiness, points, extent and pinned interval.
func Summary(w io.Writer, snap *dashboard.Snapshot) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Panel", "Series", "State", "Points", "Extent", "Axis interval"})
	table.SetAutoWrapText(false)
	for _, p := range []dashboard.PanelSnapshot{snap.Price, snap.Volume} {
		table.Append([]string{
			p.Title,
			p.Series,
			p.State.String(),
			fmt.Sprintf("%d", p.Points),
			formatExtent(p.Extent),
			formatInterval(p.Interval),
		})
	}
	table.Render()
}

func formatExtent(e *model.Extent) string {
	if e == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f .. %.2f", e.Min, e.Max)
}

func formatInterval(iv *model.AxisInterval) string {
	if iv == nil {
		return "auto"
	}
	return fmt.Sprintf("%.2f .. %.2f", iv.Start, iv.End)
}
