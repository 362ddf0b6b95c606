package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/yourusername/movetodesktop/internal/command"
	"github.com/yourusername/movetodesktop/internal/desktop"
	"github.com/yourusername/movetodesktop/internal/hotkey"
	"github.com/yourusername/movetodesktop/internal/state"
)

// PrintDesktopsTable prints desktops in display order along with the
// source that listed them
func PrintDesktopsTable(w io.Writer, ids []desktop.ID, source string) {
	table := tablewriter.NewWriter(w)
	table.Header("Index", "Desktop ID", "Source")

	for i, id := range ids {
		table.Append(
			fmt.Sprintf("%d", i),
			id.String(),
			source,
		)
	}

	table.Render()
}

// PrintHistoryTable prints move records, already ordered by the caller
func PrintHistoryTable(w io.Writer, records []state.MoveRecord) {
	table := tablewriter.NewWriter(w)
	table.Header("Time", "Param", "Desktop", "Window", "Root", "Source", "Outcome", "Error")

	for _, rec := range records {
		table.Append(
			rec.Time.Local().Format(time.DateTime),
			fmt.Sprintf("%#04x", rec.Param),
			fmt.Sprintf("%d", rec.Index),
			formatHandle(rec.Window),
			formatHandle(rec.Root),
			dash(rec.Source),
			rec.Outcome,
			truncate(dash(rec.Error), 50),
		)
	}

	table.Render()
}

// PrintBindingsTable prints hotkey bindings
func PrintBindingsTable(w io.Writer, bindings []hotkey.Binding) {
	table := tablewriter.NewWriter(w)
	table.Header("Keys", "Desktop", "Param")

	for _, b := range bindings {
		table.Append(
			b.Combo.String(),
			fmt.Sprintf("%d", b.Desktop),
			fmt.Sprintf("%#04x", command.Signature|uint32(b.Desktop)),
		)
	}

	table.Render()
}

// Helper functions

// truncate limits s to maxLen runes, including the ellipsis
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func formatHandle(h uint64) string {
	if h == 0 {
		return "-"
	}
	return fmt.Sprintf("%#x", h)
}
