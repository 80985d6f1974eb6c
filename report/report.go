// Package report renders selftest and demo output as terminal
// tables, the teacher's go-pretty reporting style generalized from
// SIM card data dumps to protocol check results.
package report

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"hkds/selftest"
)

var (
	colorHeader  = text.Colors{text.FgCyan, text.Bold}
	colorSuccess = text.Colors{text.FgGreen}
	colorError   = text.Colors{text.FgRed}
)

func newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	style := table.StyleRounded
	style.Color.Header = colorHeader
	style.Options.SeparateRows = false
	t.SetStyle(style)
	t.SetTitle(title)
	return t
}

// PrintSelftestResults renders the selftest suite as a table and
// returns false if any check failed.
func PrintSelftestResults(results []selftest.Result) bool {
	t := newTable("HKDS SELF-TEST")
	t.AppendHeader(table.Row{"Check", "Result", "Detail"})

	allPassed := true
	for _, r := range results {
		status := colorSuccess.Sprint("PASS")
		if !r.Pass {
			status = colorError.Sprint("FAIL")
			allPassed = false
		}
		t.AppendRow(table.Row{r.Name, status, r.Detail})
	}
	t.Render()

	fmt.Println()
	if allPassed {
		fmt.Println(colorSuccess.Sprint("all checks passed"))
	} else {
		fmt.Println(colorError.Sprint("one or more checks failed"))
	}
	return allPassed
}

// PrintPacketTrace renders a labeled sequence of hex-encoded packets,
// used by the demo command to show a full provisioning/transaction
// walkthrough.
func PrintPacketTrace(rows [][2]string) {
	t := newTable("HKDS DEMO TRACE")
	t.AppendHeader(table.Row{"Step", "Bytes (hex)"})
	for _, r := range rows {
		t.AppendRow(table.Row{r[0], r[1]})
	}
	t.Render()
}
