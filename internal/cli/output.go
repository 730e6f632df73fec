package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"sigs.k8s.io/yaml"

	"github.com/esanchezm/megaverse/internal/reconciler"
	mvstrings "github.com/esanchezm/megaverse/pkg/strings"
)

// maxTokenLen bounds goal tokens shown in the plan table.
const maxTokenLen = 32

// OutputFormat represents the desired output format
type OutputFormat string

const (
	OutputTable OutputFormat = "table" // Rich table output
	OutputJSON  OutputFormat = "json"  // JSON output
	OutputYAML  OutputFormat = "yaml"  // YAML output
)

// ParseOutputFormat validates an --output value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case OutputTable, OutputJSON, OutputYAML:
		return f, nil
	case "":
		return OutputTable, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use table, json or yaml)", s)
	}
}

// createTable creates a new table with standard styling
func createTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

// RenderPlan writes the planned changes in the requested format.
func RenderPlan(w io.Writer, plan *reconciler.Plan, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, plan)
	case OutputYAML:
		return writeYAML(w, plan)
	}

	if len(plan.Actions) == 0 {
		fmt.Fprintln(w, FormatSuccess(fmt.Sprintf("Map is reconciled (%dx%d, nothing to do)", plan.Rows, plan.Columns)))
		return nil
	}

	t := createTable(w)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("ROW"),
		text.FgHiCyan.Sprint("COLUMN"),
		text.FgHiCyan.Sprint("ACTION"),
		text.FgHiCyan.Sprint("CURRENT"),
		text.FgHiCyan.Sprint("GOAL"),
	})
	for _, a := range plan.Actions {
		t.AppendRow(table.Row{a.Row, a.Column, formatActionType(a.Type), a.From, mvstrings.Snippet(a.Token, maxTokenLen)})
	}
	t.Render()

	fmt.Fprintf(w, "\n%s %s %s, %s %s, %s %s\n",
		text.FgHiBlue.Sprint("Changes:"),
		text.FgHiWhite.Sprint(len(plan.Actions)),
		text.FgHiBlue.Sprint("cells"),
		text.FgHiWhite.Sprint(plan.Calls()),
		text.FgHiBlue.Sprint("API calls"),
		text.FgHiWhite.Sprint(plan.Reconciled),
		text.FgHiBlue.Sprint("already reconciled"))
	return nil
}

func formatActionType(t reconciler.ActionType) string {
	switch t {
	case reconciler.ActionSet:
		return text.FgGreen.Sprint("set")
	case reconciler.ActionClean:
		return text.FgYellow.Sprint("clean")
	case reconciler.ActionSkipUnknown:
		return text.FgRed.Sprint("skip (unknown)")
	default:
		return string(t)
	}
}

// runReport is the machine-readable form of a finished run.
type runReport struct {
	Summary *reconciler.Summary                 `json:"summary"`
	Metrics reconciler.ReconcilerMetricsSummary `json:"metrics"`
}

// RenderSummary writes the outcome of a run and its per-kind call counts.
func RenderSummary(w io.Writer, summary *reconciler.Summary, metrics reconciler.ReconcilerMetricsSummary, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, runReport{Summary: summary, Metrics: metrics})
	case OutputYAML:
		return writeYAML(w, runReport{Summary: summary, Metrics: metrics})
	}

	if len(metrics.PerKind) > 0 {
		t := createTable(w)
		t.AppendHeader(table.Row{
			text.FgHiCyan.Sprint("KIND"),
			text.FgHiCyan.Sprint("SETS"),
			text.FgHiCyan.Sprint("CLEANS"),
			text.FgHiCyan.Sprint("FAILURES"),
		})
		for _, k := range metrics.PerKind {
			t.AppendRow(table.Row{k.Kind, k.Sets, k.Cleans, k.Failures})
		}
		t.AppendFooter(table.Row{"TOTAL", metrics.TotalSets, metrics.TotalCleans, metrics.TotalFailures})
		t.Render()
	}

	msg := fmt.Sprintf("Run %s reconciled candidate %s in %s: %d set, %d cleaned, %d already reconciled",
		summary.RunID, summary.CandidateID, summary.Duration.Round(time.Millisecond),
		summary.Sets, summary.Cleans, summary.Reconciled)
	fmt.Fprintln(w, FormatSuccess(msg))

	if summary.Unknown > 0 {
		fmt.Fprintln(w, FormatWarning(fmt.Sprintf("%d cell(s) with an unknown goal value were skipped", summary.Unknown)))
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to format output as YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}
