package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Render writes the report in the requested format: "table" (default),
// "json", or "csv".
func Render(w io.Writer, r *Report, format string) error {
	switch format {
	case "json":
		return renderJSON(w, r)
	case "csv":
		return renderCSV(w, r)
	case "", "table":
		return renderTable(w, r)
	default:
		return fmt.Errorf("unknown output format %q (expected table, json, or csv)", format)
	}
}

var header = []string{"group", "field", "source_value", "target_value", "pct_diff", "status"}

func renderTable(w io.Writer, r *Report) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(header))
	for i, col := range header {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, fr := range r.Results {
		t.AppendRow(table.Row{
			fr.Group,
			fr.Alias,
			formatValue(fr.SourceValue),
			formatValue(fr.TargetValue),
			formatPctDiff(fr.PctDiff),
			string(fr.Status),
		})
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "%d compared, %d failed (run %s in %s)\n",
		len(r.Results), r.Failed(), r.RunID, r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))
	return nil
}

func renderJSON(w io.Writer, r *Report) error {
	type jsonResult struct {
		Group       string   `json:"group,omitempty"`
		Field       string   `json:"field"`
		SourceValue any      `json:"source_value"`
		TargetValue any      `json:"target_value"`
		PctDiff     *float64 `json:"pct_diff,omitempty"`
		Status      string   `json:"status"`
	}
	out := struct {
		RunID   string       `json:"run_id"`
		Passed  int          `json:"passed"`
		Failed  int          `json:"failed"`
		Results []jsonResult `json:"results"`
	}{
		RunID:  r.RunID,
		Passed: r.Passed(),
		Failed: r.Failed(),
	}
	for _, fr := range r.Results {
		out.Results = append(out.Results, jsonResult{
			Group:       fr.Group,
			Field:       fr.Alias,
			SourceValue: normalizeJSON(fr.SourceValue),
			TargetValue: normalizeJSON(fr.TargetValue),
			PctDiff:     fr.PctDiff,
			Status:      string(fr.Status),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func renderCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, fr := range r.Results {
		record := []string{
			fr.Group,
			fr.Alias,
			formatValue(fr.SourceValue),
			formatValue(fr.TargetValue),
			formatPctDiff(fr.PctDiff),
			string(fr.Status),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatPctDiff(d *float64) string {
	if d == nil {
		return ""
	}
	return strconv.FormatFloat(*d, 'f', 4, 64)
}

// normalizeJSON converts driver byte slices to strings so JSON output stays
// readable.
func normalizeJSON(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
