// Package report aligns and compares the two executed validation result sets.
//
// Alignment works on the shared aliases: rows are joined on the grouping
// aliases, then each aggregate alias is compared between the source and
// target row it appears in.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ResultSet holds the scanned rows of one executed validation query.
// Each row maps output aliases to their scanned values.
type ResultSet struct {
	Columns []string
	Rows    []map[string]any
}

// Status is the outcome of one field comparison.
type Status string

const (
	// StatusSuccess means source and target values matched.
	StatusSuccess Status = "success"
	// StatusFail means the values differed or a group was missing on one side.
	StatusFail Status = "fail"
)

// FieldResult is the comparison outcome for one aggregate alias within one
// group (or the whole table for ungrouped validations).
type FieldResult struct {
	// Group labels the grouping key values, e.g. "region=EU". Empty for
	// ungrouped validations.
	Group string

	// Alias is the shared field alias being compared.
	Alias string

	SourceValue any
	TargetValue any

	// PctDiff is the percent difference relative to the source value.
	// Nil when the values are non-numeric or the source value is zero.
	PctDiff *float64

	Status Status
}

// Report is the outcome of one validation run.
type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time

	Results []FieldResult
}

// Passed counts successful field comparisons.
func (r *Report) Passed() int {
	n := 0
	for _, fr := range r.Results {
		if fr.Status == StatusSuccess {
			n++
		}
	}
	return n
}

// Failed counts failed field comparisons.
func (r *Report) Failed() int {
	return len(r.Results) - r.Passed()
}

// Success reports whether every field comparison passed.
func (r *Report) Success() bool {
	return r.Failed() == 0
}

// Compare joins the two result sets on the grouping aliases and compares
// every aggregate alias between them. Groups present on only one side fail
// with a nil value recorded for the missing side. Row order follows the
// source result set, with target-only groups appended in target order.
func Compare(source, target *ResultSet, groupAliases, aggregateAliases []string) []FieldResult {
	srcByKey := indexByGroup(source, groupAliases)
	tgtByKey := indexByGroup(target, groupAliases)

	var results []FieldResult
	seen := make(map[string]struct{}, len(source.Rows))

	for _, row := range source.Rows {
		key := groupKey(row, groupAliases)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		results = append(results, compareGroup(groupLabel(row, groupAliases), srcByKey[key], tgtByKey[key], aggregateAliases)...)
	}

	for _, row := range target.Rows {
		key := groupKey(row, groupAliases)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		results = append(results, compareGroup(groupLabel(row, groupAliases), nil, row, aggregateAliases)...)
	}

	return results
}

// compareGroup compares all aggregate aliases for one joined group.
func compareGroup(label string, srcRow, tgtRow map[string]any, aggregateAliases []string) []FieldResult {
	results := make([]FieldResult, 0, len(aggregateAliases))
	for _, alias := range aggregateAliases {
		var srcVal, tgtVal any
		if srcRow != nil {
			srcVal = srcRow[alias]
		}
		if tgtRow != nil {
			tgtVal = tgtRow[alias]
		}

		fr := FieldResult{
			Group:       label,
			Alias:       alias,
			SourceValue: srcVal,
			TargetValue: tgtVal,
			Status:      StatusFail,
		}

		switch {
		case srcRow == nil || tgtRow == nil:
			// Group missing on one side stays a failure.
		case valuesEqual(srcVal, tgtVal):
			fr.Status = StatusSuccess
			fr.PctDiff = pctDiff(srcVal, tgtVal)
		default:
			fr.PctDiff = pctDiff(srcVal, tgtVal)
		}

		results = append(results, fr)
	}
	return results
}

// indexByGroup maps each row by its grouping key. The first row wins on
// duplicate keys.
func indexByGroup(rs *ResultSet, groupAliases []string) map[string]map[string]any {
	idx := make(map[string]map[string]any, len(rs.Rows))
	for _, row := range rs.Rows {
		key := groupKey(row, groupAliases)
		if _, ok := idx[key]; !ok {
			idx[key] = row
		}
	}
	return idx
}

func groupKey(row map[string]any, groupAliases []string) string {
	parts := make([]string, len(groupAliases))
	for i, alias := range groupAliases {
		parts[i] = formatValue(row[alias])
	}
	return strings.Join(parts, "\x1f")
}

func groupLabel(row map[string]any, groupAliases []string) string {
	if len(groupAliases) == 0 {
		return ""
	}
	parts := make([]string, len(groupAliases))
	for i, alias := range groupAliases {
		parts[i] = alias + "=" + formatValue(row[alias])
	}
	return strings.Join(parts, ", ")
}

// valuesEqual compares two scanned values, numerically when both sides are
// numeric and textually otherwise.
func valuesEqual(a, b any) bool {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return af == bf
	}
	return formatValue(a) == formatValue(b)
}

// pctDiff returns the percent difference of target relative to source, or
// nil when either value is non-numeric or the source value is zero.
func pctDiff(src, tgt any) *float64 {
	s, sok := toFloat(src)
	t, tok := toFloat(tgt)
	if !sok || !tok || s == 0 {
		return nil
	}
	d := (t - s) / s * 100
	return &d
}

// toFloat normalizes the numeric types database/sql drivers hand back.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case []byte:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}
