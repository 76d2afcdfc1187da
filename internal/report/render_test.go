package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *Report {
	diff := -9.0909
	started := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return &Report{
		RunID:      "run-1",
		StartedAt:  started,
		FinishedAt: started.Add(120 * time.Millisecond),
		Results: []FieldResult{
			{Group: "region=EU", Alias: "sum_amount", SourceValue: int64(22), TargetValue: int64(20), PctDiff: &diff, Status: StatusFail},
			{Group: "region=US", Alias: "sum_amount", SourceValue: int64(7), TargetValue: int64(7), Status: StatusSuccess},
		},
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), "table"))

	out := buf.String()
	assert.Contains(t, out, "sum_amount")
	assert.Contains(t, out, "region=EU")
	assert.Contains(t, out, "fail")
	assert.Contains(t, out, "2 compared, 1 failed")
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), "json"))

	var out struct {
		RunID   string `json:"run_id"`
		Passed  int    `json:"passed"`
		Failed  int    `json:"failed"`
		Results []struct {
			Field  string `json:"field"`
			Status string `json:"status"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "run-1", out.RunID)
	assert.Equal(t, 1, out.Passed)
	assert.Equal(t, 1, out.Failed)
	require.Len(t, out.Results, 2)
	assert.Equal(t, "sum_amount", out.Results[0].Field)
}

func TestRenderCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), "csv"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "group,field,source_value,target_value,pct_diff,status", lines[0])
	assert.Contains(t, lines[1], "region=EU")
	assert.Contains(t, lines[1], "-9.0909")
}

func TestRender_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, sampleReport(), "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestRender_DefaultFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), ""))
	assert.Contains(t, buf.String(), "sum_amount")
}
