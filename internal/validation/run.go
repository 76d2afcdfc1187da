package validation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/danieldeleo/professional-services-data-validator/internal/report"
	"github.com/danieldeleo/professional-services-data-validator/pkg/adapter"
	"github.com/danieldeleo/professional-services-data-validator/pkg/query"
	"github.com/google/uuid"
)

// Execute compiles and runs both validation queries, then compares the two
// result sets on the shared aliases. The source and target queries touch
// independent state and could run in either order; they are run sequentially
// here since a validation run is not latency sensitive.
func (b *Builder) Execute(ctx context.Context, source, target adapter.Adapter) (*report.Report, error) {
	rep := &report.Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}

	srcQuery, err := b.SourceQuery(source)
	if err != nil {
		return nil, err
	}
	tgtQuery, err := b.TargetQuery(target)
	if err != nil {
		return nil, err
	}

	srcResults, err := executeQuery(ctx, source, srcQuery)
	if err != nil {
		return nil, fmt.Errorf("source query failed: %w", err)
	}
	tgtResults, err := executeQuery(ctx, target, tgtQuery)
	if err != nil {
		return nil, fmt.Errorf("target query failed: %w", err)
	}

	b.logger.Debug("validation queries executed",
		slog.Int("source_rows", len(srcResults.Rows)),
		slog.Int("target_rows", len(tgtResults.Rows)))

	rep.Results = report.Compare(srcResults, tgtResults, b.groupAliases, b.aggregateAliases)
	rep.FinishedAt = time.Now()
	return rep, nil
}

// executeQuery runs one compiled query and scans every row into a map keyed
// by the query's output aliases.
func executeQuery(ctx context.Context, client adapter.Adapter, q *query.CompiledQuery) (*report.ResultSet, error) {
	rows, err := client.Query(ctx, q.SQL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	rs := &report.ResultSet{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(cols))
		for i, col := range cols {
			val := values[i]
			// Convert []byte to string for comparability across drivers
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			row[col] = val
		}
		rs.Rows = append(rs.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rs, nil
}
