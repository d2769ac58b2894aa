// Package ports defines the collaborator interfaces at the engine boundary.
// The engine consumes materialized tables and emits in-memory records; file
// parsing and persistence live behind these interfaces.
package ports

import (
	"context"

	"vizier/domain/core"
	"vizier/domain/table"
)

// TableSource supplies a materialized tabular dataset for an identifier.
// Implementations must guarantee stable column ordering and the canonical
// empty marker for missing cells, and are expected to cache per identifier.
type TableSource interface {
	Table(ctx context.Context, id core.DatasetID) (*table.Table, error)
}

// ProgressReporter receives incremental progress from long-running stages.
// Reporting is best-effort; stages never block on it.
type ProgressReporter interface {
	Progress(stage string, datasetID core.DatasetID, percent float64, message string)
}

// NopProgress discards progress reports.
type NopProgress struct{}

// Progress implements ProgressReporter.
func (NopProgress) Progress(string, core.DatasetID, float64, string) {}
