// Package relation defines cross-dataset field relationship records inferred
// from value-set overlap.
package relation

import (
	"vizier/domain/core"
)

// Cardinality classifies a relationship by relative set sizes.
type Cardinality string

const (
	OneToOne  Cardinality = "11"
	OneToMany Cardinality = "1N"
	ManyToOne Cardinality = "N1"
)

// Relationship links a field in one dataset to a field in another. Distance
// is the Jaccard overlap ratio of the two unique-value sets, in [0, 1].
type Relationship struct {
	SourceDatasetID core.DatasetID `json:"source_dataset_id"`
	SourceField     string         `json:"source_field"`
	TargetDatasetID core.DatasetID `json:"target_dataset_id"`
	TargetField     string         `json:"target_field"`
	Distance        float64        `json:"distance"`
	Cardinality     Cardinality    `json:"cardinality"`
}
