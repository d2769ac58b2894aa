// Package field defines the semantic type catalog and per-column field
// property records produced by the inference engine.
package field

import (
	"encoding/json"
	"fmt"

	"vizier/domain/core"
)

// Type is one semantic type from the catalog.
type Type string

const (
	TypeInteger       Type = "integer"
	TypeDecimal       Type = "decimal"
	TypeBoolean       Type = "boolean"
	TypeYear          Type = "year"
	TypeMonth         Type = "month"
	TypeDay           Type = "day"
	TypeLatitude      Type = "latitude"
	TypeLongitude     Type = "longitude"
	TypeCountryCode2  Type = "country_code_2"
	TypeCountryCode3  Type = "country_code_3"
	TypeCountryName   Type = "country_name"
	TypeContinentName Type = "continent_name"
	TypeCity          Type = "city"
	TypeURL           Type = "url"
	TypeDate          Type = "date"
	TypeDatetime      Type = "datetime"
	TypeText          Type = "text"
	TypeString        Type = "string"
)

// GeneralType is the closed coarse bucket derived from a semantic type.
type GeneralType int

const (
	Quantitative GeneralType = iota
	Categorical
	Temporal
)

// String renders the single-letter tag used throughout spec structures.
func (g GeneralType) String() string {
	switch g {
	case Quantitative:
		return "q"
	case Categorical:
		return "c"
	case Temporal:
		return "t"
	}
	return "c"
}

// MarshalJSON encodes the single-letter tag.
func (g GeneralType) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

// UnmarshalJSON decodes the single-letter tag.
func (g *GeneralType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "q":
		*g = Quantitative
	case "c":
		*g = Categorical
	case "t":
		*g = Temporal
	default:
		return fmt.Errorf("unknown general type %q", s)
	}
	return nil
}

// GeneralTypeOf maps a semantic type to its coarse bucket. Datetime and the
// date-part types resolve to Quantitative so they participate in aggregation;
// this mirrors the source system's observed behavior.
func GeneralTypeOf(t Type) GeneralType {
	switch t {
	case TypeInteger, TypeDecimal, TypeLatitude, TypeLongitude,
		TypeDatetime, TypeDate, TypeYear, TypeMonth, TypeDay:
		return Quantitative
	default:
		return Categorical
	}
}

// IsTemporal reports whether the semantic type carries time semantics, even
// though such fields bucket as quantitative for aggregation.
func IsTemporal(t Type) bool {
	switch t {
	case TypeDatetime, TypeDate, TypeYear, TypeMonth, TypeDay:
		return true
	}
	return false
}

// Stats holds describe()-style descriptive statistics for a column. Pointers
// distinguish "not applicable" (nil) from a computed zero, so consumers can
// render "n/a" instead of stale values.
type Stats struct {
	Min         *float64        `json:"min"`
	Max         *float64        `json:"max"`
	Mean        *float64        `json:"mean"`
	Median      *float64        `json:"median"`
	Std         *float64        `json:"std"`
	Percentiles map[string]*float64 `json:"percentiles,omitempty"`
}

// Field is one column of a dataset plus its inferred metadata.
type Field struct {
	DatasetID core.DatasetID `json:"dataset_id"`
	Name      string         `json:"name"`
	Index     int            `json:"index"`

	Type        Type             `json:"type"`
	GeneralType GeneralType      `json:"general_type"`
	TypeScores  map[Type]float64 `json:"type_scores"`

	IsUnique bool `json:"is_unique"`
	IsID     bool `json:"is_id"`

	// UniqueValues is nil for unique or purely quantitative fields to bound
	// memory; an empty non-nil slice means the column had no values.
	UniqueValues []string `json:"unique_values,omitempty"`

	Stats     Stats `json:"stats"`
	Normality *bool `json:"normality"`

	// Child points to the field this one parents (forest within a dataset);
	// a field is child of at most one parent.
	Child   string `json:"child,omitempty"`
	IsChild bool   `json:"is_child"`
}

// Structure classifies the dataset layout.
type Structure string

const (
	StructureWide Structure = "wide"
	StructureLong Structure = "long"
)

// TimeSeries describes a contiguous run of date-like column headers.
type TimeSeries struct {
	StartIndex      int     `json:"start_index"`
	StartName       string  `json:"start_name"`
	EndIndex        int     `json:"end_index"`
	EndName         string  `json:"end_name"`
	NumElements     int     `json:"num_elements"`
	IntervalSeconds float64 `json:"interval_seconds"`
}

// DatasetProperties is the per-dataset structural record.
type DatasetProperties struct {
	DatasetID   core.DatasetID `json:"dataset_id"`
	RowCount    int            `json:"row_count"`
	ColumnCount int            `json:"column_count"`
	FieldNames  []string       `json:"field_names"`
	FieldTypes  []Type         `json:"field_types"`
	Structure   Structure      `json:"structure"`
	TimeSeries  *TimeSeries    `json:"time_series,omitempty"`
}
