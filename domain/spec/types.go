// Package spec defines visualization spec skeletons, their generating
// procedures, and the scored records produced after data attachment.
package spec

import (
	"strings"

	"vizier/domain/core"
)

// Procedure names the shape of computation that derives a spec's data.
type Procedure string

const (
	ProcAggregate              Procedure = "agg"
	ProcIndexValue             Procedure = "ind:val"
	ProcValueCount             Procedure = "val:count"
	ProcBinAggregate           Procedure = "bin:agg"
	ProcValueAggregate         Procedure = "val:agg"
	ProcValueValue             Procedure = "val:val"
	ProcAggregateAggregate     Procedure = "agg:agg"
	ProcValueValueQuantitative Procedure = "val:val:q"
)

// TypeStructure names the type signature of a procedure's output.
type TypeStructure string

const (
	StructQ   TypeStructure = "q"
	StructBQ  TypeStructure = "b:q"
	StructCQ  TypeStructure = "c:q"
	StructQQ  TypeStructure = "q:q"
	StructCCQ TypeStructure = "c:c:q"
	StructLiC TypeStructure = "[c]:q"
	StructOQ  TypeStructure = "o:q"
)

// AggFn names an aggregation function applied inside a procedure.
type AggFn string

const (
	AggSum   AggFn = "sum"
	AggMin   AggFn = "min"
	AggMax   AggFn = "max"
	AggMean  AggFn = "mean"
	AggCount AggFn = "count"
)

// AggFns is the fixed set of aggregation functions, in enumeration order.
var AggFns = []AggFn{AggSum, AggMin, AggMax, AggMean, AggCount}

// TokenKind classifies a caption token.
type TokenKind string

const (
	TokenPlain          TokenKind = "plain"
	TokenField          TokenKind = "field"
	TokenOperation      TokenKind = "operation"
	TokenTransformation TokenKind = "transformation"
)

// Token is one unit of the natural-language caption grammar. Field tokens
// carry field names verbatim.
type Token struct {
	Kind TokenKind `json:"kind"`
	Text string    `json:"text"`
}

// Meta is the human-readable rendering of a spec.
type Meta struct {
	Description string  `json:"description"`
	Tokens      []Token `json:"tokens"`
}

// NewMeta builds a Meta from tokens, joining token texts with spaces.
func NewMeta(tokens ...Token) Meta {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.Text
	}
	return Meta{Description: strings.Join(parts, " "), Tokens: tokens}
}

// Args holds the concrete fields and function feeding a procedure.
type Args struct {
	FieldA string `json:"field_a,omitempty"`
	FieldB string `json:"field_b,omitempty"`
	FieldC string `json:"field_c,omitempty"`
	AggFn  AggFn  `json:"agg_fn,omitempty"`
}

// Skeleton is an un-materialized visualization candidate.
type Skeleton struct {
	Procedure  Procedure     `json:"generating_procedure"`
	Structure  TypeStructure `json:"type_structure"`
	Args       Args          `json:"args"`
	Meta       Meta          `json:"meta"`
	FieldNames []string      `json:"field_names"`
}

// UsesField reports whether the skeleton references the named field.
func (s *Skeleton) UsesField(name string) bool {
	for _, f := range s.FieldNames {
		if f == name {
			return true
		}
	}
	return false
}

// ScoreData is the compact-array projection used for statistical testing.
// Series holds one entry per quantitative output series.
type ScoreData struct {
	Series [][]float64 `json:"series"`
}

// TableData is the columns-plus-row-matrix projection.
type TableData struct {
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

// Data carries the three parallel projections of a materialized spec.
type Data struct {
	Score     ScoreData                `json:"score"`
	Visualize []map[string]interface{} `json:"visualize"`
	Table     TableData                `json:"table"`
}

// Scores holds relevance plus per-statistic values. A nil entry means the
// test was attempted and failed; an absent key means it was not applicable.
type Scores struct {
	Relevance float64             `json:"relevance"`
	Stats     map[string]*float64 `json:"stats"`
}

// Scored is a spec skeleton with attached data and scores.
type Scored struct {
	Skeleton
	Data   Data   `json:"data"`
	Scores Scores `json:"scores"`
}

// ReplaceSet is one full replacement set of scored specs for a key.
type ReplaceSet struct {
	Key       core.SpecSetKey `json:"key"`
	DatasetID core.DatasetID  `json:"dataset_id"`
	Specs     []Scored        `json:"specs"`
}
