package attach

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vizier/domain/core"
	"vizier/domain/field"
	"vizier/domain/spec"
	"vizier/domain/table"
	apperrors "vizier/internal/errors"
	"vizier/internal/enumerate"
)

func newTable(cols ...table.Column) *table.Table {
	return table.New(core.NewDatasetID(), cols...)
}

func TestAttachSingleQuantitativeColumn(t *testing.T) {
	tbl := newTable(table.Column{Name: "amount", Values: []string{"1", "2", "2", "3", "4", "100"}})
	fields := []field.Field{{
		Name: "amount", Type: field.TypeInteger, GeneralType: field.Quantitative,
	}}
	skeletons := enumerate.Enumerate(fields, nil)

	scored, err := New(DefaultConfig(), nil).AttachAndScore(context.Background(), tbl, skeletons, nil, nil)
	require.NoError(t, err)
	require.NotEmpty(t, scored)

	procs := map[spec.Procedure]bool{}
	for _, s := range scored {
		procs[s.Procedure] = true
	}
	assert.True(t, procs[spec.ProcAggregate])
	assert.True(t, procs[spec.ProcValueCount], "non-unique column keeps its frequency spec")
	assert.True(t, procs[spec.ProcBinAggregate])

	for _, s := range scored {
		if s.Procedure != spec.ProcAggregate {
			continue
		}
		require.Contains(t, s.Scores.Stats, "gini")
		require.Contains(t, s.Scores.Stats, "entropy")
		require.Contains(t, s.Scores.Stats, "variance")
		require.Contains(t, s.Scores.Stats, "size")
		require.NotNil(t, s.Scores.Stats["size"])
		assert.Equal(t, 6.0, *s.Scores.Stats["size"])
	}
}

func TestAttachAggregateValues(t *testing.T) {
	tbl := newTable(table.Column{Name: "amount", Values: []string{"1", "2", "2", "3", "4", "100"}})
	sk := spec.Skeleton{
		Procedure: spec.ProcAggregate,
		Structure: spec.StructQ,
		Args:      spec.Args{FieldA: "amount", AggFn: spec.AggSum},
	}
	data, err := materialize(tbl, sk, 20)
	require.NoError(t, err)
	require.Len(t, data.Table.Rows, 1)
	assert.Equal(t, 112.0, data.Table.Rows[0][0])
}

func TestAttachDropsDegenerateValueCount(t *testing.T) {
	tbl := newTable(table.Column{Name: "flag", Values: []string{"a", "a", "b", "b"}})
	sk := spec.Skeleton{
		Procedure: spec.ProcValueCount,
		Structure: spec.StructCQ,
		Args:      spec.Args{FieldA: "flag"},
		Meta:      spec.NewMeta(spec.Token{Kind: spec.TokenField, Text: "flag"}),
	}
	scored, err := New(DefaultConfig(), nil).AttachAndScore(context.Background(), tbl, []spec.Skeleton{sk}, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, scored, "two-category frequency table is not discriminative")
}

func TestAttachGroupByAggregate(t *testing.T) {
	tbl := newTable(
		table.Column{Name: "region", Values: []string{"east", "west", "east", "west"}},
		table.Column{Name: "revenue", Values: []string{"10", "20", "30", "40"}},
	)
	sk := spec.Skeleton{
		Procedure: spec.ProcValueAggregate,
		Structure: spec.StructCQ,
		Args:      spec.Args{FieldA: "region", FieldB: "revenue", AggFn: spec.AggSum},
	}
	data, err := materialize(tbl, sk, 20)
	require.NoError(t, err)
	require.Len(t, data.Table.Rows, 2)
	assert.Equal(t, []interface{}{"east", 40.0}, data.Table.Rows[0])
	assert.Equal(t, []interface{}{"west", 60.0}, data.Table.Rows[1])
}

func TestAttachValueValuePearson(t *testing.T) {
	tbl := newTable(
		table.Column{Name: "x", Values: []string{"1", "2", "3", "4", "5"}},
		table.Column{Name: "y", Values: []string{"2", "4", "6", "8", "10"}},
	)
	sk := spec.Skeleton{
		Procedure: spec.ProcValueValue,
		Structure: spec.StructQQ,
		Args:      spec.Args{FieldA: "x", FieldB: "y"},
	}
	scored, err := New(DefaultConfig(), nil).AttachAndScore(context.Background(), tbl, []spec.Skeleton{sk}, nil, nil)
	require.NoError(t, err)
	require.Len(t, scored, 1)
	p := scored[0].Scores.Stats["pearson"]
	require.NotNil(t, p)
	assert.InDelta(t, 1.0, *p, 1e-9)
}

func TestAttachConnectionWeights(t *testing.T) {
	tbl := newTable(
		table.Column{Name: "origin", Values: []string{"jfk", "jfk", "lax"}},
		table.Column{Name: "dest", Values: []string{"sfo", "sfo", "sfo"}},
		table.Column{Name: "passengers", Values: []string{"100", "50", "75"}},
	)
	sk := spec.Skeleton{
		Procedure: spec.ProcValueValueQuantitative,
		Structure: spec.StructCCQ,
		Args:      spec.Args{FieldA: "origin", FieldB: "dest", FieldC: "passengers"},
	}
	data, err := materialize(tbl, sk, 20)
	require.NoError(t, err)
	require.Len(t, data.Table.Rows, 2)
	assert.Equal(t, []interface{}{"jfk", "sfo", 150.0}, data.Table.Rows[0])
	assert.Equal(t, []interface{}{"lax", "sfo", 75.0}, data.Table.Rows[1])
}

func TestAttachRelevanceRanking(t *testing.T) {
	tbl := newTable(
		table.Column{Name: "region", Values: []string{"east", "west", "east", "north"}},
		table.Column{Name: "revenue", Values: []string{"10", "20", "30", "40"}},
	)
	skeletons := []spec.Skeleton{
		{
			Procedure: spec.ProcValueCount, Structure: spec.StructCQ,
			Args: spec.Args{FieldA: "region"}, FieldNames: []string{"region"},
		},
		{
			Procedure: spec.ProcValueAggregate, Structure: spec.StructCQ,
			Args:       spec.Args{FieldA: "region", FieldB: "revenue", AggFn: spec.AggSum},
			FieldNames: []string{"region", "revenue"},
		},
	}
	scored, err := New(DefaultConfig(), nil).AttachAndScore(
		context.Background(), tbl, skeletons, []string{"region", "revenue"}, nil)
	require.NoError(t, err)
	require.Len(t, scored, 2)
	assert.Equal(t, spec.ProcValueAggregate, scored[0].Procedure)
	assert.Equal(t, 20.0, scored[0].Scores.Relevance)
	assert.Equal(t, 10.0, scored[1].Scores.Relevance)
}

func TestAttachConditionalFilter(t *testing.T) {
	tbl := newTable(
		table.Column{Name: "region", Values: []string{"east", "west", "east", "west"}},
		table.Column{Name: "revenue", Values: []string{"10", "20", "30", "40"}},
	)
	cond := &spec.Conditional{And: []spec.Clause{{Field: "revenue", Op: spec.OpGt, Value: "15"}}}
	filtered, err := ApplyConditional(tbl, cond)
	require.NoError(t, err)
	assert.Equal(t, 3, filtered.RowCount())
	assert.Equal(t, []string{"west", "east", "west"}, filtered.Column("region").Values)
}

func TestAttachConditionalOrSemantics(t *testing.T) {
	tbl := newTable(table.Column{Name: "region", Values: []string{"east", "west", "north"}})
	cond := &spec.Conditional{Or: []spec.Clause{
		{Field: "region", Op: spec.OpEq, Value: "east"},
		{Field: "region", Op: spec.OpEq, Value: "north"},
	}}
	filtered, err := ApplyConditional(tbl, cond)
	require.NoError(t, err)
	assert.Equal(t, []string{"east", "north"}, filtered.Column("region").Values)
}

func TestAttachConditionalUnknownFieldRejected(t *testing.T) {
	tbl := newTable(table.Column{Name: "region", Values: []string{"east"}})
	cond := &spec.Conditional{And: []spec.Clause{{Field: "missing", Op: spec.OpEq, Value: "x"}}}
	_, err := ApplyConditional(tbl, cond)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAttachCancelledContextReturnsNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tbl := newTable(table.Column{Name: "amount", Values: []string{"1", "2", "3"}})
	sk := spec.Skeleton{
		Procedure: spec.ProcAggregate, Structure: spec.StructQ,
		Args: spec.Args{FieldA: "amount", AggFn: spec.AggSum},
	}
	scored, err := New(DefaultConfig(), nil).AttachAndScore(ctx, tbl, []spec.Skeleton{sk}, nil, nil)
	require.Error(t, err)
	assert.Nil(t, scored)
}

func TestAttachFailedStatisticYieldsNilScore(t *testing.T) {
	// Negative values break gini and entropy but not variance.
	tbl := newTable(table.Column{Name: "delta", Values: []string{"-5", "3", "-2", "7", "1", "4", "-1", "2", "6", "-3"}})
	sk := spec.Skeleton{
		Procedure: spec.ProcAggregate, Structure: spec.StructQ,
		Args: spec.Args{FieldA: "delta", AggFn: spec.AggMean},
	}
	scored, err := New(DefaultConfig(), nil).AttachAndScore(context.Background(), tbl, []spec.Skeleton{sk}, nil, nil)
	require.NoError(t, err)
	require.Len(t, scored, 1)
	st := scored[0].Scores.Stats
	assert.Nil(t, st["gini"])
	assert.Nil(t, st["entropy"])
	assert.NotNil(t, st["variance"])
}
