package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vizier/domain/core"
	"vizier/domain/field"
	"vizier/domain/spec"
)

func sampleProfile() Profile {
	mean := 42.5
	return Profile{
		Name: "sales",
		Properties: field.DatasetProperties{
			DatasetID: core.NewDatasetID(), RowCount: 6, ColumnCount: 2,
			Structure: field.StructureLong,
		},
		Fields: []field.Field{
			{Name: "region", Type: field.TypeString, GeneralType: field.Categorical, Child: "branch"},
			{Name: "revenue", Type: field.TypeInteger, GeneralType: field.Quantitative,
				Stats: field.Stats{Mean: &mean}},
		},
		TopSpecs: []spec.Scored{{
			Skeleton: spec.Skeleton{Meta: spec.NewMeta(
				spec.Token{Kind: spec.TokenOperation, Text: "sum"},
				spec.Token{Kind: spec.TokenPlain, Text: "of"},
				spec.Token{Kind: spec.TokenField, Text: "revenue"},
			)},
			Scores: spec.Scores{Relevance: 10},
		}},
	}
}

func TestMarkdownProfile(t *testing.T) {
	md := Markdown(sampleProfile())

	assert.Contains(t, md, "# Dataset profile: sales")
	assert.Contains(t, md, "6 rows, 2 columns, long layout")
	assert.Contains(t, md, "| revenue | integer | q |")
	assert.Contains(t, md, "42.5")
	assert.Contains(t, md, "`region` parents `branch`")
	assert.Contains(t, md, "1. sum of revenue (relevance 10)")
	assert.Contains(t, md, "n/a", "categorical stats render as not applicable")
}

func TestHTMLProfileRendersTable(t *testing.T) {
	html := string(HTML(sampleProfile()))
	require.NotEmpty(t, html)
	assert.True(t, strings.Contains(html, "<table>"), "field table renders as an HTML table")
	assert.Contains(t, html, "<h1")
}
