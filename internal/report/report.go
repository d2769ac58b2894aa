// Package report renders a dataset profile as Markdown and HTML: field
// types and statistics, structural classification, detected relationships,
// and the top-ranked visualization specs.
package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"vizier/domain/field"
	"vizier/domain/relation"
	"vizier/domain/spec"
)

// Profile is the input bundle for one dataset report.
type Profile struct {
	Name          string
	Properties    field.DatasetProperties
	Fields        []field.Field
	Relationships []relation.Relationship
	TopSpecs      []spec.Scored
}

// Markdown renders the profile as a Markdown document.
func Markdown(p Profile) string {
	var b strings.Builder

	title := p.Name
	if title == "" {
		title = p.Properties.DatasetID.String()
	}
	fmt.Fprintf(&b, "# Dataset profile: %s\n\n", title)
	fmt.Fprintf(&b, "%d rows, %d columns, %s layout.\n\n",
		p.Properties.RowCount, p.Properties.ColumnCount, p.Properties.Structure)

	if ts := p.Properties.TimeSeries; ts != nil {
		fmt.Fprintf(&b, "Time series detected: %s through %s, %d points, %.0fs interval.\n\n",
			ts.StartName, ts.EndName, ts.NumElements, ts.IntervalSeconds)
	}

	b.WriteString("## Fields\n\n")
	b.WriteString("| Field | Type | General | Unique | Mean | Min | Max |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- |\n")
	for _, f := range p.Fields {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			f.Name, f.Type, f.GeneralType,
			yesNo(f.IsUnique),
			num(f.Stats.Mean), num(f.Stats.Min), num(f.Stats.Max))
	}
	b.WriteString("\n")

	if hierarchies := hierarchyLines(p.Fields); len(hierarchies) > 0 {
		b.WriteString("## Hierarchies\n\n")
		for _, line := range hierarchies {
			fmt.Fprintf(&b, "- %s\n", line)
		}
		b.WriteString("\n")
	}

	if len(p.Relationships) > 0 {
		b.WriteString("## Relationships\n\n")
		for _, rel := range p.Relationships {
			fmt.Fprintf(&b, "- `%s` joins `%s` (overlap %.2f, cardinality %s)\n",
				rel.SourceField, rel.TargetField, rel.Distance, rel.Cardinality)
		}
		b.WriteString("\n")
	}

	if len(p.TopSpecs) > 0 {
		b.WriteString("## Suggested visualizations\n\n")
		for i, s := range p.TopSpecs {
			fmt.Fprintf(&b, "%d. %s (relevance %.0f)\n", i+1, s.Meta.Description, s.Scores.Relevance)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// HTML renders the profile to an HTML fragment.
func HTML(p Profile) []byte {
	md := []byte(Markdown(p))
	psr := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return markdown.ToHTML(md, psr, renderer)
}

func hierarchyLines(fields []field.Field) []string {
	var out []string
	for _, f := range fields {
		if f.Child != "" {
			out = append(out, fmt.Sprintf("`%s` parents `%s`", f.Name, f.Child))
		}
	}
	return out
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func num(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.4g", *v)
}
