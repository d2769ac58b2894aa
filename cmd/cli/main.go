package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"vizier/adapters/memory"
	"vizier/adapters/tabular"
	"vizier/domain/core"
	"vizier/domain/spec"
	"vizier/internal"
	"vizier/internal/cache"
	"vizier/internal/config"
	"vizier/internal/pipeline"
	"vizier/internal/report"
	"vizier/ports"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const defaultTopSpecs = 10

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	rootCmd := &cobra.Command{
		Use:   "vizier",
		Short: "Vizier CLI for profiling tabular files and enumerating visualization specs",
	}

	rootCmd.AddCommand(
		newProfileCmd(),
		newSpecsCmd(),
		newRelateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newProfileCmd() *cobra.Command {
	var format string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "profile [data-file]",
		Short: "Profile a tabular file and print a dataset report",
		Long: `Profile a CSV, TSV, Excel, or JSON file: infer per-column semantic types,
compute field statistics, detect hierarchies, and rank suggested visualizations.

Example: vizier profile sales.csv --format html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfile(cmd, args[0], format, verbose)
		},
	}

	cmd.Flags().StringVar(&format, "format", "md", "Output format: md|html|json")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Report stage progress on stderr")

	return cmd
}

func newSpecsCmd() *cobra.Command {
	var selectFields string
	var whereAll []string
	var whereAny []string
	var top int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "specs [data-file]",
		Short: "Enumerate and score visualization specs for a tabular file",
		Long: `Enumerate visualization spec candidates for the file's fields, attach the
data series for each, score them, and print the ranked set as JSON.

Conditions take the form "field OP value" with OP one of == != > >= < <=.
Every --where condition must hold; --where-any conditions contribute rows
where any holds.

Example: vizier specs sales.csv --select region,revenue --where "region == east" --top 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selection := splitSelection(selectFields)
			cond, err := parseConditional(whereAll, whereAny)
			if err != nil {
				return err
			}
			return runSpecs(cmd, args[0], selection, cond, top, verbose)
		},
	}

	cmd.Flags().StringVar(&selectFields, "select", "", "Comma-separated field names to focus enumeration on")
	cmd.Flags().StringArrayVar(&whereAll, "where", nil, `Row filter that must hold, e.g. "revenue > 100" (repeatable)`)
	cmd.Flags().StringArrayVar(&whereAny, "where-any", nil, "Row filter where any may hold (repeatable)")
	cmd.Flags().IntVar(&top, "top", 0, "Limit output to the N highest-ranked specs (0 = all)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Report stage progress on stderr")

	return cmd
}

func newRelateCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "relate [data-files...]",
		Short: "Detect join relationships between two or more tabular files",
		Long: `Profile each file and compare categorical value-sets across them, printing
field pairs whose overlap clears the relationship threshold.

Example: vizier relate orders.csv customers.csv`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelate(cmd, args, verbose)
		},
	}

	cmd.Flags().BoolVar(&verbose, "verbose", false, "Report stage progress on stderr")

	return cmd
}

// env wires a tabular source and in-memory repositories into a runner.
// Every command builds a fresh one, so nothing persists between invocations.
type env struct {
	cfg    config.EngineConfig
	source *tabular.Source
	repos  pipeline.Repos
	runner *pipeline.Runner
}

func newEnv(verbose bool) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	source := tabular.NewSource(cache.NewTableCache(cfg.Engine.CacheSize))
	repos := pipeline.Repos{
		Fields:        memory.NewFieldRepo(),
		Datasets:      memory.NewDatasetRepo(),
		Relationships: memory.NewRelationshipRepo(),
		Specs:         memory.NewSpecRepo(),
	}
	var progress ports.ProgressReporter
	if verbose {
		progress = stderrProgress{}
	}
	return &env{
		cfg:    cfg.Engine,
		source: source,
		repos:  repos,
		runner: pipeline.NewRunner(cfg.Engine, source, repos, progress, internal.DefaultLogger),
	}, nil
}

func (e *env) register(path string) core.DatasetID {
	id := core.NewDatasetID()
	e.source.Register(id, path)
	return id
}

type stderrProgress struct{}

func (stderrProgress) Progress(stage string, id core.DatasetID, percent float64, message string) {
	fmt.Fprintf(os.Stderr, "[%s] %s %.0f%% %s\n", stage, id, percent, message)
}

func runProfile(cmd *cobra.Command, path, format string, verbose bool) error {
	e, err := newEnv(verbose)
	if err != nil {
		return err
	}
	id := e.register(path)
	ctx := cmd.Context()

	fields, err := e.runner.ComputeFieldProperties(ctx, id)
	if err != nil {
		return err
	}
	props, err := e.repos.Datasets.GetProperties(ctx, id)
	if err != nil {
		return err
	}
	scored, err := e.runner.Specs(ctx, id, nil, nil)
	if err != nil {
		return err
	}
	if len(scored) > defaultTopSpecs {
		scored = scored[:defaultTopSpecs]
	}

	profile := report.Profile{
		Name:       datasetName(path),
		Properties: *props,
		Fields:     fields,
		TopSpecs:   scored,
	}

	switch format {
	case "md":
		fmt.Fprint(cmd.OutOrStdout(), report.Markdown(profile))
	case "html":
		if _, err := cmd.OutOrStdout().Write(report.HTML(profile)); err != nil {
			return err
		}
	case "json":
		return printJSON(cmd, profile)
	default:
		return fmt.Errorf("invalid format: %s (expected md|html|json)", format)
	}
	return nil
}

func runSpecs(cmd *cobra.Command, path string, selection []string, cond *spec.Conditional, top int, verbose bool) error {
	e, err := newEnv(verbose)
	if err != nil {
		return err
	}
	id := e.register(path)

	scored, err := e.runner.Specs(cmd.Context(), id, selection, cond)
	if err != nil {
		return err
	}
	if top > 0 && len(scored) > top {
		scored = scored[:top]
	}
	return printJSON(cmd, scored)
}

func runRelate(cmd *cobra.Command, paths []string, verbose bool) error {
	e, err := newEnv(verbose)
	if err != nil {
		return err
	}
	ids := make([]core.DatasetID, len(paths))
	names := make(map[core.DatasetID]string, len(paths))
	for i, path := range paths {
		ids[i] = e.register(path)
		names[ids[i]] = datasetName(path)
	}

	rels, err := e.runner.DetectRelationships(cmd.Context(), ids)
	if err != nil {
		return err
	}
	if len(rels) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No relationships found.")
		return nil
	}
	for _, rel := range rels {
		fmt.Fprintf(cmd.OutOrStdout(), "%s.%s joins %s.%s (overlap %.2f, cardinality %s)\n",
			names[rel.SourceDatasetID], rel.SourceField,
			names[rel.TargetDatasetID], rel.TargetField,
			rel.Distance, rel.Cardinality)
	}
	return nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func datasetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func splitSelection(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// operatorOrder lists operators longest first so ">=" wins over ">".
var operatorOrder = []spec.Operator{spec.OpGte, spec.OpLte, spec.OpNeq, spec.OpEq, spec.OpGt, spec.OpLt}

func parseConditional(all, any []string) (*spec.Conditional, error) {
	if len(all) == 0 && len(any) == 0 {
		return nil, nil
	}
	cond := &spec.Conditional{}
	for _, raw := range all {
		clause, err := parseClause(raw)
		if err != nil {
			return nil, err
		}
		cond.And = append(cond.And, clause)
	}
	for _, raw := range any {
		clause, err := parseClause(raw)
		if err != nil {
			return nil, err
		}
		cond.Or = append(cond.Or, clause)
	}
	return cond, nil
}

func parseClause(raw string) (spec.Clause, error) {
	for _, op := range operatorOrder {
		idx := strings.Index(raw, string(op))
		if idx < 0 {
			continue
		}
		field := strings.TrimSpace(raw[:idx])
		value := strings.TrimSpace(raw[idx+len(op):])
		if field == "" || value == "" {
			return spec.Clause{}, fmt.Errorf("invalid condition %q: expected \"field OP value\"", raw)
		}
		return spec.Clause{Field: field, Op: op, Value: value}, nil
	}
	return spec.Clause{}, fmt.Errorf("invalid condition %q: no comparison operator found", raw)
}
