package attach

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"vizier/domain/spec"
	"vizier/domain/table"
	"vizier/internal"
	"vizier/internal/fieldprops"
)

// Config bounds the attacher's materialization work.
type Config struct {
	MaxBins int
}

// DefaultConfig mirrors the engine defaults.
func DefaultConfig() Config {
	return Config{MaxBins: 20}
}

// Attacher materializes spec skeletons against a table and scores the
// results. It holds no per-run state and is safe for concurrent use.
type Attacher struct {
	cfg Config
	log *internal.Logger
}

func New(cfg Config, logger *internal.Logger) *Attacher {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if cfg.MaxBins <= 0 {
		cfg.MaxBins = DefaultConfig().MaxBins
	}
	return &Attacher{cfg: cfg, log: logger}
}

// AttachAndScore filters the table by the conditional, materializes every
// skeleton in parallel, scores the survivors, and returns them ranked by
// relevance descending (stable on ties). A failing spec is dropped with a
// logged reason; the batch continues. On cancellation nothing is returned.
func (a *Attacher) AttachAndScore(ctx context.Context, t *table.Table, skeletons []spec.Skeleton, selection []string, cond *spec.Conditional) ([]spec.Scored, error) {
	working, err := ApplyConditional(t, cond)
	if err != nil {
		return nil, err
	}

	results := make([]*spec.Scored, len(skeletons))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for i, sk := range skeletons {
		i, sk := i, sk
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scored, reason := a.attachOne(working, sk, selection)
			if scored == nil {
				a.log.Debug("dropping spec %q: %s", sk.Meta.Description, reason)
				return nil
			}
			mu.Lock()
			results[i] = scored
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]spec.Scored, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Scores.Relevance > out[j].Scores.Relevance
	})
	return out, nil
}

// attachOne returns the scored spec, or nil plus a reason when the spec is
// degenerate or its materialization failed.
func (a *Attacher) attachOne(t *table.Table, sk spec.Skeleton, selection []string) (*spec.Scored, string) {
	data, err := materialize(t, sk, a.cfg.MaxBins)
	if err != nil {
		return nil, err.Error()
	}
	if degenerate(sk, data) {
		return nil, "not discriminative"
	}
	return &spec.Scored{
		Skeleton: sk,
		Data:     data,
		Scores: spec.Scores{
			Relevance: relevance(sk, selection),
			Stats:     statScores(data.Score.Series),
		},
	}, ""
}

// degenerate rejects frequency tables that collapse to two or fewer
// categories.
func degenerate(sk spec.Skeleton, data spec.Data) bool {
	if sk.Procedure == spec.ProcValueCount {
		return len(data.Visualize) <= 2
	}
	return false
}

// relevance awards ten points per selected field the spec touches.
func relevance(sk spec.Skeleton, selection []string) float64 {
	score := 0.0
	for _, name := range selection {
		if sk.UsesField(name) {
			score += 10
		}
	}
	return score
}

// statScores runs the applicable statistical tests over the score series:
// univariate tests for a single series, Pearson correlation for a pair.
// Each test is isolated so a failure yields an explicit nil entry rather
// than aborting the spec.
func statScores(series [][]float64) map[string]*float64 {
	switch len(series) {
	case 1:
		s := series[0]
		size := float64(len(s))
		return map[string]*float64{
			"gini":      safeStat(func() (float64, error) { return gini(s) }),
			"entropy":   safeStat(func() (float64, error) { return entropy(s) }),
			"variance":  safeStat(func() (float64, error) { return stats.Variance(stats.Float64Data(s)) }),
			"normality": safeStat(func() (float64, error) { return normalityP(s) }),
			"size":      &size,
		}
	case 2:
		return map[string]*float64{
			"pearson": safeStat(func() (float64, error) {
				return stats.Pearson(stats.Float64Data(series[0]), stats.Float64Data(series[1]))
			}),
		}
	}
	return map[string]*float64{}
}

// safeStat converts any error or panic inside a statistic into a nil score.
func safeStat(fn func() (float64, error)) (out *float64) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()
	v, err := fn()
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// gini computes the Gini coefficient of a non-negative series.
func gini(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, errEmptySeries
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := float64(len(sorted))
	sum, weighted := 0.0, 0.0
	for i, v := range sorted {
		if v < 0 {
			return 0, errNegativeSeries
		}
		sum += v
		weighted += (2*float64(i+1) - n - 1) * v
	}
	if sum == 0 {
		return 0, errZeroSum
	}
	return weighted / (n * sum), nil
}

// entropy computes Shannon entropy of the series treated as an unnormalized
// distribution.
func entropy(values []float64) (float64, error) {
	sum := 0.0
	for _, v := range values {
		if v < 0 {
			return 0, errNegativeSeries
		}
		sum += v
	}
	if sum == 0 {
		return 0, errZeroSum
	}
	h := 0.0
	for _, v := range values {
		if v == 0 {
			continue
		}
		p := v / sum
		h -= p * math.Log2(p)
	}
	return h, nil
}

func normalityP(values []float64) (float64, error) {
	p, ok := fieldprops.NormalityPValue(values)
	if !ok {
		return 0, errTooFewSamples
	}
	return p, nil
}
