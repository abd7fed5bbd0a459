package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fanchart/pkg/cache"
	"github.com/matzehuels/fanchart/pkg/chart"
	"github.com/matzehuels/fanchart/pkg/errors"
	"github.com/matzehuels/fanchart/pkg/observability"
	"github.com/matzehuels/fanchart/pkg/pedigree"
)

// Runner executes the pipeline with caching.
// Both CLI and API use it.
//
// The Runner holds no per-run state, so one Runner can serve concurrent
// requests with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs decode → build → layout → export with caching.
func (r *Runner) Execute(ctx context.Context, data []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{GedcomHash: cache.Hash(data)}
	key := r.Keyer.ChartKey(result.GedcomHash, opts.ChartKeyOpts())

	if !opts.Refresh {
		if c, raw, ok := r.cachedChart(ctx, key); ok {
			result.Chart, result.Data = c, raw
			result.Stats.Nodes = len(c.Sectors)
			for _, sec := range c.Sectors {
				result.Stats.Depth = max(result.Stats.Depth, sec.Depth)
			}
			result.CacheInfo.ChartHit = true
			opts.Logger.Debug("chart cache hit", "root", opts.Root)
			return result, nil
		}
	}

	// Stage 1: Decode
	start := time.Now()
	reader, records, err := Decode(ctx, data)
	if err != nil {
		return nil, err
	}
	result.Stats.DecodeTime = time.Since(start)
	result.Stats.Records = records
	result.Stats.Individuals = len(reader.Individuals())

	opts.Logger.Info("decoded gedcom",
		"records", records,
		"individuals", result.Stats.Individuals,
		"duration", result.Stats.DecodeTime)

	// Stage 2: Build
	start = time.Now()
	t, err := BuildTree(ctx, reader, opts)
	if err != nil {
		return nil, err
	}
	result.Tree = t
	result.Stats.BuildTime = time.Since(start)
	result.Stats.Nodes = t.Len()
	result.Stats.Depth = t.Depth()

	opts.Logger.Info("built pedigree",
		"root", opts.Root,
		"nodes", t.Len(),
		"generations", t.Depth(),
		"duration", result.Stats.BuildTime)

	// Stage 3: Layout and export
	start = time.Now()
	c, err := LayoutTree(ctx, t, opts)
	if err != nil {
		return nil, err
	}
	result.Chart = c
	result.Stats.LayoutTime = time.Since(start)

	opts.Logger.Info("computed layout",
		"policy", c.Policy,
		"total_weight", c.TotalWeight,
		"duration", result.Stats.LayoutTime)

	raw, err := chart.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode chart")
	}
	result.Data = raw
	r.store(ctx, "chart", key, raw, cache.TTLChart)

	return result, nil
}

// Tree decodes data and builds the pedigree without layout or caching.
// It backs the node-link export.
func (r *Runner) Tree(ctx context.Context, data []byte, opts Options) (*pedigree.Tree, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	reader, _, err := Decode(ctx, data)
	if err != nil {
		return nil, err
	}
	return BuildTree(ctx, reader, opts)
}

// Individuals lists every individual of the file, with caching.
func (r *Runner) Individuals(ctx context.Context, data []byte) ([]pedigree.Individual, error) {
	key := r.Keyer.IndividualsKey(cache.Hash(data))

	if raw, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var list []pedigree.Individual
		if err := json.Unmarshal(raw, &list); err == nil {
			observability.Cache().OnCacheHit(ctx, "individuals")
			return list, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "individuals")

	reader, _, err := Decode(ctx, data)
	if err != nil {
		return nil, err
	}
	list := pedigree.ListIndividuals(reader)
	if len(list) == 0 {
		return nil, errors.New(errors.ErrCodeNoIndividuals, "no individuals in file")
	}

	if raw, err := json.Marshal(list); err == nil {
		r.store(ctx, "individuals", key, raw, cache.TTLIndividuals)
	}
	return list, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) cachedChart(ctx context.Context, key string) (chart.Chart, []byte, bool) {
	raw, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "chart")
		return chart.Chart{}, nil, false
	}
	c, err := chart.Unmarshal(raw)
	if err != nil {
		// Stale or corrupt entry: recompute.
		observability.Cache().OnCacheMiss(ctx, "chart")
		return chart.Chart{}, nil, false
	}
	observability.Cache().OnCacheHit(ctx, "chart")
	return c, raw, true
}

func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
