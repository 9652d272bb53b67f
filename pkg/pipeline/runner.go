package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/relgraph/pkg/cache"
	"github.com/matzehuels/relgraph/pkg/catalog"
	"github.com/matzehuels/relgraph/pkg/errors"
	"github.com/matzehuels/relgraph/pkg/graph"
	"github.com/matzehuels/relgraph/pkg/observability"
	"github.com/matzehuels/relgraph/pkg/render/nodelink"
)

// Runner executes pipeline stages with caching.
//
// The Runner holds no per-run state, so one Runner may serve concurrent
// runs with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer means cache.DefaultKeyer, a nil
// cache disables caching, and a nil logger means log.Default().
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs every stage and returns the combined result. A dependency
// cycle fails the run with an error coded DEPENDENCY_CYCLE; the graphs built
// so far are still returned alongside it.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	res := &Result{RunID: uuid.NewString()}
	logger := r.logger(opts).With("run", res.RunID)

	start := time.Now()
	c, err := r.Load(ctx, opts.Catalog)
	if err != nil {
		return nil, err
	}
	res.Catalog = c
	res.CatalogHash = catalogHash(c)
	res.Stats.LoadTime = time.Since(start)
	res.Stats.Resources = len(c.Resources)
	res.Stats.Relationships = len(c.Relationships)
	logger.Info("loaded catalog",
		"catalog", opts.Catalog,
		"resources", res.Stats.Resources,
		"relationships", res.Stats.Relationships,
		"duration", res.Stats.LoadTime)

	res.Relationships = r.Prepare(c, logger)
	if opts.WriteGraphs {
		path, err := r.writeGraph(res.Relationships, GraphRelationships, opts)
		if err != nil {
			return nil, err
		}
		res.GraphFiles = append(res.GraphFiles, path)
	}

	start = time.Now()
	res.Expanded = r.Prepare(c, logger)
	containers, err := r.Splice(ctx, c, res.Expanded, opts.ContainerTypes)
	if err != nil {
		return res, err
	}
	res.Stats.SpliceTime = time.Since(start)
	res.Stats.Containers = containers
	res.Stats.Vertices = res.Expanded.Size()
	res.Stats.Edges = len(res.Expanded.Edges())
	logger.Debug("spliced containers",
		"containers", containers,
		"vertices", res.Stats.Vertices,
		"edges", res.Stats.Edges)
	if opts.WriteGraphs {
		path, err := r.writeGraph(res.Expanded, GraphExpandedRelationships, opts)
		if err != nil {
			return nil, err
		}
		res.GraphFiles = append(res.GraphFiles, path)
	}

	start = time.Now()
	order, hit, err := r.ScheduleWithCacheInfo(ctx, res.Expanded, res.CatalogHash, opts)
	res.Stats.ScheduleTime = time.Since(start)
	if err != nil {
		logger.Error("cannot schedule catalog", "err", err)
		return res, err
	}
	res.Order = order
	res.CacheInfo.ScheduleHit = hit
	logger.Info("scheduled resources",
		"vertices", len(order),
		"cached", hit,
		"duration", res.Stats.ScheduleTime)

	if len(opts.Formats) > 0 {
		start = time.Now()
		artifacts, hit, err := r.RenderWithCacheInfo(ctx, []NamedGraph{
			{Name: GraphRelationships, Graph: res.Relationships},
			{Name: GraphExpandedRelationships, Graph: res.Expanded},
		}, opts)
		if err != nil {
			return res, fmt.Errorf("render: %w", err)
		}
		res.Artifacts = artifacts
		res.CacheInfo.RenderHit = hit
		res.Stats.RenderTime = time.Since(start)
		logger.Info("rendered graphs",
			"formats", opts.Formats,
			"cached", hit,
			"duration", res.Stats.RenderTime)
	}
	return res, nil
}

// Load reads and validates the catalog at path.
func (r *Runner) Load(ctx context.Context, path string) (*catalog.Catalog, error) {
	start := time.Now()
	c, err := catalog.Import(path)
	n := 0
	if c != nil {
		n = len(c.Resources)
	}
	observability.Pipeline().OnLoadComplete(ctx, path, n, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}

// Prepare builds a fresh relationship graph for c that logs through logger.
func (r *Runner) Prepare(c *catalog.Catalog, logger *log.Logger) *graph.Graph[catalog.Ref] {
	return c.RelationshipGraph(graph.WithLogger(logger))
}

// Splice replaces the containers of c in g by their members and returns how
// many containers were removed.
func (r *Runner) Splice(ctx context.Context, c *catalog.Catalog, g *graph.Graph[catalog.Ref], containerTypes []string) (int, error) {
	start := time.Now()
	before := g.Size()
	isContainer := catalog.IsContainer(containerTypes...)

	var containers int
	for _, v := range g.Vertices() {
		if isContainer(v) {
			containers++
		}
	}

	err := g.Splice(c.ContainmentGraph(), isContainer, catalog.Placeholder)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeDependencyCycle, err, "containment of catalog %q is cyclic", c.Name)
		containers = 0
	}
	observability.Pipeline().OnSpliceComplete(ctx, containers, g.Size(), time.Since(start), err)
	r.Logger.Debug("splice", "before", before, "after", g.Size())
	return containers, err
}

// ScheduleWithCacheInfo orders g and reports whether the order came from
// cache. The cache is keyed by the catalog hash and the set of container
// types, whatever their order or case; cyclic graphs are never cached.
func (r *Runner) ScheduleWithCacheInfo(ctx context.Context, g *graph.Graph[catalog.Ref], catalogHash string, opts Options) ([]catalog.Ref, bool, error) {
	key := r.Keyer.ScheduleKey(catalogHash, cache.ScheduleKeyOpts{ContainerTypes: catalog.CanonicalTypes(opts.ContainerTypes)})

	if !opts.Refresh && catalogHash != "" {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if order, err := decodeOrder(data, g); err == nil {
				observability.Cache().OnCacheHit(ctx, cache.KeyTypeSchedule)
				return order, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, cache.KeyTypeSchedule)
	}

	order, err := r.Schedule(ctx, g)
	if err != nil {
		return nil, false, err
	}
	if catalogHash != "" {
		if data, err := encodeOrder(order); err == nil {
			if err := r.Cache.Set(ctx, key, data, opts.CacheTTL); err != nil {
				r.Logger.Warn("cache write failed", "key", key, "err", err)
			} else {
				observability.Cache().OnCacheSet(ctx, cache.KeyTypeSchedule, len(data))
			}
		}
	}
	return order, false, nil
}

// Schedule orders g so that every vertex follows its dependencies. A cycle
// is returned as a DEPENDENCY_CYCLE error wrapping the graph's
// *graph.CycleError, whose message lists the offending relationships.
func (r *Runner) Schedule(ctx context.Context, g *graph.Graph[catalog.Ref]) ([]catalog.Ref, error) {
	start := time.Now()
	order, err := g.TopSort()
	if err != nil {
		err = errors.Wrap(errors.ErrCodeDependencyCycle, err, "cannot schedule catalog")
	}
	observability.Pipeline().OnScheduleComplete(ctx, len(order), time.Since(start), err)
	return order, err
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

func (r *Runner) writeGraph(g *graph.Graph[catalog.Ref], name string, opts Options) (string, error) {
	dot := nodelink.ToDOT(g, nodelink.Options{Name: name, Detailed: opts.Detailed, Dashed: IsPlaceholder})
	path, err := nodelink.WriteDOT(opts.GraphDir, name, dot)
	if err != nil {
		return "", fmt.Errorf("write %s graph: %w", name, err)
	}
	r.logger(opts).Debug("wrote graph", "path", path)
	return path, nil
}

// catalogHash is the hash of the catalog's canonical JSON form.
func catalogHash(c *catalog.Catalog) string {
	var buf bytes.Buffer
	if err := catalog.WriteJSON(c, &buf); err != nil {
		return ""
	}
	return cache.Hash(buf.Bytes())
}

func encodeOrder(order []catalog.Ref) ([]byte, error) {
	names := make([]string, len(order))
	for i, r := range order {
		names[i] = r.String()
	}
	return json.Marshal(names)
}

// decodeOrder parses a cached order and checks that it still covers g.
func decodeOrder(data []byte, g *graph.Graph[catalog.Ref]) ([]catalog.Ref, error) {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, err
	}
	if len(names) != g.Size() {
		return nil, fmt.Errorf("cached order has %d vertices, graph has %d", len(names), g.Size())
	}
	order := make([]catalog.Ref, len(names))
	for i, n := range names {
		ref, err := catalog.ParseRef(n)
		if err != nil {
			return nil, err
		}
		if !g.HasVertex(ref) {
			return nil, fmt.Errorf("cached vertex %s not in graph", ref)
		}
		order[i] = ref
	}
	return order, nil
}
