package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/relgraph/pkg/cache"
	"github.com/matzehuels/relgraph/pkg/catalog"
	"github.com/matzehuels/relgraph/pkg/graph"
	"github.com/matzehuels/relgraph/pkg/observability"
	"github.com/matzehuels/relgraph/pkg/render/nodelink"
)

// NamedGraph pairs a graph with the name used for its digraph and files.
type NamedGraph struct {
	Name  string
	Graph *graph.Graph[catalog.Ref]
}

// Render produces one artifact per graph and format without consulting the
// cache.
func Render(ctx context.Context, graphs []NamedGraph, opts Options) (map[string]map[string][]byte, error) {
	return NewRunner(nil, nil, nil).Render(ctx, graphs, opts)
}

// Render is RenderWithCacheInfo without the cache hit info.
func (r *Runner) Render(ctx context.Context, graphs []NamedGraph, opts Options) (map[string]map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, graphs, opts)
	return artifacts, err
}

// RenderWithCacheInfo renders every graph in every requested format
// concurrently. Artifacts are cached under the hash of their DOT source, so
// an unchanged graph is never rendered twice. The boolean reports whether
// every artifact came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, graphs []NamedGraph, opts Options) (map[string]map[string][]byte, bool, error) {
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	var (
		mu        sync.Mutex
		artifacts = make(map[string]map[string][]byte, len(graphs))
		allHit    = true
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, ng := range graphs {
		dot := nodelink.ToDOT(ng.Graph, nodelink.Options{Name: ng.Name, Detailed: opts.Detailed, Dashed: IsPlaceholder})
		dotHash := cache.Hash([]byte(dot))
		artifacts[ng.Name] = make(map[string][]byte, len(opts.Formats))

		for _, f := range opts.Formats {
			format, _ := nodelink.ParseFormat(f)
			g.Go(func() error {
				data, hit, err := r.renderArtifact(gctx, dot, dotHash, format, opts)
				if err != nil {
					return fmt.Errorf("%s %s: %w", ng.Name, format, err)
				}
				mu.Lock()
				defer mu.Unlock()
				artifacts[ng.Name][string(format)] = data
				allHit = allHit && hit
				return nil
			})
		}
	}
	err := g.Wait()
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	return artifacts, allHit && len(graphs) > 0 && len(opts.Formats) > 0, nil
}

func (r *Runner) renderArtifact(ctx context.Context, dot, dotHash string, format nodelink.Format, opts Options) ([]byte, bool, error) {
	key := r.Keyer.ArtifactKey(dotHash, cache.ArtifactKeyOpts{Format: string(format)})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, cache.KeyTypeArtifact)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, cache.KeyTypeArtifact)
	}

	data, err := nodelink.Render(ctx, dot, format)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, data, opts.CacheTTL); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, cache.KeyTypeArtifact, len(data))
	}
	return data, false, nil
}
