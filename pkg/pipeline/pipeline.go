// Package pipeline runs the load → splice → schedule → render sequence shared
// by every relgraph command.
//
// # Stages
//
//  1. Load: read and validate a catalog
//  2. Prepare: build the relationship graph (optionally written as relationships.dot)
//  3. Splice: replace containers by their members (expanded_relationships.dot)
//  4. Schedule: topological sort; a cycle fails the run with DEPENDENCY_CYCLE
//  5. Render: DOT, SVG or PNG artifacts for both graphs, cached by DOT hash
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Catalog: "site.json",
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    return err
//	}
//	for _, ref := range result.Order {
//	    fmt.Println(ref)
//	}
//
// Every run gets a UUID that appears in its log lines and in [Result.RunID].
package pipeline

import (
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/relgraph/pkg/catalog"
	"github.com/matzehuels/relgraph/pkg/errors"
	"github.com/matzehuels/relgraph/pkg/graph"
	"github.com/matzehuels/relgraph/pkg/render/nodelink"
)

// Names of the two graphs a run produces; also the .dot file names.
const (
	GraphRelationships         = "relationships"
	GraphExpandedRelationships = "expanded_relationships"
)

// Options configures a pipeline run.
type Options struct {
	// Catalog is the path of the catalog JSON file.
	Catalog string

	// ContainerTypes lists the resource types spliced out before scheduling.
	// Defaults to catalog.DefaultContainerTypes.
	ContainerTypes []string

	// Formats selects rendered artifacts ("dot", "svg", "png"). Empty
	// disables rendering.
	Formats []string

	// Detailed adds degree counts and edge labels to rendered graphs.
	Detailed bool

	// WriteGraphs writes both graphs as .dot files into GraphDir.
	WriteGraphs bool
	GraphDir    string

	// Refresh bypasses cached schedules and artifacts.
	Refresh bool

	// CacheTTL bounds cached entries. Zero keeps them until evicted.
	CacheTTL time.Duration

	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults validates options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Catalog == "" {
		return errors.New(errors.ErrCodeInvalidInput, "catalog path is required")
	}
	if len(o.ContainerTypes) == 0 {
		o.ContainerTypes = slices.Clone(catalog.DefaultContainerTypes)
	}
	for _, t := range o.ContainerTypes {
		if err := errors.ValidateType(t); err != nil {
			return err
		}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.WriteGraphs && o.GraphDir == "" {
		return errors.New(errors.ErrCodeInvalidInput, "graph directory is required to write graphs")
	}
	o.validated = true
	return nil
}

// ValidateFormats checks that every format is supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if _, err := nodelink.ParseFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	RunID string

	Catalog     *catalog.Catalog
	CatalogHash string

	// Relationships is the graph as declared; Expanded has containers spliced out.
	Relationships *graph.Graph[catalog.Ref]
	Expanded      *graph.Graph[catalog.Ref]

	// Order is the schedule: every vertex of Expanded, each after all of its
	// dependencies.
	Order []catalog.Ref

	// GraphFiles lists the .dot files written, if any.
	GraphFiles []string

	// Artifacts holds rendered outputs keyed by graph name, then format.
	Artifacts map[string]map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Resources     int
	Relationships int
	Containers    int
	Vertices      int
	Edges         int

	LoadTime     time.Duration
	SpliceTime   time.Duration
	ScheduleTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	ScheduleHit bool
	RenderHit   bool // every requested artifact came from cache
}

// IsPlaceholder reports whether a rendered vertex name is a splice
// placeholder.
func IsPlaceholder(name string) bool {
	ref, err := catalog.ParseRef(name)
	return err == nil && ref.Type == catalog.WhitType
}
