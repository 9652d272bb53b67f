// Package cli implements the relgraph command-line interface.
//
// # Commands
//
//   - order: splice containers and print the schedule
//   - deps: dependencies and dependents of one resource
//   - events: which relationships an event from a resource travels along
//   - graph: export the relationship graphs as DOT, SVG or PNG
//   - browse: interactive schedule browser
//   - cache: inspect or clear the artifact cache
//
// All commands read settings from the TOML config file (--config), support
// --verbose (-v) for debug-level logging, and can export Prometheus metrics
// with --metrics-file.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/relgraph/pkg/buildinfo"
	"github.com/matzehuels/relgraph/pkg/cache"
	"github.com/matzehuels/relgraph/pkg/config"
	"github.com/matzehuels/relgraph/pkg/observability"
	"github.com/matzehuels/relgraph/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "relgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded by the root command before any subcommand runs.
	Config *config.Config

	configPath  string
	verbose     bool
	metricsFile string
	metrics     *observability.Metrics
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "relgraph schedules resources by their relationships",
		Long: `relgraph loads a catalog of resources, replaces container resources (classes,
stages) by their members, and orders everything so that each resource comes after
the resources it depends on. Dependency cycles are reported with the exact
relationships involved.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/relgraph/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	root.AddCommand(c.orderCommand())
	root.AddCommand(c.depsCommand())
	root.AddCommand(c.eventsCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and applies its log level unless
// --verbose asked for debug output.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	if c.verbose {
		c.SetLogLevel(LogDebug)
	} else {
		c.SetLogLevel(cfg.Level())
	}
	c.Logger.Debug("loaded config", "path", c.configPath, "cache", cfg.Cache.Backend)

	if c.metricsFile != "" && c.metrics == nil {
		c.metrics = observability.NewMetrics()
		observability.SetPipelineHooks(c.metrics)
		observability.SetCacheHooks(c.metrics)
	}
	return nil
}

// Finish writes the metrics file requested with --metrics-file. It runs
// whether or not the command succeeded.
func (c *CLI) Finish() error {
	if c.metrics == nil {
		return nil
	}
	if err := c.metrics.WriteTextfile(c.metricsFile); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	c.Logger.Debug("wrote metrics", "path", c.metricsFile)
	return nil
}

// newRunner creates a pipeline runner backed by the configured cache. Keys
// are scoped by build version since rendering may change between releases.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, buildinfo.CacheScope()+":")
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.Config.Cache
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.RedisAddr, Prefix: cfg.Prefix})
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		return rc, nil
	case config.BackendNone:
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(cfg.Dir)
	if err != nil {
		c.Logger.Warn("file cache unavailable, caching disabled", "dir", cfg.Dir, "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// runOptions holds the flags shared by commands that run the pipeline.
type runOptions struct {
	containerTypes []string
	writeGraphs    bool
	graphDir       string
	noCache        bool
	refresh        bool
}

func (o *runOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&o.containerTypes, "container-types", nil, "resource types spliced out before scheduling (default from config)")
	cmd.Flags().BoolVar(&o.writeGraphs, "write-graphs", false, "write relationships.dot and expanded_relationships.dot")
	cmd.Flags().StringVar(&o.graphDir, "graphdir", "", "directory for --write-graphs (default from config)")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "ignore cached results")
}

// pipelineOptions merges flags over the loaded configuration.
func (c *CLI) pipelineOptions(path string, o runOptions) pipeline.Options {
	opts := pipeline.Options{
		Catalog:        path,
		ContainerTypes: c.Config.ContainerTypes,
		WriteGraphs:    c.Config.Graph || o.writeGraphs,
		GraphDir:       c.Config.GraphDir,
		Refresh:        o.refresh,
		CacheTTL:       c.Config.Cache.TTL.Duration,
		Logger:         c.Logger,
	}
	if len(o.containerTypes) > 0 {
		opts.ContainerTypes = o.containerTypes
	}
	if o.graphDir != "" {
		opts.GraphDir = o.graphDir
	}
	return opts
}

// execute runs the pipeline for one catalog and closes the runner.
func (c *CLI) execute(ctx context.Context, opts pipeline.Options, noCache bool) (*pipeline.Result, error) {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()
	return runner.Execute(ctx, opts)
}
