package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/config"
	"github.com/sarchlab/cachesim/geometry"
	"github.com/sarchlab/cachesim/loader"
	"github.com/sarchlab/cachesim/report"
	"github.com/sarchlab/cachesim/trace"
)

// options collects the CLI flags.
type options struct {
	logLevel      string // Log verbosity level
	configPath    string // YAML config file
	cacheSize     int    // Cache size in bytes
	wordsPerBlock int    // Block size in words
	wordSize      int    // Bytes per word
	ways          int    // Set-associative ways
	engine        string // native or akita
	addrs         string // Inline address list
	tracePath     string // Address trace file
	format        string // table, csv or json
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "cachesim",
		Short:         "Replay word addresses through direct-mapped, fully-associative and set-associative caches",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(opts.logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", opts.logLevel, err)
			}
			logrus.SetLevel(level)
			logrus.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the cache simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd, opts)
		},
	}
	addGeometryFlags(runCmd, opts)
	runCmd.Flags().StringVar(&opts.engine, "engine", "native", "Cache engine (native, akita)")
	runCmd.Flags().StringVar(&opts.addrs, "addrs", "", "Word addresses, space or comma separated (e.g. \"0 16 0 512\")")
	runCmd.Flags().StringVar(&opts.tracePath, "trace", "", "Path to an address trace file")
	runCmd.Flags().StringVar(&opts.format, "format", "table", "Output format (table, csv, json)")

	geometryCmd := &cobra.Command{
		Use:   "geometry",
		Short: "Print the address breakdown of each organization",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			g, err := cfg.Geometry()
			if err != nil {
				return err
			}
			printGeometry(cmd.OutOrStdout(), g)
			return nil
		},
	}
	addGeometryFlags(geometryCmd, opts)

	rootCmd.AddCommand(runCmd, geometryCmd)

	return rootCmd
}

func addGeometryFlags(cmd *cobra.Command, opts *options) {
	def := config.Default()
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a YAML simulation config")
	cmd.Flags().IntVar(&opts.cacheSize, "cache-size", def.CacheSize, "Cache size in bytes")
	cmd.Flags().IntVar(&opts.wordsPerBlock, "words-per-block", def.WordsPerBlock, "Number of words per block")
	cmd.Flags().IntVar(&opts.wordSize, "word-size", def.WordSize, "Bytes per word")
	cmd.Flags().IntVar(&opts.ways, "ways", def.Ways, "Set-associative ways (clamped to the number of blocks)")
}

// resolveConfig loads the config file, if any, and applies the flags the
// user set explicitly on top of it.
func resolveConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("cache-size") {
		cfg.CacheSize = opts.cacheSize
	}
	if flags.Changed("words-per-block") {
		cfg.WordsPerBlock = opts.wordsPerBlock
	}
	if flags.Changed("word-size") {
		cfg.WordSize = opts.wordSize
	}
	if flags.Changed("ways") {
		cfg.Ways = opts.ways
	}
	if flags.Changed("engine") {
		cfg.Engine = opts.engine
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func resolveAddresses(opts *options, cfg *config.Config) ([]uint32, error) {
	switch {
	case opts.addrs != "":
		return loader.ParseString(opts.addrs)
	case opts.tracePath != "":
		return loader.Load(opts.tracePath)
	case len(cfg.Addresses) > 0:
		return cfg.Addresses, nil
	default:
		return nil, fmt.Errorf("no addresses given; use --addrs, --trace or a config with addresses")
	}
}

func runSimulation(cmd *cobra.Command, opts *options) error {
	switch opts.format {
	case "table", "csv", "json":
	default:
		return fmt.Errorf("unknown output format %q", opts.format)
	}

	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	addrs, err := resolveAddresses(opts, cfg)
	if err != nil {
		return err
	}

	g, err := cfg.Geometry()
	if err != nil {
		return err
	}
	engine, err := cfg.CacheEngine()
	if err != nil {
		return err
	}

	logrus.Infof("Starting simulation: %s, engine=%s, %d addresses", g, engine, len(addrs))
	if cfg.Ways != g.Associativity {
		logrus.Warnf("ways %d adjusted to %d", cfg.Ways, g.Associativity)
	}

	results := trace.Compare(engine, g, addrs)

	printer := report.NewPrinter(cmd.OutOrStdout())
	switch opts.format {
	case "table":
		printer.PrintTables(results)
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "")
		printer.PrintSummary(results)
	case "csv":
		printer.PrintCSV(results)
	case "json":
		if err := printer.PrintJSON(results); err != nil {
			return err
		}
	}

	logrus.Info("Simulation complete.")

	return nil
}

func printGeometry(w io.Writer, g geometry.Geometry) {
	_, _ = fmt.Fprintf(w, "%-18s %-6s %-6s %-5s %-5s %-6s %s\n",
		"Organization", "Ways", "Sets", "Tag", "Inde", "Offset", "Blocks")
	for _, kind := range cache.Kinds {
		s := kind.Shape(g)
		_, _ = fmt.Fprintf(w, "%-18s %-6d %-6d %-5d %-5d %-6d %d\n",
			kind, s.Associativity, s.NumSets(), s.TagBits(), s.IndexBits(), s.OffsetBits(), s.NumBlocks())
	}
}
