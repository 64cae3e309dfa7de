// Command dupetrack filters duplicate lines from its inputs without sorting
// them, like uniq over an unsorted stream.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/dupetrack"
	"github.com/hupe1980/dupetrack/internal/config"
	"github.com/hupe1980/dupetrack/internal/pipeline"
	"github.com/hupe1980/dupetrack/prommetrics"
)

var version = "dev"

// CLI is the command line. String and numeric flags left at their zero value
// do not override the config file or environment.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" type:"path"`
	EnvFile []string         `help:"Dotenv files to load before reading DUPETRACK_* variables" default:".env"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `help:"Print version and exit"`

	Mode        string `short:"m" help:"Output mode: unique, duplicates, annotate or none"`
	Capacity    int    `short:"n" help:"Expected number of distinct lines"`
	Hash        string `help:"Line hash: xxhash or maphash"`
	IgnoreCase  bool   `short:"i" help:"Compare lines case-insensitively"`
	Trim        bool   `short:"t" help:"Ignore leading and trailing whitespace when comparing"`
	Numeric     bool   `help:"Treat lines as unsigned 32-bit integers"`
	Stats       bool   `short:"s" help:"Print a summary to stderr"`
	MetricsFile string `help:"Write Prometheus metrics to this file on exit" type:"path"`

	Files []string `arg:"" optional:"" help:"Input files (gzip, zstd and lz4 are detected); - or none reads stdin"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		slog.Error("dupetrack failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("dupetrack"),
		kong.Description("Print unique or duplicate lines of unsorted input."),
		kong.Vars{"version": version},
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		return err
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := dupetrack.NewLogger(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger.Logger)

	cfg, err := loadConfig(&cli)
	if err != nil {
		return err
	}

	reg := prom.NewRegistry()
	collector, err := prommetrics.New(reg)
	if err != nil {
		return err
	}

	start := time.Now()
	sum, runErr := pipeline.Run(ctx, cfg, cli.Files, stdout,
		pipeline.WithLogger(logger),
		pipeline.WithMetricsCollector(collector),
	)

	if cfg.MetricsFile != "" {
		if err := prom.WriteToTextfile(cfg.MetricsFile, reg); err != nil {
			logger.Error("failed to write metrics", "path", cfg.MetricsFile, "error", err)
		}
	}
	if runErr != nil {
		return runErr
	}

	if cli.Stats {
		printStats(stderr, sum, time.Since(start))
	}
	return nil
}

// loadConfig layers defaults, the config file, DUPETRACK_* variables and
// explicit flags, in that order.
func loadConfig(cli *CLI) (config.Config, error) {
	if err := config.LoadDotEnv(cli.EnvFile...); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return config.Config{}, err
	}

	if cli.Mode != "" {
		cfg.Mode = config.Mode(cli.Mode)
	}
	if cli.Capacity != 0 {
		cfg.Capacity = cli.Capacity
	}
	if cli.Hash != "" {
		cfg.Hash = cli.Hash
	}
	if cli.MetricsFile != "" {
		cfg.MetricsFile = cli.MetricsFile
	}
	cfg.IgnoreCase = cfg.IgnoreCase || cli.IgnoreCase
	cfg.Trim = cfg.Trim || cli.Trim
	cfg.Numeric = cfg.Numeric || cli.Numeric

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func printStats(w io.Writer, sum pipeline.Summary, elapsed time.Duration) {
	st := sum.Tracker
	fmt.Fprintf(w, "inputs:      %d\n", sum.Inputs)
	fmt.Fprintf(w, "lines:       %d\n", sum.Lines)
	fmt.Fprintf(w, "unique:      %d\n", sum.Unique)
	fmt.Fprintf(w, "duplicates:  %d\n", sum.Duplicates)
	if st.InlineCapacity > 0 {
		fmt.Fprintf(w, "buckets:     %d (load %.2f)\n", st.Buckets, st.LoadFactor)
		fmt.Fprintf(w, "arena:       enabled=%t inline=%d/%d spilled=%d chunks=%d\n",
			st.ArenaEnabled, st.InlineUsed, st.InlineCapacity, st.Spilled, st.SpillChunks)
	}
	fmt.Fprintf(w, "elapsed:     %s\n", elapsed.Round(time.Millisecond))
}
