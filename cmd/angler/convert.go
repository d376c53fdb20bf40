package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/NetworkVerification/angler-sub000/pkg/bast"
	"github.com/NetworkVerification/angler-sub000/pkg/config"
	"github.com/NetworkVerification/angler-sub000/pkg/convert"
)

var convertFlags struct {
	output   string
	simplify bool
	watch    bool
}

var convertCmd = &cobra.Command{
	Use:   "convert [snapshot.json]",
	Short: "Convert an exported snapshot into a network model",
	Long: `Convert an exported snapshot into a verifier-ready network model.

The input path comes from the positional argument, the ANGLER_INPUT
environment variable, or the config file, in that order. The output
defaults to the input path with its extension replaced by ".angler.json".

Examples:
  # Convert a snapshot
  angler convert snapshot.json

  # Simplify constant guards and write to an explicit path
  angler convert snapshot.json --simplify -o network.json

  # Reconvert whenever the snapshot changes
  angler convert snapshot.json --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertFlags.output, "output", "o", "", "output file path")
	convertCmd.Flags().BoolVar(&convertFlags.simplify, "simplify", false, "fold constant guards and drop dead branches")
	convertCmd.Flags().BoolVarP(&convertFlags.watch, "watch", "w", false, "reconvert whenever the input changes")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.Input = args[0]
	}
	if convertFlags.output != "" {
		cfg.Output = convertFlags.output
	}
	if cmd.Flags().Changed("simplify") {
		cfg.Convert.Simplify = convertFlags.simplify
	}
	if cmd.Flags().Changed("watch") {
		cfg.Watch = convertFlags.watch
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if cfg.Input == "" {
		return fmt.Errorf("no input file: pass a path or set input in %s", cfgFile)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)
	metrics := convert.NewMetrics()

	if err := convertOnce(cfg, logger, metrics); err != nil {
		if !cfg.Watch {
			return err
		}
		// in watch mode a broken snapshot is retried on the next write
		logger.Error("conversion failed", "error", err)
	}
	if !cfg.Watch {
		return nil
	}
	return watchAndConvert(cfg, logger, metrics)
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// convertOnce runs one full conversion: read, decode, convert, encode,
// write. Each run gets its own id so watch-mode log lines correlate.
func convertOnce(cfg *config.Config, logger *slog.Logger, metrics *convert.Metrics) error {
	log := logger.With("run_id", uuid.NewString())
	start := time.Now()

	data, err := os.ReadFile(cfg.Input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse input %q: %w", cfg.Input, err)
	}
	doc, err := bast.DecodeBatfishJson(raw)
	if err != nil {
		return fmt.Errorf("decode input %q: %w", cfg.Input, err)
	}
	log.Debug("decoded snapshot",
		"declarations", len(doc.Declarations),
		"edges", len(doc.Topology),
		"ips", len(doc.IPs))
	for _, issue := range doc.Issues {
		log.Warn("snapshot reported an issue", "issue", issue)
	}

	conv := convert.New(convert.Options{Simplify: cfg.Convert.Simplify}, log, metrics)
	net, err := conv.Network(doc)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(net.Encode(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode network: %w", err)
	}
	path := cfg.OutputPath()
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Info("wrote network", "path", path, "elapsed", time.Since(start))
	return nil
}

// watchAndConvert reconverts on every write to the input file until
// interrupted. The parent directory is watched rather than the file
// itself, so editors that replace the file atomically are still seen.
func watchAndConvert(cfg *config.Config, logger *slog.Logger, metrics *convert.Metrics) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(cfg.Input)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %q: %w", dir, err)
	}
	target := filepath.Clean(cfg.Input)
	logger.Info("watching for changes", "path", target)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	for {
		select {
		case <-stop:
			logger.Info("stopping watch")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("input changed", "op", ev.Op.String())
			if err := convertOnce(cfg, logger, metrics); err != nil {
				logger.Error("conversion failed", "error", err)
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "error", werr)
		}
	}
}
