// Command flowcheck validates a flow document and reports its execution
// order: node-level findings, reachability, per-agent positions, and
// cross-agent template references.
//
// Usage:
//
//	flowcheck [-config flowcheck.yaml] [-format text|json] flow.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/joho/godotenv"

	"github.com/astrskai/astrsk-sub018/internal/core/flow"
	"github.com/astrskai/astrsk-sub018/pkg/flowcore"
	"github.com/astrskai/astrsk-sub018/pkg/serialization"
	"github.com/astrskai/astrsk-sub018/pkg/validation"
)

// Version information set during build
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "flowcheck:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("flowcheck", flag.ContinueOnError)
	configPath := fs.String("config", "flowcheck.yaml", "path to config file")
	format := fs.String("format", "", "output format: text or json")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *showVersion {
		fmt.Printf("flowcheck %s (commit: %s)\n", Version, Commit)
		return nil
	}

	// .env is optional, absence is not an error.
	_ = godotenv.Load()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *format != "" {
		cfg.Format = *format
	}
	setupLogging(cfg.LogLevel)

	if fs.NArg() != 1 {
		return fmt.Errorf("expected exactly one flow document, got %d args", fs.NArg())
	}
	path := fs.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	// Boundary check first: reject documents too broken to decode.
	if _, err := validation.ValidateDocumentBytes(data); err != nil {
		return fmt.Errorf("invalid flow document: %w", err)
	}

	codec := serialization.NewJSONCodec()
	var f flow.Flow
	if err := codec.Decode(data, &f); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	slog.Debug("flow loaded", "id", f.ID, "nodes", len(f.Nodes), "edges", len(f.Edges))

	report := flowcore.NewAnalyzerWithCacheSize(cfg.CacheSize).Analyze(&f)

	if cfg.Format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printReport(report)
	}

	if !report.Validation.Valid {
		return fmt.Errorf("flow has %d validation errors", len(report.Validation.Errors))
	}
	return nil
}

func setupLogging(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}

func printReport(r *flowcore.AnalysisReport) {
	fmt.Printf("flow %s (%s)\n", r.FlowName, r.FlowID)

	for _, msg := range r.Validation.Errors {
		fmt.Printf("  error: %s\n", msg)
	}
	for _, msg := range r.Validation.Warnings {
		fmt.Printf("  warning: %s\n", msg)
	}

	t := r.Traversal
	fmt.Printf("valid flow: %v", t.HasValidFlow)
	if t.HasCycle {
		fmt.Print("  (contains a cycle)")
	}
	fmt.Println()

	for _, id := range t.Order {
		p := t.Agents[id]
		fmt.Printf("  %2d. %s (depth %d, reaches end: %v)\n", p.Position, p.AgentID, p.Depth, p.ConnectedToEnd)
	}
	var disconnected []string
	for id, p := range t.Agents {
		if !p.ConnectedToStart {
			disconnected = append(disconnected, id)
		}
	}
	sort.Strings(disconnected)
	for _, id := range disconnected {
		fmt.Printf("   -. %s (disconnected)\n", id)
	}

	refIDs := make([]string, 0, len(r.References))
	for id := range r.References {
		refIDs = append(refIDs, id)
	}
	sort.Strings(refIDs)
	for _, id := range refIDs {
		fmt.Printf("  %s references: %v\n", id, r.References[id])
	}
}
