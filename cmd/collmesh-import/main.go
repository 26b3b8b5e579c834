package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/netisu/collmesh"
)

func main() {
	src := flag.String("src", os.Getenv("COLLMESH_SRC"), "Collision JSON file or directory (env COLLMESH_SRC)")
	dst := flag.String("dst", os.Getenv("COLLMESH_DST"), "Output directory; empty writes next to each source (env COLLMESH_DST)")
	format := flag.String("format", "glb", "Output format: glb or ntsm")
	entry := flag.Int("entry", 0, "Index of the mesh entry to import")
	layoutName := flag.String("layout", "auto", "Face layout: auto, triangles or sized")
	concurrency := flag.Int("concurrency", 4, "Number of concurrent conversions")
	dryRun := flag.Bool("dry-run", false, "Import and encode without writing files")
	keepGoing := flag.Bool("keep-going", false, "Continue after a failed file")
	logFormat := flag.String("log-format", "text", "Log format: text or json")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	logger := newLogger(*logFormat, *verbose)

	if *src == "" {
		fmt.Fprintln(os.Stderr, "usage: collmesh-import -src <file|dir> [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if *format != "glb" && *format != "ntsm" {
		fatal(logger, "invalid output format", "format", *format)
	}
	layout, err := collmesh.ParseLayout(*layoutName)
	if err != nil {
		fatal(logger, "invalid layout", "err", err)
	}

	files, err := findSourceFiles(*src)
	if err != nil {
		fatal(logger, "failed to scan source", "src", *src, "err", err)
	}
	if len(files) == 0 {
		fatal(logger, "no collision documents found", "src", *src)
	}

	cfg := config{
		src:         *src,
		dst:         *dst,
		format:      *format,
		entry:       *entry,
		layout:      layout,
		concurrency: *concurrency,
		dryRun:      *dryRun,
		keepGoing:   *keepGoing,
	}

	fmt.Printf("Found %d documents to import\n", len(files))
	if *dryRun {
		fmt.Println("Mode: DRY RUN (no files will be written)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	res, err := processFiles(ctx, logger, cfg, files)

	fmt.Printf("\nImport completed in %v\n", time.Since(start).Truncate(time.Millisecond))
	fmt.Printf("✓ Imported: %d\n", res.success)
	fmt.Printf("✗ Failed: %d\n", res.failed)

	if err != nil {
		stop()
		fatal(logger, "import aborted", "err", err)
	}
	if res.failed > 0 {
		stop()
		os.Exit(1)
	}
}

func newLogger(format string, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func fatal(logger *slog.Logger, msg string, args ...any) {
	logger.Error(msg, args...)
	os.Exit(1)
}
