package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/netisu/collmesh"
	"github.com/netisu/collmesh/adapters/glb"
)

type config struct {
	src         string
	dst         string
	format      string
	entry       int
	layout      collmesh.Layout
	concurrency int
	dryRun      bool
	keepGoing   bool
}

type result struct {
	success, failed int64
}

func findSourceFiles(src string) ([]string, error) {
	info, err := os.Stat(src)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{src}, nil
	}

	var files []string
	err = filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && collmesh.IsDocumentPath(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// outputPath maps a source document to its output file, mirroring the
// directory layout under dst. An empty dst writes next to the source.
func outputPath(cfg config, file string) string {
	base := filepath.Base(file)
	if collmesh.CompressionFor(base) != collmesh.CompressionNone {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	base = strings.TrimSuffix(base, filepath.Ext(base)) + "." + cfg.format

	if cfg.dst == "" {
		return filepath.Join(filepath.Dir(file), base)
	}
	rel := base
	if r, err := filepath.Rel(cfg.src, filepath.Dir(file)); err == nil && !strings.HasPrefix(r, "..") {
		rel = filepath.Join(r, base)
	}
	return filepath.Join(cfg.dst, rel)
}

// checkDestinations rejects inputs that map to the same output file,
// such as a.json and a.json.gz side by side.
func checkDestinations(cfg config, files []string) error {
	seen := make(map[string]string, len(files))
	var dups []string
	for _, file := range files {
		dst := outputPath(cfg, file)
		if prev, ok := seen[dst]; ok {
			dups = append(dups, fmt.Sprintf("%s and %s -> %s", prev, file, dst))
			continue
		}
		seen[dst] = file
	}
	if len(dups) > 0 {
		return fmt.Errorf("conflicting outputs: %s", strings.Join(dups, "; "))
	}
	return nil
}

// processFiles converts files with at most cfg.concurrency workers.
func processFiles(ctx context.Context, logger *slog.Logger, cfg config, files []string) (result, error) {
	if err := checkDestinations(cfg, files); err != nil {
		return result{}, err
	}

	var success, failed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.concurrency, 1))

	for _, file := range files {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			dstPath := outputPath(cfg, file)
			log := logger.With("src", file, "dst", dstPath)
			log.Debug("converting")

			if err := convertFile(log, cfg, file, dstPath); err != nil {
				failed.Add(1)
				log.Error("conversion failed", "err", err)
				if cfg.keepGoing {
					return nil
				}
				return fmt.Errorf("%s: %w", file, err)
			}
			success.Add(1)
			log.Debug("converted")
			return nil
		})
	}

	err := g.Wait()
	return result{success: success.Load(), failed: failed.Load()}, err
}

func convertFile(logger *slog.Logger, cfg config, srcPath, dstPath string) error {
	doc, err := collmesh.Load(srcPath)
	if err != nil {
		return err
	}
	raw, err := doc.Entry(cfg.entry)
	if err != nil {
		return err
	}

	opts := []collmesh.BuildOption{
		collmesh.WithLayout(cfg.layout),
		collmesh.WithLogger(logger),
	}
	if raw.Name == "" {
		opts = append(opts, collmesh.WithName(itemName(srcPath)))
	}
	mesh, err := collmesh.Build(raw, opts...)
	if err != nil {
		return err
	}

	data, err := glb.Marshal(mesh)
	if err != nil {
		return err
	}
	if cfg.format == "ntsm" {
		var buf bytes.Buffer
		if err := collmesh.EncodeContainer(&buf, mesh.Name, data); err != nil {
			return err
		}
		data = buf.Bytes()
	}

	logger.Info("mesh imported",
		"name", mesh.Name,
		"vertices", len(mesh.Vertices),
		"triangles", len(mesh.Triangles),
		"bytes", len(data),
	)

	if cfg.dryRun {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return fmt.Errorf("mkdir failed: %w", err)
	}
	if err := os.WriteFile(dstPath, data, 0644); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	return nil
}

func itemName(path string) string {
	base := filepath.Base(path)
	for collmesh.IsDocumentPath(base) {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base
}
