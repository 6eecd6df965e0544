// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/jinterlante1206/cfgdom/internal/generator"
	"github.com/jinterlante1206/cfgdom/internal/graph"
	"github.com/jinterlante1206/cfgdom/internal/logging"
	"github.com/jinterlante1206/cfgdom/internal/parser"
	"github.com/jinterlante1206/cfgdom/internal/render"
)

// loadGraph builds a Graph either from --arg's edge-list file or, absent
// that, from a freshly generated random one.
func loadGraph(opts options) (*graph.Graph, error) {
	if opts.arg != "" {
		f, err := os.Open(opts.arg)
		if err != nil {
			return nil, validationErr(fmt.Errorf("%s is an invalid path: %w", opts.arg, err))
		}
		defer f.Close()

		edges, err := parser.ParseEdges(f)
		if err != nil {
			return nil, validationErr(err)
		}
		return graph.Build(edges), nil
	}

	genOpts, err := opts.genOptions()
	if err != nil {
		return nil, err
	}
	return graph.Build(generator.Generate(genOpts)), nil
}

// outputPath joins --path and --file-name with ext, e.g. "graph.dot".
func outputPath(opts options, ext string) string {
	return filepath.Join(opts.path, opts.fileName+"."+ext)
}

// dispatch runs the analyses parsedCommand.kind requires and renders each
// requested format. Formats are independent (each reads the already-computed
// Graph/analysis result and writes its own file) so they render
// concurrently via errgroup, mirroring the teacher's priority-group
// concurrent-enrichment pattern.
func dispatch(ctx context.Context, opts options, pc parsedCommand, style render.RenderConfig, logger *logging.Logger) error {
	if err := os.MkdirAll(opts.path, 0o755); err != nil {
		return validationErr(fmt.Errorf("%s is an invalid path: %w", opts.path, err))
	}

	g, err := loadGraph(opts)
	if err != nil {
		return err
	}
	logger.Info("graph loaded", "nodes", g.NodeCount(), "edges", g.EdgeCount(), "command", pc.kind)

	switch pc.kind {
	case "cfg":
		return renderGraphCommand(ctx, opts, pc.formats, func(w writerExt) error {
			return writeCFGFormat(g, w, style)
		})

	case "dom-tree":
		dom, err := graph.ComputeDominators(ctx, g)
		if err != nil {
			return err
		}
		treeResult, err := graph.BuildDomTree(ctx, g, dom)
		if err != nil {
			return err
		}
		return renderGraphCommand(ctx, opts, pc.formats, func(w writerExt) error {
			return render.WriteDomTree(w, treeResult.Tree, style)
		})

	case "join-graph":
		dom, err := graph.ComputeDominators(ctx, g)
		if err != nil {
			return err
		}
		treeResult, err := graph.BuildDomTree(ctx, g, dom)
		if err != nil {
			return err
		}
		joinEdges := graph.JoinEdges(g, treeResult.Tree)
		return renderGraphCommand(ctx, opts, pc.formats, func(w writerExt) error {
			return render.WriteJoinGraph(w, treeResult.Tree, joinEdges, style)
		})

	case "dom-frontier":
		dom, err := graph.ComputeDominators(ctx, g)
		if err != nil {
			return err
		}
		treeResult, err := graph.BuildDomTree(ctx, g, dom)
		if err != nil {
			return err
		}
		df, err := graph.ComputeDF(ctx, g, treeResult.Idom)
		if err != nil {
			return err
		}
		names := make([]string, 0, g.NodeCount())
		for _, n := range g.Nodes() {
			names = append(names, n.Name())
		}
		return renderGraphCommand(ctx, opts, pc.formats, func(w writerExt) error {
			return render.WriteDomFrontier(w, names, df, style)
		})

	case "loops":
		dom, err := graph.ComputeDominators(ctx, g)
		if err != nil {
			return err
		}
		treeResult, err := graph.BuildDomTree(ctx, g, dom)
		if err != nil {
			return err
		}
		loops, err := graph.NaturalLoops(ctx, g, treeResult.Idom)
		if err != nil {
			return err
		}
		return writeReport(opts, "loops", func(w writerExt) error {
			return writeLoopsReport(w, loops)
		})

	case "reducibility":
		report, err := graph.CheckReducibility(ctx, g)
		if err != nil {
			return err
		}
		return writeReport(opts, "reducibility", func(w writerExt) error {
			return writeReducibilityReport(w, report)
		})

	default:
		return fmt.Errorf("%s is not an available command. Try -help", pc.kind)
	}
}

// writerExt is an io.Writer that also names the extension it is backing,
// used by writeCFGFormat to pick between the edge-list and DOT encodings of
// the same "txt"/"dot" format pair.
type writerExt interface {
	Write(p []byte) (int, error)
	ext() string
}

type fileWriter struct {
	*os.File
	extension string
}

func (f fileWriter) ext() string { return f.extension }

// renderGraphCommand writes one file per requested format, concurrently.
// A "png" format additionally writes a DOT file to a private temp path (or
// the user-visible one if "dot" was also requested, in which case no
// separate "dot" task runs) and shells out to `dot`.
func renderGraphCommand(ctx context.Context, opts options, formats []string, write func(writerExt) error) error {
	g, ctx := errgroup.WithContext(ctx)

	pngRequested := false
	for _, f := range formats {
		if f == "png" {
			pngRequested = true
		}
	}

	for _, format := range formats {
		format := format
		g.Go(func() error {
			switch format {
			case "txt", "dot":
				if format == "dot" && pngRequested {
					// renderPNG writes the user-visible DOT file itself.
					return nil
				}
				return writeFormatFile(opts, format, write)
			case "png":
				return renderPNG(ctx, opts, formats, write)
			default:
				return fmt.Errorf("unknown render format %q", format)
			}
		})
	}

	return g.Wait()
}

func writeFormatFile(opts options, format string, write func(writerExt) error) error {
	path := outputPath(opts, format)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", graph.ErrRender, path, err)
	}
	defer f.Close()

	if err := write(fileWriter{File: f, extension: format}); err != nil {
		return fmt.Errorf("%w: %v", graph.ErrRender, err)
	}
	return nil
}

// writeCFGFormat picks the edge-list or DOT encoding based on w.ext().
func writeCFGFormat(g *graph.Graph, w writerExt, style render.RenderConfig) error {
	if w.ext() == "txt" {
		return parser.FormatEdges(w, g.Edges())
	}
	return render.WriteCFG(w, g, style)
}

// renderPNG writes a DOT file (the user-visible one if "dot" was among
// formats, otherwise a private temp file removed afterward) and rasterizes
// it. The resulting PNG is not opened with `display`.
func renderPNG(ctx context.Context, opts options, formats []string, write func(writerExt) error) error {
	dotRequested := false
	for _, f := range formats {
		if f == "dot" {
			dotRequested = true
		}
	}

	dotPath := outputPath(opts, "dot")
	if !dotRequested {
		tmp, err := os.CreateTemp(opts.path, "domgraph-*.dot")
		if err != nil {
			return fmt.Errorf("%w: %v", graph.ErrRender, err)
		}
		dotPath = tmp.Name()
		defer os.Remove(dotPath)
		if err := write(fileWriter{File: tmp, extension: "dot"}); err != nil {
			tmp.Close()
			return fmt.Errorf("%w: %v", graph.ErrRender, err)
		}
		if err := tmp.Close(); err != nil {
			return fmt.Errorf("%w: %v", graph.ErrRender, err)
		}
	} else if err := writeFormatFile(opts, "dot", write); err != nil {
		return err
	}

	pngPath := outputPath(opts, "png")
	if err := render.ToPNG(ctx, dotPath, pngPath); err != nil {
		return fmt.Errorf("%w: %v", graph.ErrRender, err)
	}
	return nil
}

// writeReport writes a single textual report file, named
// "<file-name>-<label>.txt" so it cannot collide with -g=cfg-txt's plain
// "<file-name>.txt" edge list.
func writeReport(opts options, label string, write func(writerExt) error) error {
	path := filepath.Join(opts.path, opts.fileName+"-"+label+".txt")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", graph.ErrRender, path, err)
	}
	defer f.Close()

	if err := write(fileWriter{File: f, extension: "txt"}); err != nil {
		return fmt.Errorf("%w: %v", graph.ErrRender, err)
	}
	return nil
}
