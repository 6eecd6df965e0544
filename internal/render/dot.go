// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package render converts graph analysis results into Graphviz DOT text and,
// via the dot/display subprocesses, PNG images.
package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/jinterlante1206/cfgdom/internal/graph"
)

// RenderConfig controls the cosmetic details of emitted DOT: shapes, colors,
// and the graph's declared name. Every field mirrors an original command-line
// option.
type RenderConfig struct {
	GraphName string
	NodeShape string
	NodeColor string
	EdgeShape string
	EdgeColor string
}

// DefaultRenderConfig returns the original tool's defaults: a square,
// lightblue node and a red, vee-arrowed edge.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		GraphName: "graph",
		NodeShape: "square",
		NodeColor: "lightblue",
		EdgeShape: "vee",
		EdgeColor: "red",
	}
}

func (c RenderConfig) writeHeader(w io.Writer) error {
	_, err := fmt.Fprintf(w, "digraph %s {\n"+
		"    dpi = 100; fontname = \"Comic Sans MS\"; fontsize = 20; rankdir = TB;\n"+
		"    node [shape = %s, style = filled, fillcolor = \"%s\"];\n"+
		"    edge [color = %s, arrowhead = %s, arrowsize = 1, penwidth = 1.2];\n",
		c.GraphName, c.NodeShape, c.NodeColor, c.EdgeColor, c.EdgeShape)
	return err
}

func writeFooter(w io.Writer) error {
	_, err := io.WriteString(w, "}\n")
	return err
}

func sortedEdges(edges []graph.Edge) []graph.Edge {
	out := make([]graph.Edge, len(edges))
	copy(out, edges)
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// WriteCFG renders g's raw edges as a DOT digraph.
func WriteCFG(w io.Writer, g *graph.Graph, cfg RenderConfig) error {
	if err := cfg.writeHeader(w); err != nil {
		return fmt.Errorf("render: write cfg header: %w", err)
	}
	for _, e := range sortedEdges(g.Edges()) {
		if _, err := fmt.Fprintf(w, "    %s -> %s;\n", e.From, e.To); err != nil {
			return fmt.Errorf("render: write cfg edge: %w", err)
		}
	}
	return writeFooter(w)
}

// WriteDomTree renders a materialized dominator tree's idom(n) → n edges as
// a DOT digraph.
func WriteDomTree(w io.Writer, tree *graph.Graph, cfg RenderConfig) error {
	if err := cfg.writeHeader(w); err != nil {
		return fmt.Errorf("render: write dom-tree header: %w", err)
	}
	for _, e := range sortedEdges(tree.Edges()) {
		if _, err := fmt.Fprintf(w, "    %s -> %s;\n", e.From, e.To); err != nil {
			return fmt.Errorf("render: write dom-tree edge: %w", err)
		}
	}
	return writeFooter(w)
}

// WriteJoinGraph renders the dominator tree plus its join edges, the latter
// styled `[style = dotted]` to distinguish CFG edges that fall outside the
// tree from the tree edges themselves.
func WriteJoinGraph(w io.Writer, tree *graph.Graph, joinEdges []graph.Edge, cfg RenderConfig) error {
	if err := cfg.writeHeader(w); err != nil {
		return fmt.Errorf("render: write join-graph header: %w", err)
	}
	for _, e := range sortedEdges(tree.Edges()) {
		if _, err := fmt.Fprintf(w, "    %s -> %s;\n", e.From, e.To); err != nil {
			return fmt.Errorf("render: write join-graph tree edge: %w", err)
		}
	}
	for _, e := range sortedEdges(joinEdges) {
		if _, err := fmt.Fprintf(w, "    %s -> %s [style = dotted];\n", e.From, e.To); err != nil {
			return fmt.Errorf("render: write join-graph join edge: %w", err)
		}
	}
	return writeFooter(w)
}

// WriteDomFrontier renders the dominance-frontier relation {(u, v) : v ∈
// DF(u)} as a DOT digraph. A node with an empty frontier is drawn with a
// self-loop n -> n for visual clarity — a rendering convention only, not
// part of the DF relation itself (spec's dominance-frontier section).
func WriteDomFrontier(w io.Writer, nodeNames []string, df *graph.DominanceFrontier, cfg RenderConfig) error {
	if err := cfg.writeHeader(w); err != nil {
		return fmt.Errorf("render: write dom-frontier header: %w", err)
	}
	names := make([]string, len(nodeNames))
	copy(names, nodeNames)
	sort.Strings(names)

	for _, u := range names {
		children := df.GetFrontier(u)
		if len(children) == 0 {
			if _, err := fmt.Fprintf(w, "    %s -> %s;\n", u, u); err != nil {
				return fmt.Errorf("render: write dom-frontier self-loop: %w", err)
			}
			continue
		}
		sortedChildren := append([]string(nil), children...)
		sort.Strings(sortedChildren)
		for _, v := range sortedChildren {
			if _, err := fmt.Fprintf(w, "    %s -> %s;\n", u, v); err != nil {
				return fmt.Errorf("render: write dom-frontier edge: %w", err)
			}
		}
	}
	return writeFooter(w)
}
