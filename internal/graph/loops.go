// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package graph

import (
	"context"
	"log/slog"
	"sort"

	"github.com/jinterlante1206/cfgdom/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

var loopTracer = telemetry.Tracer("graph.natural_loops")

// loopContextCheckInterval bounds how often ctx.Err() is polled while
// collecting back edges.
const loopContextCheckInterval = 128

// Loop is a natural loop: a back edge n → h where h dominates n, plus every
// node that can reach n without passing through h.
type Loop struct {
	// Header is the loop's single entry point — the node every back edge
	// in this loop targets.
	Header string

	// BackEdges are the edges n → Header that define this loop, sorted by
	// source name.
	BackEdges []Edge

	// Body lists every node in the loop, including Header, sorted.
	Body []string
}

// NaturalLoops finds every natural loop in g given its immediate-dominator
// map.
//
// Description:
//
//	A back edge is an edge n → h where h dominates n (h == n counts, for a
//	self-loop). For each back edge the loop body is the set of nodes that
//	reach n without going through h, computed by a reverse walk over
//	predecessors starting at n and stopping at h (Aho/Sethi/Ullman's
//	standard construction). Back edges that share a header are merged
//	into one loop: the body is the union of each back edge's reachable
//	set, since they describe the same region with multiple re-entries to
//	the same header.
//
// Inputs:
//
//	ctx  - checked for cancellation while scanning for back edges.
//	g    - the graph to analyze.
//	idom - the immediate-dominator map from BuildDomTree. idom[entry] must
//	       map entry to itself, as BuildDomTree produces.
//
// Outputs:
//
//	[]Loop - one entry per distinct header, sorted by header name. Empty
//	         (not nil) if g has no back edges.
//	error  - non-nil only on context cancellation.
func NaturalLoops(ctx context.Context, g *Graph, idom map[string]string) ([]Loop, error) {
	ctx, span := loopTracer.Start(ctx, "NaturalLoops",
		oteltrace.WithAttributes(attribute.Int("node_count", g.NodeCount())),
	)
	defer span.End()
	log := telemetry.LoggerWithTrace(ctx, loggerFromContext(ctx))

	backEdgesByHeader := make(map[string][]Edge)
	checked := 0
	for _, n := range g.Nodes() {
		for _, succ := range n.successors {
			checked++
			if checked%loopContextCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
			if dominatesViaIdom(idom, succ.name, n.name) {
				backEdgesByHeader[succ.name] = append(backEdgesByHeader[succ.name], Edge{From: n.name, To: succ.name})
			}
		}
	}

	if len(backEdgesByHeader) == 0 {
		span.AddEvent("no_loops")
		return []Loop{}, nil
	}

	headers := make([]string, 0, len(backEdgesByHeader))
	for h := range backEdgesByHeader {
		headers = append(headers, h)
	}
	sort.Strings(headers)

	loops := make([]Loop, 0, len(headers))
	for _, header := range headers {
		edges := backEdgesByHeader[header]
		sort.Slice(edges, func(i, j int) bool { return edges[i].From < edges[j].From })

		body := map[string]struct{}{header: {}}
		worklist := make([]string, 0, len(edges))
		for _, e := range edges {
			if e.From == header {
				continue
			}
			if _, ok := body[e.From]; !ok {
				body[e.From] = struct{}{}
				worklist = append(worklist, e.From)
			}
		}
		for len(worklist) > 0 {
			name := worklist[len(worklist)-1]
			worklist = worklist[:len(worklist)-1]
			node, ok := g.Find(name)
			if !ok {
				continue
			}
			for _, p := range node.predecessors {
				if _, ok := body[p.name]; !ok {
					body[p.name] = struct{}{}
					worklist = append(worklist, p.name)
				}
			}
		}

		bodyNames := make([]string, 0, len(body))
		for name := range body {
			bodyNames = append(bodyNames, name)
		}
		sort.Strings(bodyNames)

		loops = append(loops, Loop{Header: header, BackEdges: edges, Body: bodyNames})
	}

	log.Debug("natural loops found", slog.Int("count", len(loops)))
	span.AddEvent("found", oteltrace.WithAttributes(attribute.Int("loop_count", len(loops))))
	return loops, nil
}

// dominatesViaIdom reports whether h dominates n, walking up the immediate
// dominator chain from n. h == n is always true (a node trivially dominates
// itself).
func dominatesViaIdom(idom map[string]string, h, n string) bool {
	cur := n
	for {
		if cur == h {
			return true
		}
		next, ok := idom[cur]
		if !ok || next == cur {
			return cur == h
		}
		cur = next
	}
}
