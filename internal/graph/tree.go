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

	"github.com/jinterlante1206/cfgdom/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

var domTreeTracer = telemetry.Tracer("graph.dominator_tree")

// DomTreeResult is the output of BuildDomTree: the materialized dominator
// tree plus the immediate-dominator map it was built from.
type DomTreeResult struct {
	// Tree has the same node identities as the input Graph, but its
	// successor/predecessor relation is the idom forest's parent→child
	// edges, not the original CFG edges.
	Tree *Graph

	// Idom maps every non-entry reachable node name to its immediate
	// dominator's name. The entry maps to itself.
	Idom map[string]string
}

// BuildDomTree computes the immediate-dominator map and materializes the
// dominator tree.
//
// Description:
//
//	Reachability from entry is computed first by a walk over successor
//	edges. An unreachable node has Dom(n) == U, the universal node set,
//	but that alone does not identify it (the last node of a simple chain
//	is dominated by every node too), so the walk, not the Dom set, decides
//	which nodes are reported as unreachable.
//
//	For each reachable non-entry node n, let S = Dom(n) \ {n}. By the
//	DomTable invariants S is non-empty for every reachable n and is
//	linearly ordered by dominance; idom(n) is its maximum (the member
//	dominated by every other member). When |S| = 1 the single member is
//	taken directly. Otherwise idom(n) is found by a reverse breadth-first
//	walk
//	from n over predecessor edges: enqueue n's predecessors, pop the
//	front, return it if it's in S, otherwise enqueue its predecessors.
//	The walk tracks visited nodes so a predecessor cycle cannot loop
//	forever (spec.md §9 flags the source's omission of this as a bug).
//	The first S-member found is idom(n) — correct because S is totally
//	ordered by dominance, so the closest strict dominator reachable along
//	any predecessor path is necessarily the deepest one in the chain.
//
//	The tree itself is a fresh Graph with the same node identities as g
//	and no edges, then one edge idom(n) → n added per non-entry node. The
//	input Graph is never mutated.
//
// Outputs:
//
//	*DomTreeResult - nil only when error is non-nil. An empty g yields an
//	                 empty tree and idom map.
//	error          - ErrUnreachableNode if a node has no path from
//	                 entry, or
//	                 ErrIdomSearchFailed if the BFS exhausts the
//	                 predecessor closure without finding an S member on
//	                 a node that is not unreachable (a genuine bug).
func BuildDomTree(ctx context.Context, g *Graph, dom DomTable) (*DomTreeResult, error) {
	ctx, span := domTreeTracer.Start(ctx, "BuildDomTree",
		oteltrace.WithAttributes(attribute.Int("node_count", g.NodeCount())),
	)
	defer span.End()
	log := telemetry.LoggerWithTrace(ctx, loggerFromContext(ctx))

	if g.NodeCount() == 0 {
		return &DomTreeResult{Tree: Build(nil), Idom: map[string]string{}}, nil
	}

	entry := g.Entry()
	reachable := map[*Node]struct{}{entry: {}}
	stack := []*Node{entry}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, s := range cur.successors {
			if _, ok := reachable[s]; !ok {
				reachable[s] = struct{}{}
				stack = append(stack, s)
			}
		}
	}
	idom := make(map[string]string, g.NodeCount())
	idom[entry.name] = entry.name

	for _, n := range g.Nodes() {
		if n == entry {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if _, ok := reachable[n]; !ok {
			// n has no path from entry: its Dom set is left at the
			// universal set by ComputeDominators, so idom(n) is undefined.
			span.AddEvent("unreachable_node", oteltrace.WithAttributes(attribute.String("node", n.name)))
			log.Warn("dominator tree: unreachable node", slog.String("node", n.name))
			return nil, &AnalysisError{Phase: "BuildDomTree", Node: n.name, Err: ErrUnreachableNode}
		}

		strict := dom.Dom(n.name).clone()
		delete(strict, n.name)

		if len(strict) == 1 {
			for only := range strict {
				idom[n.name] = only
			}
			continue
		}

		anc, err := closestStrictDominator(n, strict)
		if err != nil {
			return nil, &AnalysisError{Phase: "BuildDomTree", Node: n.name, Err: err}
		}
		idom[n.name] = anc
	}

	tree := Build(nil)
	for _, n := range g.Nodes() {
		tree.getOrCreate(n.name)
	}
	for _, n := range g.Nodes() {
		if n == entry {
			continue
		}
		parent := tree.byName[idom[n.name]]
		child := tree.byName[n.name]
		parent.successors = append(parent.successors, child)
		child.predecessors = append(child.predecessors, parent)
	}

	span.AddEvent("built", oteltrace.WithAttributes(attribute.Int("edges", len(idom)-1)))
	return &DomTreeResult{Tree: tree, Idom: idom}, nil
}

// closestStrictDominator performs the reverse BFS of spec.md §4.3: walk
// predecessor edges outward from n until a member of strict is found.
func closestStrictDominator(n *Node, strict DomSet) (string, error) {
	visited := map[*Node]struct{}{n: {}}
	queue := make([]*Node, 0, len(n.predecessors))
	queue = append(queue, n.predecessors...)
	for _, p := range n.predecessors {
		visited[p] = struct{}{}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if strict.Contains(cur.name) {
			return cur.name, nil
		}
		for _, p := range cur.predecessors {
			if _, seen := visited[p]; seen {
				continue
			}
			visited[p] = struct{}{}
			queue = append(queue, p)
		}
	}

	return "", ErrIdomSearchFailed
}
