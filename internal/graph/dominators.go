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

var dominatorTracer = telemetry.Tracer("graph.dominators")

// dominatorContextCheckInterval bounds how often ctx.Err() is polled during
// the fixed-point loop; checking every node on every pass is needless
// overhead for the graph sizes this tool targets.
const dominatorContextCheckInterval = 64

// DefaultMaxDominatorIterations caps convergence passes as a defensive
// backstop; a correctly monotone Dom-set computation converges in at most
// NodeCount passes, so this is sized generously above that.
const DefaultMaxDominatorIterations = 10_000

// DomSet is the dominator set of a single node: the set of node names that
// dominate it (always including the node itself, once computed).
type DomSet map[string]struct{}

// Contains reports whether name is in the set.
func (s DomSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the set's members in lexical order, for deterministic
// output and testing.
func (s DomSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (s DomSet) clone() DomSet {
	c := make(DomSet, len(s))
	for k := range s {
		c[k] = struct{}{}
	}
	return c
}

func domSetEqual(a, b DomSet) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func universalSet(g *Graph) DomSet {
	u := make(DomSet, g.NodeCount())
	for _, n := range g.Nodes() {
		u[n.name] = struct{}{}
	}
	return u
}

func intersectDomSets(sets []DomSet, universe DomSet) DomSet {
	if len(sets) == 0 {
		// Intersection over the empty set is defined as U (spec §4.2),
		// so an unreachable node retains its initial value until the
		// pipeline diagnoses it.
		return universe.clone()
	}
	result := sets[0].clone()
	for _, s := range sets[1:] {
		for k := range result {
			if !s.Contains(k) {
				delete(result, k)
			}
		}
	}
	return result
}

// DomTable is the mapping Node → Set<Node> of dominators, satisfying the
// invariants of spec.md §3: entry ∈ Dom(n) for reachable n, n ∈ Dom(n) for
// all n, Dom(entry) = {entry}, and Dom(n) = {n} ∪ ⋂ Dom(p) for p ∈ preds(n).
type DomTable map[string]DomSet

// Dom returns the dominator set of name, or nil if name is not in the
// table (e.g. the graph was empty).
func (t DomTable) Dom(name string) DomSet { return t[name] }

// ComputeDominators computes the dominator table of g by the classical
// iterative data-flow fixed point (Cooper-style, over explicit Dom sets
// rather than integer idom intersection — the tree builder derives idom
// from this table's sets, per spec.md §4.2/§4.3).
//
// Description:
//
//	Initializes Dom(entry) = {entry} and Dom(n) = U (the universal node
//	set) for every other node, then repeatedly recomputes
//	Dom(n) = {n} ∪ ⋂ Dom(p) for each non-entry node n (visited in
//	insertion order) until a full pass makes no change. The algorithm is
//	monotone — each Dom(n) only shrinks after the first pass — and always
//	terminates.
//
// Inputs:
//
//	ctx - checked for cancellation on every
//	      dominatorContextCheckInterval-th pass.
//	g   - the graph to analyze. An empty graph yields an empty table.
//
// Outputs:
//
//	DomTable - never nil.
//	error    - non-nil only on context cancellation.
//
// Edge cases:
//
//	Empty graph: returns an empty table. Single node with no edges: returns
//	{n: {n}}. A self-loop on the entry node has no effect on Dom(entry).
func ComputeDominators(ctx context.Context, g *Graph) (DomTable, error) {
	ctx, span := dominatorTracer.Start(ctx, "ComputeDominators",
		oteltrace.WithAttributes(
			attribute.Int("node_count", g.NodeCount()),
			attribute.Int("edge_count", g.EdgeCount()),
		),
	)
	defer span.End()

	log := telemetry.LoggerWithTrace(ctx, loggerFromContext(ctx))

	table := make(DomTable, g.NodeCount())
	if g.NodeCount() == 0 {
		span.AddEvent("empty_graph")
		return table, nil
	}

	entry := g.Entry()
	universe := universalSet(g)

	table[entry.name] = DomSet{entry.name: {}}
	for _, n := range g.Nodes() {
		if n == entry {
			continue
		}
		table[n.name] = universe.clone()
	}

	changed := true
	iterations := 0
	for changed {
		if iterations >= DefaultMaxDominatorIterations {
			span.AddEvent("max_iterations_exceeded")
			log.Warn("dominators: exceeded max iterations without converging",
				slog.Int("max_iterations", DefaultMaxDominatorIterations))
			break
		}

		changed = false
		iterations++

		for _, n := range g.Nodes() {
			if n == entry {
				continue
			}
			if iterations%dominatorContextCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					span.AddEvent("context_cancelled")
					return table, err
				}
			}

			preds := n.predecessors
			predSets := make([]DomSet, 0, len(preds))
			for _, p := range preds {
				predSets = append(predSets, table[p.name])
			}

			next := intersectDomSets(predSets, universe)
			next[n.name] = struct{}{}

			if !domSetEqual(next, table[n.name]) {
				table[n.name] = next
				changed = true
			}
		}
	}

	span.AddEvent("converged", oteltrace.WithAttributes(
		attribute.Int("iterations", iterations),
	))
	log.Debug("dominators: converged",
		slog.Int("iterations", iterations),
		slog.Int("node_count", g.NodeCount()))

	return table, nil
}
