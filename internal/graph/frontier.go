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

var frontierTracer = telemetry.Tracer("graph.dominance_frontier")

// DominanceFrontier is the computed DF(n) for every node of a Graph:
// DF(n) = {v : n dominates a predecessor of v, n does not strictly
// dominate v}.
type DominanceFrontier struct {
	// Frontier maps each node name to its dominance frontier, in
	// insertion order of discovery (not necessarily sorted).
	Frontier map[string][]string

	// MergePoints lists nodes whose own dominance frontier has two or
	// more members, sorted for determinism. A node that merely appears
	// in several other nodes' frontiers is not listed for that reason.
	MergePoints []string
}

// GetFrontier returns the dominance frontier of a node, or nil if it has
// none (or is not in the graph).
func (df *DominanceFrontier) GetFrontier(name string) []string {
	if df == nil {
		return nil
	}
	return df.Frontier[name]
}

// IsMergePoint reports whether name is in MergePoints, i.e. whether its
// own dominance frontier has two or more members.
func (df *DominanceFrontier) IsMergePoint(name string) bool {
	if df == nil {
		return false
	}
	for _, m := range df.MergePoints {
		if m == name {
			return true
		}
	}
	return false
}

// ComputeDF computes the dominance frontier of g given its immediate
// dominator map (as produced by BuildDomTree).
//
// Description:
//
//	For every node v and each of its predecessors p, walks runner = p,
//	idom(runner), idom(idom(runner)), ... inserting v into DF(runner) at
//	each step, until runner == idom(v). This is the classical
//	Cytron-et-al construction: the loop contributes nothing for a
//	predecessor that already equals idom(v), so there is no need to
//	special-case nodes with fewer than two predecessors. The entry node
//	is the one exception — it has no strict dominator, so a self-loop
//	predecessor (entry is its own predecessor) is walked against a
//	sentinel target that no real node can match, rather than against the
//	idom[entry]=entry self-mapping BuildDomTree sets for tree-building
//	purposes.
//
// Outputs:
//
//	*DominanceFrontier - never nil.
//	error              - non-nil on context cancellation or if the walk
//	                      cannot reach idom(v) (idom map inconsistency).
func ComputeDF(ctx context.Context, g *Graph, idom map[string]string) (*DominanceFrontier, error) {
	ctx, span := frontierTracer.Start(ctx, "ComputeDF",
		oteltrace.WithAttributes(attribute.Int("node_count", g.NodeCount())),
	)
	defer span.End()
	log := telemetry.LoggerWithTrace(ctx, loggerFromContext(ctx))

	df := &DominanceFrontier{Frontier: make(map[string][]string, g.NodeCount())}
	seen := make(map[string]map[string]struct{}, g.NodeCount())
	entry := g.Entry()

	insert := func(runner, name string) {
		if seen[runner] == nil {
			seen[runner] = make(map[string]struct{})
		}
		if _, already := seen[runner][name]; !already {
			seen[runner][name] = struct{}{}
			df.Frontier[runner] = append(df.Frontier[runner], name)
		}
	}

	for _, v := range g.Nodes() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		target, ok := idom[v.name]
		if !ok {
			// v is unreachable from entry; contributes nothing to any
			// frontier.
			continue
		}
		isEntry := entry != nil && v == entry
		if isEntry {
			// The entry has no strict dominator, so unlike every other
			// node there is no real idom(entry) to walk up to — idom
			// itself maps entry to entry only as a tree-building
			// sentinel (tree.go). Using that sentinel as the walk's
			// target here would make a self-loop predecessor equal to
			// the target before the first step, silently dropping
			// entry from its own frontier. Use a target no real node
			// name can equal, so the walk always takes at least one
			// step and relies on the entry-reached check below to stop.
			target = ""
		}

		for _, p := range v.predecessors {
			runner := p.name
			steps := 0
			for runner != target {
				if steps > g.NodeCount() {
					// Defensive: idom(v) was never reached walking up
					// from p. Implies an unreachable node or an
					// inconsistent idom map (spec.md §4.5).
					span.AddEvent("idom_chain_exhausted", oteltrace.WithAttributes(
						attribute.String("node", v.name), attribute.String("runner", runner),
					))
					log.Warn("dominance frontier: idom chain did not reach idom(v)",
						slog.String("node", v.name), slog.String("runner", runner))
					return nil, &AnalysisError{Phase: "ComputeDF", Node: v.name, Err: ErrUnreachableNode}
				}

				insert(runner, v.name)

				if runner == entry.name {
					// Reached the root without matching target: only
					// expected when v is the entry itself (handled
					// above). Stop rather than loop on idom[entry]=entry.
					break
				}

				next, ok := idom[runner]
				if !ok {
					break
				}
				runner = next
				steps++
			}
		}
	}

	for _, n := range g.Nodes() {
		if _, ok := df.Frontier[n.name]; !ok {
			df.Frontier[n.name] = nil
		}
	}

	merge := make([]string, 0)
	for name := range seen {
		if len(seen[name]) >= 2 {
			merge = append(merge, name)
		}
	}
	sort.Strings(merge)
	df.MergePoints = merge

	span.AddEvent("computed")
	return df, nil
}
