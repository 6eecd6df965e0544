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

var reducibilityTracer = telemetry.Tracer("graph.reducibility")

// EdgeClass is a DFS edge classification relative to a depth-first
// spanning tree rooted at entry.
type EdgeClass int

const (
	EdgeClassTree EdgeClass = iota
	EdgeClassForward
	EdgeClassBack
	EdgeClassCross
)

func (c EdgeClass) String() string {
	switch c {
	case EdgeClassTree:
		return "tree"
	case EdgeClassForward:
		return "forward"
	case EdgeClassBack:
		return "back"
	case EdgeClassCross:
		return "cross"
	default:
		return "unknown"
	}
}

// ClassifiedEdge pairs an edge with its DFS classification.
type ClassifiedEdge struct {
	Edge
	Class EdgeClass
}

// ReducibilityReport is the outcome of CheckReducibility.
type ReducibilityReport struct {
	// Reducible is true iff every retreating (DFS back) edge is confirmed
	// a dominance back edge.
	Reducible bool

	// Edges lists every edge reachable from entry with its DFS
	// classification, sorted by (From, To).
	Edges []ClassifiedEdge

	// Irreducible lists the retreating edges that are not
	// dominator-confirmed back edges — the witnesses of irreducibility.
	// Empty (not nil) when Reducible is true.
	Irreducible []Edge
}

// CheckReducibility determines whether g is reducible.
//
// Description:
//
//	Runs a depth-first walk from entry, classifying every edge as tree,
//	forward, back, or cross relative to the DFS spanning tree (the
//	classical construction via discovery order: an edge to an unvisited
//	node is a tree edge; to a node currently on the DFS stack is a
//	retreating (back) edge; to an already-finished node discovered after
//	the source is forward; to one discovered before is cross).
//
//	A graph is reducible iff every retreating edge n → h is also a
//	dominance back edge, i.e. h dominates n (Hecht & Ullman's T1/T2
//	reducibility criterion). Cross and forward edges never affect
//	reducibility by themselves. Nodes unreachable from entry are excluded
//	from the walk and do not appear in the report.
//
// Inputs:
//
//	ctx - checked for cancellation between nodes.
//	g   - the graph to analyze.
//
// Outputs:
//
//	*ReducibilityReport - never nil.
//	error               - non-nil only on context cancellation or a
//	                      dominator-computation failure.
func CheckReducibility(ctx context.Context, g *Graph) (*ReducibilityReport, error) {
	ctx, span := reducibilityTracer.Start(ctx, "CheckReducibility",
		oteltrace.WithAttributes(attribute.Int("node_count", g.NodeCount())),
	)
	defer span.End()
	log := telemetry.LoggerWithTrace(ctx, loggerFromContext(ctx))

	report := &ReducibilityReport{Reducible: true, Edges: []ClassifiedEdge{}, Irreducible: []Edge{}}
	if g.NodeCount() == 0 {
		return report, nil
	}

	dom, err := ComputeDominators(ctx, g)
	if err != nil {
		return nil, err
	}
	tree, err := BuildDomTree(ctx, g, dom)
	if err != nil {
		return nil, err
	}

	const (
		stateUnvisited = 0
		stateOnStack   = 1
		stateDone      = 2
	)
	state := make(map[string]int, g.NodeCount())
	disc := make(map[string]int, g.NodeCount())
	clock := 0

	var visit func(n *Node) error
	visit = func(n *Node) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		state[n.name] = stateOnStack
		disc[n.name] = clock
		clock++

		for _, succ := range n.successors {
			switch state[succ.name] {
			case stateUnvisited:
				report.Edges = append(report.Edges, ClassifiedEdge{Edge{n.name, succ.name}, EdgeClassTree})
				if err := visit(succ); err != nil {
					return err
				}
			case stateOnStack:
				report.Edges = append(report.Edges, ClassifiedEdge{Edge{n.name, succ.name}, EdgeClassBack})
				if !dominatesViaIdom(tree.Idom, succ.name, n.name) {
					report.Reducible = false
					report.Irreducible = append(report.Irreducible, Edge{n.name, succ.name})
				}
			case stateDone:
				if disc[succ.name] > disc[n.name] {
					report.Edges = append(report.Edges, ClassifiedEdge{Edge{n.name, succ.name}, EdgeClassForward})
				} else {
					report.Edges = append(report.Edges, ClassifiedEdge{Edge{n.name, succ.name}, EdgeClassCross})
				}
			}
		}

		state[n.name] = stateDone
		return nil
	}

	if err := visit(g.Entry()); err != nil {
		return nil, err
	}

	sort.Slice(report.Edges, func(i, j int) bool {
		if report.Edges[i].From != report.Edges[j].From {
			return report.Edges[i].From < report.Edges[j].From
		}
		return report.Edges[i].To < report.Edges[j].To
	})
	sort.Slice(report.Irreducible, func(i, j int) bool {
		if report.Irreducible[i].From != report.Irreducible[j].From {
			return report.Irreducible[i].From < report.Irreducible[j].From
		}
		return report.Irreducible[i].To < report.Irreducible[j].To
	})

	if report.Reducible {
		log.Debug("graph is reducible", slog.Int("edges_classified", len(report.Edges)))
	} else {
		log.Warn("graph is irreducible", slog.Int("irreducible_edge_count", len(report.Irreducible)))
	}
	span.AddEvent("classified", oteltrace.WithAttributes(
		attribute.Bool("reducible", report.Reducible),
		attribute.Int("edge_count", len(report.Edges)),
	))

	return report, nil
}
