// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package generator produces random control-flow graphs for exercising the
// analysis pipeline without a hand-authored edge list.
package generator

import (
	"math/rand/v2"
	"strconv"

	"github.com/jinterlante1206/cfgdom/internal/graph"
)

// Defaults and limits mirroring the original generator's named constants.
const (
	DefaultNumNodes = 5
	DefaultNumEdges = 1
	MaxNumNodes     = 15
	MaxNumEdges     = 5

	// DefaultNodeNamePrefix is the node-name prefix used when none is
	// given ("BB" in the original, for "basic block").
	DefaultNodeNamePrefix = "BB"
)

// GenOptions configures Generate.
type GenOptions struct {
	// NumNodes is the number of nodes to create, named
	// <NodeNamePrefix>_1 .. <NodeNamePrefix>_NumNodes. Clamped to
	// DefaultNumNodes if zero or greater than MaxNumNodes.
	NumNodes int

	// NumEdges bounds how many outgoing edges each node may get (a
	// per-node random count in [1, NumEdges] is drawn). Reset to 1 if it
	// exceeds NumNodes; otherwise clamped to DefaultNumEdges+1 if greater
	// than MaxNumEdges, and to DefaultNumEdges if zero or negative.
	NumEdges int

	// NodeNamePrefix names nodes <prefix>_<n>. Defaults to "BB".
	NodeNamePrefix string

	// Seed seeds the PRNG. Zero means seed unpredictably (the original's
	// std::random_device equivalent): a *rand.Rand seeded from
	// crypto-random-derived state via rand/v2's default source.
	Seed uint64
}

// Generate produces a random edge list per opts, following the original
// generator's exact shape: for each node 1..NumNodes, draw a random edge
// count in [1, NumEdges], then for that many edges pick a distinct target
// node index without replacement (erase the chosen index from the
// candidate pool, so a node never gets two edges to the same target in one
// generation pass).
//
// Inputs:
//
//	opts - see GenOptions. Out-of-range values are clamped exactly as the
//	       original generator clamps them, rather than rejected.
//
// Outputs:
//
//	[]graph.Edge - never nil. Node names are "<prefix>_<n>", 1-indexed.
func Generate(opts GenOptions) []graph.Edge {
	numNodes := opts.NumNodes
	if numNodes <= 0 || numNodes > MaxNumNodes {
		numNodes = DefaultNumNodes
	}
	numEdges := opts.NumEdges
	if numEdges > numNodes {
		numEdges = 1
	}
	if numEdges > MaxNumEdges {
		numEdges = DefaultNumEdges + 1
	}
	if numEdges <= 0 {
		numEdges = DefaultNumEdges
	}
	prefix := opts.NodeNamePrefix
	if prefix == "" {
		prefix = DefaultNodeNamePrefix
	}

	var rng *rand.Rand
	if opts.Seed == 0 {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		rng = rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	}

	edges := make([]graph.Edge, 0, numNodes*numEdges)
	for from := 1; from <= numNodes; from++ {
		pool := make([]int, numNodes)
		for i := range pool {
			pool[i] = i + 1
		}

		edgeCount := 1 + rng.IntN(numEdges)
		for e := 0; e < edgeCount && len(pool) > 0; e++ {
			cell := rng.IntN(len(pool))
			to := pool[cell]
			pool = append(pool[:cell], pool[cell+1:]...)

			edges = append(edges, graph.Edge{
				From: nodeName(prefix, from),
				To:   nodeName(prefix, to),
			})
		}
	}

	return edges
}

func nodeName(prefix string, n int) string {
	return prefix + "_" + strconv.Itoa(n)
}
