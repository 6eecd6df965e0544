// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildLoops(t *testing.T, edges []Edge) []Loop {
	t.Helper()
	g := Build(edges)
	dom, err := ComputeDominators(context.Background(), g)
	require.NoError(t, err)
	tree, err := BuildDomTree(context.Background(), g, dom)
	require.NoError(t, err)
	loops, err := NaturalLoops(context.Background(), g, tree.Idom)
	require.NoError(t, err)
	return loops
}

func TestNaturalLoops_LinearChainHasNone(t *testing.T) {
	loops := buildLoops(t, []Edge{{From: "A", To: "B"}, {From: "B", To: "C"}})
	assert.Empty(t, loops)
}

// S3 — simple loop: C->B is the single back edge, body {B,C}.
func TestNaturalLoops_SimpleLoop(t *testing.T) {
	loops := buildLoops(t, []Edge{{From: "A", To: "B"}, {From: "B", To: "C"}, {From: "C", To: "B"}})
	require.Len(t, loops, 1)
	assert.Equal(t, "B", loops[0].Header)
	assert.Equal(t, []Edge{{From: "C", To: "B"}}, loops[0].BackEdges)
	assert.Equal(t, []string{"B", "C"}, loops[0].Body)
}

// S5 — nested reducible graph: E->B is the lone back edge, body spans the
// whole diamond beneath the header.
func TestNaturalLoops_NestedReducible(t *testing.T) {
	loops := buildLoops(t, []Edge{
		{From: "A", To: "B"}, {From: "B", To: "C"}, {From: "B", To: "D"},
		{From: "C", To: "E"}, {From: "D", To: "E"}, {From: "E", To: "B"},
	})
	require.Len(t, loops, 1)
	assert.Equal(t, "B", loops[0].Header)
	assert.Equal(t, []Edge{{From: "E", To: "B"}}, loops[0].BackEdges)
	assert.Equal(t, []string{"B", "C", "D", "E"}, loops[0].Body)
}

// A self-loop at the entry is its own degenerate natural loop.
func TestNaturalLoops_SelfLoopAtEntry(t *testing.T) {
	loops := buildLoops(t, []Edge{{From: "A", To: "A"}, {From: "A", To: "B"}})
	require.Len(t, loops, 1)
	assert.Equal(t, "A", loops[0].Header)
	assert.Equal(t, []Edge{{From: "A", To: "A"}}, loops[0].BackEdges)
	assert.Equal(t, []string{"A"}, loops[0].Body)
}

// Two back edges into the same header merge into one loop.
func TestNaturalLoops_MultipleBackEdgesMergeAtHeader(t *testing.T) {
	loops := buildLoops(t, []Edge{
		{From: "A", To: "B"}, {From: "B", To: "C"}, {From: "C", To: "D"},
		{From: "D", To: "B"}, {From: "C", To: "B"},
	})
	require.Len(t, loops, 1)
	assert.Equal(t, "B", loops[0].Header)
	assert.Equal(t, []Edge{{From: "C", To: "B"}, {From: "D", To: "B"}}, loops[0].BackEdges)
	assert.Equal(t, []string{"B", "C", "D"}, loops[0].Body)
}
