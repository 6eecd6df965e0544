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

func TestJoinEdges_LinearChainHasNoJoins(t *testing.T) {
	g := Build([]Edge{{From: "A", To: "B"}, {From: "B", To: "C"}, {From: "C", To: "D"}})
	dom, err := ComputeDominators(context.Background(), g)
	require.NoError(t, err)
	tree, err := BuildDomTree(context.Background(), g, dom)
	require.NoError(t, err)

	assert.Empty(t, JoinEdges(g, tree.Tree))
}

// S2 — diamond: both edges into D that are not the tree edge are joins.
func TestJoinEdges_Diamond(t *testing.T) {
	g := Build([]Edge{{From: "A", To: "B"}, {From: "A", To: "C"}, {From: "B", To: "D"}, {From: "C", To: "D"}})
	dom, err := ComputeDominators(context.Background(), g)
	require.NoError(t, err)
	tree, err := BuildDomTree(context.Background(), g, dom)
	require.NoError(t, err)

	join := JoinEdges(g, tree.Tree)
	assert.ElementsMatch(t, []Edge{{From: "B", To: "D"}, {From: "C", To: "D"}}, join)
}

// S3 — simple loop: the back edge C->B is the sole join edge.
func TestJoinEdges_SimpleLoop(t *testing.T) {
	g := Build([]Edge{{From: "A", To: "B"}, {From: "B", To: "C"}, {From: "C", To: "B"}})
	dom, err := ComputeDominators(context.Background(), g)
	require.NoError(t, err)
	tree, err := BuildDomTree(context.Background(), g, dom)
	require.NoError(t, err)

	assert.Equal(t, []Edge{{From: "C", To: "B"}}, JoinEdges(g, tree.Tree))
}

// S4 — self-loop at entry: the self-loop is a join edge.
func TestJoinEdges_SelfLoopAtEntry(t *testing.T) {
	g := Build([]Edge{{From: "A", To: "A"}, {From: "A", To: "B"}})
	dom, err := ComputeDominators(context.Background(), g)
	require.NoError(t, err)
	tree, err := BuildDomTree(context.Background(), g, dom)
	require.NoError(t, err)

	assert.Equal(t, []Edge{{From: "A", To: "A"}}, JoinEdges(g, tree.Tree))
}

// Invariant 8: Join = edges(cfg) \ edges(tree) and Join ∩ edges(tree) = ∅.
func TestJoinEdges_DisjointFromTree(t *testing.T) {
	g := Build([]Edge{
		{From: "A", To: "B"}, {From: "B", To: "C"}, {From: "B", To: "D"},
		{From: "C", To: "E"}, {From: "D", To: "E"}, {From: "E", To: "B"},
	})
	dom, err := ComputeDominators(context.Background(), g)
	require.NoError(t, err)
	tree, err := BuildDomTree(context.Background(), g, dom)
	require.NoError(t, err)

	treeSet := make(map[Edge]struct{})
	for _, e := range tree.Tree.Edges() {
		treeSet[e] = struct{}{}
	}
	for _, e := range JoinEdges(g, tree.Tree) {
		_, inTree := treeSet[e]
		assert.False(t, inTree, "%v should not also be a tree edge", e)
	}
}
