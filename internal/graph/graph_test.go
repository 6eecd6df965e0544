// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_EmptyGraph(t *testing.T) {
	g := Build(nil)
	require.NotNil(t, g)
	assert.Equal(t, 0, g.NodeCount())
	assert.Nil(t, g.Entry())
}

func TestBuild_FirstEdgeFromIsEntry(t *testing.T) {
	g := Build([]Edge{{From: "A", To: "B"}, {From: "B", To: "C"}})
	require.NotNil(t, g.Entry())
	assert.Equal(t, "A", g.Entry().Name(), "entry should be the first edge's from-name")
	assert.Equal(t, 0, g.Entry().Index())
}

func TestBuild_SuccessorsAndPredecessors(t *testing.T) {
	g := Build([]Edge{{From: "A", To: "B"}, {From: "A", To: "C"}})
	a, ok := g.Find("A")
	require.True(t, ok)
	assert.Len(t, a.Successors(), 2)

	b, ok := g.Find("B")
	require.True(t, ok)
	require.Len(t, b.Predecessors(), 1)
	assert.Equal(t, "A", b.Predecessors()[0].Name())
}

func TestBuild_SelfLoopPermitted(t *testing.T) {
	g := Build([]Edge{{From: "A", To: "A"}, {From: "A", To: "B"}})
	a, ok := g.Find("A")
	require.True(t, ok)
	assert.Len(t, a.Successors(), 2, "a self-loop counts as both a successor and predecessor edge")
	assert.Contains(t, []string{a.Predecessors()[0].Name()}, "A")
}

func TestGraph_Edges_IncludesDuplicatesAndSelfLoops(t *testing.T) {
	g := Build([]Edge{{From: "A", To: "A"}, {From: "A", To: "B"}, {From: "A", To: "B"}})
	edges := g.Edges()
	assert.Len(t, edges, 3)
	assert.Equal(t, 3, g.EdgeCount())
}
