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

func TestCheckReducibility_EmptyGraph(t *testing.T) {
	g := Build(nil)
	report, err := CheckReducibility(context.Background(), g)
	require.NoError(t, err)
	assert.True(t, report.Reducible)
	assert.Empty(t, report.Edges)
}

// S3 — simple loop: the back edge C->B is dominator-confirmed, so the
// graph is reducible.
func TestCheckReducibility_SimpleLoopIsReducible(t *testing.T) {
	g := Build([]Edge{{From: "A", To: "B"}, {From: "B", To: "C"}, {From: "C", To: "B"}})
	report, err := CheckReducibility(context.Background(), g)
	require.NoError(t, err)
	assert.True(t, report.Reducible)
	assert.Empty(t, report.Irreducible)
}

// The classical irreducible graph: two predecessors jump into each other's
// half of a loop, so neither dominates the other's retreating edge.
func TestCheckReducibility_MutualLoopIsIrreducible(t *testing.T) {
	g := Build([]Edge{{From: "A", To: "B"}, {From: "A", To: "C"}, {From: "B", To: "C"}, {From: "C", To: "B"}})
	report, err := CheckReducibility(context.Background(), g)
	require.NoError(t, err)
	assert.False(t, report.Reducible)
	assert.Equal(t, []Edge{{From: "C", To: "B"}}, report.Irreducible)
}

func TestCheckReducibility_EdgeClassification(t *testing.T) {
	g := Build([]Edge{{From: "A", To: "B"}, {From: "A", To: "C"}, {From: "B", To: "C"}, {From: "C", To: "B"}})
	report, err := CheckReducibility(context.Background(), g)
	require.NoError(t, err)

	classes := make(map[Edge]EdgeClass, len(report.Edges))
	for _, ce := range report.Edges {
		classes[ce.Edge] = ce.Class
	}
	assert.Equal(t, EdgeClassTree, classes[Edge{From: "A", To: "B"}])
	assert.Equal(t, EdgeClassTree, classes[Edge{From: "B", To: "C"}])
	assert.Equal(t, EdgeClassBack, classes[Edge{From: "C", To: "B"}])
	assert.Equal(t, EdgeClassForward, classes[Edge{From: "A", To: "C"}])
}
