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

import "errors"

// Sentinel errors for graph analyses.
var (
	// ErrEntryNotFound is returned when a requested entry name has no
	// corresponding node in the graph.
	ErrEntryNotFound = errors.New("entry node not found")

	// ErrUnreachableNode is returned when a node has no path from entry.
	// Dom(n) converges to the universal set rather than a proper dominator
	// chain, and idom(n) is undefined for such a node (spec: "unreachable
	// node").
	ErrUnreachableNode = errors.New("node unreachable from entry")

	// ErrIdomSearchFailed is returned when the BFS immediate-dominator
	// search in BuildDomTree exhausts the predecessor closure without
	// finding a member of the strict-dominator set. This indicates a bug
	// or an unreachable node reaching the tree builder; it must be
	// reported, never silently ignored.
	ErrIdomSearchFailed = errors.New("immediate dominator search failed to find an ancestor")

	// ErrRender is returned when DOT/PNG rendering fails to open or write
	// an output file, or the dot/display subprocess fails.
	ErrRender = errors.New("render failed")
)

// AnalysisError carries the phase and node context of a failure so callers
// can log or trace without string-sniffing the error message.
type AnalysisError struct {
	Phase string // e.g. "ComputeDominators", "BuildDomTree", "ComputeDF"
	Node  string // node name involved, if any
	Err   error  // one of the sentinel errors above
}

func (e *AnalysisError) Error() string {
	if e.Node == "" {
		return e.Phase + ": " + e.Err.Error()
	}
	return e.Phase + ": " + e.Node + ": " + e.Err.Error()
}

func (e *AnalysisError) Unwrap() error { return e.Err }
