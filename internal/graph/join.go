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

import "sort"

// JoinEdges returns the CFG edges that are not dominator-tree edges:
// Set(cfg.edges) \ Set(tree.edges), compared by endpoint name pair. Input
// edge lists are canonicalised into sets (duplicates collapse) before the
// difference is taken; the result is returned sorted for deterministic
// rendering, though the abstract value is a set.
func JoinEdges(cfg *Graph, tree *Graph) []Edge {
	treeSet := make(map[Edge]struct{}, tree.EdgeCount())
	for _, e := range tree.Edges() {
		treeSet[e] = struct{}{}
	}

	cfgSet := make(map[Edge]struct{}, cfg.EdgeCount())
	for _, e := range cfg.Edges() {
		cfgSet[e] = struct{}{}
	}

	join := make([]Edge, 0, len(cfgSet))
	for e := range cfgSet {
		if _, inTree := treeSet[e]; !inTree {
			join = append(join, e)
		}
	}

	sort.Slice(join, func(i, j int) bool {
		if join[i].From != join[j].From {
			return join[i].From < join[j].From
		}
		return join[i].To < join[j].To
	})
	return join
}
