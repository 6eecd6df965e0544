// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jinterlante1206/cfgdom/internal/graph"
)

// writeLoopsReport renders the natural-loop analysis as a plain-text report:
// one block per loop, header first, then its back edges and body.
func writeLoopsReport(w io.Writer, loops []graph.Loop) error {
	if len(loops) == 0 {
		_, err := io.WriteString(w, "no natural loops found\n")
		return err
	}
	for _, l := range loops {
		edges := make([]string, len(l.BackEdges))
		for i, e := range l.BackEdges {
			edges[i] = fmt.Sprintf("%s->%s", e.From, e.To)
		}
		if _, err := fmt.Fprintf(w, "header: %s\nback edges: %s\nbody: %s\n\n",
			l.Header, strings.Join(edges, ", "), strings.Join(l.Body, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// writeReducibilityReport renders CheckReducibility's result: the overall
// verdict, every classified edge, and (if any) the witnesses of
// irreducibility.
func writeReducibilityReport(w io.Writer, report *graph.ReducibilityReport) error {
	if _, err := fmt.Fprintf(w, "reducible: %t\n\nedges:\n", report.Reducible); err != nil {
		return err
	}
	for _, e := range report.Edges {
		if _, err := fmt.Fprintf(w, "  %s -> %s (%s)\n", e.From, e.To, e.Class); err != nil {
			return err
		}
	}
	if len(report.Irreducible) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, "\nirreducible back edges:\n"); err != nil {
		return err
	}
	for _, e := range report.Irreducible {
		if _, err := fmt.Fprintf(w, "  %s -> %s\n", e.From, e.To); err != nil {
			return err
		}
	}
	return nil
}
