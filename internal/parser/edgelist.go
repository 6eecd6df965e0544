// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package parser reads the edge-list text format: one edge per line, each
// line "<from-name> --> <to-name>".
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jinterlante1206/cfgdom/internal/graph"
)

// arrow is the literal separator between a line's endpoints.
const arrow = " --> "

// ErrMalformedLine is returned (wrapped with the offending line number) when
// a non-blank line has no arrow separator or an empty endpoint.
var ErrMalformedLine = errors.New("parser: malformed edge line")

// ParseEdges reads edges from r, one per non-blank line. Leading whitespace
// on a line is skipped; blank lines are skipped rather than terminating the
// parse early.
//
// Description:
//
//	Each line is split on the first occurrence of " --> "; the substring
//	before it is from-name, the remainder is to-name. Both must be
//	non-empty. The first edge encountered defines the graph's entry node
//	(its from-name) once the result is passed to graph.Build.
//
// Outputs:
//
//	[]graph.Edge - in file order. Empty (not nil) for an empty input.
//	error        - wraps ErrMalformedLine with the 1-based line number of
//	               the first offending line, or a bufio.Scanner error.
func ParseEdges(r io.Reader) ([]graph.Edge, error) {
	edges := make([]graph.Edge, 0)
	scanner := bufio.NewScanner(r)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimLeft(scanner.Text(), " \t")
		if line == "" {
			continue
		}

		idx := strings.Index(line, arrow)
		if idx < 0 {
			return nil, fmt.Errorf("%w: line %d: no %q separator", ErrMalformedLine, lineNum, arrow)
		}

		from := line[:idx]
		to := line[idx+len(arrow):]
		if from == "" || to == "" {
			return nil, fmt.Errorf("%w: line %d: empty endpoint", ErrMalformedLine, lineNum)
		}

		edges = append(edges, graph.Edge{From: from, To: to})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parser: reading edge list: %w", err)
	}

	return edges, nil
}

// FormatEdges renders edges back into the edge-list text format, one
// "<from> --> <to>" line per edge, in the order given. The inverse of
// ParseEdges, used for the CLI's -g=cfg-txt output and by
// round-trip tests (spec's parse(render(g)) invariant).
func FormatEdges(w io.Writer, edges []graph.Edge) error {
	bw := bufio.NewWriter(w)
	for _, e := range edges {
		if _, err := fmt.Fprintf(bw, "%s%s%s\n", e.From, arrow, e.To); err != nil {
			return fmt.Errorf("parser: writing edge list: %w", err)
		}
	}
	return bw.Flush()
}
