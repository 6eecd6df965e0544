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
	"strings"
)

// kindFormats lists the formats each -g=<kind> command understands, in the
// order a bare (format-less) invocation should render them. loops and
// reducibility are textual reports only — §6.3 defines no DOT rendering
// for them, since they report headers/bodies/flags rather than a graph.
var kindFormats = map[string][]string{
	"cfg":          {"txt", "dot", "png"},
	"dom-tree":     {"dot", "png"},
	"join-graph":   {"dot", "png"},
	"dom-frontier": {"dot", "png"},
	"loops":        {"txt"},
	"reducibility": {"txt"},
}

// kindOrder lists kindFormats' keys longest-first, so a prefix scan of
// "dom-tree-dot" matches the kind "dom-tree" before any shorter false match.
var kindOrder = []string{"dom-frontier", "reducibility", "join-graph", "dom-tree", "loops", "cfg"}

// parsedCommand is the result of parsing the leading "-g=..." token.
type parsedCommand struct {
	kind    string
	formats []string
}

// parseCommand splits a "-g=<kind>[-<format>]" token into its kind and the
// format(s) it selects. A bare "-g=<kind>" selects every format kindFormats
// lists for that kind, per §6.3's "bare -g=<kind> emits all formats."
func parseCommand(cmd string) (parsedCommand, error) {
	const prefix = "-g="
	if !strings.HasPrefix(cmd, prefix) {
		return parsedCommand{}, fmt.Errorf("%s is not an available command. Try -help", cmd)
	}
	rest := cmd[len(prefix):]

	for _, kind := range kindOrder {
		formats := kindFormats[kind]
		if rest == kind {
			return parsedCommand{kind: kind, formats: formats}, nil
		}
		if suffix, ok := strings.CutPrefix(rest, kind+"-"); ok {
			for _, f := range formats {
				if suffix == f {
					return parsedCommand{kind: kind, formats: []string{f}}, nil
				}
			}
		}
	}
	return parsedCommand{}, fmt.Errorf("%s is not an available command. Try -help", cmd)
}
