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
)

// printHelp writes the command/option reference, in the original tool's
// "|-section / |\tentry" layout, plus a flag.FlagSet-rendered option
// reference (registerFlagSet) so default values stay in one place.
func printHelp(w io.Writer, defaults options) {
	fmt.Fprintln(w, "-- domgraph: CFG dominance analysis toolkit --")
	fmt.Fprintln(w, "|- To generate a CFG in a chosen format:")
	fmt.Fprintln(w, "|\t-g=cfg-txt\n|\t-g=cfg-dot\n|\t-g=cfg-png\n|\t-g=cfg")
	fmt.Fprintln(w, "|- To generate a dominator tree in a chosen format:")
	fmt.Fprintln(w, "|\t-g=dom-tree-dot\n|\t-g=dom-tree-png\n|\t-g=dom-tree")
	fmt.Fprintln(w, "|- To generate a join graph (CFG edges outside the dominator tree):")
	fmt.Fprintln(w, "|\t-g=join-graph-dot\n|\t-g=join-graph-png\n|\t-g=join-graph")
	fmt.Fprintln(w, "|- To generate a dominance-frontier graph:")
	fmt.Fprintln(w, "|\t-g=dom-frontier-dot\n|\t-g=dom-frontier-png\n|\t-g=dom-frontier")
	fmt.Fprintln(w, "|- To report natural loops or a reducibility check (text only):")
	fmt.Fprintln(w, "|\t-g=loops\n|\t-g=reducibility")
	fmt.Fprintln(w, "|- Note: a bare -g=<kind> generates every format that kind supports.")
	fmt.Fprintln(w, "|- Options:")

	fs := registerFlagSet(defaults)
	fs.SetOutput(w)
	fs.PrintDefaults()

	fmt.Fprintln(w, "|- Note: --node-color and --edge-color accept RGB hex (e.g. --node-color=#ffffff).")
}
