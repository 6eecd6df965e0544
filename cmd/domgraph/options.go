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
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/jinterlante1206/cfgdom/internal/generator"
	"github.com/jinterlante1206/cfgdom/internal/render"
)

// defFileName is the file stem used when --file-name is not given.
const defFileName = "graph"

// options holds every value the CLI reads, one field per --flag plus the
// leading command token. Defaults mirror the original tool's OptsMap.
type options struct {
	command string

	arg       string
	path      string
	graphName string
	numNodes  string
	numEdges  string
	nodeColor string
	edgeColor string
	nodeShape string
	edgeShape string
	fileName  string
	nodeName  string

	styleConfig string
	trace       bool
	logLevel    string
	logJSON     bool
}

// knownOptions is the set of `--name` tokens parseArgs accepts, mirroring
// the original's OptsMap keys plus the ambient additions of §6.3.
var knownOptions = map[string]struct{}{
	"--arg": {}, "--path": {}, "--graph-name": {}, "--num-nodes": {},
	"--num-edges": {}, "--node-color": {}, "--edge-color": {}, "--node-shape": {},
	"--edge-shape": {}, "--file-name": {}, "--node-name": {},
	"--style-config": {}, "--trace": {}, "--log-level": {}, "--log-json": {},
}

// invalidOptionsError reports every malformed or unrecognized option token
// encountered in one invocation, batched rather than raised on the first
// offender — the original tool's printInvalidOptions behavior, and spec's
// "accumulated and reported as a set" policy.
type invalidOptionsError struct {
	tokens []string
}

func (e *invalidOptionsError) Error() string {
	noun := "option"
	if len(e.tokens) != 1 {
		noun = "options"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "invalid %s:\n", noun)
	for _, t := range e.tokens {
		fmt.Fprintf(&b, "  %s\n", t)
	}
	fmt.Fprint(&b, "Try run with -h")
	return b.String()
}

// defaultOptions mirrors the original OptsMap's defaults, with
// render.DefaultRenderConfig supplying the cosmetic fields.
func defaultOptions() options {
	style := render.DefaultRenderConfig()
	return options{
		path:      ".",
		graphName: style.GraphName,
		numNodes:  strconv.Itoa(generator.DefaultNumNodes),
		numEdges:  strconv.Itoa(generator.DefaultNumEdges),
		nodeColor: style.NodeColor,
		edgeColor: style.EdgeColor,
		nodeShape: style.NodeShape,
		edgeShape: style.EdgeShape,
		fileName:  defFileName,
		nodeName:  generator.DefaultNodeNamePrefix,
		logLevel:  "info",
	}
}

// parseArgs parses argv (os.Args[1:]) into an options value. The first
// token is the command (checked by the caller, including -h/-help); every
// remaining token must be `--name=value` (or the bare boolean flags
// --trace/--log-json) with name in knownOptions. Unlike flag.FlagSet.Parse,
// every malformed or unrecognized token is collected before returning,
// never just the first one — matching the original's OptionSet/OptsMap/
// ErrorOpts loop, which has no flag.FlagSet equivalent since flag.Parse
// stops at the first unknown flag. registerFlagSet below still uses
// flag.FlagSet for -h/-help's rendered usage text, the one part of this
// surface flag's own name/default/usage model fits directly.
func parseArgs(argv []string) (options, error) {
	if len(argv) == 0 {
		return options{}, fmt.Errorf("input error: expected command. Try run with -h")
	}

	opts := defaultOptions()
	opts.command = argv[0]

	var invalid []string
	for _, tok := range argv[1:] {
		switch tok {
		case "--trace":
			opts.trace = true
			continue
		case "--log-json":
			opts.logJSON = true
			continue
		}

		name, value, ok := strings.Cut(tok, "=")
		if !ok {
			invalid = append(invalid, tok)
			continue
		}
		if _, known := knownOptions[name]; !known {
			invalid = append(invalid, name)
			continue
		}

		switch name {
		case "--arg":
			opts.arg = value
		case "--path":
			opts.path = value
		case "--graph-name":
			opts.graphName = value
		case "--num-nodes":
			opts.numNodes = value
		case "--num-edges":
			opts.numEdges = value
		case "--node-color":
			opts.nodeColor = value
		case "--edge-color":
			opts.edgeColor = value
		case "--node-shape":
			opts.nodeShape = value
		case "--edge-shape":
			opts.edgeShape = value
		case "--file-name":
			opts.fileName = value
		case "--node-name":
			opts.nodeName = value
		case "--style-config":
			opts.styleConfig = value
		case "--log-level":
			opts.logLevel = value
		}
	}

	if len(invalid) > 0 {
		return options{}, &invalidOptionsError{tokens: invalid}
	}
	return opts, nil
}

// genOptions builds generator.GenOptions from the parsed numeric option
// strings, validating them the way the original's getOptInt does: a
// negative or unparseable value is an InvalidArgument.
func (o options) genOptions() (generator.GenOptions, error) {
	numNodes, err := getOptInt("--num-nodes", o.numNodes)
	if err != nil {
		return generator.GenOptions{}, err
	}
	numEdges, err := getOptInt("--num-edges", o.numEdges)
	if err != nil {
		return generator.GenOptions{}, err
	}
	return generator.GenOptions{
		NumNodes:       numNodes,
		NumEdges:       numEdges,
		NodeNamePrefix: o.nodeName,
	}, nil
}

func getOptInt(opt, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, validationErr(fmt.Errorf("%s: invalid argument %q", opt, value))
	}
	return n, nil
}

// renderConfig builds a render.RenderConfig from the parsed options,
// layering --style-config under the individual --node-color etc. flags:
// the YAML file (if any) supplies defaults that per-flag values override,
// matching the ambient "load or layer under" behavior described in §6.3.
func (o options) renderConfig() (render.RenderConfig, error) {
	cfg := render.DefaultRenderConfig()

	if o.styleConfig != "" {
		loaded, err := loadStyleConfig(o.styleConfig)
		if err != nil {
			return render.RenderConfig{}, err
		}
		cfg = loaded
	}

	// Options still holding their defaultOptions value were not given on
	// the command line, so they do not override the YAML file.
	def := defaultOptions()
	if o.graphName != "" && o.graphName != def.graphName {
		cfg.GraphName = o.graphName
	}
	if o.nodeColor != "" && o.nodeColor != def.nodeColor {
		cfg.NodeColor = o.nodeColor
	}
	if o.edgeColor != "" && o.edgeColor != def.edgeColor {
		cfg.EdgeColor = o.edgeColor
	}
	if o.nodeShape != "" && o.nodeShape != def.nodeShape {
		cfg.NodeShape = o.nodeShape
	}
	if o.edgeShape != "" && o.edgeShape != def.edgeShape {
		cfg.EdgeShape = o.edgeShape
	}
	return cfg, nil
}

// registerFlagSet declares every --option as a flag.FlagSet entry purely so
// -h/-help can render their usage text via fs.PrintDefaults — the one part
// of this CLI's surface where flag.FlagSet's own conventions (name, default,
// usage triple) fit directly, even though actual parsing of a real
// invocation goes through parseArgs above.
func registerFlagSet(d options) *flag.FlagSet {
	fs := flag.NewFlagSet("domgraph", flag.ContinueOnError)
	fs.String("arg", d.arg, "generate graph from an existing edge-list file instead of a random one")
	fs.String("path", d.path, "output directory for generated files")
	fs.String("graph-name", d.graphName, "name of the generated graph")
	fs.String("num-nodes", d.numNodes, "number of nodes to generate")
	fs.String("num-edges", d.numEdges, "limit on the number of edges per node")
	fs.String("node-color", d.nodeColor, "node fill color (accepts #rrggbb)")
	fs.String("edge-color", d.edgeColor, "edge color (accepts #rrggbb)")
	fs.String("node-shape", d.nodeShape, "node shape (see graphviz.org)")
	fs.String("edge-shape", d.edgeShape, "edge arrowhead shape (see graphviz.org)")
	fs.String("file-name", d.fileName, "file stem for generated file(s)")
	fs.String("node-name", d.nodeName, "prefix for generated node names")
	fs.String("style-config", d.styleConfig, "load a RenderConfig from a YAML file")
	fs.Bool("trace", d.trace, "emit an OpenTelemetry trace of the run to stdout")
	fs.String("log-level", d.logLevel, "debug, info, warn, or error")
	fs.Bool("log-json", d.logJSON, "emit logs as JSON instead of text")
	return fs
}
