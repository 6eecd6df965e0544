// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command domgraph computes and renders CFG dominance-analysis artifacts:
// dominator trees, join graphs, dominance frontiers, natural loops, and
// reducibility reports, from either a hand-authored edge-list file or a
// randomly generated control-flow graph.
//
// Usage:
//
//	domgraph -g=cfg --arg=input.txt --path=out
//	domgraph -g=dom-tree-dot --num-nodes=8 --num-edges=2
//	domgraph -h
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/jinterlante1206/cfgdom/internal/graph"
	"github.com/jinterlante1206/cfgdom/internal/logging"
)

// Exit codes per §6.3: 0 success, 0x777 input-validation failure, 1 an
// internal/analysis invariant violation (IdomSearchFailure, RenderError, an
// unreachable node surfaced as fatal).
const (
	exitSuccess           = 0
	exitValidationFailure = 0x777
	exitInternalError     = 1
)

// cliError marks an error as CLI-input-validation-class (exit 0x777)
// rather than an internal analysis failure (exit 1) — the two error
// classes §7 distinguishes.
type cliError struct{ err error }

func validationErr(err error) error {
	if err == nil {
		return nil
	}
	return &cliError{err: err}
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(argv)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitValidationFailure
	}

	if opts.command == "-h" || opts.command == "-help" || opts.command == "--help" {
		printHelp(stdout, opts)
		return exitSuccess
	}

	runID := uuid.NewString()[:12]
	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(opts.logLevel),
		JSON:   opts.logJSON,
		Output: stderr,
	}).WithRunID(runID)

	if opts.trace {
		shutdown, err := setupTracing(stdout)
		if err != nil {
			logger.Warn("tracing disabled", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	pc, err := parseCommand(opts.command)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitValidationFailure
	}

	style, err := opts.renderConfig()
	if err != nil {
		fmt.Fprintln(stderr, validationErr(err))
		return exitValidationFailure
	}

	ctx := logging.IntoContext(context.Background(), logger)
	if err := dispatch(ctx, opts, pc, style, logger); err != nil {
		logger.Error("command failed", "command", opts.command, "error", err)
		fmt.Fprintln(stderr, err)

		var ce *cliError
		var ae *graph.AnalysisError
		if errors.As(err, &ce) {
			return exitValidationFailure
		}
		if errors.As(err, &ae) || errors.Is(err, graph.ErrRender) {
			return exitInternalError
		}
		return exitInternalError
	}

	logger.Info("command finished", "command", opts.command)
	return exitSuccess
}
