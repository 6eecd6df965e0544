// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/jinterlante1206/cfgdom/internal/logging"
	"github.com/jinterlante1206/cfgdom/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logging.Logger {
	return logging.New(logging.Config{Level: logging.LevelError, Output: io.Discard})
}

func writeEdgeListFile(t *testing.T, dir string, edges string) string {
	t.Helper()
	path := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(path, []byte(edges), 0o644))
	return path
}

func TestDispatch_CFGTxtWritesEdgeListFile(t *testing.T) {
	dir := t.TempDir()
	edgePath := writeEdgeListFile(t, dir, "A --> B\nB --> C\n")

	opts := defaultOptions()
	opts.path = dir
	opts.arg = edgePath
	opts.fileName = "out"

	err := dispatch(context.Background(), opts, parsedCommand{kind: "cfg", formats: []string{"txt"}}, render.DefaultRenderConfig(), testLogger())
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "A --> B\nB --> C\n", string(content))
}

func TestDispatch_DomTreeDotWritesDigraph(t *testing.T) {
	dir := t.TempDir()
	edgePath := writeEdgeListFile(t, dir, "A --> B\nA --> C\nB --> D\nC --> D\n")

	opts := defaultOptions()
	opts.path = dir
	opts.arg = edgePath
	opts.fileName = "out"

	err := dispatch(context.Background(), opts, parsedCommand{kind: "dom-tree", formats: []string{"dot"}}, render.DefaultRenderConfig(), testLogger())
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "out.dot"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "digraph graph {")
	assert.Contains(t, string(content), "A -> D;")
}

func TestDispatch_LoopsReportWritesSuffixedFile(t *testing.T) {
	dir := t.TempDir()
	edgePath := writeEdgeListFile(t, dir, "A --> B\nB --> C\nC --> B\n")

	opts := defaultOptions()
	opts.path = dir
	opts.arg = edgePath
	opts.fileName = "out"

	err := dispatch(context.Background(), opts, parsedCommand{kind: "loops", formats: []string{"txt"}}, render.DefaultRenderConfig(), testLogger())
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "out-loops.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "B")
}

func TestDispatch_ReducibilityReportWritesSuffixedFile(t *testing.T) {
	dir := t.TempDir()
	edgePath := writeEdgeListFile(t, dir, "A --> B\nB --> C\nC --> B\n")

	opts := defaultOptions()
	opts.path = dir
	opts.arg = edgePath
	opts.fileName = "out"

	err := dispatch(context.Background(), opts, parsedCommand{kind: "reducibility", formats: []string{"txt"}}, render.DefaultRenderConfig(), testLogger())
	require.NoError(t, err)

	_, err = os.ReadFile(filepath.Join(dir, "out-reducibility.txt"))
	require.NoError(t, err)
}

func TestDispatch_InvalidEdgeListFileIsValidationError(t *testing.T) {
	dir := t.TempDir()
	opts := defaultOptions()
	opts.path = dir
	opts.arg = filepath.Join(dir, "does-not-exist.txt")
	opts.fileName = "out"

	err := dispatch(context.Background(), opts, parsedCommand{kind: "cfg", formats: []string{"txt"}}, render.DefaultRenderConfig(), testLogger())
	require.Error(t, err)
	var ce *cliError
	require.ErrorAs(t, err, &ce)
}

func TestDispatch_GeneratesRandomGraphWhenNoArgGiven(t *testing.T) {
	dir := t.TempDir()
	opts := defaultOptions()
	opts.path = dir
	opts.fileName = "out"
	opts.numNodes = "4"
	opts.numEdges = "1"

	err := dispatch(context.Background(), opts, parsedCommand{kind: "cfg", formats: []string{"txt"}}, render.DefaultRenderConfig(), testLogger())
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	require.NoError(t, err)
	assert.NotEmpty(t, content)
}
