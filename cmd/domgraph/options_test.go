// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs_NoArgvIsInputError(t *testing.T) {
	_, err := parseArgs(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected command")
}

func TestParseArgs_CommandIsFirstToken(t *testing.T) {
	opts, err := parseArgs([]string{"-g=cfg-dot"})
	require.NoError(t, err)
	assert.Equal(t, "-g=cfg-dot", opts.command)
}

func TestParseArgs_KnownOptionsOverrideDefaults(t *testing.T) {
	opts, err := parseArgs([]string{"-g=cfg", "--num-nodes=7", "--node-color=green", "--path=/tmp/out"})
	require.NoError(t, err)
	assert.Equal(t, "7", opts.numNodes)
	assert.Equal(t, "green", opts.nodeColor)
	assert.Equal(t, "/tmp/out", opts.path)
}

func TestParseArgs_BareBooleanFlagsDoNotRequireEquals(t *testing.T) {
	opts, err := parseArgs([]string{"-g=cfg", "--trace", "--log-json"})
	require.NoError(t, err)
	assert.True(t, opts.trace)
	assert.True(t, opts.logJSON)
}

func TestParseArgs_UnknownOptionIsCollectedNotImmediatelyFatal(t *testing.T) {
	_, err := parseArgs([]string{"-g=cfg", "--bogus=1", "--num-nodes=3"})
	require.Error(t, err)
	var invalid *invalidOptionsError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []string{"--bogus"}, invalid.tokens)
}

func TestParseArgs_MultipleBadTokensAreAllReportedTogether(t *testing.T) {
	_, err := parseArgs([]string{"-g=cfg", "--bogus", "--also-bad=1", "--num-nodes=3"})
	require.Error(t, err)
	var invalid *invalidOptionsError
	require.ErrorAs(t, err, &invalid)
	assert.ElementsMatch(t, []string{"--bogus", "--also-bad"}, invalid.tokens)
}

func TestParseArgs_TokenWithoutEqualsIsInvalid(t *testing.T) {
	_, err := parseArgs([]string{"-g=cfg", "--num-nodes"})
	require.Error(t, err)
	var invalid *invalidOptionsError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []string{"--num-nodes"}, invalid.tokens)
}

func TestParseArgs_TrailingOptionsValidatedEvenForHelp(t *testing.T) {
	_, err := parseArgs([]string{"-h", "--bogus=1"})
	require.Error(t, err)
	var invalid *invalidOptionsError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []string{"--bogus"}, invalid.tokens)
}

func TestDefaultOptions_MatchRenderAndGeneratorDefaults(t *testing.T) {
	opts := defaultOptions()
	assert.Equal(t, ".", opts.path)
	assert.Equal(t, "graph", opts.graphName)
	assert.Equal(t, "5", opts.numNodes)
	assert.Equal(t, "1", opts.numEdges)
	assert.Equal(t, "info", opts.logLevel)
}

func TestGenOptions_RejectsNegativeNumNodes(t *testing.T) {
	opts := defaultOptions()
	opts.numNodes = "-1"
	_, err := opts.genOptions()
	require.Error(t, err)
	var ce *cliError
	require.ErrorAs(t, err, &ce)
}

func TestGenOptions_RejectsUnparseableNumEdges(t *testing.T) {
	opts := defaultOptions()
	opts.numEdges = "not-a-number"
	_, err := opts.genOptions()
	require.Error(t, err)
}

func TestGenOptions_ValidValuesPassThrough(t *testing.T) {
	opts := defaultOptions()
	opts.numNodes = "8"
	opts.numEdges = "2"
	opts.nodeName = "X"
	gen, err := opts.genOptions()
	require.NoError(t, err)
	assert.Equal(t, 8, gen.NumNodes)
	assert.Equal(t, 2, gen.NumEdges)
	assert.Equal(t, "X", gen.NodeNamePrefix)
}

func TestRenderConfig_IndividualFlagsOverrideDefaults(t *testing.T) {
	opts := defaultOptions()
	opts.nodeColor = "orange"
	opts.graphName = "mygraph"
	cfg, err := opts.renderConfig()
	require.NoError(t, err)
	assert.Equal(t, "orange", cfg.NodeColor)
	assert.Equal(t, "mygraph", cfg.GraphName)
}

func TestInvalidOptionsError_PluralizesMessage(t *testing.T) {
	single := &invalidOptionsError{tokens: []string{"--a"}}
	assert.Contains(t, single.Error(), "invalid option:")

	plural := &invalidOptionsError{tokens: []string{"--a", "--b"}}
	assert.Contains(t, plural.Error(), "invalid options:")
}
