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
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jinterlante1206/cfgdom/internal/render"
)

// styleFile is the on-disk shape of a --style-config YAML file. Any field
// left unset keeps render.DefaultRenderConfig's value.
type styleFile struct {
	GraphName string `yaml:"graph_name"`
	NodeShape string `yaml:"node_shape"`
	NodeColor string `yaml:"node_color"`
	EdgeShape string `yaml:"edge_shape"`
	EdgeColor string `yaml:"edge_color"`
}

// loadStyleConfig reads path and decodes it into a render.RenderConfig,
// seeded with the tool's defaults so a partial YAML file only overrides the
// fields it names.
func loadStyleConfig(path string) (render.RenderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return render.RenderConfig{}, fmt.Errorf("style-config: %w", err)
	}

	var sf styleFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return render.RenderConfig{}, fmt.Errorf("style-config: %s: %w", path, err)
	}

	cfg := render.DefaultRenderConfig()
	if sf.GraphName != "" {
		cfg.GraphName = sf.GraphName
	}
	if sf.NodeShape != "" {
		cfg.NodeShape = sf.NodeShape
	}
	if sf.NodeColor != "" {
		cfg.NodeColor = sf.NodeColor
	}
	if sf.EdgeShape != "" {
		cfg.EdgeShape = sf.EdgeShape
	}
	if sf.EdgeColor != "" {
		cfg.EdgeColor = sf.EdgeColor
	}
	return cfg, nil
}
