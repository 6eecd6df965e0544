// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package render

import (
	"context"
	"fmt"
	"os/exec"
)

// ToPNG invokes `dot -Tpng <dotPath> -o <pngPath>` to rasterize a DOT file.
// The core pipeline never calls this directly — only the CLI driver does,
// since it is the one place that owns subprocess and filesystem concerns
// (spec.md §5: "the external dot/display invocation is a blocking
// subprocess call from the driver and is not part of the core").
func ToPNG(ctx context.Context, dotPath, pngPath string) error {
	cmd := exec.CommandContext(ctx, "dot", "-Tpng", dotPath, "-o", pngPath)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("render: dot -Tpng %s: %w: %s", dotPath, err, output)
	}
	return nil
}

// Display opens pngPath in the platform's default way via the `display`
// tool (ImageMagick). Best-effort: a missing `display` binary is not an
// analysis error, so callers typically log a failure here rather than
// propagate it as fatal.
func Display(ctx context.Context, pngPath string) error {
	cmd := exec.CommandContext(ctx, "display", pngPath)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("render: display %s: %w: %s", pngPath, err, output)
	}
	return nil
}
