// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package graph

import (
	"context"
	"log/slog"

	"github.com/jinterlante1206/cfgdom/internal/logging"
)

// loggerFromContext returns the *slog.Logger attached to ctx via
// logging.IntoContext, or the package default if none was attached. Every
// analysis in this package reads its logger this one way.
func loggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx).Logger
}
