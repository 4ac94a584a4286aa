// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package lint

import "errors"

var (
	// ErrNilContext is returned when Run is called with a nil context.
	ErrNilContext = errors.New("lint: ctx must not be nil")

	// ErrNoEngine is returned when the runner has no engine factory.
	ErrNoEngine = errors.New("lint: no engine factory configured")

	// ErrNilFormatter is returned when an engine yields a nil formatter
	// without an error.
	ErrNilFormatter = errors.New("lint: engine returned no formatter")
)
