// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package hook

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StatusGauge exposes c.Status() as the linthook_status gauge:
// -1 unknown, 0 success, 1 error, 2 warn.
func StatusGauge(c *Controller) prometheus.GaugeFunc {
	return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "linthook_status",
		Help: "Outcome of the startup lint run (-1 unknown, 0 success, 1 error, 2 warn).",
		ConstLabels: prometheus.Labels{
			"hook": c.Key(),
		},
	}, func() float64 {
		return float64(c.Status())
	})
}
