// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package globals gathers the identifier names a host injects implicitly,
// so the lint engine does not report them as undefined.
package globals

import "reflect"

// Entity is a named host entity exposed under a global identifier.
type Entity interface {
	GlobalID() string
}

// Registry enumerates host entities in registration order.
type Registry interface {
	Entities() []Entity
}

// Collect flattens the ambient globals and the global ids of two registries.
//
// Description:
//
//	The result is ambient, then every model GlobalID, then every service
//	GlobalID, each in registry order. Duplicates are kept; the lint engine
//	tolerates them. A nil registry, including a nil pointer stored in the
//	interface, contributes nothing, and nil entities are skipped.
//
// Inputs:
//
//	ambient - Names already present in the host's global namespace.
//	models - The host's data model registry.
//	services - The host's service registry.
//
// Outputs:
//
//	[]string - The flattened identifier list. Never nil.
func Collect(ambient []string, models, services Registry) []string {
	out := make([]string, 0, len(ambient))
	out = append(out, ambient...)
	out = appendIDs(out, models)
	out = appendIDs(out, services)
	return out
}

func appendIDs(out []string, r Registry) []string {
	if isNil(r) {
		return out
	}
	for _, e := range r.Entities() {
		if isNil(e) {
			continue
		}
		out = append(out, e.GlobalID())
	}
	return out
}

// isNil reports whether v is nil or a nil pointer behind an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
