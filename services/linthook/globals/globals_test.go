// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package globals

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type entity string

func (e entity) GlobalID() string { return string(e) }

type registry []Entity

func (r registry) Entities() []Entity { return r }

func TestCollect(t *testing.T) {
	models := registry{entity("Test")}
	services := registry{entity("TestService")}

	got := Collect([]string{"A", "B"}, models, services)

	assert.Equal(t, []string{"A", "B", "Test", "TestService"}, got)
}

func TestCollect_KeepsRegistryOrderAndDuplicates(t *testing.T) {
	models := registry{entity("User"), entity("Pet"), entity("User")}
	services := registry{entity("Mailer"), entity("User")}

	got := Collect([]string{"User"}, models, services)

	assert.Equal(t, []string{"User", "User", "Pet", "User", "Mailer", "User"}, got)
}

func TestCollect_NilInputs(t *testing.T) {
	got := Collect(nil, nil, nil)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCollect_DoesNotAliasAmbient(t *testing.T) {
	ambient := make([]string, 1, 4)
	ambient[0] = "A"

	got := Collect(ambient, registry{entity("M")}, nil)
	got[0] = "changed"

	assert.Equal(t, "A", ambient[0])
}

type pointerRegistry struct{ entities []Entity }

func (r *pointerRegistry) Entities() []Entity { return r.entities }

type pointerEntity struct{ id string }

func (e *pointerEntity) GlobalID() string { return e.id }

func TestCollect_TypedNilRegistry(t *testing.T) {
	var models *pointerRegistry

	got := Collect([]string{"A"}, models, registry{entity("Mailer")})

	assert.Equal(t, []string{"A", "Mailer"}, got)
}

func TestCollect_SkipsNilEntities(t *testing.T) {
	var missing *pointerEntity
	services := &pointerRegistry{entities: []Entity{&pointerEntity{id: "Mailer"}, missing, nil}}

	got := Collect(nil, nil, services)

	assert.Equal(t, []string{"Mailer"}, got)
}
