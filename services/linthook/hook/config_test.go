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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultEnable(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"development", true},
		{"local", true},
		{"test", true},
		{"production", false},
		{"staging", false},
		{"", false},
		{"Development", false},
	}

	for _, tt := range tests {
		if got := DefaultEnable(tt.env); got != tt.want {
			t.Errorf("DefaultEnable(%q) = %v, want %v", tt.env, got, tt.want)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("development")

	require.NotNil(t, cfg.Enabled)
	assert.True(t, *cfg.Enabled)
	assert.Equal(t, "stylish", cfg.Format)
	assert.Equal(t, DefaultSrc, cfg.Src)
	assert.Equal(t, "eslint", cfg.Engine)
	assert.Nil(t, cfg.Color)
	assert.NoError(t, cfg.Validate())

	cfg.Src[0] = "changed"
	assert.Equal(t, ".", DefaultSrc[0], "DefaultConfig must copy DefaultSrc")

	assert.False(t, *DefaultConfig("production").Enabled)
}

func TestConfig_YAMLOverlay(t *testing.T) {
	cfg := DefaultConfig("production")
	require.NoError(t, yaml.Unmarshal([]byte("format: unix\nengine: govet\n"), &cfg))

	assert.Equal(t, "unix", cfg.Format)
	assert.Equal(t, "govet", cfg.Engine)
	assert.Equal(t, DefaultSrc, cfg.Src, "absent keys keep defaults")
	assert.False(t, cfg.IsEnabled("production"))
}

func TestConfig_IsEnabled(t *testing.T) {
	yes, no := true, false

	assert.True(t, Config{}.IsEnabled("test"))
	assert.False(t, Config{}.IsEnabled("production"))
	assert.True(t, Config{Enabled: &yes}.IsEnabled("production"))
	assert.False(t, Config{Enabled: &no}.IsEnabled("development"))
}

func TestConfig_UseColor(t *testing.T) {
	yes, no := true, false

	assert.True(t, Config{Color: &yes}.UseColor())
	assert.False(t, Config{Color: &no}.UseColor())
}

func TestConfig_Validate(t *testing.T) {
	valid := DefaultConfig("test")
	assert.NoError(t, valid.Validate())

	noEngine := DefaultConfig("test")
	noEngine.Engine = ""
	assert.Error(t, noEngine.Validate())

	emptySrc := DefaultConfig("test")
	emptySrc.Src = nil
	assert.NoError(t, emptySrc.Validate(), "empty src lints the default pattern")
}
