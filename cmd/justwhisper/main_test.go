// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package main

import (
	"testing"

	"github.com/AshBuk/justwhisper/hotkeys/interfaces"
	"github.com/AshBuk/justwhisper/internal/platform"
)

func TestToHotkeyEnvironment(t *testing.T) {
	cases := []struct {
		in   platform.EnvironmentType
		want interfaces.EnvironmentType
	}{
		{platform.EnvironmentX11, interfaces.EnvironmentX11},
		{platform.EnvironmentWayland, interfaces.EnvironmentWayland},
		{platform.EnvironmentUnknown, interfaces.EnvironmentUnknown},
		{platform.EnvironmentType("something-new"), interfaces.EnvironmentUnknown},
	}

	for _, tc := range cases {
		if got := toHotkeyEnvironment(tc.in); got != tc.want {
			t.Errorf("toHotkeyEnvironment(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseOptions(t *testing.T) {
	opts, err := parseOptions([]string{"-config", "/tmp/custom.yaml", "-debug"})
	if err != nil {
		t.Fatalf("parseOptions: %v", err)
	}
	if opts.configFile != "/tmp/custom.yaml" || !opts.debug {
		t.Fatalf("got %+v", opts)
	}
}

func TestParseOptionsDefaults(t *testing.T) {
	opts, err := parseOptions(nil)
	if err != nil {
		t.Fatalf("parseOptions: %v", err)
	}
	if opts.configFile != "config.yaml" || opts.debug {
		t.Fatalf("got %+v", opts)
	}
}
