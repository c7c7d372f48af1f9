// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package factory

import (
	"testing"

	"github.com/AshBuk/justwhisper/config"
	"github.com/AshBuk/justwhisper/internal/logger"
	"github.com/AshBuk/justwhisper/internal/platform"
)

func testLogger() logger.Logger {
	return logger.NewDefaultLogger(logger.ErrorLevel)
}

func TestNewFactory(t *testing.T) {
	cfg := &config.Config{}
	f := NewFactory(cfg, testLogger())
	if f.config != cfg {
		t.Errorf("expected config to be set correctly")
	}
}

func TestFactory_GetSink_UnknownPasteToolNotAllowed(t *testing.T) {
	cfg := &config.Config{}
	cfg.Output.PasteTool = "definitely-not-a-real-tool"
	cfg.Security.AllowedCommands = []string{} // nothing allowed

	f := NewFactory(cfg, testLogger())
	if _, err := f.GetSink(platform.EnvironmentX11); err == nil {
		t.Fatal("expected an error for a disallowed paste tool")
	}
}

func TestFactory_ChooseAutoTool(t *testing.T) {
	cfg := &config.Config{}
	f := NewFactory(cfg, testLogger())

	tests := []struct {
		name string
		env  platform.EnvironmentType
	}{
		{"X11", platform.EnvironmentX11},
		{"Wayland", platform.EnvironmentWayland},
		{"Unknown", platform.EnvironmentUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.chooseAutoTool(tt.env)
			if got == "" {
				t.Errorf("chooseAutoTool(%v) returned empty string", tt.env)
			}
		})
	}
}

func TestGetSinkFromConfig_RespectsAllowlist(t *testing.T) {
	cfg := &config.Config{}
	cfg.Output.PasteTool = "xdotool"
	cfg.Security.AllowedCommands = []string{}

	if _, err := GetSinkFromConfig(cfg, testLogger(), platform.EnvironmentX11); err == nil {
		t.Fatal("expected an error: xdotool is not on the allowlist")
	}
}
