// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package outputters

import (
	"testing"

	"github.com/AshBuk/justwhisper/config"
	"github.com/AshBuk/justwhisper/output/interfaces"
)

func TestNewPasteSynthesizer_ToolNotFound(t *testing.T) {
	cfg := &config.Config{}
	if _, err := NewPasteSynthesizer("nonexistent-paste-tool", cfg); err == nil {
		t.Error("expected error for nonexistent tool")
	}
}

func TestPasteSynthesizer_CommandNotAllowed(t *testing.T) {
	cfg := &config.Config{}
	cfg.Security.AllowedCommands = []string{}

	p := &PasteSynthesizer{tool: "xdotool", config: cfg}
	err := p.SynthesizePaste()
	if err == nil {
		t.Error("expected error for disallowed command")
	}
}

func TestPasteSynthesizer_UnsupportedTool(t *testing.T) {
	cfg := &config.Config{}
	cfg.Security.AllowedCommands = []string{"unsupported-tool"}

	p := &PasteSynthesizer{tool: "unsupported-tool", config: cfg}
	err := p.SynthesizePaste()
	if err == nil {
		t.Error("expected error for unsupported tool")
	}
}

func TestPasteSynthesizer_ToolName(t *testing.T) {
	p := &PasteSynthesizer{tool: "xdotool"}
	if p.ToolName() != "xdotool" {
		t.Errorf("ToolName() = %q", p.ToolName())
	}
}

func TestPasteSynthesizer_Interface(t *testing.T) {
	var _ interfaces.PasteSynthesizer = (*PasteSynthesizer)(nil)
}
