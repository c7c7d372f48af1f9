// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package outputters

import (
	"fmt"
	"os/exec"

	"github.com/AshBuk/justwhisper/config"
	"github.com/AshBuk/justwhisper/output/interfaces"
)

// PasteSynthesizer implements interfaces.PasteSynthesizer by shelling out
// to an allow-listed OS keystroke-synthesis tool (xdotool/wtype/ydotool).
// The paste/key-synthesis mechanics themselves are an explicit non-goal
// of the Output Sink (spec.md §1); this keeps the teacher's own
// allow-listed shell-out shape rather than inventing a platform-specific
// keystroke API binding.
type PasteSynthesizer struct {
	tool   string
	config *config.Config
}

// NewPasteSynthesizer verifies the requested tool is on PATH and returns
// a synthesizer bound to it.
func NewPasteSynthesizer(tool string, cfg *config.Config) (*PasteSynthesizer, error) {
	if _, err := exec.LookPath(tool); err != nil {
		return nil, fmt.Errorf("paste tool not found: %s", tool)
	}
	return &PasteSynthesizer{tool: tool, config: cfg}, nil
}

// SynthesizePaste sends the standard paste keystroke (Ctrl+V) to the
// focused window.
func (p *PasteSynthesizer) SynthesizePaste() error {
	if !config.IsCommandAllowed(p.config, p.tool) {
		return fmt.Errorf("paste tool not allowed: %s", p.tool)
	}

	var args []string
	switch p.tool {
	case "xdotool":
		args = []string{"key", "--clearmodifiers", "ctrl+v"}
	case "wtype":
		args = []string{"-M", "ctrl", "-k", "v", "-m", "ctrl"}
	case "ydotool":
		// Linux input-event keycodes: KEY_LEFTCTRL=29, KEY_V=47.
		args = []string{"key", "29:1", "47:1", "47:0", "29:0"}
	default:
		return fmt.Errorf("unsupported paste tool: %s", p.tool)
	}

	safeArgs := config.SanitizeCommandArgs(args)
	// #nosec G204 -- Safe: tool is from an allowlist and arguments are sanitized.
	cmd := exec.Command(p.tool, safeArgs...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		// Runtime fallback: if wtype fails, try ydotool if allowed and available.
		if p.tool == "wtype" && config.IsCommandAllowed(p.config, "ydotool") {
			if _, lookErr := exec.LookPath("ydotool"); lookErr == nil {
				fallbackArgs := config.SanitizeCommandArgs([]string{"key", "29:1", "47:1", "47:0", "29:0"})
				// #nosec G204 -- Safe: tool is from an allowlist and arguments are sanitized.
				fallbackCmd := exec.Command("ydotool", fallbackArgs...)
				if fbOut, fbErr := fallbackCmd.CombinedOutput(); fbErr == nil {
					return nil
				} else {
					return fmt.Errorf("wtype failed: %w (out: %s); ydotool fallback failed: %v (out: %s)", err, string(output), fbErr, string(fbOut))
				}
			}
		}
		return fmt.Errorf("failed to synthesize paste with %s: %w, output: %s", p.tool, err, string(output))
	}
	return nil
}

// ToolName returns the underlying tool's name.
func (p *PasteSynthesizer) ToolName() string {
	return p.tool
}

var _ interfaces.PasteSynthesizer = (*PasteSynthesizer)(nil)
