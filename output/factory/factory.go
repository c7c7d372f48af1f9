// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package factory builds the Output Sink (C9) from configuration,
// choosing a paste-synthesis tool appropriate to the detected display
// server when the user has not pinned one explicitly.
package factory

import (
	"fmt"
	"os/exec"

	"github.com/AshBuk/justwhisper/config"
	"github.com/AshBuk/justwhisper/internal/logger"
	"github.com/AshBuk/justwhisper/internal/platform"
	"github.com/AshBuk/justwhisper/output/outputters"
)

// Factory builds an Output Sink from configuration and the detected
// display server environment.
type Factory struct {
	config *config.Config
	log    logger.Logger
}

// NewFactory creates a new output factory.
func NewFactory(cfg *config.Config, log logger.Logger) *Factory {
	return &Factory{config: cfg, log: log}
}

// GetSink builds a Sink whose clipboard writer is the cross-platform
// atotto/clipboard backend and whose paste synthesizer shells out to the
// configured (or auto-detected) tool for the given display server.
func (f *Factory) GetSink(env platform.EnvironmentType) (*outputters.Sink, error) {
	pasteTool := f.config.Output.PasteTool
	if pasteTool == "" || pasteTool == "auto" {
		pasteTool = f.chooseAutoTool(env)
	}

	if !config.IsCommandAllowed(f.config, pasteTool) {
		return nil, fmt.Errorf("paste tool not allowed: %s", pasteTool)
	}

	paste, err := outputters.NewPasteSynthesizer(pasteTool, f.config)
	if err != nil {
		return nil, fmt.Errorf("build paste synthesizer: %w", err)
	}

	clipboardWriter := outputters.NewClipboardWriter()
	return outputters.NewSink(clipboardWriter, paste, f.log), nil
}

func (f *Factory) chooseAutoTool(env platform.EnvironmentType) string {
	switch env {
	case platform.EnvironmentWayland:
		if platform.IsGNOMEWithWayland() {
			if f.isToolAvailable("ydotool") {
				return "ydotool"
			}
			if f.isToolAvailable("wtype") {
				return "wtype"
			}
			return "xdotool"
		}
		if f.isToolAvailable("wtype") {
			return "wtype"
		}
		if f.isToolAvailable("ydotool") {
			return "ydotool"
		}
		return "xdotool"
	case platform.EnvironmentX11:
		return "xdotool"
	default:
		for _, candidate := range []string{"xdotool", "wtype", "ydotool"} {
			if f.isToolAvailable(candidate) {
				return candidate
			}
		}
		return "xdotool"
	}
}

func (f *Factory) isToolAvailable(toolName string) bool {
	_, err := exec.LookPath(toolName)
	return err == nil
}

// GetSinkFromConfig builds a Sink directly from configuration.
func GetSinkFromConfig(cfg *config.Config, log logger.Logger, env platform.EnvironmentType) (*outputters.Sink, error) {
	return NewFactory(cfg, log).GetSink(env)
}
