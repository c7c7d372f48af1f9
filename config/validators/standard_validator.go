// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package validators

import (
	"fmt"
	"strings"

	"github.com/AshBuk/justwhisper/config/models"
)

// ValidateConfig inspects the configuration for invalid or unsafe values. It
// automatically corrects offending values to safe defaults and returns an
// error that aggregates all validation issues found, so the application can
// always run with a sane configuration (mirrors spec.md §4.1's "defaults
// seed on first run" posture, extended to cover every write).
func ValidateConfig(config *models.Config) error {
	var errors []string

	if config.Audio.SampleRate != 44100 {
		errors = append(errors, fmt.Sprintf("invalid sample rate: %d, correcting to 44100 (spec.md §3 native capture rate)", config.Audio.SampleRate))
		config.Audio.SampleRate = 44100
	}

	if config.Audio.Channels < 1 || config.Audio.Channels > 2 {
		errors = append(errors, fmt.Sprintf("invalid channel count: %d, correcting to 1", config.Audio.Channels))
		config.Audio.Channels = 1
	}

	if config.Audio.MaxRecordingTime <= 0 || config.Audio.MaxRecordingTime > 1800 {
		errors = append(errors, fmt.Sprintf("invalid max recording time: %d, correcting to 300s", config.Audio.MaxRecordingTime))
		config.Audio.MaxRecordingTime = 300
	}

	validPositions := map[string]bool{
		models.OverlayTopLeft: true, models.OverlayTopRight: true,
		models.OverlayBottomLeft: true, models.OverlayBottomRight: true,
		models.OverlayCenter: true,
	}
	if !validPositions[config.Overlay.Position] {
		errors = append(errors, fmt.Sprintf("invalid overlay position: %s, correcting to %s", config.Overlay.Position, models.OverlayBottomRight))
		config.Overlay.Position = models.OverlayBottomRight
	}

	if config.Overlay.Opacity < 0.3 || config.Overlay.Opacity > 1.0 {
		errors = append(errors, fmt.Sprintf("invalid overlay opacity: %f, clamping to [0.3, 1.0]", config.Overlay.Opacity))
		if config.Overlay.Opacity < 0.3 {
			config.Overlay.Opacity = 0.3
		} else {
			config.Overlay.Opacity = 1.0
		}
	}

	validOutputModes := map[string]bool{models.OutputModeClipboard: true, models.OutputModePaste: true}
	if !validOutputModes[config.Output.DefaultMode] {
		errors = append(errors, fmt.Sprintf("invalid output mode: %s, correcting to %s", config.Output.DefaultMode, models.OutputModePaste))
		config.Output.DefaultMode = models.OutputModePaste
	}

	validProviderKinds := map[string]bool{models.ProviderKindAzure: true, models.ProviderKindOpenAI: true}
	if !validProviderKinds[config.SpeechProvider.Kind] {
		errors = append(errors, fmt.Sprintf("invalid speech provider kind: %s, correcting to %s", config.SpeechProvider.Kind, models.ProviderKindOpenAI))
		config.SpeechProvider.Kind = models.ProviderKindOpenAI
	}
	if !validProviderKinds[config.ChatProvider.Kind] {
		errors = append(errors, fmt.Sprintf("invalid chat provider kind: %s, correcting to %s", config.ChatProvider.Kind, models.ProviderKindOpenAI))
		config.ChatProvider.Kind = models.ProviderKindOpenAI
	}

	if len(config.Security.AllowedCommands) == 0 {
		config.Security.AllowedCommands = []string{"xdotool", "wtype", "ydotool", "notify-send"}
		errors = append(errors, "allowed_commands was empty, populated with defaults")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation issues: %s", strings.Join(errors, "; "))
	}
	return nil
}
