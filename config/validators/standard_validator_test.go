// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package validators

import (
	"testing"

	"github.com/AshBuk/justwhisper/config/models"
)

// setDefaultConfigForTest sets default values for testing
func setDefaultConfigForTest(config *models.Config) {
	config.General.Debug = false
	config.General.Language = "auto"
	config.General.LogFile = ""

	config.Audio.SampleRate = 44100
	config.Audio.Channels = 1
	config.Audio.MaxRecordingTime = 300

	config.Overlay.Position = models.OverlayBottomRight
	config.Overlay.Opacity = 0.92

	config.Output.DefaultMode = models.OutputModePaste
	config.Output.PasteTool = "auto"

	config.SpeechProvider.Kind = models.ProviderKindOpenAI
	config.ChatProvider.Kind = models.ProviderKindOpenAI

	config.Security.AllowedCommands = []string{"xdotool", "wtype", "ydotool", "notify-send"}
	config.Security.CheckIntegrity = false
	config.Security.ConfigHash = ""
	config.Security.MaxTempFileSize = 50 * 1024 * 1024
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name           string
		setupConfig    func() *models.Config
		expectError    bool
		expectedValues map[string]interface{}
	}{
		{
			name: "valid config",
			setupConfig: func() *models.Config {
				config := &models.Config{}
				setDefaultConfigForTest(config)
				return config
			},
			expectError: false,
			expectedValues: map[string]interface{}{
				"outputMode": "paste",
				"sampleRate": 44100,
			},
		},
		{
			name: "invalid overlay position",
			setupConfig: func() *models.Config {
				config := &models.Config{}
				setDefaultConfigForTest(config)
				config.Overlay.Position = "../../../etc/passwd"
				return config
			},
			expectError: true,
			expectedValues: map[string]interface{}{
				"overlayPosition": "bottom-right",
			},
		},
		{
			name: "invalid output mode",
			setupConfig: func() *models.Config {
				config := &models.Config{}
				setDefaultConfigForTest(config)
				config.Output.DefaultMode = "invalid"
				return config
			},
			expectError: true,
			expectedValues: map[string]interface{}{
				"outputMode": "paste",
			},
		},
		{
			name: "invalid sample rate - too low",
			setupConfig: func() *models.Config {
				config := &models.Config{}
				setDefaultConfigForTest(config)
				config.Audio.SampleRate = 1000
				return config
			},
			expectError: true,
			expectedValues: map[string]interface{}{
				"sampleRate": 44100,
			},
		},
		{
			name: "invalid sample rate - too high",
			setupConfig: func() *models.Config {
				config := &models.Config{}
				setDefaultConfigForTest(config)
				config.Audio.SampleRate = 100000
				return config
			},
			expectError: true,
			expectedValues: map[string]interface{}{
				"sampleRate": 44100,
			},
		},
		{
			name: "invalid channels",
			setupConfig: func() *models.Config {
				config := &models.Config{}
				setDefaultConfigForTest(config)
				config.Audio.Channels = 5
				return config
			},
			expectError: true,
			expectedValues: map[string]interface{}{
				"channels": 1,
			},
		},
		{
			name: "invalid speech provider kind",
			setupConfig: func() *models.Config {
				config := &models.Config{}
				setDefaultConfigForTest(config)
				config.SpeechProvider.Kind = "invalid"
				return config
			},
			expectError: true,
			expectedValues: map[string]interface{}{
				"speechProviderKind": "openai",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := tt.setupConfig()
			err := ValidateConfig(config)

			if tt.expectError && err == nil {
				t.Errorf("expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			// Check expected values
			if outputMode, ok := tt.expectedValues["outputMode"]; ok {
				if config.Output.DefaultMode != outputMode {
					t.Errorf("expected DefaultMode %v, got %v", outputMode, config.Output.DefaultMode)
				}
			}
			if sampleRate, ok := tt.expectedValues["sampleRate"]; ok {
				if config.Audio.SampleRate != sampleRate {
					t.Errorf("expected SampleRate %v, got %v", sampleRate, config.Audio.SampleRate)
				}
			}
			if overlayPosition, ok := tt.expectedValues["overlayPosition"]; ok {
				if config.Overlay.Position != overlayPosition {
					t.Errorf("expected Overlay.Position %v, got %v", overlayPosition, config.Overlay.Position)
				}
			}
			if channels, ok := tt.expectedValues["channels"]; ok {
				if config.Audio.Channels != channels {
					t.Errorf("expected Channels %v, got %v", channels, config.Audio.Channels)
				}
			}
			if speechProviderKind, ok := tt.expectedValues["speechProviderKind"]; ok {
				if config.SpeechProvider.Kind != speechProviderKind {
					t.Errorf("expected SpeechProvider.Kind %v, got %v", speechProviderKind, config.SpeechProvider.Kind)
				}
			}
		})
	}
}
