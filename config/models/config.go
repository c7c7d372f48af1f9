// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package models defines the on-disk configuration shape for JustWhisper.
package models

// Output mode constants to avoid magic strings throughout the codebase.
const (
	OutputModeClipboard = "clipboard"
	OutputModePaste     = "paste"
)

// Overlay corner constants (spec.md §4.1).
const (
	OverlayTopLeft     = "top-left"
	OverlayTopRight    = "top-right"
	OverlayBottomLeft  = "bottom-left"
	OverlayBottomRight = "bottom-right"
	OverlayCenter      = "center"
)

// Provider kind constants for the ProviderConfig tagged union (spec.md §3).
const (
	ProviderKindAzure  = "azure"
	ProviderKindOpenAI = "openai"
)

// Config is the full on-disk configuration document, loaded from YAML.
// The nested anonymous structs mirror the teacher's config.Config shape: one
// section per concern, tagged for gopkg.in/yaml.v2.
type Config struct {
	// General settings
	General struct {
		Debug         bool   `yaml:"debug"`
		AppDataPath   string `yaml:"app_data_path"` // directory for capture scratch files (audio_<timestamp>.wav)
		Language      string `yaml:"language"`      // hint sent to the Whisper endpoint
		LogFile       string `yaml:"log_file"`
		GlobalEnabled bool   `yaml:"global_enabled"` // spec.md §4.5 "enable flag"
	} `yaml:"general"`

	// Hotkey settings (spec.md §4.5)
	Hotkeys struct {
		Provider string `yaml:"provider"`  // "auto" | "evdev" | "dbus" (Linux only; other platforms ignore it)
		Primary  string `yaml:"primary"`   // toggle start/stop, default "fn"
		CopyOnly string `yaml:"copy_only"` // default "leftctrl"
		Cancel   string `yaml:"cancel"`    // default "escape"
	} `yaml:"hotkeys"`

	// Audio recording settings (spec.md §3, §4.4)
	Audio struct {
		SelectedDeviceUID string `yaml:"selected_device_uid"`
		SampleRate        int    `yaml:"sample_rate"` // native capture rate, default 44100
		Channels          int    `yaml:"channels"`
		MaxRecordingTime  int    `yaml:"max_recording_time"` // seconds
	} `yaml:"audio"`

	// Overlay appearance (spec.md §4.1, §4.8, §9)
	Overlay struct {
		Position string  `yaml:"position"` // one of the Overlay* constants
		ColorR   uint8   `yaml:"color_r"`
		ColorG   uint8   `yaml:"color_g"`
		ColorB   uint8   `yaml:"color_b"`
		ColorA   uint8   `yaml:"color_a"`
		Opacity  float64 `yaml:"opacity"` // clamped to [0.3, 1.0]
	} `yaml:"overlay"`

	// Transcript cleaner flags (spec.md §3 CleanerOptions, §4.6)
	Cleaner struct {
		RemoveFillers                  bool `yaml:"remove_fillers"`
		ProcessLineBreakCommands       bool `yaml:"process_line_break_commands"`
		ProcessPunctuationCommands     bool `yaml:"process_punctuation_commands"`
		ProcessFormattingCommands      bool `yaml:"process_formatting_commands"`
		ApplySelfCorrection            bool `yaml:"apply_self_correction"`
		AutomaticCapitalization        bool `yaml:"automatic_capitalization"`
		ApplyWordReplacements          bool `yaml:"apply_word_replacements"`
		UseIntelligentWordReplacements bool `yaml:"use_intelligent_word_replacements"`
		UseLLMEnhancement              bool `yaml:"use_llm_enhancement"`
	} `yaml:"cleaner"`

	// Text output settings (spec.md §4.9)
	Output struct {
		DefaultMode string `yaml:"default_mode"` // "clipboard" | "paste"
		PasteTool   string `yaml:"paste_tool"`   // "xdotool" | "wtype" | "ydotool"
	} `yaml:"output"`

	// Remote speech-to-text provider (spec.md §3 ProviderConfig)
	SpeechProvider struct {
		Kind       string `yaml:"kind"` // azure | openai
		APIKey     string `yaml:"api_key"`
		Endpoint   string `yaml:"endpoint"`   // Azure only
		Deployment string `yaml:"deployment"` // Azure only
		APIVersion string `yaml:"api_version"`
		Model      string `yaml:"model"`    // OpenAI only
		BaseURL    string `yaml:"base_url"` // OpenAI only
	} `yaml:"speech_provider"`

	// Remote chat-completion provider used for LLM enhancement (spec.md §4.6)
	ChatProvider struct {
		Kind       string `yaml:"kind"` // azure | openai
		APIKey     string `yaml:"api_key"`
		Endpoint   string `yaml:"endpoint"`
		Deployment string `yaml:"deployment"`
		APIVersion string `yaml:"api_version"`
		Model      string `yaml:"model"`
		BaseURL    string `yaml:"base_url"`
	} `yaml:"chat_provider"`

	// WordReplacements maps a lowercased search phrase to its replacement.
	WordReplacements map[string]string `yaml:"word_replacements"`

	// Security settings, kept from the teacher's command allow-list design.
	Security struct {
		AllowedCommands []string `yaml:"allowed_commands"`
		CheckIntegrity  bool     `yaml:"check_integrity"`
		ConfigHash      string   `yaml:"config_hash"`
		MaxTempFileSize int64    `yaml:"max_temp_file_size"` // bytes, bounds the recorded WAV file
	} `yaml:"security"`

	Metrics struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"metrics"`
}
