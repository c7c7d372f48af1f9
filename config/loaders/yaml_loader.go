// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package loaders

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/AshBuk/justwhisper/config/models"
	"github.com/AshBuk/justwhisper/config/validators"
	yaml "gopkg.in/yaml.v2"
)

// LoadConfig loads configuration from file, falling back to defaults when the
// file is absent or unreadable (spec.md §6 preferences store).
func LoadConfig(filename string) (*models.Config, error) {
	var config models.Config
	SetDefaultConfig(&config)

	clean := filepath.Clean(filename)
	if strings.Contains(clean, "..") {
		return nil, fmt.Errorf("invalid config path: %s", filename)
	}
	// #nosec G304 -- Safe: path is sanitized and controlled by application configuration.
	data, err := os.ReadFile(clean)
	if err != nil {
		log.Printf("Warning: could not read config file: %v", err)
		log.Println("Using default configuration")
		return &config, nil
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if config.WordReplacements == nil {
		config.WordReplacements = defaultWordReplacements()
	}

	if err := validators.ValidateConfig(&config); err != nil {
		log.Printf("Configuration validation error: %v", err)
		log.Println("Using validated configuration with corrections")
	}

	return &config, nil
}

// SetDefaultConfig sets default values (spec.md §4.1 "default word
// replacements seed on first run").
func SetDefaultConfig(config *models.Config) {
	config.General.Debug = false
	config.General.AppDataPath = ""
	config.General.Language = "en"
	config.General.LogFile = ""
	config.General.GlobalEnabled = true

	config.Hotkeys.Provider = "auto"
	config.Hotkeys.Primary = "fn"
	config.Hotkeys.CopyOnly = "leftctrl"
	config.Hotkeys.Cancel = "escape"

	config.Audio.SelectedDeviceUID = "" // empty means Default sentinel
	config.Audio.SampleRate = 44100
	config.Audio.Channels = 1
	config.Audio.MaxRecordingTime = 300 // 5 minutes

	config.Overlay.Position = models.OverlayBottomRight
	config.Overlay.ColorR, config.Overlay.ColorG, config.Overlay.ColorB, config.Overlay.ColorA = 30, 30, 30, 230
	config.Overlay.Opacity = 0.92

	config.Cleaner.RemoveFillers = true
	config.Cleaner.ProcessLineBreakCommands = true
	config.Cleaner.ProcessPunctuationCommands = true
	config.Cleaner.ProcessFormattingCommands = true
	config.Cleaner.ApplySelfCorrection = true
	config.Cleaner.AutomaticCapitalization = true
	config.Cleaner.ApplyWordReplacements = true
	config.Cleaner.UseIntelligentWordReplacements = false
	config.Cleaner.UseLLMEnhancement = false

	config.Output.DefaultMode = models.OutputModePaste
	config.Output.PasteTool = "auto"

	config.SpeechProvider.Kind = models.ProviderKindOpenAI
	config.SpeechProvider.Model = "whisper-1"
	config.SpeechProvider.BaseURL = "https://api.openai.com/v1"
	config.SpeechProvider.APIVersion = "2024-06-01"

	config.ChatProvider.Kind = models.ProviderKindOpenAI
	config.ChatProvider.Model = "gpt-4o-mini"
	config.ChatProvider.BaseURL = "https://api.openai.com/v1"
	config.ChatProvider.APIVersion = "2024-06-01"

	config.WordReplacements = defaultWordReplacements()

	config.Security.AllowedCommands = []string{"xdotool", "wtype", "ydotool", "notify-send"}
	config.Security.CheckIntegrity = false
	config.Security.MaxTempFileSize = 200 * 1024 * 1024 // 200MB, bounds a ~30min mono 44.1kHz WAV

	config.Metrics.Enabled = true
}

// defaultWordReplacements is the seed dictionary applied on first run
// (spec.md §4.1).
func defaultWordReplacements() map[string]string {
	return map[string]string{
		"gonna":  "going to",
		"wanna":  "want to",
		"gotta":  "got to",
		"kinda":  "kind of",
		"dunno":  "don't know",
	}
}

// SaveConfig writes the configuration back to disk in YAML format. It writes
// to a temp file and renames over the target so that a reader never observes
// a partially written document (spec.md §4.1 "writes are durable before set
// returns").
func SaveConfig(filename string, config *models.Config) error {
	safe := filepath.Clean(filename)
	if strings.Contains(safe, "..") {
		return fmt.Errorf("invalid config path: %s", filename)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	dir := filepath.Dir(safe)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".config-*.yaml.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpPath, safe)
}
