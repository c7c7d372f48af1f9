// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package factory

import (
	"github.com/AshBuk/justwhisper/audio/interfaces"
	"github.com/AshBuk/justwhisper/audio/recorders"
	"github.com/AshBuk/justwhisper/config"
	"github.com/AshBuk/justwhisper/internal/logger"
	"github.com/AshBuk/justwhisper/internal/permission"
)

// AudioRecorderFactory builds the single production Recorder
// implementation (spec.md §4.4, C4): a native portaudio capture graph.
// There is no method-selection step anymore — unlike the shell-out
// arecord/ffmpeg era, portaudio is the one capture backend across every
// supported desktop.
type AudioRecorderFactory struct {
	config      *config.Config
	logger      logger.Logger
	permissions recorders.PermissionChecker
}

// NewAudioRecorderFactory constructs a factory bound to the given config,
// logger, and permission gate.
func NewAudioRecorderFactory(cfg *config.Config, log logger.Logger, permissions *permission.Gate) *AudioRecorderFactory {
	return &AudioRecorderFactory{config: cfg, logger: log, permissions: permissions}
}

// CreateRecorder returns a ready-to-use native Recorder, pointed at the
// app's data directory for capture file allocation.
func (f *AudioRecorderFactory) CreateRecorder() (interfaces.Recorder, error) {
	appDataPath := f.config.General.AppDataPath
	return recorders.NewNativeRecorder(
		appDataPath,
		f.config.Audio.SampleRate,
		f.config.Audio.Channels,
		f.permissions,
		f.logger,
	), nil
}
