// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package interfaces

import (
	"time"

	"github.com/AshBuk/justwhisper/audio/devices"
)

// AudioLevelCallback is called with a normalized audio level in [0, 1].
type AudioLevelCallback func(level float64)

// Handle mirrors spec.md's RecordingHandle: the on-disk capture file and
// its format, for exactly one in-flight recording.
type Handle struct {
	Path       string
	SampleRate int
	Channels   int
	StartedAt  time.Time
}

// Recorder owns the audio capture graph (spec.md §4.4, C4).
type Recorder interface {
	// Start begins capturing from device, allocating a fresh output file.
	// Fails with errs.ErrPermissionDenied if the microphone permission is
	// not granted, or errs.ErrDeviceUnavailable if the graph cannot be
	// built even after falling back to devices.Default.
	Start(device devices.Device) (Handle, error)

	// Stop flushes and closes the capture file, returning the handle.
	// Idempotent: calling Stop when not recording returns the zero Handle
	// and a nil error.
	Stop() (Handle, error)

	// SetDevice stops recording if active, tears down the capture graph,
	// and rebuilds it against device.
	SetDevice(device devices.Device) error

	SetAudioLevelCallback(callback AudioLevelCallback)
	GetAudioLevel() float64
	IsRecording() bool
}
