// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package mocks provides hand-written test doubles for the audio package's
// interfaces, in the teacher's style of colocated mock types rather than a
// generated or reflection-based mocking library.
package mocks

import (
	"errors"
	"sync"
	"time"

	"github.com/AshBuk/justwhisper/audio/devices"
	"github.com/AshBuk/justwhisper/audio/interfaces"
)

var errAlreadyRecording = errors.New("recording already in progress")

// MockRecorder implements interfaces.Recorder without touching any real
// audio hardware, for use in Session Coordinator and Hotkey Controller
// tests.
type MockRecorder struct {
	mu        sync.Mutex
	recording bool
	device    devices.Device
	handle    interfaces.Handle
	level     float64
	levelCb   interfaces.AudioLevelCallback

	startError error
	stopError  error
	outputPath string
	startCalls int
	stopCalls  int
	lastDevice devices.Device
}

// NewMockRecorder creates a MockRecorder with a default stub output path.
func NewMockRecorder() *MockRecorder {
	return &MockRecorder{outputPath: "/tmp/test-capture.raw"}
}

func (m *MockRecorder) Start(device devices.Device) (interfaces.Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.startCalls++
	m.lastDevice = device
	if m.startError != nil {
		return interfaces.Handle{}, m.startError
	}
	if m.recording {
		return interfaces.Handle{}, errAlreadyRecording
	}

	m.recording = true
	m.device = device
	m.handle = interfaces.Handle{
		Path:       m.outputPath,
		SampleRate: 44100,
		Channels:   1,
		StartedAt:  time.Now(),
	}
	return m.handle, nil
}

func (m *MockRecorder) Stop() (interfaces.Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopCalls++
	if m.stopError != nil {
		return interfaces.Handle{}, m.stopError
	}
	if !m.recording {
		return interfaces.Handle{}, nil
	}
	m.recording = false
	return m.handle, nil
}

func (m *MockRecorder) SetDevice(device devices.Device) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.device = device
	return nil
}

func (m *MockRecorder) SetAudioLevelCallback(callback interfaces.AudioLevelCallback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.levelCb = callback
}

func (m *MockRecorder) GetAudioLevel() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level
}

func (m *MockRecorder) IsRecording() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recording
}

// Test helpers.

func (m *MockRecorder) SetStartError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startError = err
}

func (m *MockRecorder) SetStopError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopError = err
}

// SetLevel pushes level to the registered callback, simulating a capture
// buffer arriving.
func (m *MockRecorder) SetLevel(level float64) {
	m.mu.Lock()
	m.level = level
	cb := m.levelCb
	m.mu.Unlock()
	if cb != nil {
		cb(level)
	}
}

func (m *MockRecorder) StartCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startCalls
}

func (m *MockRecorder) StopCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopCalls
}

func (m *MockRecorder) LastDevice() devices.Device {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastDevice
}
