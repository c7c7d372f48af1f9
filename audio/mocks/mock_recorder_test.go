// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package mocks

import (
	"errors"
	"testing"

	"github.com/AshBuk/justwhisper/audio/devices"
	"github.com/AshBuk/justwhisper/audio/interfaces"
)

func TestMockRecorder_StartStop(t *testing.T) {
	var _ interfaces.Recorder = NewMockRecorder()

	m := NewMockRecorder()
	handle, err := m.Start(devices.Default)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !m.IsRecording() {
		t.Fatal("expected recording to be true")
	}
	if handle.Path == "" {
		t.Error("expected non-empty handle path")
	}

	got, err := m.Stop()
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if got != handle {
		t.Errorf("Stop handle = %+v, want %+v", got, handle)
	}
	if m.IsRecording() {
		t.Error("expected recording to be false after Stop")
	}
}

func TestMockRecorder_DoubleStartFails(t *testing.T) {
	m := NewMockRecorder()
	if _, err := m.Start(devices.Default); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	if _, err := m.Start(devices.Default); err == nil {
		t.Error("expected error starting twice")
	}
}

func TestMockRecorder_StopWithoutStartIsIdempotent(t *testing.T) {
	m := NewMockRecorder()
	handle, err := m.Stop()
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if handle != (interfaces.Handle{}) {
		t.Errorf("expected zero handle, got %+v", handle)
	}
}

func TestMockRecorder_StartErrorPropagates(t *testing.T) {
	m := NewMockRecorder()
	want := errors.New("boom")
	m.SetStartError(want)

	if _, err := m.Start(devices.Default); !errors.Is(err, want) {
		t.Errorf("Start error = %v, want %v", err, want)
	}
}

func TestMockRecorder_LevelCallback(t *testing.T) {
	m := NewMockRecorder()
	var got float64
	m.SetAudioLevelCallback(func(level float64) { got = level })

	m.SetLevel(0.42)
	if got != 0.42 {
		t.Errorf("callback level = %f, want 0.42", got)
	}
	if m.GetAudioLevel() != 0.42 {
		t.Errorf("GetAudioLevel = %f, want 0.42", m.GetAudioLevel())
	}
}
