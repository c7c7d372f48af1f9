// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package outputters

import (
	"errors"
	"testing"

	"github.com/AshBuk/justwhisper/internal/logger"
	"github.com/AshBuk/justwhisper/output/interfaces"
)

func testLogger() logger.Logger {
	return logger.NewDefaultLogger(logger.ErrorLevel)
}

func TestSink_CopyOnlyStopsAfterClipboardWrite(t *testing.T) {
	clip := NewMockClipboardWriter()
	paste := NewMockPasteSynthesizer()
	sink := NewSink(clip, paste, testLogger())

	if err := sink.Emit("hello", interfaces.ModeCopyOnly); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clip.Content() != "hello" {
		t.Errorf("clipboard content = %q", clip.Content())
	}
	if paste.WasCalled() {
		t.Error("CopyOnly must not synthesize a paste")
	}
}

func TestSink_PasteModeWritesClipboardThenSynthesizesPaste(t *testing.T) {
	clip := NewMockClipboardWriter()
	paste := NewMockPasteSynthesizer()
	sink := NewSink(clip, paste, testLogger())

	if err := sink.Emit("hello", interfaces.ModePaste); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clip.Content() != "hello" {
		t.Errorf("clipboard content = %q", clip.Content())
	}
	if !paste.WasCalled() {
		t.Error("expected a paste synthesis call")
	}
}

func TestSink_ClipboardFailureSkipsPaste(t *testing.T) {
	clip := NewMockClipboardWriter()
	clip.SimulateUnavailable()
	paste := NewMockPasteSynthesizer()
	sink := NewSink(clip, paste, testLogger())

	if err := sink.Emit("hello", interfaces.ModePaste); err == nil {
		t.Fatal("expected an error from the clipboard write")
	}
	if paste.WasCalled() {
		t.Error("paste must not be attempted when the clipboard write fails")
	}
}

func TestSink_PasteFailureIsReturned(t *testing.T) {
	clip := NewMockClipboardWriter()
	paste := NewMockPasteSynthesizer()
	paste.SetError(errors.New("xdotool: no such display"))
	sink := NewSink(clip, paste, testLogger())

	if err := sink.Emit("hello", interfaces.ModePaste); err == nil {
		t.Fatal("expected a paste synthesis error to propagate")
	}
}
