// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package session

import (
	"context"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/AshBuk/justwhisper/audio/devices"
	audiointerfaces "github.com/AshBuk/justwhisper/audio/interfaces"
	"github.com/AshBuk/justwhisper/config"
	"github.com/AshBuk/justwhisper/hotkeys"
	"github.com/AshBuk/justwhisper/internal/errs"
	"github.com/AshBuk/justwhisper/overlay"
	outputinterfaces "github.com/AshBuk/justwhisper/output/interfaces"
)

// writeCaptureFile mirrors the recorder's on-disk format: a flat sequence
// of little-endian float32 samples with no container.
func writeCaptureFile(t *testing.T, samples []float32) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.raw")
	buf := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(s))
	}
	if err := os.WriteFile(path, buf, 0o600); err != nil {
		t.Fatalf("writeCaptureFile: %v", err)
	}
	return path
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{})   {}
func (noopLogger) Info(string, ...interface{})    {}
func (noopLogger) Warning(string, ...interface{}) {}
func (noopLogger) Error(string, ...interface{})   {}

type mockRecorder struct {
	mu        sync.Mutex
	recording bool
	startErr  error
	stopErr   error
	handle    audiointerfaces.Handle
	callback  audiointerfaces.AudioLevelCallback
}

func (m *mockRecorder) Start(devices.Device) (audiointerfaces.Handle, error) {
	if m.startErr != nil {
		return audiointerfaces.Handle{}, m.startErr
	}
	m.mu.Lock()
	m.recording = true
	m.mu.Unlock()
	return m.handle, nil
}

func (m *mockRecorder) Stop() (audiointerfaces.Handle, error) {
	m.mu.Lock()
	m.recording = false
	m.mu.Unlock()
	if m.stopErr != nil {
		return audiointerfaces.Handle{}, m.stopErr
	}
	return m.handle, nil
}

func (m *mockRecorder) SetDevice(devices.Device) error { return nil }
func (m *mockRecorder) SetAudioLevelCallback(cb audiointerfaces.AudioLevelCallback) {
	m.callback = cb
}
func (m *mockRecorder) GetAudioLevel() float64 { return 0 }
func (m *mockRecorder) IsRecording() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recording
}

type mockDeviceSource struct{}

func (mockDeviceSource) Selected() devices.Device { return devices.Device{} }

type mockHotkeyState struct {
	mu    sync.Mutex
	value bool
}

func (m *mockHotkeyState) ResetRecordingState(recording bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = recording
}

type mockTranscriber struct {
	text string
	err  error
}

func (m *mockTranscriber) Transcribe(ctx context.Context, samples []float32) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

type blockingTranscriber struct {
	release chan struct{}
}

func (b *blockingTranscriber) Transcribe(ctx context.Context, samples []float32) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-b.release:
		return "hello world", nil
	}
}

type passthroughCleaner struct{}

func (passthroughCleaner) Clean(text string) string   { return text }
func (passthroughCleaner) Enhance(text string) string { return text }

type mockSink struct {
	mu     sync.Mutex
	emits  []string
	modes  []outputinterfaces.Mode
	err    error
}

func (m *mockSink) Emit(text string, mode outputinterfaces.Mode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.emits = append(m.emits, text)
	m.modes = append(m.modes, mode)
	return nil
}

func (m *mockSink) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.emits)
}

func newTestStore(t *testing.T) *config.Store {
	t.Helper()
	dir := t.TempDir()
	store, err := config.NewStore(dir+"/config.yaml", noopLogger{})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(store.Close)
	return store
}

func newCoordinator(t *testing.T, recorder audiointerfaces.Recorder, transcriber Transcriber, sink Sink) (*Coordinator, *overlay.ViewModel, *mockHotkeyState) {
	t.Helper()
	vm := overlay.New()
	hk := &mockHotkeyState{}
	c := New(newTestStore(t), recorder, mockDeviceSource{}, transcriber, passthroughCleaner{}, sink, vm, hk, noopLogger{})
	return c, vm, hk
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never became true")
}

func TestCoordinator_StartsHidden(t *testing.T) {
	c, _, _ := newCoordinator(t, &mockRecorder{}, &mockTranscriber{}, &mockSink{})
	if got := c.State().Phase; got != PhaseHidden {
		t.Fatalf("initial phase = %v, want Hidden", got)
	}
}

func TestCoordinator_StartOrStop_HiddenToRecording(t *testing.T) {
	rec := &mockRecorder{}
	c, vm, hk := newCoordinator(t, rec, &mockTranscriber{}, &mockSink{})

	c.HandleIntent(hotkeys.IntentStartOrStop)

	if got := c.State().Phase; got != PhaseRecording {
		t.Fatalf("phase = %v, want Recording", got)
	}
	if !rec.IsRecording() {
		t.Fatal("recorder was not started")
	}
	if !hk.value {
		t.Fatal("hotkey controller was not told recording started")
	}
	if got := vm.Snapshot().State; got != overlay.StateRecording {
		t.Fatalf("overlay state = %v, want Recording", got)
	}
}

func TestCoordinator_HappyPath_PasteMode(t *testing.T) {
	rec := &mockRecorder{handle: audiointerfaces.Handle{Path: writeCaptureFile(t, []float32{0.1, -0.1, 0.2})}}
	sink := &mockSink{}
	c, vm, _ := newCoordinator(t, rec, &mockTranscriber{text: "  hello world  "}, sink)

	c.HandleIntent(hotkeys.IntentStartOrStop) // Hidden -> Recording
	c.HandleIntent(hotkeys.IntentStartOrStop) // Recording -> Thinking{Paste}

	if got := c.State().Phase; got != PhaseThinking {
		t.Fatalf("phase = %v, want Thinking", got)
	}

	waitFor(t, func() bool { return sink.calls() == 1 })
	waitFor(t, func() bool { return c.State().Phase == PhaseHidden })

	if vm.Snapshot().State != overlay.StateIdle {
		t.Fatalf("overlay state = %v, want Idle", vm.Snapshot().State)
	}
	if sink.modes[0] != outputinterfaces.ModePaste {
		t.Fatalf("mode = %v, want Paste", sink.modes[0])
	}
}

func TestCoordinator_StopCopyOnly_ShowsSuccessMessage(t *testing.T) {
	rec := &mockRecorder{handle: audiointerfaces.Handle{Path: writeCaptureFile(t, []float32{0.1, -0.1, 0.2})}}
	sink := &mockSink{}
	c, vm, _ := newCoordinator(t, rec, &mockTranscriber{text: "copy this"}, sink)

	c.HandleIntent(hotkeys.IntentStartOrStop)
	c.HandleIntent(hotkeys.IntentStopCopyOnly)

	waitFor(t, func() bool { return c.State().Phase == PhaseShowingMessage })

	snap := vm.Snapshot()
	if snap.Kind != overlay.MessageSuccess || snap.Text != "Copied to clipboard" {
		t.Fatalf("snapshot = %+v", snap)
	}
	if sink.modes[0] != outputinterfaces.ModeCopyOnly {
		t.Fatalf("mode = %v, want CopyOnly", sink.modes[0])
	}
}

func TestCoordinator_CancelDuringRecording(t *testing.T) {
	rec := &mockRecorder{}
	sink := &mockSink{}
	c, vm, _ := newCoordinator(t, rec, &mockTranscriber{}, sink)

	c.HandleIntent(hotkeys.IntentStartOrStop)
	c.HandleIntent(hotkeys.IntentCancel)

	if got := c.State().Phase; got != PhaseShowingMessage {
		t.Fatalf("phase = %v, want ShowingMessage", got)
	}
	snap := vm.Snapshot()
	if snap.Kind != overlay.MessageError || snap.Text != "Recording canceled" {
		t.Fatalf("snapshot = %+v", snap)
	}
	if sink.calls() != 0 {
		t.Fatal("sink should not have been called")
	}
}

func TestCoordinator_CancelDuringThinking_DiscardsLateCompletion(t *testing.T) {
	rec := &mockRecorder{handle: audiointerfaces.Handle{Path: writeCaptureFile(t, []float32{0.1, -0.1, 0.2})}}
	sink := &mockSink{}
	release := make(chan struct{})
	transcriber := &blockingTranscriber{release: release}
	c, vm, _ := newCoordinator(t, rec, transcriber, sink)

	c.HandleIntent(hotkeys.IntentStartOrStop)
	c.HandleIntent(hotkeys.IntentStartOrStop) // Recording -> Thinking{Paste}

	c.HandleIntent(hotkeys.IntentCancel)

	if got := c.State().Phase; got != PhaseShowingMessage {
		t.Fatalf("phase = %v, want ShowingMessage", got)
	}
	snap := vm.Snapshot()
	if snap.Text != "Transcription canceled" {
		t.Fatalf("snapshot = %+v", snap)
	}

	close(release) // let the stale goroutine finish after cancellation
	c.Wait()

	if sink.calls() != 0 {
		t.Fatalf("late completion should be discarded, got %d emits", sink.calls())
	}
	if got := c.State().Phase; got != PhaseShowingMessage {
		t.Fatalf("late completion must not override the cancel message, phase = %v", got)
	}
}

func TestCoordinator_EmptyTranscriptShowsNoSpeechDetected(t *testing.T) {
	rec := &mockRecorder{handle: audiointerfaces.Handle{Path: writeCaptureFile(t, []float32{0.1, -0.1, 0.2})}}
	sink := &mockSink{}
	c, vm, _ := newCoordinator(t, rec, &mockTranscriber{text: "   "}, sink)

	c.HandleIntent(hotkeys.IntentStartOrStop)
	c.HandleIntent(hotkeys.IntentStartOrStop)

	waitFor(t, func() bool { return c.State().Phase == PhaseShowingMessage })

	snap := vm.Snapshot()
	if snap.Text != "No speech detected" {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestCoordinator_TranscribeFailureMapsErrorTaxonomy(t *testing.T) {
	rec := &mockRecorder{handle: audiointerfaces.Handle{Path: writeCaptureFile(t, []float32{0.1, -0.1, 0.2})}}
	sink := &mockSink{}
	c, vm, _ := newCoordinator(t, rec, &mockTranscriber{err: wrapped(errs.ErrNetwork)}, sink)

	c.HandleIntent(hotkeys.IntentStartOrStop)
	c.HandleIntent(hotkeys.IntentStartOrStop)

	waitFor(t, func() bool { return c.State().Phase == PhaseShowingMessage })

	snap := vm.Snapshot()
	if snap.Text != "Network error. Check your connection." {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func wrapped(sentinel error) error {
	return &wrappedErr{sentinel}
}

type wrappedErr struct{ sentinel error }

func (w *wrappedErr) Error() string { return "wrapped: " + w.sentinel.Error() }
func (w *wrappedErr) Unwrap() error { return w.sentinel }

func TestCoordinator_ShowingMessage_StartOrStopGoesStraightToRecording(t *testing.T) {
	rec := &mockRecorder{}
	sink := &mockSink{}
	c, vm, _ := newCoordinator(t, rec, &mockTranscriber{}, sink)

	c.HandleIntent(hotkeys.IntentStartOrStop) // -> Recording
	c.HandleIntent(hotkeys.IntentCancel)       // -> ShowingMessage

	c.HandleIntent(hotkeys.IntentStartOrStop) // -> Recording again, immediately

	if got := c.State().Phase; got != PhaseRecording {
		t.Fatalf("phase = %v, want Recording", got)
	}
	if vm.Snapshot().State != overlay.StateRecording {
		t.Fatalf("overlay state = %v, want Recording", vm.Snapshot().State)
	}
}

func TestCoordinator_RecorderStartFailureShowsError(t *testing.T) {
	rec := &mockRecorder{startErr: errs.ErrDeviceUnavailable}
	c, vm, _ := newCoordinator(t, rec, &mockTranscriber{}, &mockSink{})

	c.HandleIntent(hotkeys.IntentStartOrStop)

	if got := c.State().Phase; got != PhaseShowingMessage {
		t.Fatalf("phase = %v, want ShowingMessage", got)
	}
	if vm.Snapshot().Text != "Failed to start recording" {
		t.Fatalf("text = %q", vm.Snapshot().Text)
	}
}
