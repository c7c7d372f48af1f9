// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package session implements the Session Coordinator (C8, spec.md §4.8):
// the state machine that turns Hotkey Controller intents into recording,
// transcription, and delivery, driving the Overlay View Model as it goes.
// It is the one component that talks to every other one.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/AshBuk/justwhisper/audio/devices"
	audiointerfaces "github.com/AshBuk/justwhisper/audio/interfaces"
	"github.com/AshBuk/justwhisper/audio/pcm"
	"github.com/AshBuk/justwhisper/config"
	"github.com/AshBuk/justwhisper/hotkeys"
	"github.com/AshBuk/justwhisper/internal/errs"
	"github.com/AshBuk/justwhisper/internal/logger"
	"github.com/AshBuk/justwhisper/internal/metrics"
	"github.com/AshBuk/justwhisper/internal/utils"
	"github.com/AshBuk/justwhisper/overlay"
	outputinterfaces "github.com/AshBuk/justwhisper/output/interfaces"
)

// Transcriber is the subset of speech.Client the Coordinator depends on.
type Transcriber interface {
	Transcribe(ctx context.Context, samples []float32) (string, error)
}

// Cleaner is the subset of transcript.Cleaner the Coordinator depends on.
type Cleaner interface {
	Clean(text string) string
	Enhance(text string) string
}

// Sink is the subset of output.Sink the Coordinator depends on.
type Sink interface {
	Emit(text string, mode outputinterfaces.Mode) error
}

// DeviceSource is the subset of devices.Registry the Coordinator depends
// on: which device to hand the Recorder on the next Start.
type DeviceSource interface {
	Selected() devices.Device
}

// RecordingStateSink is the subset of hotkeys.Controller the Coordinator
// depends on: telling the event tap whether a primary-chord press should
// currently be read as a stop rather than a start.
type RecordingStateSink interface {
	ResetRecordingState(recording bool)
}

// Phase is the coarse shape of SessionState (spec.md §3). The spec's
// transition table (§4.8) never names a distinct Idle→* transition — every
// arrow into the "nothing happening" state targets Hidden — so Idle and
// Hidden are folded into one phase here; PhaseHidden is both the initial
// state and the resting state between sessions.
type Phase int

const (
	PhaseHidden Phase = iota
	PhaseRecording
	PhaseThinking
	PhaseShowingMessage
)

// State is the Coordinator's current SessionState snapshot.
type State struct {
	Phase Phase

	StartedAt time.Time
	Level     float64

	Mode outputinterfaces.Mode

	Kind overlay.MessageKind
	Text string
}

const (
	hideAfterCancel     = 500 * time.Millisecond
	hideAfterCopySuccess = 1500 * time.Millisecond
	hideAfterFailure    = 10 * time.Second
)

// Coordinator owns the SessionState machine. Zero value is not usable;
// construct with New.
type Coordinator struct {
	store     *config.Store
	recorder  audiointerfaces.Recorder
	devices   DeviceSource
	speech    Transcriber
	cleaner   Cleaner
	sink      Sink
	overlayVM *overlay.ViewModel
	hotkeyCtl RecordingStateSink
	log       logger.Logger
	metrics   *metrics.Recorder

	mu        sync.Mutex
	state     State
	cancel    context.CancelFunc
	hideTimer *time.Timer

	wg sync.WaitGroup
}

// New wires a Coordinator from its collaborators. It registers itself as
// the recorder's audio-level callback; callers must not also register
// their own.
func New(
	store *config.Store,
	recorder audiointerfaces.Recorder,
	registry DeviceSource,
	speechClient Transcriber,
	cleaner Cleaner,
	sink Sink,
	overlayVM *overlay.ViewModel,
	hotkeyCtl RecordingStateSink,
	log logger.Logger,
) *Coordinator {
	c := &Coordinator{
		store:     store,
		recorder:  recorder,
		devices:   registry,
		speech:    speechClient,
		cleaner:   cleaner,
		sink:      sink,
		overlayVM: overlayVM,
		hotkeyCtl: hotkeyCtl,
		log:       log,
		state:     State{Phase: PhaseHidden},
	}
	recorder.SetAudioLevelCallback(c.onLevel)
	return c
}

// SetMetrics attaches the ambient metrics Recorder (A2). A Coordinator
// built without calling this keeps the nil *metrics.Recorder zero value,
// which every Recorder method already tolerates.
func (c *Coordinator) SetMetrics(m *metrics.Recorder) {
	c.metrics = m
}

// Run reads intents until the channel is closed, dispatching each one.
// Intended to be the body of the Session Coordinator's own goroutine,
// fed by hotkeys.Controller.Intents().
func (c *Coordinator) Run(intents <-chan hotkeys.Intent) {
	for intent := range intents {
		c.HandleIntent(intent)
	}
}

// Wait blocks until any in-flight processing task has finished. Useful on
// shutdown to avoid a torn-down Sink racing an in-flight Emit.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// State returns a copy of the current SessionState.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// HandleIntent applies one Hotkey Controller intent to the state machine.
func (c *Coordinator) HandleIntent(intent hotkeys.Intent) {
	switch intent {
	case hotkeys.IntentStartOrStop:
		c.onStartOrStop()
	case hotkeys.IntentStopCopyOnly:
		c.onStopCopyOnly()
	case hotkeys.IntentCancel:
		c.onCancel()
	}
}

func (c *Coordinator) onStartOrStop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state.Phase {
	case PhaseHidden:
		c.startRecordingLocked()
	case PhaseRecording:
		c.stopAndThinkLocked(outputinterfaces.ModePaste)
	case PhaseShowingMessage:
		// ShowingMessage → Hidden → Recording in one step (spec.md §4.8).
		c.cancelHideTimerLocked()
		c.state = State{Phase: PhaseHidden}
		c.startRecordingLocked()
	case PhaseThinking:
		// No transition is defined for StartOrStop while Thinking; only
		// Cancel applies there.
	}
}

func (c *Coordinator) onStopCopyOnly() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Phase != PhaseRecording {
		return
	}
	c.stopAndThinkLocked(outputinterfaces.ModeCopyOnly)
}

func (c *Coordinator) onCancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state.Phase {
	case PhaseRecording:
		if _, err := c.recorder.Stop(); err != nil {
			c.log.Warning("session: stop on cancel: %v", err)
		}
		c.hotkeyCtl.ResetRecordingState(false)
		c.log.Info("session: recording canceled")
		c.metrics.RecordingCancelled()
		c.transitionToMessageLocked(overlay.MessageError, "Recording canceled", hideAfterCancel)
	case PhaseThinking:
		if c.cancel != nil {
			c.cancel()
			c.cancel = nil
		}
		c.log.Info("session: transcription canceled")
		c.metrics.RecordingCancelled()
		c.transitionToMessageLocked(overlay.MessageError, "Transcription canceled", hideAfterCancel)
	default:
		// nothing in flight to cancel
	}
}

// startRecordingLocked re-reads overlay appearance from the Config Store
// and reapplies it (spec.md §4.8) before starting capture. Must be called
// with c.mu held.
func (c *Coordinator) startRecordingLocked() {
	cfg := c.store.Snapshot()
	c.overlayVM.ApplyAppearance(overlay.Appearance{
		Position: cfg.Overlay.Position,
		R:        cfg.Overlay.ColorR,
		G:        cfg.Overlay.ColorG,
		B:        cfg.Overlay.ColorB,
		A:        cfg.Overlay.ColorA,
		Opacity:  cfg.Overlay.Opacity,
	})

	device := c.devices.Selected()
	if _, err := c.recorder.Start(device); err != nil {
		c.log.Error("session: start recording: %v", err)
		c.transitionToMessageLocked(overlay.MessageError, errorMessage(err), hideAfterFailure)
		return
	}

	c.hotkeyCtl.ResetRecordingState(true)
	c.state = State{Phase: PhaseRecording, StartedAt: time.Now()}
	c.overlayVM.SetRecording(0)
	c.metrics.RecordingStarted()
	c.metrics.OverlayTransition("recording")
}

func (c *Coordinator) stopAndThinkLocked(mode outputinterfaces.Mode) {
	handle, err := c.recorder.Stop()
	c.hotkeyCtl.ResetRecordingState(false)
	if err != nil {
		c.log.Warning("session: stop recording: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.state = State{Phase: PhaseThinking, Mode: mode}
	c.overlayVM.SetThinking()
	c.metrics.RecordingCompleted()
	c.metrics.OverlayTransition("thinking")

	c.wg.Add(1)
	go c.process(ctx, handle, mode)
}

func (c *Coordinator) onLevel(level float64) {
	c.mu.Lock()
	recording := c.state.Phase == PhaseRecording
	if recording {
		c.state.Level = level
	}
	c.mu.Unlock()
	if recording {
		c.overlayVM.SetRecording(level)
	}
}

// process runs the read-transcribe-clean-deliver pipeline off the caller's
// goroutine. It never surfaces anything once ctx has been canceled: a late
// completion after Cancel is discarded silently (spec.md §4.8).
func (c *Coordinator) process(ctx context.Context, handle audiointerfaces.Handle, mode outputinterfaces.Mode) {
	defer c.wg.Done()

	if !utils.IsValidFile(handle.Path) {
		err := fmt.Errorf("%w: capture file missing or invalid: %s", errs.ErrIoFailure, handle.Path)
		c.log.Error("session: %v", err)
		c.finishWithError(ctx, errorMessage(err))
		return
	}
	if size, err := utils.GetFileSize(handle.Path); err == nil {
		c.log.Debug("session: capture file %s is %d bytes", handle.Path, size)
	}

	samples, err := pcm.ReadFloat32File(handle.Path)
	if err != nil {
		c.log.Error("session: read capture file: %v", err)
		c.finishWithError(ctx, errorMessage(err))
		return
	}

	started := time.Now()
	text, err := c.speech.Transcribe(ctx, samples)
	c.metrics.ObserveTranscriptionLatency(time.Since(started).Seconds())
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		c.log.Error("session: transcribe: %v", err)
		c.metrics.TranscriptionError()
		var httpErr *errs.HTTPStatusError
		if errors.As(err, &httpErr) {
			c.metrics.HTTPError(c.store.Snapshot().SpeechProvider.Kind)
		}
		c.finishWithError(ctx, errorMessage(err))
		return
	}

	cfg := c.store.Snapshot()
	var cleaned string
	if cfg.Cleaner.UseLLMEnhancement {
		cleaned = c.cleaner.Enhance(text)
	} else {
		cleaned = c.cleaner.Clean(text)
	}

	if strings.TrimSpace(cleaned) == "" {
		c.finishWithError(ctx, "No speech detected")
		return
	}

	if ctx.Err() != nil {
		return
	}

	if err := c.sink.Emit(cleaned, mode); err != nil {
		c.log.Error("session: output sink: %v", err)
		c.finishWithError(ctx, "Failed to deliver text")
		return
	}

	c.finishSuccess(ctx, mode)
}

func (c *Coordinator) finishWithError(ctx context.Context, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ctx.Err() != nil || c.state.Phase != PhaseThinking {
		return
	}
	c.cancel = nil
	c.transitionToMessageLocked(overlay.MessageError, text, hideAfterFailure)
}

func (c *Coordinator) finishSuccess(ctx context.Context, mode outputinterfaces.Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ctx.Err() != nil || c.state.Phase != PhaseThinking {
		return
	}
	c.cancel = nil

	if mode == outputinterfaces.ModeCopyOnly {
		c.transitionToMessageLocked(overlay.MessageSuccess, "Copied to clipboard", hideAfterCopySuccess)
		return
	}

	// Paste success goes straight to Hidden; no ShowingMessage substate is
	// named for this transition in spec.md §4.8 or its worked scenario S1.
	c.cancelHideTimerLocked()
	c.state = State{Phase: PhaseHidden}
	c.overlayVM.SetIdle()
	c.metrics.OverlayTransition("hidden")
}

func (c *Coordinator) transitionToMessageLocked(kind overlay.MessageKind, text string, hideAfter time.Duration) {
	c.state = State{Phase: PhaseShowingMessage, Kind: kind, Text: text}
	c.overlayVM.SetMessage(kind, text)
	c.metrics.OverlayTransition("message")
	c.scheduleHideLocked(hideAfter)
}

func (c *Coordinator) scheduleHideLocked(after time.Duration) {
	c.cancelHideTimerLocked()
	c.hideTimer = time.AfterFunc(after, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.state.Phase != PhaseShowingMessage {
			return
		}
		c.state = State{Phase: PhaseHidden}
		c.overlayVM.SetIdle()
	})
}

func (c *Coordinator) cancelHideTimerLocked() {
	if c.hideTimer != nil {
		c.hideTimer.Stop()
		c.hideTimer = nil
	}
}

// errorMessage maps the internal error taxonomy (spec.md §7) to the
// user-facing text shown in ShowingMessage.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, errs.ErrConfigIncomplete),
		errors.Is(err, errs.ErrMissingCredential),
		errors.Is(err, errs.ErrInvalidEndpoint):
		return "Configure provider in Preferences"
	case errors.Is(err, errs.ErrPermissionDenied):
		return "Permission denied"
	case errors.Is(err, errs.ErrDeviceUnavailable):
		return "Failed to start recording"
	case errors.Is(err, errs.ErrNetwork):
		return "Network error. Check your connection."
	case errors.Is(err, errs.ErrEmptyTranscript):
		return "No speech detected"
	case errors.Is(err, errs.ErrResponseParse):
		return "Transcription failed"
	}

	var httpErr *errs.HTTPStatusError
	if errors.As(err, &httpErr) {
		return fmt.Sprintf("Error: HTTP %d", httpErr.Status)
	}
	return "Transcription failed"
}
