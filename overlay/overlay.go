// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package overlay is the Overlay View Model (C10, spec.md §4.10): it
// holds observable state for the floating recording indicator and never
// calls UI code directly. The Session Coordinator drives it; the actual
// rendering surface — a systray icon, a floating window, whatever a
// given desktop provides — subscribes and renders on its own schedule.
package overlay

import "sync"

// State is the indicator's visible mode, mirroring the subset of
// SessionState (spec.md §3) that is meaningful to the UI: the
// ShowingMessage/Hidden split is folded into State/MessageKind below.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateThinking
	StateMessage
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRecording:
		return "Recording"
	case StateThinking:
		return "Thinking"
	case StateMessage:
		return "Message"
	default:
		return "Unknown"
	}
}

// MessageKind classifies a ShowingMessage transcript (spec.md §3).
type MessageKind int

const (
	MessageInfo MessageKind = iota
	MessageError
	MessageSuccess
)

// Appearance is the indicator's cosmetic configuration (spec.md §4.1, §9):
// screen corner and RGBA/opacity. The Session Coordinator re-reads this
// from the Config Store and reapplies it on every Hidden→Recording
// transition; actual pixel rendering is left to the UI surface.
type Appearance struct {
	Position string
	R, G, B, A uint8
	Opacity  float64
}

// Snapshot is the full observable state at one instant.
type Snapshot struct {
	State      State
	Level      float64     // meaningful only in StateRecording
	Kind       MessageKind // meaningful only in StateMessage
	Text       string      // meaningful only in StateMessage
	Appearance Appearance
}

// ViewModel fans out Snapshot updates to subscribers. Listeners run
// synchronously on the writer's goroutine, after the lock is released, so
// a slow listener delays the writer; Subscribe requires listeners not to
// block.
type ViewModel struct {
	mu        sync.RWMutex
	snapshot  Snapshot
	listeners []func(Snapshot)
}

// New returns a ViewModel starting in StateIdle.
func New() *ViewModel {
	return &ViewModel{snapshot: Snapshot{State: StateIdle}}
}

// Subscribe registers fn to be called, synchronously on the calling
// goroutine, every time the snapshot changes. fn must not block.
func (v *ViewModel) Subscribe(fn func(Snapshot)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.listeners = append(v.listeners, fn)
}

// Snapshot returns the current observable state.
func (v *ViewModel) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.snapshot
}

// set replaces the state-dependent fields of the snapshot, preserving
// whatever Appearance was last applied, and notifies subscribers.
func (v *ViewModel) set(s Snapshot) {
	v.mu.Lock()
	s.Appearance = v.snapshot.Appearance
	v.snapshot = s
	listeners := append([]func(Snapshot){}, v.listeners...)
	v.mu.Unlock()

	for _, fn := range listeners {
		fn(s)
	}
}

// SetIdle hides the indicator (SessionState Idle/Hidden, spec.md §3).
func (v *ViewModel) SetIdle() {
	v.set(Snapshot{State: StateIdle})
}

// SetRecording shows the live level meter (SessionState
// Recording{startedAt, level}).
func (v *ViewModel) SetRecording(level float64) {
	v.set(Snapshot{State: StateRecording, Level: level})
}

// SetThinking shows the processing indicator (SessionState Thinking).
func (v *ViewModel) SetThinking() {
	v.set(Snapshot{State: StateThinking})
}

// SetMessage shows a transient message (SessionState ShowingMessage).
func (v *ViewModel) SetMessage(kind MessageKind, text string) {
	v.set(Snapshot{State: StateMessage, Kind: kind, Text: text})
}

// ApplyAppearance updates the cosmetic configuration without changing the
// current State, and notifies subscribers. The Session Coordinator calls
// this on every Hidden→Recording transition after re-reading the Config
// Store.
func (v *ViewModel) ApplyAppearance(a Appearance) {
	v.mu.Lock()
	v.snapshot.Appearance = a
	s := v.snapshot
	listeners := append([]func(Snapshot){}, v.listeners...)
	v.mu.Unlock()

	for _, fn := range listeners {
		fn(s)
	}
}
