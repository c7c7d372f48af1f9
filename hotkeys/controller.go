// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package hotkeys implements the Hotkey Controller (spec.md §4.5): a
// system-wide event tap over three monitored keys that turns raw key
// presses into Intent values for the Session Coordinator.
package hotkeys

import (
	"fmt"
	"sync"
	"time"

	"github.com/AshBuk/justwhisper/hotkeys/adapters"
	"github.com/AshBuk/justwhisper/hotkeys/interfaces"
	"github.com/AshBuk/justwhisper/internal/logger"
	"github.com/AshBuk/justwhisper/internal/permission"
)

// Intent is one of the three signals the Hotkey Controller hands to the
// Session Coordinator.
type Intent int

const (
	IntentStartOrStop Intent = iota
	IntentStopCopyOnly
	IntentCancel
)

func (i Intent) String() string {
	switch i {
	case IntentStartOrStop:
		return "StartOrStop"
	case IntentStopCopyOnly:
		return "StopCopyOnly"
	case IntentCancel:
		return "Cancel"
	default:
		return "Unknown"
	}
}

const pollInterval = 2 * time.Second

// Controller owns the event tap lifecycle: permission-gated install,
// recovery on tap disablement, and enable-flag teardown/reinstall.
// Intents are delivered on a buffered channel read only by the Session
// Coordinator, matching the "own event loop, thread-safe queue" scheduling
// model of spec.md §4.5.
type Controller struct {
	log         logger.Logger
	cfg         adapters.HotkeyConfig
	environment interfaces.EnvironmentType
	permissions *permission.Gate
	newProvider func() interfaces.KeyboardEventProvider

	intents chan Intent

	mu        sync.Mutex
	enabled   bool
	installed bool
	provider  interfaces.KeyboardEventProvider
	stopPoll  chan struct{}

	recMu     sync.RWMutex
	recording bool
}

// New builds a Controller bound to cfg's three chords. permissions gates
// tap installation on the inputMonitoring capability.
func New(cfg adapters.HotkeyConfig, environment interfaces.EnvironmentType, permissions *permission.Gate, log logger.Logger) *Controller {
	c := &Controller{
		log:         log,
		cfg:         cfg,
		environment: environment,
		permissions: permissions,
		intents:     make(chan Intent, 8),
	}
	c.newProvider = func() interfaces.KeyboardEventProvider {
		return selectProvider(cfg, environment, log)
	}
	return c
}

// SetProviderFactory overrides how the controller builds its event-tap
// provider. Tests use this to inject a fake KeyboardEventProvider instead
// of the OS-specific selection in select_linux.go/select_other.go.
func (c *Controller) SetProviderFactory(f func() interfaces.KeyboardEventProvider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.newProvider = f
}

// Intents returns the channel the Session Coordinator reads from.
func (c *Controller) Intents() <-chan Intent {
	return c.intents
}

// ResetRecordingState mirrors the Session Coordinator's current recording
// state into the controller, so CopyOnly/Cancel can gate locally without
// a round trip or shared lock (spec.md §4.5).
func (c *Controller) ResetRecordingState(recording bool) {
	c.recMu.Lock()
	c.recording = recording
	c.recMu.Unlock()
}

func (c *Controller) isRecording() bool {
	c.recMu.RLock()
	defer c.recMu.RUnlock()
	return c.recording
}

// Start sets the enable flag and begins permission-gated installation; a
// no-op while the inputMonitoring capability is ungranted, retried every
// 2s until it installs (spec.md §4.5 "Permission gating").
func (c *Controller) Start() {
	c.mu.Lock()
	if c.enabled {
		c.mu.Unlock()
		return
	}
	c.enabled = true
	c.stopPoll = make(chan struct{})
	stop := c.stopPoll
	c.mu.Unlock()

	go c.retryLoop(stop)
}

func (c *Controller) retryLoop(stop chan struct{}) {
	if c.tryInstall() {
		return
	}
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if c.tryInstall() {
				return
			}
		}
	}
}

func (c *Controller) tryInstall() bool {
	if c.permissions != nil && !c.permissions.Status(permission.InputMonitoring) {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled || c.installed {
		return true
	}
	if c.provider == nil {
		c.provider = c.newProvider()
	}
	if err := c.registerAndStart(c.provider); err != nil {
		c.log.Warning("hotkey tap install failed: %v", err)
		return false
	}
	c.installed = true
	return true
}

// registerAndStart registers the three monitored chords and starts the
// tap. Must be called with c.mu held.
func (c *Controller) registerAndStart(p interfaces.KeyboardEventProvider) error {
	if err := p.RegisterHotkey(c.cfg.GetPrimaryHotkey(), func() error {
		c.intents <- IntentStartOrStop
		return nil
	}); err != nil {
		return fmt.Errorf("register primary hotkey: %w", err)
	}
	if err := p.RegisterHotkey(c.cfg.GetCopyOnlyHotkey(), func() error {
		if c.isRecording() {
			c.intents <- IntentStopCopyOnly
		}
		return nil
	}); err != nil {
		return fmt.Errorf("register copy-only hotkey: %w", err)
	}
	if err := p.RegisterHotkey(c.cfg.GetCancelHotkey(), func() error {
		if c.isRecording() {
			c.intents <- IntentCancel
		}
		return nil
	}); err != nil {
		return fmt.Errorf("register cancel hotkey: %w", err)
	}
	if err := p.Start(); err != nil {
		return fmt.Errorf("start event tap: %w", err)
	}
	return nil
}

// Recover implements the tap-disablement recovery policy: one re-enable
// attempt, and if that fails, a full teardown and rebuild with a single
// retry (spec.md §4.5 "Recovery"). The host (whatever observes the OS
// disabling the tap — a provider-level error log line, a watchdog) calls
// this with the triggering error.
func (c *Controller) Recover(cause error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.installed || c.provider == nil {
		return
	}

	c.log.Warning("hotkey event tap disabled (%v); attempting re-enable", cause)
	if err := c.provider.Start(); err == nil {
		return
	}

	c.log.Warning("re-enable failed; rebuilding event tap")
	c.provider.Stop()
	c.provider = c.newProvider()
	if err := c.registerAndStart(c.provider); err != nil {
		c.log.Error("event tap rebuild failed: %v", err)
		c.installed = false
		return
	}
}

// Stop clears the enable flag and tears down the tap. Setting the flag
// again via Start re-installs (spec.md §4.5 "Enable flag").
func (c *Controller) Stop() {
	c.mu.Lock()
	if !c.enabled {
		c.mu.Unlock()
		return
	}
	c.enabled = false
	c.installed = false
	provider := c.provider
	c.provider = nil
	if c.stopPoll != nil {
		close(c.stopPoll)
	}
	c.mu.Unlock()

	if provider != nil {
		provider.Stop()
	}
}

// SetEnabled wires the Config Store's global enable flag to the
// Controller's install/teardown lifecycle.
func (c *Controller) SetEnabled(enabled bool) {
	if enabled {
		c.Start()
	} else {
		c.Stop()
	}
}
