// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package permission implements the asynchronous gate for microphone and
// input-monitoring privileges (spec.md §4.2, C2). It never blocks a caller
// synchronously: request and status return immediately, and a background
// poller re-queries every 2s until both permissions are granted.
package permission

import (
	"sync"
	"time"

	"github.com/AshBuk/justwhisper/internal/logger"
	"github.com/AshBuk/justwhisper/internal/utils"
)

// Kind identifies one of the two tracked privileges.
type Kind int

const (
	Microphone Kind = iota
	InputMonitoring
)

func (k Kind) String() string {
	if k == Microphone {
		return "microphone"
	}
	return "inputMonitoring"
}

const pollInterval = 2 * time.Second

// Checker abstracts the platform-specific probe for a permission's current
// status and the OS prompt/deep-link action to request it. On Linux, where
// there is no centralized privacy database the way macOS has TCC, a
// Checker implementation typically just probes whether the device/tap can
// actually be opened and reports granted based on that.
type Checker interface {
	Status(k Kind) bool
	// Request issues the OS prompt if undecided, or deep-links to the
	// system privacy panel if previously denied. Best-effort; errors are
	// logged, never returned to the gate's caller.
	Request(k Kind)
}

// Gate tracks microphoneGranted/inputMonitoringGranted and notifies
// subscribers when either flips to granted.
type Gate struct {
	checker Checker
	log     logger.Logger

	mu        sync.RWMutex
	granted   map[Kind]bool
	listeners []func(Kind)

	stopOnce sync.Once
	stopCh   chan struct{}
}

// New creates a Gate around checker and starts its background poller.
func New(checker Checker, log logger.Logger) *Gate {
	g := &Gate{
		checker: checker,
		log:     log,
		granted: map[Kind]bool{
			Microphone:      checker.Status(Microphone),
			InputMonitoring: checker.Status(InputMonitoring),
		},
		stopCh: make(chan struct{}),
	}
	utils.Go(g.pollLoop)
	return g
}

// Status returns the last-known grant state for k. Never blocks.
func (g *Gate) Status(k Kind) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.granted[k]
}

// Request is idempotent: it asks the checker to prompt or deep-link, then
// returns immediately. The poller picks up any resulting grant on its next
// tick.
func (g *Gate) Request(k Kind) {
	if g.Status(k) {
		return
	}
	utils.Go(func() {
		g.checker.Request(k)
	})
}

// OnGranted registers fn to be called (on the poller's goroutine) the
// moment a permission flips from not-granted to granted.
func (g *Gate) OnGranted(fn func(Kind)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listeners = append(g.listeners, fn)
}

// Close stops the background poller.
func (g *Gate) Close() {
	g.stopOnce.Do(func() { close(g.stopCh) })
}

func (g *Gate) pollLoop() {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			g.pollOnce()
			if g.Status(Microphone) && g.Status(InputMonitoring) {
				return
			}
		case <-g.stopCh:
			return
		}
	}
}

func (g *Gate) pollOnce() {
	for _, k := range []Kind{Microphone, InputMonitoring} {
		now := g.checker.Status(k)

		g.mu.Lock()
		was := g.granted[k]
		g.granted[k] = now
		var listeners []func(Kind)
		if now && !was {
			listeners = append([]func(Kind){}, g.listeners...)
		}
		g.mu.Unlock()

		if now && !was {
			if g.log != nil {
				g.log.Info("permission %s granted", k)
			}
			for _, fn := range listeners {
				fn(k)
			}
		}
	}
}
