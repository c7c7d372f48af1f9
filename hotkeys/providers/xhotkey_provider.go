//go:build !linux

// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package providers

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.design/x/hotkey"

	"github.com/AshBuk/justwhisper/hotkeys/utils"
	"github.com/AshBuk/justwhisper/internal/logger"
)

var xhotkeyKeyMap = map[string]hotkey.Key{
	// The physical Fn key is intercepted by firmware on most keyboards and
	// has no portable key code; F13 is the nearest free function key most
	// users can remap a Fn-like corner key to.
	"fn": hotkey.KeyF13, "escape": hotkey.KeyEscape, "esc": hotkey.KeyEscape,
	"space": hotkey.KeySpace, "tab": hotkey.KeyTab, "enter": hotkey.KeyReturn,
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
	"f1": hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3, "f4": hotkey.KeyF4,
	"f5": hotkey.KeyF5, "f6": hotkey.KeyF6, "f7": hotkey.KeyF7, "f8": hotkey.KeyF8,
	"f9": hotkey.KeyF9, "f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,
}

var xhotkeyModMap = map[string]hotkey.Modifier{
	"ctrl": hotkey.ModCtrl, "leftctrl": hotkey.ModCtrl, "rightctrl": hotkey.ModCtrl,
	"alt": hotkey.ModOption, "option": hotkey.ModOption,
	"shift": hotkey.ModShift,
	"super": hotkey.ModCmd, "cmd": hotkey.ModCmd, "command": hotkey.ModCmd,
}

// XHotkeyProvider implements KeyboardEventProvider on macOS/Windows using
// golang.design/x/hotkey's global hotkey registration, the same library
// nkristianto-VocaGlyph wraps for its single-combo hotkey service.
// Unlike the Linux evdev/D-Bus providers it cannot swallow a standalone
// Control or Escape keypress that isn't registered as an OS-level
// accelerator; CopyOnly and Cancel therefore need a modifier+key chord on
// these platforms (e.g. "ctrl+space"), not a bare Control or Escape tap.
type XHotkeyProvider struct {
	mu      sync.Mutex
	log     logger.Logger
	entries map[string]*registeredHotkey
	started bool
}

type registeredHotkey struct {
	hk       *hotkey.Hotkey
	callback func() error
	stop     chan struct{}
}

// NewXHotkeyProvider creates a provider backed by golang.design/x/hotkey.
func NewXHotkeyProvider(log logger.Logger) *XHotkeyProvider {
	return &XHotkeyProvider{log: log, entries: make(map[string]*registeredHotkey)}
}

// IsSupported is always true: golang.design/x/hotkey ships OS-level
// backends for darwin and windows, the two platforms this file builds on.
func (p *XHotkeyProvider) IsSupported() bool { return true }

func parseXHotkey(combo string) ([]hotkey.Modifier, hotkey.Key, error) {
	parsed := utils.ParseHotkey(combo)
	key, ok := xhotkeyKeyMap[strings.ToLower(parsed.Key)]
	if !ok {
		return nil, 0, fmt.Errorf("unsupported key %q", parsed.Key)
	}
	mods := make([]hotkey.Modifier, 0, len(parsed.Modifiers))
	for _, m := range parsed.Modifiers {
		mod, ok := xhotkeyModMap[strings.ToLower(m)]
		if !ok {
			return nil, 0, fmt.Errorf("unsupported modifier %q", m)
		}
		mods = append(mods, mod)
	}
	return mods, key, nil
}

// RegisterHotkey registers combo and starts a listener goroutine relaying
// its keydown events to callback.
func (p *XHotkeyProvider) RegisterHotkey(combo string, callback func() error) error {
	mods, key, err := parseXHotkey(combo)
	if err != nil {
		return fmt.Errorf("register hotkey %q: %w", combo, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[combo] = &registeredHotkey{hk: hotkey.New(mods, key), callback: callback, stop: make(chan struct{})}
	if p.started {
		return p.startOne(combo)
	}
	return nil
}

func (p *XHotkeyProvider) startOne(combo string) error {
	entry := p.entries[combo]
	if err := entry.hk.Register(); err != nil {
		return fmt.Errorf("register hotkey %q: %w", combo, err)
	}
	keydown := entry.hk.Keydown()
	go func() {
		for {
			select {
			case <-entry.stop:
				return
			case _, ok := <-keydown:
				if !ok {
					return
				}
				if err := entry.callback(); err != nil {
					p.log.Error("hotkey callback error for %q: %v", combo, err)
				}
			}
		}
	}()
	return nil
}

// Start registers every previously-added hotkey with the OS.
func (p *XHotkeyProvider) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return fmt.Errorf("xhotkey provider already started")
	}
	for combo := range p.entries {
		if err := p.startOne(combo); err != nil {
			return err
		}
	}
	p.started = true
	return nil
}

// Stop unregisters every hotkey and stops its listener goroutine.
func (p *XHotkeyProvider) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return
	}
	for _, entry := range p.entries {
		close(entry.stop)
		if err := entry.hk.Unregister(); err != nil {
			p.log.Warning("hotkey unregister failed: %v", err)
		}
	}
	p.started = false
}

// CaptureOnce is not implemented for this backend; the preferences UI's
// capture flow is out of scope for this package (see Non-goals).
func (p *XHotkeyProvider) CaptureOnce(timeout time.Duration) (string, error) {
	return "", fmt.Errorf("captureOnce not supported by xhotkey provider")
}

// SupportsCaptureOnce reports that this backend cannot capture a one-shot
// chord from the user.
func (p *XHotkeyProvider) SupportsCaptureOnce() bool { return false }
