// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package adapters

// HotkeyConfig is the contract the hotkey Controller needs from the
// Config Store: the three monitored chords (spec.md §4.5) and an optional
// provider override.
type HotkeyConfig interface {
	// GetPrimaryHotkey returns the toggle start/stop chord.
	GetPrimaryHotkey() string
	// GetCopyOnlyHotkey returns the copy-only-stop chord.
	GetCopyOnlyHotkey() string
	// GetCancelHotkey returns the cancel chord.
	GetCancelHotkey() string
	// GetProvider returns the provider override ("auto", "dbus", "evdev").
	GetProvider() string
}

// ConfigAdapter adapts three plain hotkey strings and a provider override
// to the HotkeyConfig interface, keeping the hotkeys package decoupled
// from the config package's concrete struct shape.
type ConfigAdapter struct {
	primary  string
	copyOnly string
	cancel   string
	provider string
}

// NewConfigAdapter builds an adapter from the raw chord strings.
func NewConfigAdapter(primary, copyOnly, cancel, provider string) *ConfigAdapter {
	return &ConfigAdapter{primary: primary, copyOnly: copyOnly, cancel: cancel, provider: provider}
}

func (c *ConfigAdapter) GetPrimaryHotkey() string  { return c.primary }
func (c *ConfigAdapter) GetCopyOnlyHotkey() string { return c.copyOnly }
func (c *ConfigAdapter) GetCancelHotkey() string   { return c.cancel }

func (c *ConfigAdapter) GetProvider() string {
	if c.provider == "" {
		return "auto"
	}
	return c.provider
}
