//go:build !linux

// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package hotkeys

import (
	"github.com/AshBuk/justwhisper/hotkeys/adapters"
	"github.com/AshBuk/justwhisper/hotkeys/interfaces"
	"github.com/AshBuk/justwhisper/hotkeys/providers"
	"github.com/AshBuk/justwhisper/internal/logger"
)

// selectProvider uses golang.design/x/hotkey on non-Linux systems, where
// the evdev and D-Bus portal backends do not apply; it falls back to the
// dummy provider only if that somehow reports unsupported.
func selectProvider(_ adapters.HotkeyConfig, _ interfaces.EnvironmentType, log logger.Logger) interfaces.KeyboardEventProvider {
	if p := providers.NewXHotkeyProvider(log); p.IsSupported() {
		return p
	}
	return providers.NewDummyKeyboardProvider(log)
}
