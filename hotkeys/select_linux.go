//go:build linux

// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package hotkeys

import (
	"os"

	"github.com/AshBuk/justwhisper/hotkeys/adapters"
	"github.com/AshBuk/justwhisper/hotkeys/interfaces"
	"github.com/AshBuk/justwhisper/hotkeys/providers"
	"github.com/AshBuk/justwhisper/internal/logger"
)

func isAppImage() bool {
	return os.Getenv("APPIMAGE") != "" || os.Getenv("APPDIR") != ""
}

// selectProvider picks an event-tap backend for the running desktop: an
// explicit config override, else D-Bus portal GlobalShortcuts (works
// without elevated privileges on GNOME/KDE), else evdev, else a dummy
// provider that logs instructions and delivers nothing.
func selectProvider(cfg adapters.HotkeyConfig, env interfaces.EnvironmentType, log logger.Logger) interfaces.KeyboardEventProvider {
	switch cfg.GetProvider() {
	case "evdev":
		log.Info("Hotkeys provider override: evdev")
		return providers.NewEvdevKeyboardProvider(log)
	case "dbus":
		log.Info("Hotkeys provider override: dbus")
		return providers.NewDbusKeyboardProvider(cfg, env)
	}

	if isAppImage() {
		log.Info("AppImage detected - checking evdev first for better compatibility")
		if p := providers.NewEvdevKeyboardProvider(log); p.IsSupported() {
			return p
		}
		log.Info("evdev not available in AppImage, falling back to D-Bus")
	}

	if p := providers.NewDbusKeyboardProvider(cfg, env); p.IsSupported() {
		log.Info("Using D-Bus keyboard provider (GNOME/KDE)")
		return p
	}
	log.Info("D-Bus portal not available, trying evdev...")
	if p := providers.NewEvdevKeyboardProvider(log); p.IsSupported() {
		log.Info("Using evdev keyboard provider (requires the 'input' group or root)")
		return p
	}

	log.Warning("No supported keyboard provider available; hotkeys will not function")
	return providers.NewDummyKeyboardProvider(log)
}
