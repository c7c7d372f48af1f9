// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package justwhisper provides a high-level overview of the JustWhisper project.
//
// JustWhisper is a minimalist desktop voice-to-text utility written in Go: a
// background daemon that turns global hotkeys (start/stop, copy-only stop,
// cancel) into clipboard or pasted text, using a remote Whisper-family transcription endpoint and an
// optional LLM cleanup pass.
//
// Core responsibilities:
//   - Global hotkeys via the DBus GlobalShortcuts portal, raw evdev, or
//     golang.design/x/hotkey, selected per desktop environment
//   - Audio recording via a native portaudio capture graph with live RMS
//     level metering and device hot-swap
//   - Remote transcription against an Azure- or OpenAI-compatible Whisper
//     endpoint, with an optional chat-completion cleanup pass
//   - A deterministic transcript cleaner pipeline (filler removal, word
//     replacements, formatting commands, self-correction)
//   - Text output routing: clipboard only, or clipboard plus a Ctrl+V paste
//     keystroke into the active window via xdotool/wtype/ydotool
//   - A small on-screen overlay reflecting session state (idle, recording,
//     thinking, message)
//
// Packaging:
//   - Single static binary, no system tray and no daemon/CLI duality
//
// Testing strategy:
//   - Unit tests colocated with packages (default go test ./...)
//
// For more details, see SPEC_FULL.md
package justwhisper
