// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package output is the Output Sink (C9): it places the final transcript
// on the system clipboard and, in Paste mode, synthesizes a paste
// gesture into whichever application currently holds keyboard focus.
//
// Subpackages:
//   - interfaces: the ClipboardWriter/PasteSynthesizer contracts and Mode.
//   - outputters: concrete implementations (atotto/clipboard, allow-listed
//     keystroke-synthesis tools) and the Sink that composes them.
//   - factory:    builds a Sink from configuration and the detected
//     display server.
package output

import (
	"github.com/AshBuk/justwhisper/internal/logger"
	"github.com/AshBuk/justwhisper/output/interfaces"
	"github.com/AshBuk/justwhisper/output/outputters"
)

// Sink is a type alias for the concrete Output Sink implementation.
type Sink = outputters.Sink

// Mode selects clipboard-only vs. clipboard-plus-paste delivery.
type Mode = interfaces.Mode

const (
	ModePaste    = interfaces.ModePaste
	ModeCopyOnly = interfaces.ModeCopyOnly
)

// NewSink builds a Sink from its clipboard and paste collaborators.
func NewSink(clipboard interfaces.ClipboardWriter, paste interfaces.PasteSynthesizer, log logger.Logger) *Sink {
	return outputters.NewSink(clipboard, paste, log)
}
