// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package outputters

import (
	"time"

	"github.com/AshBuk/justwhisper/internal/logger"
	"github.com/AshBuk/justwhisper/output/interfaces"
)

// pasteSettleDelay is how long Sink waits after the clipboard write
// before synthesizing the paste keystroke, giving the target
// application's clipboard-change listener time to settle (spec.md §4.9).
const pasteSettleDelay = 50 * time.Millisecond

// Sink is the Output Sink (C9): it always writes the clipboard, and for
// Paste mode also synthesizes a paste gesture after a short settle
// delay. It is the module's one caller of both a ClipboardWriter and a
// PasteSynthesizer, replacing the teacher's CombinedOutputter — which
// wired one interface method per outputter — with the emit(text, mode)
// contract spec.md §4.9 names.
type Sink struct {
	clipboard interfaces.ClipboardWriter
	paste     interfaces.PasteSynthesizer
	log       logger.Logger
}

// NewSink builds a Sink from its two collaborators.
func NewSink(clipboard interfaces.ClipboardWriter, paste interfaces.PasteSynthesizer, log logger.Logger) *Sink {
	return &Sink{clipboard: clipboard, paste: paste, log: log}
}

// Emit places text on the clipboard and, for ModePaste, synthesizes a
// paste keystroke into the focused application. CopyOnly stops after the
// clipboard write.
func (s *Sink) Emit(text string, mode interfaces.Mode) error {
	if err := s.clipboard.Write(text); err != nil {
		return err
	}
	if mode != interfaces.ModePaste {
		return nil
	}

	time.Sleep(pasteSettleDelay)
	if err := s.paste.SynthesizePaste(); err != nil {
		s.log.Warning("output: paste synthesis failed: %v", err)
		return err
	}
	return nil
}
