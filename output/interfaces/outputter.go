// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package interfaces

// Mode selects what the Output Sink does with a finished transcript
// (spec.md §4.9): place it on the clipboard only, or place it on the
// clipboard and then synthesize a paste gesture into the focused app.
type Mode int

const (
	ModePaste Mode = iota
	ModeCopyOnly
)

// ClipboardWriter replaces the system clipboard contents with a UTF-8
// string item.
type ClipboardWriter interface {
	Write(text string) error
}

// PasteSynthesizer sends the host OS's standard "paste" keystroke to
// whichever application currently holds keyboard focus.
type PasteSynthesizer interface {
	SynthesizePaste() error
	ToolName() string
}
