// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package outputters

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/AshBuk/justwhisper/internal/errs"
	"github.com/AshBuk/justwhisper/output/interfaces"
)

// ClipboardWriter implements interfaces.ClipboardWriter on top of
// atotto/clipboard, which already knows how to reach xclip/xsel/wl-copy
// on Linux, pbcopy on macOS, and the Windows clipboard API — replacing
// this module's previous per-platform shell-out with a single
// cross-platform call.
type ClipboardWriter struct{}

// NewClipboardWriter creates a clipboard writer.
func NewClipboardWriter() *ClipboardWriter {
	return &ClipboardWriter{}
}

// Write replaces the system clipboard contents with text.
func (w *ClipboardWriter) Write(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("output: write clipboard: %w: %v", errs.ErrIoFailure, err)
	}
	return nil
}

var _ interfaces.ClipboardWriter = (*ClipboardWriter)(nil)
