// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package transcript turns a raw speech-to-text transcript into the text
// that actually lands in the clipboard or gets pasted: filler words
// stripped, spoken formatting commands applied, self-corrections resolved,
// and punctuation/capitalization normalized — optionally handed to a chat
// model for a single LLM-assisted pass instead.
package transcript

import "github.com/AshBuk/justwhisper/internal/logger"

// Options mirrors the config.Cleaner flags (spec.md §4.6): each stage of
// the deterministic pipeline runs only when its flag is on.
type Options struct {
	RemoveFillers                  bool
	ProcessLineBreakCommands       bool
	ProcessPunctuationCommands     bool
	ProcessFormattingCommands      bool
	ApplySelfCorrection            bool
	AutomaticCapitalization        bool
	ApplyWordReplacements          bool
	UseIntelligentWordReplacements bool
	UseLLMEnhancement              bool
}

// Cleaner runs the deterministic cleanup pipeline, optionally backed by a
// ChatProvider for intelligent word replacement and full LLM enhancement.
type Cleaner struct {
	opts         Options
	replacements map[string]string
	chat         ChatProvider
	log          logger.Logger
}

// New creates a Cleaner. replacements maps a lowercased search phrase to
// its replacement (config.Config.WordReplacements); chat may be nil, in
// which case UseIntelligentWordReplacements and UseLLMEnhancement silently
// fall back to the deterministic pipeline.
func New(opts Options, replacements map[string]string, chat ChatProvider, log logger.Logger) *Cleaner {
	return &Cleaner{opts: opts, replacements: replacements, chat: chat, log: log}
}

// Clean runs the fixed-order deterministic pipeline over text. Stages
// with their flag off are skipped entirely; the order itself never
// changes, per spec.md §4.6's stage-ordering rationale.
func (c *Cleaner) Clean(text string) string {
	if c.opts.ApplyWordReplacements {
		text = c.applyWordReplacements(text)
	}
	if c.opts.RemoveFillers {
		text = removeFillerWords(text)
	}
	if c.opts.ProcessLineBreakCommands || c.opts.ProcessPunctuationCommands || c.opts.ProcessFormattingCommands {
		text = c.processFormattingCommands(text)
	}
	if c.opts.ApplySelfCorrection {
		text = applySelfCorrection(text)
	}
	text = cleanupSentences(text, c.opts.AutomaticCapitalization)
	text = dequoteOuter(text)
	return text
}

// applyWordReplacements runs local substitution, or — if configured and a
// chat provider is available — the LLM-assisted fuzzy pass, falling back
// to local substitution on any failure.
func (c *Cleaner) applyWordReplacements(text string) string {
	if c.opts.UseIntelligentWordReplacements && c.chat != nil {
		if out, err := c.intelligentWordReplacements(text); err == nil {
			return out
		} else if c.log != nil {
			c.log.Warning("transcript: intelligent word replacement failed, falling back to local: %v", err)
		}
	}
	return localWordReplacements(text, c.replacements)
}
