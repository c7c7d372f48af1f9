// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package transcript

import (
	"context"
	"time"
)

const enhanceSystemPrompt = `You clean up a raw speech-to-text transcript for direct use as typed text.
Rules:
- Remove filler words (um, uh, ah, er, like, you know, sort of, kind of, basically, actually, literally, so, well, right, okay, alright, hmm, yeah, yes, yep, mhm) unless removing one would change the meaning.
- Fix grammar and punctuation without changing the meaning or adding new content.
- Honor explicit formatting commands the speaker said aloud (e.g. "new line", "new paragraph", "bullet point", "period", "comma", "question mark", "quote ... end quote", "cap word", "all caps ... end caps") by applying them rather than leaving the literal words in place.
- Resolve self-corrections: "<A>. Actually, <B>" becomes just "<B>".
- Preserve the speaker's intended meaning exactly. Do not summarize, add, or remove content beyond the above.
- Respond with only the cleaned text. No quotes, no preamble, no explanation.`

const enhanceTimeout = 10 * time.Second

// Enhance sends text to the configured chat provider for a single LLM pass
// implementing the same rules as the deterministic pipeline (spec.md
// §4.6). On any error — non-200 status, timeout, or parse failure — it
// falls back to the deterministic Clean.
func (c *Cleaner) Enhance(text string) string {
	if c.chat == nil {
		return c.Clean(text)
	}

	ctx, cancel := context.WithTimeout(context.Background(), enhanceTimeout)
	defer cancel()

	reply, err := c.chat.Chat(ctx, enhanceSystemPrompt, text, 0.3, 1000)
	if err != nil {
		if c.log != nil {
			c.log.Warning("transcript: LLM enhancement failed, falling back to deterministic cleanup: %v", err)
		}
		return c.Clean(text)
	}
	return dequoteOuter(collapseWhitespace(reply))
}

const wordReplacementSystemPrompt = `You are a fuzzy word-replacement pass for a speech-to-text transcript.
You will receive a JSON object with "replacements" (a map of phrase to intended replacement) and "text" (the transcript).
Replace every phonetically or contextually close match of a replacement key in "text" with its mapped value, even if the transcript's wording differs slightly from the key due to transcription errors. Leave everything else in "text" unchanged.
Respond with only the resulting text. No quotes, no preamble, no explanation.`

// intelligentWordReplacements asks the chat provider to apply c.replacements
// with fuzzy matching, for cases where the literal transcript spells a
// replacement target slightly differently than the configured key.
func (c *Cleaner) intelligentWordReplacements(text string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), enhanceTimeout)
	defer cancel()

	prompt, err := encodeWordReplacementPrompt(c.replacements, text)
	if err != nil {
		return "", err
	}
	reply, err := c.chat.Chat(ctx, wordReplacementSystemPrompt, prompt, 0.2, 1000)
	if err != nil {
		return "", err
	}
	return collapseWhitespace(reply), nil
}
