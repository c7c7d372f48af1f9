// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package transcript

import (
	"regexp"
	"strings"
)

// lineBreakCommands and punctuationCommands list every phrase before any
// shorter phrase it contains, so e.g. "new paragraph" never gets partially
// eaten by "paragraph".
var lineBreakCommands = []struct {
	phrase string
	repl   string
}{
	{"new paragraph", "\n\n"},
	{"paragraph", "\n\n"},
	{"bullet point", "\n• "},
	{"bullet", "\n• "},
	{"dash", "\n• "},
	{"new line", "\n"},
	{"newline", "\n"},
	{"tab", "\t"},
}

var punctuationCommands = []struct {
	phrase string
	repl   string
}{
	{"question mark", "?"},
	{"exclamation point", "!"},
	{"semicolon", ";"},
	{"period", "."},
	{"comma", ","},
	{"colon", ":"},
}

var quoteCommandPattern = regexp.MustCompile(`(?i)\bquote\b\s*(.*?)\s*\bend quote\b`)
var capWordPattern = regexp.MustCompile(`(?i)\bcap\s+(\S+)`)
var allCapsCommandPattern = regexp.MustCompile(`(?i)\ball caps\b\s*(.*?)\s*\bend caps\b`)

// processFormattingCommands applies the spoken-command translations named
// in spec.md §4.6, gated individually by the Cleaner's flags.
func (c *Cleaner) processFormattingCommands(text string) string {
	if c.opts.ProcessLineBreakCommands {
		for _, cmd := range lineBreakCommands {
			text = replaceWordPhrase(text, cmd.phrase, cmd.repl)
		}
	}
	if c.opts.ProcessPunctuationCommands {
		for _, cmd := range punctuationCommands {
			text = replaceWordPhrase(text, cmd.phrase, cmd.repl)
		}
	}
	if c.opts.ProcessFormattingCommands {
		text = allCapsCommandPattern.ReplaceAllStringFunc(text, func(m string) string {
			sub := allCapsCommandPattern.FindStringSubmatch(m)
			return strings.ToUpper(sub[1])
		})
		text = quoteCommandPattern.ReplaceAllStringFunc(text, func(m string) string {
			sub := quoteCommandPattern.FindStringSubmatch(m)
			return sub[1]
		})
		text = capWordPattern.ReplaceAllStringFunc(text, func(m string) string {
			sub := capWordPattern.FindStringSubmatch(m)
			return capitalizeFirst(sub[1])
		})
	}
	return text
}

// replaceWordPhrase substitutes every case-insensitive, word-boundary
// occurrence of phrase with repl.
func replaceWordPhrase(text, phrase, repl string) string {
	pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
	return pattern.ReplaceAllString(text, repl)
}
