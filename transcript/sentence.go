// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package transcript

import (
	"regexp"
	"strings"
)

var (
	horizontalWhitespaceRun = regexp.MustCompile(`[ \t]+`)
	whitespaceAroundNewline = regexp.MustCompile(`[ \t]*\n[ \t]*`)
	whitespaceBeforePunct   = regexp.MustCompile(`[ \t]+([,.!?;:])`)
	missingSpaceAfterPunct  = regexp.MustCompile(`([,.!?;:])([^\s,.!?;:"')\]])`)
	trailingCommaPattern    = regexp.MustCompile(`,\s*$`)
	sentenceStartPattern    = regexp.MustCompile(`(^\s*|[.!?]\s+)([a-z])`)
)

// collapseWhitespace collapses runs of spaces/tabs to a single space and
// trims surrounding whitespace at a newline, same normalization intent as
// the teacher's sanitizeTranscript step — but newlines themselves are
// preserved, since the formatting-commands stage deliberately inserts them
// for "new line"/"new paragraph"/"bullet point".
func collapseWhitespace(text string) string {
	text = horizontalWhitespaceRun.ReplaceAllString(text, " ")
	text = whitespaceAroundNewline.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// cleanupSentences is the final deterministic pass (spec.md §4.6 stage 5):
// collapse whitespace runs, drop whitespace before punctuation, insert a
// missing space after punctuation, strip a trailing comma, and optionally
// capitalize each sentence's first letter.
func cleanupSentences(text string, autoCapitalize bool) string {
	text = collapseWhitespace(text)
	text = whitespaceBeforePunct.ReplaceAllString(text, "$1")
	text = missingSpaceAfterPunct.ReplaceAllString(text, "$1 $2")
	text = trailingCommaPattern.ReplaceAllString(text, "")
	if autoCapitalize {
		text = sentenceStartPattern.ReplaceAllStringFunc(text, func(m string) string {
			sub := sentenceStartPattern.FindStringSubmatch(m)
			return sub[1] + strings.ToUpper(sub[2])
		})
	}
	return text
}

// dequoteOuter strips exactly one matching pair of surrounding quotes
// (single or double), spec.md §4.6 stage 6.
func dequoteOuter(text string) string {
	if len(text) < 2 {
		return text
	}
	first, last := text[0], text[len(text)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
		return text[1 : len(text)-1]
	}
	return text
}

func capitalizeFirst(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
