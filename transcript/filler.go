// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package transcript

import (
	"regexp"
	"strings"
)

// fillerWords is the exact set from spec.md §4.6. "actually" is handled
// separately below: when it appears as "<A>. Actually, <B>" it is the
// self-correction stage's trigger word, not this filler — removing it
// here would destroy the pattern stage 4 needs to see.
var fillerWords = []string{
	"um", "uh", "ah", "er", "like", "you know", "sort of", "kind of",
	"basically", "actually", "literally", "so", "well", "right", "okay",
	"alright", "hmm", "yeah", "yes", "yep", "mhm",
}

var bareFillerWords = withoutWord(fillerWords, "actually")

// fillerPattern also swallows a comma directly glued to the filler word
// ("uh,", "um,"): that comma is the interjection's own pause, not
// punctuation separating meaningful clauses, so dropping the word alone
// and leaving the comma behind would strand it mid-sentence.
var fillerPattern = regexp.MustCompile(`(?i)\b(` + joinAlternatives(bareFillerWords) + `)\b,?`)
var actuallyPattern = regexp.MustCompile(`(?i)\bactually\b`)

func withoutWord(words []string, exclude string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w != exclude {
			out = append(out, w)
		}
	}
	return out
}

func joinAlternatives(words []string) string {
	out := ""
	for i, w := range words {
		if i > 0 {
			out += "|"
		}
		out += regexp.QuoteMeta(w)
	}
	return out
}

// removeFillerWords deletes every case-insensitive, word-boundary match of
// the filler set, then collapses the whitespace the deletions leave
// behind. "actually" is removed as a filler everywhere except where it
// sits as the self-correction trigger ("<A>. Actually, <B>").
func removeFillerWords(text string) string {
	text = fillerPattern.ReplaceAllString(text, "")
	text = removeActuallyFiller(text)
	return collapseWhitespace(text)
}

func removeActuallyFiller(text string) string {
	matches := actuallyPattern.FindAllStringIndex(text, -1)
	if matches == nil {
		return text
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		b.WriteString(text[last:start])
		if !isSelfCorrectionTrigger(text, start, end) {
			// dropped as an ordinary filler
		} else {
			b.WriteString(text[start:end])
		}
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

// selfCorrectionTriggerSuffix matches a preceding sentence end, whether it
// has already been punctuated ("."/"!"/"?") or is still the spoken
// formatting command that stage 3 (processFormattingCommands) will later
// turn into one ("period"/"question mark"/"exclamation point"). Filler
// removal runs before formatting commands are applied, so at this point a
// literal "." and the still-unexpanded command word are equally valid
// sentence boundaries.
var selfCorrectionTriggerSuffix = regexp.MustCompile(`(?i)(\.|!|\?|\bperiod|\bquestion mark|\bexclamation point)$`)

// isSelfCorrectionTrigger reports whether the "actually" at text[start:end]
// is shaped like the self-correction construct's trigger word: preceded
// by a sentence end and followed by a comma.
func isSelfCorrectionTrigger(text string, start, end int) bool {
	before := strings.TrimRight(text[:start], " \t")
	after := strings.TrimLeft(text[end:], " \t")
	if before == "" || after == "" {
		return false
	}
	if !strings.HasPrefix(after, ",") {
		return false
	}
	return selfCorrectionTriggerSuffix.MatchString(before)
}
