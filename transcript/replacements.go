// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package transcript

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// localWordReplacements substitutes every case-insensitive, word-boundary
// occurrence of each configured phrase. Longer phrases are matched before
// shorter ones so a multi-word key is never partially shadowed by a
// single-word key that happens to share a prefix.
func localWordReplacements(text string, replacements map[string]string) string {
	if len(replacements) == 0 {
		return text
	}
	phrases := make([]string, 0, len(replacements))
	for phrase := range replacements {
		phrases = append(phrases, phrase)
	}
	sortByDescendingLength(phrases)

	for _, phrase := range phrases {
		pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
		text = pattern.ReplaceAllString(text, replacements[phrase])
	}
	return text
}

// encodeWordReplacementPrompt packs the replacement map and the transcript
// into the JSON payload intelligentWordReplacements sends as the user
// message.
func encodeWordReplacementPrompt(replacements map[string]string, text string) (string, error) {
	payload := struct {
		Replacements map[string]string `json:"replacements"`
		Text         string            `json:"text"`
	}{Replacements: replacements, Text: text}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("transcript: encode word replacement prompt: %w", err)
	}
	return string(encoded), nil
}

func sortByDescendingLength(phrases []string) {
	for i := 1; i < len(phrases); i++ {
		for j := i; j > 0 && len(phrases[j]) > len(phrases[j-1]); j-- {
			phrases[j], phrases[j-1] = phrases[j-1], phrases[j]
		}
	}
}
