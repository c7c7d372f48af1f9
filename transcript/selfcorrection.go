// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package transcript

import "regexp"

// selfCorrectionPattern matches "<A>. Actually, <B>" (case-insensitive,
// comma after Actually optional) and reduces it to "<B>". <A> is matched
// non-greedily so multiple corrections in one transcript resolve
// left-to-right, each pass catching the next.
var selfCorrectionPattern = regexp.MustCompile(`(?is)[^.!?]*?\.\s*actually,?\s*(.*?)([.!?]|$)`)

// applySelfCorrection repeatedly reduces "<A>. Actually, <B>" to "<B>"
// until no further match remains.
func applySelfCorrection(text string) string {
	for {
		next := selfCorrectionPattern.ReplaceAllStringFunc(text, func(m string) string {
			sub := selfCorrectionPattern.FindStringSubmatch(m)
			return sub[1] + sub[2]
		})
		if next == text {
			return text
		}
		text = next
	}
}
