// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package transcript

import (
	"context"
	"errors"
	"testing"
)

func allStagesOn() Options {
	return Options{
		RemoveFillers:              true,
		ProcessLineBreakCommands:   true,
		ProcessPunctuationCommands: true,
		ProcessFormattingCommands:  true,
		ApplySelfCorrection:        true,
		AutomaticCapitalization:    true,
		ApplyWordReplacements:      true,
	}
}

func TestCleaner_RemovesFillerWords(t *testing.T) {
	c := New(allStagesOn(), nil, nil, nil)
	got := c.Clean("um so like I think, uh, this works you know")
	if got != "I think, this works" {
		t.Fatalf("got %q", got)
	}
}

func TestCleaner_FormattingCommands(t *testing.T) {
	c := New(allStagesOn(), nil, nil, nil)
	got := c.Clean("first point new line second point period")
	if got != "First point\nsecond point." {
		t.Fatalf("got %q", got)
	}
}

func TestCleaner_QuoteAndCapsCommands(t *testing.T) {
	c := New(allStagesOn(), nil, nil, nil)
	got := c.Clean("she said quote hello there end quote to me")
	if got != "She said hello there to me" {
		t.Fatalf("got %q", got)
	}

	got = c.Clean("all caps warning end caps do not proceed")
	if got != "WARNING do not proceed" {
		t.Fatalf("got %q", got)
	}
}

func TestCleaner_SelfCorrectionPreservesActuallyTrigger(t *testing.T) {
	c := New(allStagesOn(), nil, nil, nil)
	got := c.Clean("meet me at noon. Actually, meet me at three")
	if got != "Meet me at three" {
		t.Fatalf("got %q", got)
	}
}

// TestCleaner_SelfCorrectionTriggerBeforeSpokenPunctuation exercises the
// self-correction trigger still shaped as the spoken "period" command, not
// yet the literal ".": filler removal (stage 2) runs before formatting
// commands are translated (stage 3), so "Actually" here is preceded by the
// word "period" when the trigger check runs.
func TestCleaner_SelfCorrectionTriggerBeforeSpokenPunctuation(t *testing.T) {
	c := New(allStagesOn(), nil, nil, nil)
	got := c.Clean("Um, hello there period Actually, uh, good morning period How are you doing question mark")
	if got != "Good morning. How are you doing?" {
		t.Fatalf("got %q", got)
	}
}

func TestCleaner_OrdinaryActuallyIsRemovedAsFiller(t *testing.T) {
	c := New(allStagesOn(), nil, nil, nil)
	got := c.Clean("this is actually quite good")
	if got != "This is quite good" {
		t.Fatalf("got %q", got)
	}
}

func TestCleanupSentences_FixesSpacingAndCapitalizes(t *testing.T) {
	got := cleanupSentences("hello   world ,this is fine", true)
	if got != "Hello world, this is fine" {
		t.Fatalf("got %q", got)
	}
}

func TestCleanupSentences_StripsTrailingComma(t *testing.T) {
	got := cleanupSentences("hello world,", false)
	if got != "hello world" {
		t.Fatalf("got %q", got)
	}
}

func TestDequoteOuter_StripsOneMatchingPair(t *testing.T) {
	if got := dequoteOuter(`"hello world"`); got != "hello world" {
		t.Fatalf("got %q", got)
	}
	if got := dequoteOuter(`'hello world'`); got != "hello world" {
		t.Fatalf("got %q", got)
	}
	if got := dequoteOuter(`"mismatched'`); got != `"mismatched'` {
		t.Fatalf("mismatched quotes should be left alone, got %q", got)
	}
}

func TestCleaner_WordReplacements(t *testing.T) {
	replacements := map[string]string{"github": "GitHub", "github copilot": "GitHub Copilot"}
	c := New(allStagesOn(), replacements, nil, nil)
	got := c.Clean("I used github copilot today")
	if got != "I used GitHub Copilot today" {
		t.Fatalf("got %q", got)
	}
}

func TestCleaner_IsIdempotent(t *testing.T) {
	c := New(allStagesOn(), map[string]string{"foo": "bar"}, nil, nil)
	inputs := []string{
		"this is, uh, a test period new line next",
		"quote hello end quote all caps done end caps",
		"already clean text",
	}
	for _, in := range inputs {
		once := c.Clean(in)
		twice := c.Clean(once)
		if once != twice {
			t.Fatalf("Clean not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

// fakeChatProvider is a hand-written ChatProvider test double, matching
// the style of the hand-written fakes used elsewhere in this module
// rather than a mocking library.
type fakeChatProvider struct {
	reply string
	err   error
}

func (f *fakeChatProvider) Chat(context.Context, string, string, float64, int) (string, error) {
	return f.reply, f.err
}

func TestCleaner_EnhanceFallsBackOnProviderError(t *testing.T) {
	c := New(allStagesOn(), nil, &fakeChatProvider{err: errors.New("boom")}, nil)
	got := c.Enhance("um so like this works")
	want := c.Clean("um so like this works")
	if got != want {
		t.Fatalf("got %q, want deterministic fallback %q", got, want)
	}
}

func TestCleaner_EnhanceUsesProviderReply(t *testing.T) {
	c := New(allStagesOn(), nil, &fakeChatProvider{reply: `"This works."`}, nil)
	got := c.Enhance("um so like this works")
	if got != "This works." {
		t.Fatalf("got %q", got)
	}
}

func TestCleaner_NoProviderFallsBackToDeterministic(t *testing.T) {
	c := New(allStagesOn(), nil, nil, nil)
	got := c.Enhance("um so like this works")
	want := c.Clean("um so like this works")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
