// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package errs holds the sentinel error values shared across components,
// per the error taxonomy in spec.md §7. Components wrap these with
// fmt.Errorf("...: %w", err) so callers use errors.Is/errors.As rather than
// string matching.
package errs

import (
	"errors"
	"strconv"
)

var (
	// ErrConfigIncomplete signals a required provider field is empty.
	ErrConfigIncomplete = errors.New("configuration incomplete")

	// ErrPermissionDenied signals a missing OS permission (microphone or
	// input monitoring). Callers use errors.Is against this, with the
	// specific kind carried by the wrapping message.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrDeviceUnavailable signals that recording could not start even
	// after falling back to the Default device.
	ErrDeviceUnavailable = errors.New("audio device unavailable")

	// ErrIoFailure signals a local I/O failure (e.g. writing the capture
	// file).
	ErrIoFailure = errors.New("io failure")

	// ErrNetwork signals a transport-level failure talking to a remote
	// provider (timeout, DNS, connection reset).
	ErrNetwork = errors.New("network error")

	// ErrResponseParse signals a remote response could not be parsed.
	ErrResponseParse = errors.New("response parse error")

	// ErrEmptyTranscript is benign: no speech was detected.
	ErrEmptyTranscript = errors.New("empty transcript")

	// ErrCanceled is benign: the operation was canceled by the user or a
	// newer intent. Never surfaced to the UI.
	ErrCanceled = errors.New("canceled")

	// ErrMissingCredential signals a speech/chat provider is missing its
	// API key.
	ErrMissingCredential = errors.New("missing credential")

	// ErrInvalidEndpoint signals a malformed or unreachable provider
	// endpoint URL.
	ErrInvalidEndpoint = errors.New("invalid endpoint")

	// ErrAudioConversion signals the native capture buffer could not be
	// converted to the upload format (WAV/PCM16).
	ErrAudioConversion = errors.New("audio conversion error")
)

// HTTPStatusError wraps a non-2xx response from a remote provider. Its
// Body is logged only, never surfaced to the UI (spec.md §7).
type HTTPStatusError struct {
	Status int
	Body   string
}

func (e *HTTPStatusError) Error() string {
	return "http status " + strconv.Itoa(e.Status)
}
