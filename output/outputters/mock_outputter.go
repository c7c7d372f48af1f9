// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package outputters

import (
	"errors"

	"github.com/AshBuk/justwhisper/output/interfaces"
)

// MockClipboardWriter implements interfaces.ClipboardWriter for tests.
type MockClipboardWriter struct {
	content   string
	callCount int
	history   []string
	err       error
}

func NewMockClipboardWriter() *MockClipboardWriter {
	return &MockClipboardWriter{history: make([]string, 0)}
}

func (m *MockClipboardWriter) Write(text string) error {
	if m.err != nil {
		return m.err
	}
	m.content = text
	m.callCount++
	m.history = append(m.history, text)
	return nil
}

func (m *MockClipboardWriter) SetError(err error)  { m.err = err }
func (m *MockClipboardWriter) Content() string     { return m.content }
func (m *MockClipboardWriter) CallCount() int       { return m.callCount }
func (m *MockClipboardWriter) History() []string    { return m.history }
func (m *MockClipboardWriter) WasCalled() bool      { return m.callCount > 0 }
func (m *MockClipboardWriter) SimulateUnavailable() {
	m.SetError(errors.New("clipboard service unavailable"))
}

// MockPasteSynthesizer implements interfaces.PasteSynthesizer for tests.
type MockPasteSynthesizer struct {
	callCount int
	err       error
	toolName  string
}

func NewMockPasteSynthesizer() *MockPasteSynthesizer {
	return &MockPasteSynthesizer{toolName: "mock-paste"}
}

func (m *MockPasteSynthesizer) SynthesizePaste() error {
	if m.err != nil {
		return m.err
	}
	m.callCount++
	return nil
}

func (m *MockPasteSynthesizer) ToolName() string   { return m.toolName }
func (m *MockPasteSynthesizer) SetError(err error) { m.err = err }
func (m *MockPasteSynthesizer) CallCount() int     { return m.callCount }
func (m *MockPasteSynthesizer) WasCalled() bool    { return m.callCount > 0 }

var (
	_ interfaces.ClipboardWriter  = (*MockClipboardWriter)(nil)
	_ interfaces.PasteSynthesizer = (*MockPasteSynthesizer)(nil)
)
