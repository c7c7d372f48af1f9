// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package pcm

import (
	"bytes"
	"math"
	"testing"

	"github.com/go-audio/wav"
)

func TestEncodeWAV_RoundTripsThroughGoAudio(t *testing.T) {
	samples := []float32{0, 0.5, -0.5, 1, -1, 0.25}
	data := EncodeFloat32WAV(samples, 44100, 1)

	dec := wav.NewDecoder(bytes.NewReader(data))
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !dec.WasPCM() {
		t.Fatalf("expected PCM format")
	}
	if dec.SampleRate != 44100 {
		t.Errorf("sample rate = %d, want 44100", dec.SampleRate)
	}
	if dec.NumChans != 1 {
		t.Errorf("channels = %d, want 1", dec.NumChans)
	}
	if len(buf.Data) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(buf.Data), len(samples))
	}

	want := []int{0, 16383, -16384, 32767, -32768, 8192}
	for i, w := range want {
		if diff := buf.Data[i] - w; diff < -1 || diff > 1 {
			t.Errorf("sample %d = %d, want ~%d", i, buf.Data[i], w)
		}
	}
}

func TestFloat32ToPCM16_ClampsOutOfRange(t *testing.T) {
	data := Float32ToPCM16([]float32{2.0, -2.0})
	if len(data) != 4 {
		t.Fatalf("got %d bytes, want 4", len(data))
	}
	// First sample clamps to +1.0 -> 32767, second to -1.0 -> -32767.
	first := int16(uint16(data[0]) | uint16(data[1])<<8)
	second := int16(uint16(data[2]) | uint16(data[3])<<8)
	if first != 32767 || second != -32767 {
		t.Errorf("clamped samples = %d, %d, want 32767, -32767", first, second)
	}
}

func TestRMSLevel_SilenceIsZero(t *testing.T) {
	if got := RMSLevel(make([]float32, 100)); got != 0 {
		t.Errorf("silence level = %f, want 0", got)
	}
}

func TestRMSLevel_ClampedToUnitRange(t *testing.T) {
	loud := make([]float32, 1000)
	for i := range loud {
		loud[i] = float32(math.Sin(float64(i)))
	}
	got := RMSLevel(loud)
	if got < 0 || got > 1 {
		t.Errorf("level = %f, want in [0, 1]", got)
	}
}

func TestRMSLevel_EmptyBuffer(t *testing.T) {
	if got := RMSLevel(nil); got != 0 {
		t.Errorf("empty buffer level = %f, want 0", got)
	}
}
