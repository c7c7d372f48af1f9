// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package pcm converts the native float32 capture buffer to 16-bit
// little-endian PCM and wraps it in a canonical RIFF/WAVE container for
// upload to a remote transcription endpoint (spec.md §3, §4.4: "32-bit
// float native; converted to 16-bit little-endian mono at 44.1 kHz before
// upload").
package pcm

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/AshBuk/justwhisper/internal/errs"
)

const bitsPerSample = 16

// Float32ToPCM16 quantizes native float32 samples (expected range [-1, 1])
// to 16-bit signed little-endian PCM, clamping out-of-range values instead
// of wrapping.
func Float32ToPCM16(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		v := float64(s)
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		out16 := int16(math.Round(v * 32767))
		binary.LittleEndian.PutUint16(out[i*2:], uint16(out16))
	}
	return out
}

// EncodeWAV wraps 16-bit signed little-endian PCM data in a standard
// RIFF/WAVE container. The result needs no external dependency to produce
// and is accepted directly by Whisper-family multipart uploads.
func EncodeWAV(pcm []byte, sampleRate, channels int) []byte {
	byteRate := sampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8
	dataSize := len(pcm)

	buf := make([]byte, 44+dataSize)

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataSize))
	copy(buf[8:12], "WAVE")

	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(buf[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(buf[34:36], uint16(bitsPerSample))

	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))
	copy(buf[44:], pcm)

	return buf
}

// EncodeFloat32WAV is a convenience wrapper combining Float32ToPCM16 and
// EncodeWAV for a capture buffer straight off the recorder.
func EncodeFloat32WAV(samples []float32, sampleRate, channels int) []byte {
	return EncodeWAV(Float32ToPCM16(samples), sampleRate, channels)
}

// RMSLevel computes the normalized [0, 1] audio level from a buffer of
// native float32 samples, per spec.md §4.4: L = clamp((20·log10(rms) + 80)
// / 80, 0, 1).
func RMSLevel(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		v := float64(s)
		sum += v * v
	}
	rms := math.Sqrt(sum / float64(len(samples)))
	if rms <= 0 {
		return 0
	}
	db := 20 * math.Log10(rms)
	level := (db + 80) / 80
	if level < 0 {
		return 0
	}
	if level > 1 {
		return 1
	}
	return level
}

// ReadFloat32File reads a capture file written by the recorder — a flat
// sequence of little-endian float32 samples with no container — back into
// a sample slice.
func ReadFloat32File(path string) ([]float32, error) {
	// #nosec G304 -- path comes from a RecordingHandle the recorder itself allocated.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read capture file: %w: %v", errs.ErrIoFailure, err)
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: capture file %s has a truncated trailing sample (%d bytes)", errs.ErrIoFailure, path, len(data))
	}
	samples := make([]float32, len(data)/4)
	for i := range samples {
		bits := binary.LittleEndian.Uint32(data[i*4:])
		samples[i] = math.Float32frombits(bits)
	}
	return samples, nil
}
