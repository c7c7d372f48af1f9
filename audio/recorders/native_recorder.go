// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package recorders provides the production Recorder implementation: a
// native portaudio capture graph (spec.md §4.4, C4). The in-memory fake
// for tests lives in audio/mocks.
package recorders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/AshBuk/justwhisper/audio/devices"
	"github.com/AshBuk/justwhisper/audio/interfaces"
	"github.com/AshBuk/justwhisper/audio/pcm"
	"github.com/AshBuk/justwhisper/audio/processing"
	"github.com/AshBuk/justwhisper/internal/errs"
	"github.com/AshBuk/justwhisper/internal/logger"
	"github.com/AshBuk/justwhisper/internal/permission"
)

const (
	framesPerBuffer = 512
	wirelessDelay   = 500 * time.Millisecond
)

// PermissionChecker is the subset of permission.Gate the recorder needs.
// Accepting the interface (rather than *permission.Gate directly) keeps
// this package testable without a real gate.
type PermissionChecker interface {
	Status(k permission.Kind) bool
}

// NativeRecorder is the production Recorder backed by gordonklaus/portaudio.
// It writes native float32 samples to an append-only file, exactly as
// spec.md §4.4 step 5 specifies; conversion to 16-bit PCM/WAV happens later,
// in the speech client, just before upload.
type NativeRecorder struct {
	log         logger.Logger
	tempManager *processing.TempFileManager
	appDataPath string
	permissions PermissionChecker

	sampleRate int
	channels   int

	mu        sync.Mutex
	stream    *portaudio.Stream
	file      *os.File
	writer    *bufio.Writer
	device    devices.Device
	handle    interfaces.Handle
	recording bool

	levelMu sync.RWMutex
	level   float64
	levelCb interfaces.AudioLevelCallback
}

// NewNativeRecorder creates a Recorder targeting sampleRate/channels
// (spec.md default 44100/1). appDataPath is where capture files are
// allocated.
func NewNativeRecorder(appDataPath string, sampleRate, channels int, permissions PermissionChecker, log logger.Logger) *NativeRecorder {
	return &NativeRecorder{
		log:         log,
		tempManager: processing.GetTempFileManager(),
		appDataPath: appDataPath,
		permissions: permissions,
		sampleRate:  sampleRate,
		channels:    channels,
	}
}

func isWireless(name string) bool {
	return strings.Contains(name, "AirPods") || strings.Contains(name, "Bluetooth")
}

// Start implements interfaces.Recorder.
func (r *NativeRecorder) Start(device devices.Device) (interfaces.Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.permissions != nil && !r.permissions.Status(permission.Microphone) {
		return interfaces.Handle{}, fmt.Errorf("start recording: %w", errs.ErrPermissionDenied)
	}
	if r.recording {
		return interfaces.Handle{}, fmt.Errorf("recording already in progress")
	}

	path, err := r.tempManager.CreateTempWav(r.appDataPath)
	if err != nil {
		return interfaces.Handle{}, fmt.Errorf("allocate capture file: %w", err)
	}

	if err := r.openAndStart(device); err != nil {
		if !device.IsDefault() {
			r.log.Warning("capture start on %q failed, falling back to Default: %v", device.Name, err)
			if err2 := r.openAndStart(devices.Default); err2 != nil {
				return interfaces.Handle{}, fmt.Errorf("start recording: %w", errs.ErrDeviceUnavailable)
			}
			device = devices.Default
		} else {
			return interfaces.Handle{}, fmt.Errorf("start recording: %w", errs.ErrDeviceUnavailable)
		}
	}

	// #nosec G304 -- path is generated by processing.TempFileManager under a controlled base directory.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		_ = r.stream.Close()
		r.stream = nil
		return interfaces.Handle{}, fmt.Errorf("open capture file: %w", errs.ErrIoFailure)
	}

	r.file = f
	r.writer = bufio.NewWriter(f)
	r.device = device
	r.handle = interfaces.Handle{
		Path:       path,
		SampleRate: r.sampleRate,
		Channels:   r.channels,
		StartedAt:  time.Now(),
	}
	r.recording = true

	return r.handle, nil
}

// openAndStart builds and starts a portaudio stream for device, applying
// the wireless-device negotiation delay. Leaves r.stream set on success.
func (r *NativeRecorder) openAndStart(device devices.Device) error {
	if !device.IsDefault() && isWireless(device.Name) {
		time.Sleep(wirelessDelay)
	}

	callback := func(in []float32) {
		r.onBuffer(in)
	}

	var stream *portaudio.Stream
	var err error
	if device.IsDefault() {
		stream, err = portaudio.OpenDefaultStream(r.channels, 0, float64(r.sampleRate), framesPerBuffer, callback)
	} else {
		params := portaudio.LowLatencyParameters(device.Info(), nil)
		params.Input.Channels = r.channels
		params.SampleRate = float64(r.sampleRate)
		params.FramesPerBuffer = framesPerBuffer
		stream, err = portaudio.OpenStream(params, callback)
	}
	if err != nil {
		return err
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		return err
	}
	r.stream = stream
	return nil
}

func (r *NativeRecorder) onBuffer(in []float32) {
	level := pcm.RMSLevel(in)
	r.levelMu.Lock()
	r.level = level
	cb := r.levelCb
	r.levelMu.Unlock()
	if cb != nil {
		cb(level)
	}

	r.mu.Lock()
	w := r.writer
	r.mu.Unlock()
	if w == nil {
		return
	}
	buf := make([]byte, len(in)*4)
	for i, s := range in {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(s))
	}
	if _, err := w.Write(buf); err != nil && r.log != nil {
		r.log.Error("capture write failed: %v", err)
	}
}

// Stop implements interfaces.Recorder.
func (r *NativeRecorder) Stop() (interfaces.Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return interfaces.Handle{}, nil
	}

	if r.stream != nil {
		_ = r.stream.Stop()
		_ = r.stream.Close()
		r.stream = nil
	}
	if r.writer != nil {
		_ = r.writer.Flush()
	}
	if r.file != nil {
		_ = r.file.Close()
	}

	handle := r.handle
	r.file = nil
	r.writer = nil
	r.recording = false
	return handle, nil
}

// SetDevice implements interfaces.Recorder.
func (r *NativeRecorder) SetDevice(device devices.Device) error {
	r.mu.Lock()
	wasRecording := r.recording
	r.mu.Unlock()

	if wasRecording {
		if _, err := r.Stop(); err != nil {
			return err
		}
		_, err := r.Start(device)
		return err
	}

	r.mu.Lock()
	r.device = device
	r.mu.Unlock()
	return nil
}

func (r *NativeRecorder) SetAudioLevelCallback(callback interfaces.AudioLevelCallback) {
	r.levelMu.Lock()
	defer r.levelMu.Unlock()
	r.levelCb = callback
}

func (r *NativeRecorder) GetAudioLevel() float64 {
	r.levelMu.RLock()
	defer r.levelMu.RUnlock()
	return r.level
}

func (r *NativeRecorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}
