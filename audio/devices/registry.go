// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package devices implements the audio input device registry (spec.md
// §4.3, C3): enumeration of portaudio input devices, hot-plug change
// events, and persistence of the user's selection by a stable UID.
package devices

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gordonklaus/portaudio"

	"github.com/AshBuk/justwhisper/internal/logger"
)

// Device mirrors spec.md's AudioDevice: a stable UID, human name, platform
// handle, and input-channel count.
type Device struct {
	UID      string
	Name     string
	Channels int

	info *portaudio.DeviceInfo
}

// Default is the synthetic sentinel meaning "follow the OS default input."
var Default = Device{UID: "", Name: "Default"}

// IsDefault reports whether d is the Default sentinel.
func (d Device) IsDefault() bool {
	return d.UID == ""
}

// Info returns the underlying portaudio device descriptor, or nil for the
// Default sentinel. Used by the Recorder to build stream parameters.
func (d Device) Info() *portaudio.DeviceInfo {
	return d.info
}

// uidNamespace anchors the deterministic (name-derived) UIDs so the same
// physical device gets the same UID across enumerations and process
// restarts, without relying on portaudio's own device index (which is not
// stable across hot-plug).
var uidNamespace = uuid.MustParse("6f6e9b4e-6b3f-4b1f-9a7b-6a6b6c6d6e6f")

func stableUID(name string) string {
	return uuid.NewSHA1(uidNamespace, []byte(name)).String()
}

const pollInterval = 2 * time.Second

// Registry enumerates input devices and tracks hot-plug changes and the
// user's persisted selection.
type Registry struct {
	log logger.Logger

	mu        sync.RWMutex
	devices   []Device
	selected  string // UID; "" means Default
	listeners []func([]Device)

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewRegistry initializes portaudio (if not already) and performs an
// initial enumeration, then starts a background watcher for hot-plug
// changes.
func NewRegistry(log logger.Logger) (*Registry, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}

	r := &Registry{log: log, stopCh: make(chan struct{})}
	if err := r.refresh(); err != nil {
		_ = portaudio.Terminate()
		return nil, err
	}
	go r.watchLoop()
	return r, nil
}

func (r *Registry) refresh() error {
	infos, err := portaudio.Devices()
	if err != nil {
		return err
	}

	devs := make([]Device, 0, len(infos))
	for _, info := range infos {
		if info.MaxInputChannels < 1 {
			continue
		}
		devs = append(devs, Device{
			UID:      stableUID(info.Name),
			Name:     info.Name,
			Channels: info.MaxInputChannels,
			info:     info,
		})
	}

	r.mu.Lock()
	changed := deviceSetChanged(r.devices, devs)
	r.devices = devs
	var listeners []func([]Device)
	if changed {
		listeners = append([]func([]Device){}, r.listeners...)
	}
	r.mu.Unlock()

	if changed && r.log != nil {
		r.log.Info("audio devices changed: %d input device(s) available", len(devs))
	}
	for _, fn := range listeners {
		fn(devs)
	}
	return nil
}

func deviceSetChanged(a, b []Device) bool {
	if len(a) != len(b) {
		return true
	}
	seen := make(map[string]bool, len(a))
	for _, d := range a {
		seen[d.UID] = true
	}
	for _, d := range b {
		if !seen[d.UID] {
			return true
		}
	}
	return false
}

func (r *Registry) watchLoop() {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := r.refresh(); err != nil && r.log != nil {
				r.log.Warning("device enumeration failed: %v", err)
			}
		case <-r.stopCh:
			return
		}
	}
}

// OnDevicesChanged registers fn to be invoked with the new device list
// whenever hot-plug changes are detected (spec.md's "devicesChanged"
// event).
func (r *Registry) OnDevicesChanged(fn func([]Device)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Devices returns a copy of the current device list.
func (r *Registry) Devices() []Device {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Device, len(r.devices))
	copy(out, r.devices)
	return out
}

// Select persists uid as the chosen device and returns the resolved
// Device. An absent or empty UID resolves to, and persists, Default
// (spec.md §4.3: "resolving an absent UID falls back to the Default
// sentinel and overwrites the stored UID").
func (r *Registry) Select(uid string) Device {
	r.mu.Lock()
	defer r.mu.Unlock()

	if uid == "" {
		r.selected = ""
		return Default
	}
	for _, d := range r.devices {
		if d.UID == uid {
			r.selected = uid
			return d
		}
	}
	r.selected = ""
	return Default
}

// Selected returns the currently selected device, resolving to Default if
// the persisted UID no longer exists (e.g. after an unplug).
func (r *Registry) Selected() Device {
	r.mu.RLock()
	uid := r.selected
	devices := r.devices
	r.mu.RUnlock()

	if uid == "" {
		return Default
	}
	for _, d := range devices {
		if d.UID == uid {
			return d
		}
	}
	return Default
}

// Close stops the background watcher and terminates portaudio.
func (r *Registry) Close() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
		_ = portaudio.Terminate()
	})
}
