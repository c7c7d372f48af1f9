// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package config

import (
	"sync"

	"github.com/AshBuk/justwhisper/internal/logger"
)

// Store is the typed, observable wrapper around a loaded *Config (spec.md
// §4.1 C1 Config Store). It holds the document behind a RWMutex, persists
// writes durably through SaveConfig, and fans out change notifications to
// per-key subscribers without ever blocking the writer on a slow listener.
type Store struct {
	mu       sync.RWMutex
	path     string
	cfg      *Config
	log      logger.Logger
	subMu    sync.Mutex
	subs     map[string][]func(any)
	changes  chan change
	stopOnce sync.Once
	stopCh   chan struct{}
}

type change struct {
	key   string
	value any
}

// NewStore loads filename (falling back to defaults, per LoadConfig) and
// returns a Store backed by it. The returned Store owns a background
// goroutine that drains subscriber notifications; call Close when done.
func NewStore(filename string, log logger.Logger) (*Store, error) {
	cfg, err := LoadConfig(filename)
	if err != nil {
		return nil, err
	}

	s := &Store{
		path:    filename,
		cfg:     cfg,
		log:     log,
		subs:    make(map[string][]func(any)),
		changes: make(chan change, 64),
		stopCh:  make(chan struct{}),
	}
	go s.dispatchLoop()
	return s, nil
}

// Snapshot returns a copy of the current configuration. Callers may freely
// read and hold onto the result; it will never be mutated in place.
func (s *Store) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.cfg
}

// Update applies mutate to a copy of the current configuration, validates
// it, persists it durably, and only then swaps it in and notifies
// subscribers of key. mutate must not retain the pointer it is given.
func (s *Store) Update(key string, mutate func(*Config)) error {
	s.mu.Lock()
	next := *s.cfg
	mutate(&next)

	if err := ValidateConfig(&next); err != nil {
		if s.log != nil {
			s.log.Warning("config update for %q applied corrections: %v", key, err)
		}
	}

	if err := SaveConfig(s.path, &next); err != nil {
		s.mu.Unlock()
		return err
	}

	s.cfg = &next
	value := next
	s.mu.Unlock()

	s.notify(key, value)
	return nil
}

// Subscribe registers fn to be called, on the store's dispatch goroutine,
// every time Update succeeds for the given key. fn must not block for long;
// it runs on a single shared goroutine serving every subscriber.
func (s *Store) Subscribe(key string, fn func(any)) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subs[key] = append(s.subs[key], fn)
}

func (s *Store) notify(key string, value any) {
	select {
	case s.changes <- change{key: key, value: value}:
	case <-s.stopCh:
	}
}

// dispatchLoop runs on its own goroutine so that Update never blocks on a
// subscriber's callback (spec.md §4.1's "never in the writer's context").
func (s *Store) dispatchLoop() {
	for {
		select {
		case c := <-s.changes:
			s.subMu.Lock()
			fns := append([]func(any){}, s.subs[c.key]...)
			s.subMu.Unlock()
			for _, fn := range fns {
				fn(c.value)
			}
		case <-s.stopCh:
			return
		}
	}
}

// Close stops the dispatch goroutine. Safe to call multiple times.
func (s *Store) Close() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}
