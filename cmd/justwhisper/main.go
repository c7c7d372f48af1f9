// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Command justwhisper is the daemon entrypoint (A5, SPEC_FULL.md): it
// parses flags, wires every component together, and runs until a signal
// or fatal error tears it down.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/AshBuk/justwhisper/audio/devices"
	audiofactory "github.com/AshBuk/justwhisper/audio/factory"
	"github.com/AshBuk/justwhisper/config"
	"github.com/AshBuk/justwhisper/hotkeys"
	"github.com/AshBuk/justwhisper/hotkeys/adapters"
	hotkeysinterfaces "github.com/AshBuk/justwhisper/hotkeys/interfaces"
	"github.com/AshBuk/justwhisper/internal/logger"
	"github.com/AshBuk/justwhisper/internal/metrics"
	"github.com/AshBuk/justwhisper/internal/permission"
	"github.com/AshBuk/justwhisper/internal/platform"
	"github.com/AshBuk/justwhisper/internal/utils"
	"github.com/AshBuk/justwhisper/output/factory"
	"github.com/AshBuk/justwhisper/overlay"
	"github.com/AshBuk/justwhisper/session"
	"github.com/AshBuk/justwhisper/speech"
	"github.com/AshBuk/justwhisper/transcript"
)

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	os.Exit(run(opts))
}

type options struct {
	configFile string
	debug      bool
}

func parseOptions(args []string) (*options, error) {
	opts := &options{configFile: "config.yaml"}

	fs := flag.NewFlagSet("justwhisper", flag.ContinueOnError)
	fs.StringVar(&opts.configFile, "config", opts.configFile, "Path to configuration file")
	fs.BoolVar(&opts.debug, "debug", false, "Enable debug mode")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

// run wires every component and blocks until shutdown. It returns a
// process exit code rather than calling os.Exit directly so deferred
// cleanup always executes.
func run(opts *options) int {
	logLevel := logger.InfoLevel
	if opts.debug {
		logLevel = logger.DebugLevel
	}
	log := logger.NewDefaultLogger(logLevel)

	configPath := opts.configFile
	if configPath == "config.yaml" {
		if defaultPath, err := config.DefaultConfigPath(); err == nil {
			configPath = defaultPath
		}
	}

	lockFile := utils.NewLockFile(utils.GetDefaultLockPath())
	if isRunning, pid, err := lockFile.CheckExistingInstance(); err != nil {
		log.Warning("failed to check existing instance: %v", err)
	} else if isRunning {
		fmt.Fprintf(os.Stderr, "Another instance of justwhisper is already running (PID: %d)\n", pid)
		return 1
	}
	if err := lockFile.TryLock(); err != nil {
		log.Error("failed to acquire application lock: %v", err)
		return 1
	}
	defer func() {
		if err := lockFile.Unlock(); err != nil {
			log.Warning("failed to release lock: %v", err)
		}
	}()

	store, err := loadConfigStore(configPath, log)
	if err != nil {
		log.Error("failed to load configuration: %v", err)
		return 1
	}
	defer store.Close()

	var metricsRecorder *metrics.Recorder
	if store.Snapshot().Metrics.Enabled {
		metricsRecorder = metrics.New()
	}

	checker := permission.NewLinuxChecker()
	permissions := permission.New(checker, log)
	defer permissions.Close()

	registry, err := devices.NewRegistry(log)
	if err != nil {
		log.Error("failed to initialize audio device registry: %v", err)
		return 1
	}
	defer registry.Close()

	env := platform.DetectEnvironment()

	cfg := store.Snapshot()

	recorder, err := audiofactory.NewAudioRecorderFactory(&cfg, log, permissions).CreateRecorder()
	if err != nil {
		log.Error("failed to build recorder: %v", err)
		return 1
	}
	if sel := registry.Selected(); sel.UID != "" {
		_ = recorder.SetDevice(sel)
	}

	speechClient, err := speech.New(cfg, log)
	if err != nil {
		log.Error("failed to build speech client: %v", err)
		return 1
	}

	var chatProvider transcript.ChatProvider
	if cfg.Cleaner.UseLLMEnhancement || cfg.Cleaner.UseIntelligentWordReplacements {
		chatProvider, err = transcript.NewChatProvider(cfg)
		if err != nil {
			log.Warning("chat provider unavailable, falling back to deterministic cleanup: %v", err)
			chatProvider = nil
		}
	}
	cleaner := transcript.New(transcript.Options{
		RemoveFillers:                  cfg.Cleaner.RemoveFillers,
		ProcessLineBreakCommands:       cfg.Cleaner.ProcessLineBreakCommands,
		ProcessPunctuationCommands:     cfg.Cleaner.ProcessPunctuationCommands,
		ProcessFormattingCommands:      cfg.Cleaner.ProcessFormattingCommands,
		ApplySelfCorrection:            cfg.Cleaner.ApplySelfCorrection,
		AutomaticCapitalization:        cfg.Cleaner.AutomaticCapitalization,
		ApplyWordReplacements:          cfg.Cleaner.ApplyWordReplacements,
		UseIntelligentWordReplacements: cfg.Cleaner.UseIntelligentWordReplacements,
		UseLLMEnhancement:              cfg.Cleaner.UseLLMEnhancement,
	}, cfg.WordReplacements, chatProvider, log)

	sink, err := factory.GetSinkFromConfig(&cfg, log, env)
	if err != nil {
		log.Error("failed to build output sink: %v", err)
		return 1
	}

	overlayVM := overlay.New()
	overlayVM.ApplyAppearance(overlay.Appearance{
		Position: cfg.Overlay.Position,
		R:        cfg.Overlay.ColorR,
		G:        cfg.Overlay.ColorG,
		B:        cfg.Overlay.ColorB,
		A:        cfg.Overlay.ColorA,
		Opacity:  cfg.Overlay.Opacity,
	})

	hotkeyCfg := adapters.NewConfigAdapter(cfg.Hotkeys.Primary, cfg.Hotkeys.CopyOnly, cfg.Hotkeys.Cancel, cfg.Hotkeys.Provider)
	hotkeyCtl := hotkeys.New(hotkeyCfg, toHotkeyEnvironment(env), permissions, log)
	hotkeyCtl.SetEnabled(cfg.General.GlobalEnabled)

	coordinator := session.New(store, recorder, registry, speechClient, cleaner, sink, overlayVM, hotkeyCtl, log)
	coordinator.SetMetrics(metricsRecorder)

	store.Subscribe("overlay", func(any) {
		snap := store.Snapshot()
		overlayVM.ApplyAppearance(overlay.Appearance{
			Position: snap.Overlay.Position,
			R:        snap.Overlay.ColorR,
			G:        snap.Overlay.ColorG,
			B:        snap.Overlay.ColorB,
			A:        snap.Overlay.ColorA,
			Opacity:  snap.Overlay.Opacity,
		})
	})
	store.Subscribe("hotkeys", func(any) {
		hotkeyCtl.SetEnabled(store.Snapshot().General.GlobalEnabled)
	})

	hotkeyCtl.Start()
	defer hotkeyCtl.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	utils.Go(func() {
		coordinator.Run(hotkeyCtl.Intents())
	})

	sig := <-sigCh
	log.Info("received signal %v, shutting down", sig)

	hotkeyCtl.Stop()
	coordinator.Wait()
	_ = utils.WaitAll(shutdownGrace)

	return 0
}

const shutdownGrace = 2 * time.Second

func loadConfigStore(path string, log logger.Logger) (*config.Store, error) {
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		cfg := &config.Config{}
		config.SetDefaultConfig(cfg)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, err
		}
		if err := config.SaveConfig(path, cfg); err != nil {
			return nil, err
		}
		log.Info("wrote default configuration to %s", path)
	}
	return config.NewStore(path, log)
}

// toHotkeyEnvironment bridges internal/platform's string-based
// EnvironmentType (shared by the output factory) to the hotkeys package's
// own int-based enum, which predates and is independent of the platform
// package.
func toHotkeyEnvironment(env platform.EnvironmentType) hotkeysinterfaces.EnvironmentType {
	switch env {
	case platform.EnvironmentX11:
		return hotkeysinterfaces.EnvironmentX11
	case platform.EnvironmentWayland:
		return hotkeysinterfaces.EnvironmentWayland
	default:
		return hotkeysinterfaces.EnvironmentUnknown
	}
}
