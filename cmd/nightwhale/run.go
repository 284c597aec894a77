package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/nightwhale/audio"
	"github.com/lixenwraith/nightwhale/config"
	"github.com/lixenwraith/nightwhale/engine"
	"github.com/lixenwraith/nightwhale/logging"
	"github.com/lixenwraith/nightwhale/metrics"
)

var (
	errNotTerminal      = errors.New("run needs an interactive terminal, use snapshot for headless output")
	errWatchNeedsConfig = errors.New("--watch needs a config file, pass --config")
)

func defineRunFlags(cmd *cobra.Command) {
	config.DefineFlags(cmd)
	cmd.Flags().BoolP("watch", "w", false, "reload the config file when it changes")
}

func runCommand(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Animate in the terminal",
		Long: `Animate the whale in the terminal until q, Esc or Ctrl+C.
Keys: space pauses, s toggles sound, r scatters a new sky.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			watch, _ := cmd.Flags().GetBool("watch")
			return runAnimation(cmd, *configFile, watch)
		},
	}
	defineRunFlags(cmd)
	return cmd
}

func runAnimation(cmd *cobra.Command, configFile string, watch bool) (err error) {
	if watch && configFile == "" {
		return errWatchNeedsConfig
	}
	conf, err := config.Load(cmd, configFile)
	if err != nil {
		return err
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errNotTerminal
	}
	if conf.Scene.Seed == 0 {
		conf.Scene.Seed = time.Now().UnixNano()
	}

	closeLog, err := logging.Setup(conf.Log, true)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("error creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("error initializing screen: %w", err)
	}
	defer screen.Fini()
	// Restore the terminal before reporting a crash so the trace is readable
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("animation crashed")
			fmt.Fprintf(os.Stderr, "\n\x1b[31mNIGHTWHALE CRASHED: %v\x1b[0m\n%s\n", r, debug.Stack())
			err = fmt.Errorf("crashed: %v", r)
		}
	}()
	screen.HideCursor()

	// The engine opens the device only while audio.enabled is set
	sound := audio.NewSoundManager(conf.Audio.Volume)
	defer sound.Cleanup()
	opts := engine.Options{Sound: sound}

	if conf.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opts.Metrics = metrics.New(registry)
		srv, err := metrics.Start(conf.Metrics.Address, registry)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Close(shutdownCtx); err != nil {
				log.Warn().Err(err).Msg("metrics shutdown")
			}
		}()
	}

	if watch {
		w, err := config.NewWatcher(configFile, func() (config.Config, error) {
			return config.Load(cmd, configFile)
		}, log.Logger)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()
		opts.Reload = w.Updates()
	}

	loop, err := engine.New(screen, conf, opts)
	if err != nil {
		return err
	}
	return loop.Run(ctx)
}
