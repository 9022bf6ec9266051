package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/epidraw/internal/config"
	"github.com/olivier-w/epidraw/internal/logx"
	"github.com/olivier-w/epidraw/internal/session"
	"github.com/olivier-w/epidraw/internal/ui"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(run).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type runFunc func(ctx context.Context, cfg config.Config) error

func newRootCmd(runE runFunc) *cobra.Command {
	var configFile string

	load := func(cmd *cobra.Command) (config.Config, error) {
		if err := config.LoadDotEnv(".env"); err != nil {
			return config.Config{}, err
		}
		v := config.NewViper(configFile)
		if err := config.ReadFile(v); err != nil {
			return config.Config{}, err
		}
		if err := config.BindFlags(cmd.Flags(), v); err != nil {
			return config.Config{}, err
		}
		return config.Load(v)
	}

	cmd := &cobra.Command{
		Use:   "epidraw",
		Short: "Draw a closed shape and watch epicycles retrace it",
		Long: `epidraw turns a shape drawn with the mouse into a Fourier series and
animates a chain of rotating circles that redraws it from the strongest
frequencies.

Settings are read from flags, EPIDRAW_* environment variables (also from a
.env file in the working directory) and an optional epidraw.yaml in
$HOME/.config/epidraw or ./configs.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			return runE(cmd.Context(), cfg)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&configFile, "config", "", "config file (default is $HOME/.config/epidraw/epidraw.yaml)")
	f.Int("points", 100, "number of points each shape is resampled to")
	f.Float64("animation-hz", 25, "animation frames per second")
	f.Float64("rotation-hz", 0.05, "full rotations of the epicycles per second")
	f.Float64("trail-damping", 0.98, "fraction of one rotation kept in the trail")
	f.Int("frequencies", -1, "initial number of frequencies (default all)")
	f.Float64("follow-scale", 2, "zoom factor while following the tip")
	f.String("fft", "dsp", "DFT implementation (dsp, gonum)")
	f.String("log-level", "info", "log level (debug, info, warn, error)")
	f.String("log-file", "", "write logs to this file")

	cmd.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			out, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	})
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	logger, closeLog, err := logx.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	opts, err := cfg.SessionOptions()
	if err != nil {
		return err
	}

	s := session.New(opts, logger)
	loop := session.NewLoop(s, cfg.AnimationHz, logger)
	model := ui.New(loop, ui.Options{
		AnimationHz:    cfg.AnimationHz,
		Frequencies:    cfg.Frequencies,
		MaxFrequencies: cfg.Points,
	})

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	loop.OnRedraw(ui.Redrawer(ui.NewPainter(), program.Send))

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	loopDone := make(chan error, 1)
	go func() { loopDone <- loop.Run(loopCtx) }()

	logger.Info("starting",
		"points", cfg.Points,
		"fft", opts.Transform.Name(),
		"animation_hz", cfg.AnimationHz,
		"rotation_hz", cfg.RotationHz,
	)

	final, err := program.Run()
	cancel()
	<-loopDone
	if err != nil {
		return err
	}
	if m, ok := final.(ui.Model); ok {
		if err := m.Err(); err != nil && !errors.Is(err, session.ErrStopped) {
			return err
		}
	}
	logger.Info("bye")
	return nil
}
