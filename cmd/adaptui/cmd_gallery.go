package main

import (
	"context"
	"errors"
	"os"

	"adaptui/cmd/adaptui/ui"
	"adaptui/internal/config"
	"adaptui/internal/gesture"
	"adaptui/internal/haptics"
	"adaptui/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	watchConfig bool
	noHaptics   bool
	bell        bool
)

// galleryCmd opens the interactive control gallery
var galleryCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Open the interactive control gallery",
	Long: `Opens a full-screen gallery hosting every control. Use tab to move
between controls, the arrow keys or mouse to operate them, and ? for help.

Slider drags and wheel scrolls are processed on a sampling goroutine; every
commit, pulse and visual update is applied on the UI event loop.`,
	RunE: runGallery,
}

func addGalleryFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&watchConfig, "watch", false, "Reload theme and haptics settings when the config file changes")
	cmd.Flags().BoolVar(&noHaptics, "no-haptics", false, "Disable haptic feedback")
	cmd.Flags().BoolVar(&bell, "bell", false, "Ring the terminal bell for medium and heavy pulses")
}

// galleryPulser returns the device pulser for the session, or nil when
// only the on-screen indicator should flash.
func galleryPulser(c *config.Config) haptics.Pulser {
	if c.Haptics.Bell {
		return haptics.NewBell(os.Stdout, haptics.Medium)
	}
	return nil
}

func runGallery(cmd *cobra.Command, args []string) error {
	if noHaptics {
		cfg.Haptics.Enabled = false
	}
	if bell {
		cfg.Haptics.Bell = true
	}
	// Console logs would tear the alternate screen.
	if cfg.Logging.File == "" {
		logging.Reset()
	}
	log := logging.Get(logging.CategoryBoot)

	sampler := gesture.NewSampler(cfg.Sampler.Buffer)
	relay := ui.NewRelay()
	gestureLog := logging.Get(logging.CategoryGesture)

	gallery, err := ui.NewGallery(ui.Deps{
		Config:   cfg,
		Pulser:   galleryPulser(cfg),
		Dispatch: relay,
		Submit: func(fn func()) bool {
			if !sampler.TrySubmit(fn) {
				gestureLog.Debug("sample dropped, sampler full")
				return false
			}
			return true
		},
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		gallery,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return sampler.Run(gctx)
	})
	g.Go(func() error {
		return relay.Run(gctx, p.Send)
	})
	if watchConfig {
		g.Go(func() error {
			err := config.Watch(gctx, configPath, config.DefaultReloadDelay,
				func(c *config.Config) { p.Send(ui.ConfigMsg{Config: c}) },
				func(err error) { p.Send(ui.ErrMsg{Err: err}) },
			)
			// A config that cannot be watched is not worth closing the gallery.
			if err != nil {
				log.Warn("config watch unavailable", zap.Error(err))
				p.Send(ui.ErrMsg{Err: err})
			}
			return nil
		})
	}

	log.Info("gallery started", zap.Int("sampler_buffer", cfg.Sampler.Buffer), zap.Bool("watch", watchConfig))
	_, runErr := p.Run()

	sampler.Close()
	relay.Close()
	cancel()
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Warn("background task failed", zap.Error(err))
	}
	final := gallery.Values()
	log.Info("gallery closed",
		zap.Strings("interests", final.Interests),
		zap.String("mood", final.Mood),
		zap.Int("water", final.Water),
		zap.Float64("volume", final.Volume),
		zap.String("age", final.Age),
	)
	return runErr
}
