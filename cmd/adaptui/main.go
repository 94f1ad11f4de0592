package main

import (
	"fmt"
	"os"
	"path/filepath"

	"adaptui/internal/config"
	"adaptui/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "adaptui",
	Short: "adaptui - selection and continuous-input controls for the terminal",
	Long: `adaptui hosts a gallery of adaptive input controls: bounded chips with
FIFO eviction, radio groups, multi-select, a clamped counter, a stepped
slider and a momentum scroll wheel.

Run without arguments to open the gallery.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", configPath, err)
		}

		opts := cfg.Logging.Options()
		if verbose {
			opts.Level = "debug"
		}
		if err := logging.Initialize(opts); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = logging.Get(logging.CategoryBoot)
		logger.Debug("config loaded", zap.String("path", configPath))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Sync()
	},
	RunE: runGallery,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "Config file (.yaml or .toml)")

	addGalleryFlags(rootCmd)
	addGalleryFlags(galleryCmd)

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file")

	rootCmd.AddCommand(galleryCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(guideCmd)
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "adaptui.yaml"
	}
	return filepath.Join(dir, "adaptui", "config.yaml")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
