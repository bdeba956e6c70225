package cmd

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/AndrewEC/ImageViewer/cache"
	"github.com/AndrewEC/ImageViewer/config"
	"github.com/AndrewEC/ImageViewer/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view [directory]",
	Short: "Launch the interactive image viewer",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			logrus.Fatalf("Failed to load config: %v", err)
		}
		if err := config.ValidateConfig(cfg); err != nil {
			logrus.Fatalf("Invalid config: %v", err)
		}

		if len(args) > 0 {
			cfg.DefaultDirectory = args[0]
		}

		// One cache for the whole session; every widget shares it.
		images := cache.New(
			cache.WithIdleTTL(time.Duration(cfg.CacheIdleTTLMinutes)*time.Minute),
			cache.WithSweepInterval(time.Duration(cfg.CacheSweepMinutes)*time.Minute),
			cache.WithMaxFullImages(cfg.MaxFullImages),
			cache.WithThumbnailWidth(cfg.ThumbnailWidth),
		)
		defer images.Close()

		if err := tui.Run(cfg, images); err != nil {
			logrus.Fatalf("Viewer exited with error: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
