package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meur/loadout/internal/assets"
)

var (
	assetsIn      string
	assetsOut     string
	assetsMaxEdge int
)

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Convert JPEG, PNG and TGA artwork to WebP",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := assetsOut
		if out == "" {
			out = cfg.Server.StaticDir
		}

		results, err := assets.Optimize(assets.Config{
			InputDir:  assetsIn,
			OutputDir: out,
			MaxEdge:   assetsMaxEdge,
		}, logger)
		if err != nil {
			return err
		}

		failed := 0
		for _, r := range results {
			if !r.Success {
				failed++
			}
		}
		logger.Info("assets converted",
			zap.Int("total", len(results)),
			zap.Int("failed", failed),
			zap.String("output", out))

		if failed > 0 {
			return fmt.Errorf("%d of %d assets failed", failed, len(results))
		}
		return nil
	},
}

func init() {
	assetsCmd.Flags().StringVar(&assetsIn, "in", "./art", "source artwork directory")
	assetsCmd.Flags().StringVar(&assetsOut, "out", "", "output directory (server.static_dir when empty)")
	assetsCmd.Flags().IntVar(&assetsMaxEdge, "max-edge", 1920, "longest edge in pixels, 0 keeps the size")
}
