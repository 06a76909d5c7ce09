package main

import (
	"github.com/spf13/cobra"

	"github.com/meur/loadout/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the catalog in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog(cmd.Context(), cfg.Catalog, logger)
		if err != nil {
			return err
		}

		promo := ""
		if cfg.Promo.LinkURL != "" {
			promo = cfg.Promo.Alt + ": " + cfg.Promo.LinkURL
		}
		return tui.Run(c, promo)
	},
}
