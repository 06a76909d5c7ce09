package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meur/loadout/internal/config"
	"github.com/meur/loadout/internal/storage"
)

var (
	seedDB   string
	seedData string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the weapon catalog into a SQLite database",
	Long: `Reads weapon records from a JSON file (or the bundled catalog when --data
is empty) and replaces the contents of the SQLite catalog database.

Example:
  loadout seed --db ./catalog.db --data ./warzone_weapons.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := seedCatalog(cmd.Context(), seedDB, seedData, logger)
		return err
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedDB, "db", "./catalog.db", "SQLite database path")
	seedCmd.Flags().StringVar(&seedData, "data", "", "JSON data file (bundled catalog when empty)")
}

// seedCatalog replaces the records in dbPath with those of dataPath and
// returns how many were written
func seedCatalog(ctx context.Context, dbPath, dataPath string, log *zap.Logger) (int, error) {
	c, err := openCatalog(ctx, config.CatalogConfig{DataPath: dataPath}, log)
	if err != nil {
		return 0, err
	}

	store, err := storage.New(dbPath)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	if err := store.ReplaceWeapons(ctx, c.All()); err != nil {
		return 0, err
	}
	log.Info("seeding complete", zap.String("db", dbPath), zap.Int("weapons", c.Len()))
	return c.Len(), nil
}
