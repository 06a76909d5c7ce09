package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/meur/loadout/internal/catalog"
	"github.com/meur/loadout/internal/config"
	"github.com/meur/loadout/internal/storage"
)

// openCatalog loads the catalog named by cc: the SQLite database when set,
// else the JSON file when set, else the bundled data
func openCatalog(ctx context.Context, cc config.CatalogConfig, log *zap.Logger) (*catalog.Catalog, error) {
	switch {
	case cc.DBPath != "":
		store, err := storage.OpenReadOnly(cc.DBPath)
		if err != nil {
			return nil, err
		}
		defer store.Close()

		c, err := catalog.Load(ctx, store)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cc.DBPath, err)
		}
		log.Info("catalog loaded", zap.String("db", cc.DBPath), zap.Int("weapons", c.Len()))
		return c, nil

	case cc.DataPath != "":
		c, err := catalog.Load(ctx, catalog.FileSource{Path: cc.DataPath})
		if err != nil {
			return nil, err
		}
		log.Info("catalog loaded", zap.String("file", cc.DataPath), zap.Int("weapons", c.Len()))
		return c, nil

	default:
		c, err := catalog.Embedded()
		if err != nil {
			return nil, err
		}
		log.Info("catalog loaded", zap.String("source", "bundled"), zap.Int("weapons", c.Len()))
		return c, nil
	}
}
