package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/meur/loadout/internal/models"
)

//go:embed data/warzone_weapons.json
var bundled []byte

// Source yields the records a Catalog is built from
type Source interface {
	Weapons(ctx context.Context) ([]models.Weapon, error)
}

// Load builds a Catalog from src
func Load(ctx context.Context, src Source) (*Catalog, error) {
	weapons, err := src.Weapons(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return New(weapons), nil
}

// Decode reads a JSON array of weapon records
func Decode(r io.Reader) ([]models.Weapon, error) {
	var weapons []models.Weapon
	dec := json.NewDecoder(r)
	if err := dec.Decode(&weapons); err != nil {
		return nil, fmt.Errorf("decode weapons: %w", err)
	}
	if weapons == nil {
		return nil, fmt.Errorf("decode weapons: expected a JSON array")
	}
	return weapons, nil
}

// Embedded returns the catalog bundled into the binary
func Embedded() (*Catalog, error) {
	weapons, err := Decode(bytes.NewReader(bundled))
	if err != nil {
		return nil, err
	}
	return New(weapons), nil
}

// FileSource reads records from a JSON file on every call
type FileSource struct {
	Path string
}

// Weapons implements Source
func (s FileSource) Weapons(ctx context.Context) ([]models.Weapon, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()
	return Decode(f)
}

// LoadFile builds a Catalog from a JSON file
func LoadFile(path string) (*Catalog, error) {
	return Load(context.Background(), FileSource{Path: path})
}
