package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/loadout/internal/catalog"
	"github.com/meur/loadout/internal/models"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")
	s, err := New(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func sample() []models.Weapon {
	return []models.Weapon{
		{Name: "MCW", Type: "Assault Rifle", Game: "MW3", Rank: 2, WeaponImg: "/assets/weapons/mcw.webp",
			Attachments: []models.Attachment{
				models.SlotAttachment("Optic", "VLK 3.0x"),
				models.PlainAttachment("Grip"),
			}},
		{Name: "XM4", Type: "Assault Rifle", Game: "BO6", Rank: 1, Attachments: []models.Attachment{}},
		{Name: "KSV", Type: "smg", Game: "BO6", Rank: 1},
	}
}

func TestReplaceWeapons_RoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceWeapons(ctx, sample()))

	got, err := s.Weapons(ctx)
	require.NoError(t, err)
	assert.Equal(t, sample(), got)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestReplaceWeapons_Replaces(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceWeapons(ctx, sample()))
	require.NoError(t, s.ReplaceWeapons(ctx, sample()[:1]))

	got, err := s.Weapons(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "MCW", got[0].Name)
}

func TestWeapons_EmptyDatabase(t *testing.T) {
	s, _ := newTestStore(t)
	got, err := s.Weapons(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpenReadOnly_ServesCatalog(t *testing.T) {
	s, path := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.ReplaceWeapons(ctx, sample()))
	require.NoError(t, s.Close())

	ro, err := OpenReadOnly(path)
	require.NoError(t, err)
	defer ro.Close()

	c, err := catalog.Load(ctx, ro)
	require.NoError(t, err)

	ar := c.ByCategory(models.AssaultRifle)
	require.Len(t, ar, 2)
	assert.Equal(t, "XM4", ar[0].Name)
	assert.Len(t, c.ByCategory(models.SMG), 1)

	assert.Error(t, ro.ReplaceWeapons(ctx, sample()))
}

func TestOpenReadOnly_MissingFile(t *testing.T) {
	_, err := OpenReadOnly(filepath.Join(t.TempDir(), "missing.db"))
	assert.Error(t, err)
}
