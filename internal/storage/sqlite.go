package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/meur/loadout/internal/models"
)

// Store handles the catalog database
type Store struct {
	db *sql.DB
}

// New opens (or creates) a writable catalog database and migrates it
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// OpenReadOnly opens an existing, already seeded catalog database
func OpenReadOnly(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs database migrations
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS weapons (
			position INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			game TEXT NOT NULL DEFAULT '',
			rank INTEGER NOT NULL,
			weapon_img TEXT,
			attachments TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_weapons_type ON weapons(type COLLATE NOCASE, rank)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// --- Weapons ---

// Weapons returns every record in the order it was seeded. It implements
// catalog.Source.
func (s *Store) Weapons(ctx context.Context) ([]models.Weapon, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, type, game, rank, weapon_img, attachments
		FROM weapons ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	weapons := []models.Weapon{}
	for rows.Next() {
		var w models.Weapon
		var img, attachments sql.NullString
		if err := rows.Scan(&w.Name, &w.Type, &w.Game, &w.Rank, &img, &attachments); err != nil {
			return nil, err
		}
		w.WeaponImg = img.String
		if attachments.Valid {
			if err := json.Unmarshal([]byte(attachments.String), &w.Attachments); err != nil {
				return nil, fmt.Errorf("weapon %q: decode attachments: %w", w.Name, err)
			}
		}
		weapons = append(weapons, w)
	}
	return weapons, rows.Err()
}

// Count returns the number of seeded records
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM weapons`).Scan(&n)
	return n, err
}

// ReplaceWeapons swaps the whole catalog for weapons in one transaction
func (s *Store) ReplaceWeapons(ctx context.Context, weapons []models.Weapon) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM weapons`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO weapons (position, name, type, game, rank, weapon_img, attachments)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, w := range weapons {
		var img, attachments sql.NullString
		if w.WeaponImg != "" {
			img = sql.NullString{String: w.WeaponImg, Valid: true}
		}
		// A nil list stays NULL so "absent" and "empty" survive the round trip
		if w.Attachments != nil {
			data, err := json.Marshal(w.Attachments)
			if err != nil {
				return fmt.Errorf("weapon %q: encode attachments: %w", w.Name, err)
			}
			attachments = sql.NullString{String: string(data), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, i, w.Name, w.Type, w.Game, w.Rank, img, attachments); err != nil {
			return fmt.Errorf("weapon %q: %w", w.Name, err)
		}
	}

	return tx.Commit()
}
