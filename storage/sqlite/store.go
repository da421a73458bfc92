// Package sqlite provides a SQLite-backed preset store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/phanxgames/outfit"
	"github.com/phanxgames/outfit/internal/sqlitemigrate"
	"github.com/phanxgames/outfit/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// ErrNotFound indicates no preset is saved in the requested slot.
var ErrNotFound = errors.New("preset not found")

var errNotConfigured = errors.New("storage is not configured")

// Store persists presets in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite preset store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SavePreset replaces the preset in p.Index. The replaced preset moves to
// the end of the list order.
func (s *Store) SavePreset(ctx context.Context, p outfit.Preset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return errNotConfigured
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save preset: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := savePreset(ctx, tx, p); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save preset: %w", err)
	}
	return nil
}

// GetPreset returns the preset saved in slot.
func (s *Store) GetPreset(ctx context.Context, slot int) (outfit.Preset, error) {
	if err := ctx.Err(); err != nil {
		return outfit.Preset{}, err
	}
	if s == nil || s.sqlDB == nil {
		return outfit.Preset{}, errNotConfigured
	}
	var id int64
	err := s.sqlDB.QueryRowContext(ctx, `SELECT id FROM presets WHERE slot_index = ?`, slot).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return outfit.Preset{}, ErrNotFound
		}
		return outfit.Preset{}, fmt.Errorf("get preset: %w", err)
	}
	return s.readPreset(ctx, id, slot)
}

// DeletePreset removes the preset in slot. Deleting an empty slot is not an
// error.
func (s *Store) DeletePreset(ctx context.Context, slot int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return errNotConfigured
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete preset: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	if err := deletePreset(ctx, tx, slot); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete preset: %w", err)
	}
	return nil
}

// ListPresets returns every preset in save order.
func (s *Store) ListPresets(ctx context.Context) ([]outfit.Preset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, errNotConfigured
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id, slot_index FROM presets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	type key struct {
		id   int64
		slot int
	}
	var keys []key
	for rows.Next() {
		var k key
		if err := rows.Scan(&k.id, &k.slot); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan preset: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("list presets: %w", err)
	}
	_ = rows.Close()

	out := make([]outfit.Preset, 0, len(keys))
	for _, k := range keys {
		p, err := s.readPreset(ctx, k.id, k.slot)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// LoadInto replaces the contents of store with every saved preset.
func (s *Store) LoadInto(ctx context.Context, store *outfit.PresetStore) error {
	presets, err := s.ListPresets(ctx)
	if err != nil {
		return err
	}
	for _, p := range store.Presets() {
		store.Clear(p.Index)
	}
	for _, p := range presets {
		store.Put(p)
	}
	return nil
}

// ReplaceAll makes the saved presets match store in one transaction: slots
// absent from store are deleted and every preset of store is rewritten, in
// order.
func (s *Store) ReplaceAll(ctx context.Context, store *outfit.PresetStore) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return errNotConfigured
	}
	presets := store.Presets()
	keep := make(map[int]bool, len(presets))
	for _, p := range presets {
		keep[p.Index] = true
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace presets: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, `SELECT slot_index FROM presets`)
	if err != nil {
		return fmt.Errorf("list preset slots: %w", err)
	}
	var stale []int
	for rows.Next() {
		var slot int
		if err := rows.Scan(&slot); err != nil {
			_ = rows.Close()
			return fmt.Errorf("scan preset slot: %w", err)
		}
		if !keep[slot] {
			stale = append(stale, slot)
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return fmt.Errorf("list preset slots: %w", err)
	}
	_ = rows.Close()

	for _, slot := range stale {
		if err := deletePreset(ctx, tx, slot); err != nil {
			return err
		}
	}
	for _, p := range presets {
		if err := savePreset(ctx, tx, p); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace presets: %w", err)
	}
	return nil
}

func (s *Store) readPreset(ctx context.Context, id int64, slot int) (outfit.Preset, error) {
	p := outfit.Preset{Index: slot, Parts: []outfit.PartValue{}, Colors: []outfit.ColorValue{}}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT category, variant FROM preset_parts WHERE preset_id = ? ORDER BY rowid`, id)
	if err != nil {
		return outfit.Preset{}, fmt.Errorf("get preset parts: %w", err)
	}
	for rows.Next() {
		var category string
		var variant int
		if err := rows.Scan(&category, &variant); err != nil {
			_ = rows.Close()
			return outfit.Preset{}, fmt.Errorf("scan preset part: %w", err)
		}
		part, err := outfit.ParsePartType(category)
		if err != nil {
			_ = rows.Close()
			return outfit.Preset{}, fmt.Errorf("preset %d: %w", slot, err)
		}
		p.Parts = append(p.Parts, outfit.PartValue{Part: part, Variant: variant})
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return outfit.Preset{}, fmt.Errorf("get preset parts: %w", err)
	}
	_ = rows.Close()

	rows, err = s.sqlDB.QueryContext(ctx,
		`SELECT prefix, color FROM preset_colors WHERE preset_id = ? ORDER BY position`, id)
	if err != nil {
		return outfit.Preset{}, fmt.Errorf("get preset colors: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var prefix, hex string
		if err := rows.Scan(&prefix, &hex); err != nil {
			return outfit.Preset{}, fmt.Errorf("scan preset color: %w", err)
		}
		c, err := outfit.ParseHexColor(hex)
		if err != nil {
			return outfit.Preset{}, fmt.Errorf("preset %d: %w", slot, err)
		}
		p.Colors = append(p.Colors, outfit.ColorValue{Prefix: prefix, Color: c})
	}
	if err := rows.Err(); err != nil {
		return outfit.Preset{}, fmt.Errorf("get preset colors: %w", err)
	}
	return p, nil
}

// savePreset replaces the preset in p.Index within tx.
func savePreset(ctx context.Context, tx *sql.Tx, p outfit.Preset) error {
	if err := deletePreset(ctx, tx, p.Index); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO presets (slot_index, updated_at) VALUES (?, ?)`,
		p.Index, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert preset: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert preset: %w", err)
	}
	for _, part := range p.Parts {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO preset_parts (preset_id, category, variant) VALUES (?, ?, ?)`,
			id, part.Part.String(), part.Variant,
		); err != nil {
			return fmt.Errorf("insert preset part %s: %w", part.Part, err)
		}
	}
	for i, c := range p.Colors {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO preset_colors (preset_id, position, prefix, color) VALUES (?, ?, ?, ?)`,
			id, i, c.Prefix, c.Color.Hex(),
		); err != nil {
			return fmt.Errorf("insert preset color %s: %w", c.Prefix, err)
		}
	}
	return nil
}

func deletePreset(ctx context.Context, tx *sql.Tx, slot int) error {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM presets WHERE slot_index = ?`, slot).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("find preset: %w", err)
	}
	for _, q := range []string{
		`DELETE FROM preset_parts WHERE preset_id = ?`,
		`DELETE FROM preset_colors WHERE preset_id = ?`,
		`DELETE FROM presets WHERE id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return fmt.Errorf("delete preset: %w", err)
		}
	}
	return nil
}
