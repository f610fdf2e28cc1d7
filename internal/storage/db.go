package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"banlist/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS items (
  item_id INTEGER PRIMARY KEY,
  name_ko TEXT NOT NULL,
  name_en TEXT,
  primary_category TEXT NOT NULL,
  sub_category TEXT,
  tags TEXT NOT NULL,
  carry_on TEXT NOT NULL,
  checked TEXT NOT NULL,
  raw_json TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_items_name_ko ON items(name_ko);

CREATE TABLE IF NOT EXISTS builds (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  countsJson TEXT NOT NULL,
  durationMs INTEGER NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// ReplaceItems swaps the snapshot for the latest build in one transaction.
// Item ids are only meaningful within a build, so the previous snapshot is
// dropped rather than merged.
func (d *DB) ReplaceItems(country string, items []internal.Item) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM items`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
INSERT INTO items (item_id, name_ko, name_en, primary_category, sub_category, tags, carry_on, checked, raw_json)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, item := range items {
		tagsJSON, _ := json.Marshal(item.Tags)
		rawJSON, _ := json.Marshal(item)
		summary := item.RulesSummary[country]
		if _, err := stmt.Exec(
			item.ItemID, item.NameKo, item.NameEn, item.PrimaryCategory, item.SubCategory,
			string(tagsJSON), summary.CarryOn, summary.Checked, string(rawJSON),
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ListItems() ([]internal.Item, error) {
	rows, err := d.conn.Query(`SELECT raw_json FROM items ORDER BY item_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.Item
	for rows.Next() {
		var rawJSON string
		if err := rows.Scan(&rawJSON); err != nil {
			return nil, err
		}
		var item internal.Item
		if err := json.Unmarshal([]byte(rawJSON), &item); err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	return out, rows.Err()
}

func (d *DB) InsertBuild(counts map[string]int, durationMs int64) error {
	countsJSON, _ := json.Marshal(counts)
	_, err := d.conn.Exec(`INSERT INTO builds (countsJson, durationMs) VALUES (?, ?)`, string(countsJSON), durationMs)
	return err
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
