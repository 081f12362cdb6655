// Copyright 2025 Antfly, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package history keeps a SQLite log of served predictions.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS predictions (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at      DATETIME NOT NULL,
	original_text   TEXT NOT NULL,
	normalized_text TEXT NOT NULL DEFAULT '',
	intent          TEXT NOT NULL,
	confidence      REAL NOT NULL,
	slots_json      TEXT NOT NULL DEFAULT '{}',
	model_version   TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_predictions_created_at ON predictions(created_at);
CREATE INDEX IF NOT EXISTS idx_predictions_intent ON predictions(intent);
`

// Entry is one recorded prediction.
type Entry struct {
	ID             int64             `json:"id"`
	CreatedAt      time.Time         `json:"created_at"`
	OriginalText   string            `json:"original_text"`
	NormalizedText string            `json:"normalized_text"`
	Intent         string            `json:"intent"`
	Confidence     float64           `json:"confidence"`
	Slots          map[string]string `json:"slots"`
	ModelVersion   string            `json:"model_version"`
}

// IntentCount is the number of predictions of one intent.
type IntentCount struct {
	Intent string `json:"intent"`
	Count  int    `json:"count"`
}

// Store is a prediction log backed by SQLite. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts e and returns its id. A zero CreatedAt is set to now.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	slots := e.Slots
	if slots == nil {
		slots = map[string]string{}
	}
	slotsJSON, err := sonic.MarshalString(slots)
	if err != nil {
		return 0, fmt.Errorf("encoding slots: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO predictions (created_at, original_text, normalized_text, intent, confidence, slots_json, model_version)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.CreatedAt, e.OriginalText, e.NormalizedText, e.Intent, e.Confidence, slotsJSON, e.ModelVersion,
	)
	if err != nil {
		return 0, fmt.Errorf("recording prediction: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, original_text, normalized_text, intent, confidence, slots_json, model_version
		 FROM predictions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var slotsJSON string
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.OriginalText, &e.NormalizedText,
			&e.Intent, &e.Confidence, &slotsJSON, &e.ModelVersion); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if err := sonic.UnmarshalString(slotsJSON, &e.Slots); err != nil {
			return nil, fmt.Errorf("decoding slots of prediction %d: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// IntentCounts returns per-intent totals, most frequent first.
func (s *Store) IntentCounts(ctx context.Context) ([]IntentCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT intent, COUNT(*) AS n FROM predictions GROUP BY intent ORDER BY n DESC, intent ASC`)
	if err != nil {
		return nil, fmt.Errorf("counting intents: %w", err)
	}
	defer rows.Close()

	var counts []IntentCount
	for rows.Next() {
		var c IntentCount
		if err := rows.Scan(&c.Intent, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
