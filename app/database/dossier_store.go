package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/madisonhq/press-dossier/app/dossier"
)

var _ dossier.Store = (*DossierStore)(nil)

// DossierStore is the persistent dossier cache, one JSON payload per
// normalized reporter key.
type DossierStore struct {
	db *DB
}

func NewDossierStore(db *DB) *DossierStore {
	return &DossierStore{db: db}
}

// Get returns the cached dossier and its computation timestamp. A missing key
// yields (nil, zero, nil); the staleness decision stays with the caller.
func (s *DossierStore) Get(key string) (*dossier.Dossier, time.Time, error) {
	var payload string
	var computedAt time.Time

	err := s.db.QueryRow(`
		SELECT payload, computed_at FROM dossiers WHERE reporter_key = ?
	`, key).Scan(&payload, &computedAt)

	if err == sql.ErrNoRows {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to get cached dossier: %w", err)
	}

	var d dossier.Dossier
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to decode cached dossier: %w", err)
	}

	return &d, computedAt, nil
}

// Put fully replaces the cached dossier for a key in a single upsert, so a
// reader never observes a partial write.
func (s *DossierStore) Put(key string, d *dossier.Dossier) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode dossier: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO dossiers (reporter_key, reporter_name, payload, computed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(reporter_key) DO UPDATE SET
			reporter_name = excluded.reporter_name,
			payload = excluded.payload,
			computed_at = excluded.computed_at
	`, key, d.ReporterName, string(payload), d.ComputedAt.UTC())

	if err != nil {
		return fmt.Errorf("failed to store dossier: %w", err)
	}

	return nil
}

// Count returns the number of cached dossiers
func (s *DossierStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM dossiers").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get dossier count: %w", err)
	}
	return count, nil
}
