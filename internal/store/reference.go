package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lucasbirlem/financeiro-unirad-69/internal/model"
)

// ErrNoReference no reference snapshot has been saved yet.
var ErrNoReference = errors.New("no reference snapshot saved")

// ReferenceSnapshot a saved canonical dataset plus its metadata.
type ReferenceSnapshot struct {
	ID        string               `json:"id"`
	CreatedAt time.Time            `json:"createdAt"`
	Rows      []model.CanonicalRow `json:"rows"`
}

// SaveReference replaces the stored snapshot with a new one. Newest wins;
// previous snapshots are dropped in the same transaction.
func (s *Store) SaveReference(rows []model.CanonicalRow) (*ReferenceSnapshot, error) {
	data, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reference rows: %w", err)
	}

	snapshot := &ReferenceSnapshot{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Rows:      rows,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM reference_snapshot`); err != nil {
		return nil, fmt.Errorf("failed to clear previous snapshot: %w", err)
	}
	if _, err := tx.Exec(
		`INSERT INTO reference_snapshot (id, created_at, row_count, data) VALUES (?, ?, ?, ?)`,
		snapshot.ID, snapshot.CreatedAt, len(rows), string(data),
	); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// LoadReference returns the newest stored snapshot.
func (s *Store) LoadReference() (*ReferenceSnapshot, error) {
	row := s.db.QueryRow(
		`SELECT id, created_at, data FROM reference_snapshot ORDER BY created_at DESC LIMIT 1`,
	)

	var (
		snapshot ReferenceSnapshot
		data     string
	)
	if err := row.Scan(&snapshot.ID, &snapshot.CreatedAt, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoReference
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(data), &snapshot.Rows); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot rows: %w", err)
	}
	return &snapshot, nil
}
