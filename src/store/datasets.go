// backend/src/store/datasets.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrDatasetNotFound is returned when a dataset id does not exist.
var ErrDatasetNotFound = errors.New("store: dataset not found")

// Dataset is a saved copy of a normalized table, kept so a session can
// reload a previous upload or sample. Only the table itself is persisted;
// KPIs and insights stay transient.
type Dataset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Origin    string    `json:"origin"` // "upload" | "sample" | "manual"
	RowCount  int       `json:"row_count"`
	CSV       []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// DatasetStore persists datasets in SQLite.
type DatasetStore struct {
	db *sql.DB
}

func NewDatasetStore(db *sql.DB) *DatasetStore {
	return &DatasetStore{db: db}
}

// Save inserts a dataset, minting an id when absent, and returns the id.
func (s *DatasetStore) Save(ctx context.Context, d *Dataset) (string, error) {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO datasets (id, name, origin, row_count, csv_data, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.Origin, d.RowCount, d.CSV, d.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("store: insert dataset: %w", err)
	}
	return d.ID, nil
}

// Get loads one dataset with its CSV payload.
func (s *DatasetStore) Get(ctx context.Context, id string) (*Dataset, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, origin, row_count, csv_data, created_at
		FROM datasets WHERE id = ?`, id)

	var d Dataset
	err := row.Scan(&d.ID, &d.Name, &d.Origin, &d.RowCount, &d.CSV, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDatasetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: scan dataset: %w", err)
	}
	return &d, nil
}

// List returns dataset metadata newest-first, without CSV payloads.
func (s *DatasetStore) List(ctx context.Context) ([]Dataset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, origin, row_count, created_at
		FROM datasets ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: query datasets: %w", err)
	}
	defer rows.Close()

	var out []Dataset
	for rows.Next() {
		var d Dataset
		if err := rows.Scan(&d.ID, &d.Name, &d.Origin, &d.RowCount, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: scan dataset row: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate datasets: %w", err)
	}
	if out == nil {
		out = []Dataset{}
	}
	return out, nil
}

// Delete removes a dataset.
func (s *DatasetStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete dataset: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDatasetNotFound
	}
	return nil
}
