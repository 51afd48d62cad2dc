package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"proplens/domain/core"
	"proplens/domain/property"
	"proplens/ports"
)

// propertyRepository implements the PropertyRepository interface over a
// properties table storing each record's sections as JSONB
type propertyRepository struct {
	db *sqlx.DB
}

// NewPropertyRepository creates a new property repository
func NewPropertyRepository(db *sqlx.DB) ports.PropertyRepository {
	return &propertyRepository{db: db}
}

// Save inserts or replaces a source record
func (r *propertyRepository) Save(ctx context.Context, rec *property.SourceRecord) error {
	recordJSON, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal source record: %w", err)
	}

	query := `INSERT INTO properties (id, record, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET record = $2, updated_at = $4`

	now := time.Now().UTC()
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	_, err = r.db.ExecContext(ctx, query, rec.ID.String(), recordJSON, createdAt, now)
	if err != nil {
		return fmt.Errorf("failed to save property: %w", err)
	}
	return nil
}

// GetByID retrieves one record
func (r *propertyRepository) GetByID(ctx context.Context, id core.PropertyID) (*property.SourceRecord, error) {
	query := `SELECT record FROM properties WHERE id = $1`

	var recordJSON []byte
	err := r.db.QueryRowContext(ctx, query, id.String()).Scan(&recordJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.NewNotFoundError("property", id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	var rec property.SourceRecord
	if err := json.Unmarshal(recordJSON, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal source record: %w", err)
	}
	return &rec, nil
}

// List returns all records ordered by creation time
func (r *propertyRepository) List(ctx context.Context) ([]*property.SourceRecord, error) {
	query := `SELECT record FROM properties ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	var records []*property.SourceRecord
	for rows.Next() {
		var recordJSON []byte
		if err := rows.Scan(&recordJSON); err != nil {
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		var rec property.SourceRecord
		if err := json.Unmarshal(recordJSON, &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal source record: %w", err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate properties: %w", err)
	}
	return records, nil
}

// Delete removes a record
func (r *propertyRepository) Delete(ctx context.Context, id core.PropertyID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return core.NewNotFoundError("property", id.String())
	}
	return nil
}
