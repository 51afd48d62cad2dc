package ports

import (
	"context"

	"proplens/domain/core"
	"proplens/domain/property"
)

// PropertyRepository persists raw source records. The pipeline itself
// never touches storage - repositories feed it and consume its output.
type PropertyRepository interface {
	// Save inserts or replaces a source record
	Save(ctx context.Context, rec *property.SourceRecord) error

	// GetByID retrieves one record
	GetByID(ctx context.Context, id core.PropertyID) (*property.SourceRecord, error)

	// List returns all records ordered by creation time
	List(ctx context.Context) ([]*property.SourceRecord, error)

	// Delete removes a record
	Delete(ctx context.Context, id core.PropertyID) error
}
