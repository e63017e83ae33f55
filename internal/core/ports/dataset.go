package ports

import (
	"context"

	"github.com/johnstonks-git/klimata/internal/core/domain"
)

// DatasetRepository serves the read-only barangay metrics dataset. The core
// does not validate its schema beyond requiring the name key.
type DatasetRepository interface {
	All(ctx context.Context) ([]domain.BarangayRecord, error)
	// FindByName returns the record for the given barangay name or
	// domain.ErrNotFound.
	FindByName(ctx context.Context, name string) (*domain.BarangayRecord, error)
}
