package catalog

import (
	"context"

	"github.com/webtor-io/popcorn/models"
)

// Catalog is a read-only remote movie catalog
type Catalog interface {
	// Search returns movies matching query, ErrNotFound if there are none
	Search(ctx context.Context, query string) ([]models.SearchResultItem, error)
	// GetByID returns the full record for a catalog identifier, ErrNotFound if it is unknown
	GetByID(ctx context.Context, id string) (*models.MovieDetail, error)
}
