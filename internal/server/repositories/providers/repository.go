// Package providers persists the seamstress directory: listing rows, the
// featured subset, and full profiles with offers and reviews.
package providers

import (
	"context"

	"github.com/atelieperto/atelieperto/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Provider, error)
	Featured(ctx context.Context) ([]models.Provider, error)
	GetProfile(ctx context.Context, id int64) (*models.Profile, error)
}
