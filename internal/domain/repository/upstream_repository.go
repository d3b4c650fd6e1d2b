package repository

import (
	"context"

	"github.com/maskmap-service/internal/domain"
)

// UpstreamRepository fetches the two remote JSON documents the service is built on.
type UpstreamRepository interface {
	// FetchAreaData retrieves the city/district hierarchy.
	FetchAreaData(ctx context.Context) ([]domain.City, error)

	// FetchPharmacies retrieves the pharmacy GeoJSON FeatureCollection.
	FetchPharmacies(ctx context.Context) (*domain.FeatureCollection, error)
}
