// Package upstream implements the repository port for the two remote JSON
// documents: the area hierarchy and the pharmacy GeoJSON points.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maskmap-service/internal/config"
	"github.com/maskmap-service/internal/domain"
	"github.com/maskmap-service/internal/domain/repository"
)

type client struct {
	httpClient  *resty.Client
	areaURL     string
	pharmacyURL string
	logger      *zap.Logger
}

// NewClient creates the upstream fetch client.
func NewClient(cfg *config.UpstreamConfig, logger *zap.Logger) repository.UpstreamRepository {
	httpClient := resty.New().
		SetTimeout(time.Duration(cfg.RequestTimeout) * time.Second).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second)

	return &client{
		httpClient:  httpClient,
		areaURL:     cfg.AreaURL,
		pharmacyURL: cfg.PharmacyURL,
		logger:      logger,
	}
}

// FetchAreaData retrieves and parses the city/district hierarchy.
func (c *client) FetchAreaData(ctx context.Context) ([]domain.City, error) {
	body, err := c.fetch(ctx, c.areaURL, "area")
	if err != nil {
		return nil, err
	}

	var cities []domain.City
	if err := json.Unmarshal(body, &cities); err != nil {
		c.logger.Error("Failed to parse area data", zap.Error(err))
		return nil, fmt.Errorf("failed to parse area data: %w", err)
	}

	return cities, nil
}

// FetchPharmacies retrieves and parses the pharmacy GeoJSON FeatureCollection.
func (c *client) FetchPharmacies(ctx context.Context) (*domain.FeatureCollection, error) {
	body, err := c.fetch(ctx, c.pharmacyURL, "pharmacy")
	if err != nil {
		return nil, err
	}

	var fc domain.FeatureCollection
	if err := json.Unmarshal(body, &fc); err != nil {
		c.logger.Error("Failed to parse pharmacy data", zap.Error(err))
		return nil, fmt.Errorf("failed to parse pharmacy data: %w", err)
	}

	return &fc, nil
}

func (c *client) fetch(ctx context.Context, url, source string) ([]byte, error) {
	fetchID := uuid.NewString()

	c.logger.Debug("Fetching upstream data",
		zap.String("fetch_id", fetchID),
		zap.String("source", source),
		zap.String("url", url))

	resp, err := c.httpClient.R().SetContext(ctx).Get(url)
	if err != nil {
		c.logger.Error("Failed to fetch upstream data",
			zap.String("fetch_id", fetchID),
			zap.String("source", source),
			zap.Error(err))
		return nil, fmt.Errorf("failed to fetch %s data: %w", source, err)
	}

	if resp.StatusCode() != 200 {
		c.logger.Error("Upstream returned error status",
			zap.String("fetch_id", fetchID),
			zap.String("source", source),
			zap.Int("status_code", resp.StatusCode()))
		return nil, fmt.Errorf("%s upstream error: status %d", source, resp.StatusCode())
	}

	c.logger.Debug("Upstream fetch successful",
		zap.String("fetch_id", fetchID),
		zap.String("source", source),
		zap.Int("bytes", len(resp.Body())))

	return resp.Body(), nil
}
