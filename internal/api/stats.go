package api

import (
	"context"
	"net/http"

	"github.com/white3332/ai-planner/internal/domain"
)

// StatsService serves the dashboard's aggregate study metrics.
type StatsService interface {
	Stats(ctx context.Context) (*domain.StudyStats, error)
}

func (c *Client) Stats(ctx context.Context) (*domain.StudyStats, error) {
	var stats domain.StudyStats
	if err := c.do(ctx, "stats.get", http.MethodGet, "/api/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
