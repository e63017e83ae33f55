package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/johnstonks-git/klimata/internal/core/domain"
	"github.com/johnstonks-git/klimata/internal/core/ports"
)

const topAtRiskCount = 5

// ViewRouter maps a session snapshot to a RenderRequest for the external
// rendering collaborator. It reads the dataset and mutates nothing.
type ViewRouter struct {
	dataset ports.DatasetRepository
}

func NewViewRouter(dataset ports.DatasetRepository) *ViewRouter {
	return &ViewRouter{dataset: dataset}
}

// Route builds the rendering inputs for the session's active view.
func (r *ViewRouter) Route(ctx context.Context, session domain.Session) (*ports.RenderRequest, error) {
	switch session.ActiveView {
	case domain.ViewLogin, domain.ViewSignUp:
		return &ports.RenderRequest{View: session.ActiveView}, nil

	case domain.ViewManageAccount:
		// Only the username crosses this boundary, never the hash.
		return &ports.RenderRequest{View: session.ActiveView, Username: session.Username}, nil

	case domain.ViewCityOverview:
		records, err := r.dataset.All(ctx)
		if err != nil {
			return nil, fmt.Errorf("route city overview: %w", err)
		}
		stats := CityStats(records)
		return &ports.RenderRequest{
			View:       session.ActiveView,
			Layer:      session.Layer,
			Records:    records,
			Stats:      &stats,
			TopAtRisk:  TopAtRisk(records, topAtRiskCount),
			RiskLevels: RiskDistribution(records),
		}, nil

	case domain.ViewBarangayDeepDive:
		records, err := r.dataset.All(ctx)
		if err != nil {
			return nil, fmt.Errorf("route deep dive: %w", err)
		}
		req := &ports.RenderRequest{View: session.ActiveView, Records: records}

		// An empty or unknown selection is a no-selection rendering,
		// not an error.
		if session.SelectedBarangay == "" {
			return req, nil
		}
		selected, err := r.dataset.FindByName(ctx, session.SelectedBarangay)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return req, nil
			}
			return nil, fmt.Errorf("route deep dive: %w", err)
		}
		stats := CityStats(records)
		req.Selected = selected
		req.Stats = &stats
		req.Comparison = Compare(*selected, stats)
		return req, nil

	default:
		return nil, fmt.Errorf("route: unknown view %q", session.ActiveView)
	}
}
