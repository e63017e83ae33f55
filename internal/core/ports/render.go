package ports

import "github.com/johnstonks-git/klimata/internal/core/domain"

// CityStats carries the dataset-wide mean of each metric layer.
type CityStats struct {
	MeanUrbanRisk       float64
	MeanPopulation      float64
	MeanAmenityIndex    float64
	MeanClimateExposure float64
}

// Mean returns the city-wide mean for the given layer.
func (s CityStats) Mean(layer domain.MetricLayer) float64 {
	switch layer {
	case domain.LayerPopulation:
		return s.MeanPopulation
	case domain.LayerAmenityIndex:
		return s.MeanAmenityIndex
	case domain.LayerClimateExposure:
		return s.MeanClimateExposure
	default:
		return s.MeanUrbanRisk
	}
}

// RankedBarangay is one entry of the top-at-risk list.
type RankedBarangay struct {
	Name      string
	UrbanRisk float64
}

// RiskBucket counts barangays sharing one risk label.
type RiskBucket struct {
	Label string
	Count int
}

// MetricComparison contrasts one barangay's metric with the city mean.
type MetricComparison struct {
	Layer    domain.MetricLayer
	Barangay float64
	City     float64
}

// RenderRequest describes which rendering collaborator to invoke and with
// what read-only inputs. View doubles as the collaborator name; the other
// fields are populated only where the view consumes them. The View Router
// produces these without mutating session or credential state.
type RenderRequest struct {
	View     domain.View
	Username string // manage-account view only; never the hash

	// City overview inputs.
	Layer      domain.MetricLayer
	Records    []domain.BarangayRecord
	Stats      *CityStats
	TopAtRisk  []RankedBarangay
	RiskLevels []RiskBucket

	// Deep-dive inputs. Selected is nil for a no-selection rendering.
	Selected   *domain.BarangayRecord
	Comparison []MetricComparison
}
