package domain

// MetricLayer names one of the per-barangay metrics the overview map can
// be colored by.
type MetricLayer string

const (
	LayerUrbanRisk       MetricLayer = "urban_risk"
	LayerPopulation      MetricLayer = "population"
	LayerAmenityIndex    MetricLayer = "amenity_index"
	LayerClimateExposure MetricLayer = "climate_exposure"
)

// MetricLayers lists the selectable layers in display order.
var MetricLayers = []MetricLayer{
	LayerUrbanRisk,
	LayerPopulation,
	LayerAmenityIndex,
	LayerClimateExposure,
}

// IsValid reports whether l is one of the known metric layers.
func (l MetricLayer) IsValid() bool {
	for _, known := range MetricLayers {
		if known == l {
			return true
		}
	}
	return false
}

// BarangayRecord is one row of the external climate-vulnerability dataset.
// The core consumes it read-only and keys it by Name; Geometry is an opaque
// WKT blob passed through to the rendering collaborator untouched.
type BarangayRecord struct {
	Name            string  `json:"name"`
	PSGCode         string  `json:"psg_code"`
	UrbanRisk       float64 `json:"urban_risk"`
	Population      float64 `json:"population"`
	AmenityIndex    float64 `json:"amenity_index"`
	ClimateExposure float64 `json:"climate_exposure"`
	RiskLabel       string  `json:"risk_label"`
	Geometry        string  `json:"-"`
}

// Metric returns the value of the given layer for this record.
func (r BarangayRecord) Metric(layer MetricLayer) float64 {
	switch layer {
	case LayerPopulation:
		return r.Population
	case LayerAmenityIndex:
		return r.AmenityIndex
	case LayerClimateExposure:
		return r.ClimateExposure
	default:
		return r.UrbanRisk
	}
}
