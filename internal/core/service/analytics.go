package service

import (
	"sort"

	"github.com/johnstonks-git/klimata/internal/core/domain"
	"github.com/johnstonks-git/klimata/internal/core/ports"
)

// CityStats computes the dataset-wide mean of each metric layer.
func CityStats(records []domain.BarangayRecord) ports.CityStats {
	var stats ports.CityStats
	if len(records) == 0 {
		return stats
	}

	for _, r := range records {
		stats.MeanUrbanRisk += r.UrbanRisk
		stats.MeanPopulation += r.Population
		stats.MeanAmenityIndex += r.AmenityIndex
		stats.MeanClimateExposure += r.ClimateExposure
	}

	n := float64(len(records))
	stats.MeanUrbanRisk /= n
	stats.MeanPopulation /= n
	stats.MeanAmenityIndex /= n
	stats.MeanClimateExposure /= n
	return stats
}

// TopAtRisk returns the n barangays with the highest urban risk, descending.
func TopAtRisk(records []domain.BarangayRecord, n int) []ports.RankedBarangay {
	ranked := make([]ports.RankedBarangay, 0, len(records))
	for _, r := range records {
		ranked = append(ranked, ports.RankedBarangay{Name: r.Name, UrbanRisk: r.UrbanRisk})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].UrbanRisk != ranked[j].UrbanRisk {
			return ranked[i].UrbanRisk > ranked[j].UrbanRisk
		}
		return ranked[i].Name < ranked[j].Name
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// RiskDistribution counts barangays per risk label, most common first.
// Records with an empty label are left out.
func RiskDistribution(records []domain.BarangayRecord) []ports.RiskBucket {
	counts := make(map[string]int)
	for _, r := range records {
		if r.RiskLabel != "" {
			counts[r.RiskLabel]++
		}
	}

	buckets := make([]ports.RiskBucket, 0, len(counts))
	for label, count := range counts {
		buckets = append(buckets, ports.RiskBucket{Label: label, Count: count})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Label < buckets[j].Label
	})
	return buckets
}

// Compare contrasts one barangay's metrics with the city means, one entry
// per metric layer in display order.
func Compare(record domain.BarangayRecord, stats ports.CityStats) []ports.MetricComparison {
	comparison := make([]ports.MetricComparison, 0, len(domain.MetricLayers))
	for _, layer := range domain.MetricLayers {
		comparison = append(comparison, ports.MetricComparison{
			Layer:    layer,
			Barangay: record.Metric(layer),
			City:     stats.Mean(layer),
		})
	}
	return comparison
}
