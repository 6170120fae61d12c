package analysis

import (
	"math"

	"github.com/referendum-atlas/referendum-atlas/internal/models"
)

// BuildMapFeatures joins region boundaries with the aggregated results.
// Geometry drives the join: every region appears on the map even when no
// vote data matched it, with nil totals and an undefined ratio.
func BuildMapFeatures(geometries []models.RegionGeometry, results *ResultTable) []models.MapFeature {
	features := make([]models.MapFeature, 0, len(geometries))

	for _, geometry := range geometries {
		feature := models.MapFeature{
			RegionCode: geometry.Code,
			RegionName: geometry.Name,
			Geometry:   geometry.Geometry,
			Ratio:      math.NaN(),
		}

		if total, ok := results.ByCode(geometry.Code); ok {
			feature.Totals = &total
			feature.Ratio = choiceRatio(total.ChoiceA, total.ChoiceB)
			if feature.RegionName == "" {
				feature.RegionName = total.RegionName
			}
		}

		features = append(features, feature)
	}

	return features
}

// choiceRatio is the Choice-A share of ballots expressed for either
// choice. A zero denominator leaves the ratio undefined.
func choiceRatio(choiceA, choiceB int64) float64 {
	expressed := choiceA + choiceB
	if expressed == 0 {
		return math.NaN()
	}
	return float64(choiceA) / float64(expressed)
}
