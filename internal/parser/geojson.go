package parser

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/referendum-atlas/referendum-atlas/internal/models"
	"github.com/referendum-atlas/referendum-atlas/pkg/checksum"
)

// LoadRegionGeometries reads the region boundary collection. Every
// feature must carry a "code" property matching a region code; the "nom"
// property, when present, supplies a display name.
func (l *Loader) LoadRegionGeometries(filePath string) ([]models.RegionGeometry, error) {
	fileSum, err := checksum.FileChecksum(filePath)
	if err != nil {
		return nil, err
	}
	log.Printf("Reading %s (checksum %s)", filePath, fileSum)

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	var collection geojson.FeatureCollection
	if err := json.Unmarshal(data, &collection); err != nil {
		return nil, &models.LoadError{File: filePath, Message: "failed to decode GeoJSON", Err: err}
	}

	geometries := make([]models.RegionGeometry, 0, len(collection.Features))
	for i, feature := range collection.Features {
		code := stringProperty(feature.Properties, "code")
		if code == "" {
			return nil, &models.LoadError{File: filePath, Message: fmt.Sprintf("feature %d has no %q property", i, "code")}
		}

		if feature.Geometry == nil {
			return nil, &models.LoadError{File: filePath, Message: fmt.Sprintf("feature %q has no geometry", code)}
		}
		switch feature.Geometry.(type) {
		case *geom.Polygon, *geom.MultiPolygon:
		default:
			return nil, &models.LoadError{File: filePath, Message: fmt.Sprintf("feature %q has unsupported geometry type %T", code, feature.Geometry)}
		}

		geometries = append(geometries, models.RegionGeometry{
			Code:     code,
			Name:     stringProperty(feature.Properties, "nom"),
			Geometry: feature.Geometry,
		})
	}

	log.Printf("Loaded %d region geometries from %s", len(geometries), filePath)
	return geometries, nil
}

func stringProperty(properties map[string]interface{}, key string) string {
	value, ok := properties[key]
	if !ok {
		return ""
	}
	s, _ := value.(string)
	return s
}
