package render

import (
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/twpayne/go-geom"

	"github.com/referendum-atlas/referendum-atlas/internal/models"
)

const missingDataColor = "#d9d9d9"

// ColorBrewer diverging RdBu palettes, low ratio first.
var rdBuPalettes = map[int][]string{
	3: {"#ef8a62", "#f7f7f7", "#67a9cf"},
	5: {"#ca0020", "#f4a582", "#f7f7f7", "#92c5de", "#0571b0"},
	7: {"#b2182b", "#ef8a62", "#fddbc7", "#f7f7f7", "#d1e5f0", "#67a9cf", "#2166ac"},
}

// SVGRenderer draws the choropleth to an SVG file. Regions without a
// defined ratio get the missing-data fill.
type SVGRenderer struct{}

func NewSVGRenderer() *SVGRenderer {
	return &SVGRenderer{}
}

// Render classifies the feature ratios per the spec, projects every
// region boundary into the figure viewport, and writes the SVG.
func (r *SVGRenderer) Render(features []models.MapFeature, spec Spec, outputPath string) error {
	palette, ok := rdBuPalettes[spec.Classes]
	if !ok {
		return fmt.Errorf("unsupported class count %d for color map %s", spec.Classes, spec.ColorMap)
	}

	var ratios []float64
	for _, feature := range features {
		if feature.HasRatio() {
			ratios = append(ratios, feature.Ratio)
		}
	}
	breaks := quantileBreaks(ratios, spec.Classes)

	projection, err := newProjection(features, spec)
	if err != nil {
		return err
	}

	var svg strings.Builder
	fmt.Fprintf(&svg, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		spec.Width, spec.Height, spec.Width, spec.Height)
	fmt.Fprintf(&svg, `<rect width="%d" height="%d" fill="white"/>`+"\n", spec.Width, spec.Height)
	fmt.Fprintf(&svg, `<text x="%d" y="32" text-anchor="middle" font-family="sans-serif" font-size="20">%s</text>`+"\n",
		spec.Width/2, spec.Title)

	for _, feature := range features {
		fill := missingDataColor
		if feature.HasRatio() {
			fill = palette[classIndex(feature.Ratio, breaks)]
		}

		path := projection.path(feature.Geometry)
		if path == "" {
			log.Printf("Skipping region %s: empty geometry", feature.RegionCode)
			continue
		}

		fmt.Fprintf(&svg, `<path d="%s" fill="%s" stroke="%s" stroke-width="%.2f" fill-rule="evenodd"><title>%s</title></path>`+"\n",
			path, fill, spec.EdgeColor, spec.LineWidth, feature.RegionCode)
	}

	if spec.Legend {
		writeLegend(&svg, spec, palette, breaks, len(ratios) < len(features))
	}

	svg.WriteString("</svg>\n")

	if err := os.WriteFile(outputPath, []byte(svg.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write map to %s: %w", outputPath, err)
	}

	log.Printf("Rendered %d regions to %s", len(features), outputPath)
	return nil
}

// quantileBreaks returns the upper bound of each class, computed from
// the sorted defined ratios. Returns nil when there is nothing to
// classify.
func quantileBreaks(ratios []float64, classes int) []float64 {
	if len(ratios) == 0 {
		return nil
	}

	sorted := append([]float64(nil), ratios...)
	sort.Float64s(sorted)

	breaks := make([]float64, classes)
	for i := 0; i < classes; i++ {
		rank := (i + 1) * len(sorted) / classes
		if rank > 0 {
			rank--
		}
		breaks[i] = sorted[rank]
	}
	breaks[classes-1] = sorted[len(sorted)-1]

	return breaks
}

func classIndex(ratio float64, breaks []float64) int {
	for i, upper := range breaks {
		if ratio <= upper {
			return i
		}
	}
	return len(breaks) - 1
}

// projection maps lon/lat coordinates into the SVG viewport, preserving
// aspect ratio and flipping the y axis.
type projection struct {
	minX, maxY float64
	scale      float64
	offsetX    float64
	offsetY    float64
}

func newProjection(features []models.MapFeature, spec Spec) (*projection, error) {
	bounds := geom.NewBounds(geom.XY)
	found := false
	for _, feature := range features {
		if feature.Geometry != nil {
			bounds = bounds.Extend(feature.Geometry)
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("no geometry to render")
	}

	const marginTop, margin = 48.0, 16.0
	drawWidth := float64(spec.Width) - 2*margin
	drawHeight := float64(spec.Height) - marginTop - margin

	spanX := bounds.Max(0) - bounds.Min(0)
	spanY := bounds.Max(1) - bounds.Min(1)
	if spanX == 0 || spanY == 0 {
		return nil, fmt.Errorf("degenerate geometry bounds")
	}

	scale := math.Min(drawWidth/spanX, drawHeight/spanY)

	return &projection{
		minX:    bounds.Min(0),
		maxY:    bounds.Max(1),
		scale:   scale,
		offsetX: margin + (drawWidth-spanX*scale)/2,
		offsetY: marginTop + (drawHeight-spanY*scale)/2,
	}, nil
}

func (p *projection) point(coord geom.Coord) (float64, float64) {
	return p.offsetX + (coord[0]-p.minX)*p.scale, p.offsetY + (p.maxY-coord[1])*p.scale
}

// path renders a Polygon or MultiPolygon as a single SVG path, one
// subpath per ring.
func (p *projection) path(geometry geom.T) string {
	var rings [][]geom.Coord
	switch g := geometry.(type) {
	case *geom.Polygon:
		rings = g.Coords()
	case *geom.MultiPolygon:
		for _, polygon := range g.Coords() {
			rings = append(rings, polygon...)
		}
	default:
		return ""
	}

	var path strings.Builder
	for _, ring := range rings {
		for i, coord := range ring {
			x, y := p.point(coord)
			if i == 0 {
				fmt.Fprintf(&path, "M%.2f,%.2f", x, y)
			} else {
				fmt.Fprintf(&path, "L%.2f,%.2f", x, y)
			}
		}
		path.WriteString("Z")
	}

	return path.String()
}

func writeLegend(svg *strings.Builder, spec Spec, palette []string, breaks []float64, hasMissing bool) {
	const swatch = 16.0
	x := float64(spec.Width) - 150
	y := 60.0

	if breaks != nil {
		for i, color := range palette {
			label := fmt.Sprintf("up to %.3f", breaks[i])
			if i > 0 {
				label = fmt.Sprintf("%.3f to %.3f", breaks[i-1], breaks[i])
			}
			fmt.Fprintf(svg, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="black" stroke-width="0.5"/>`+"\n", x, y, swatch, swatch, color)
			fmt.Fprintf(svg, `<text x="%.1f" y="%.1f" font-family="sans-serif" font-size="11">%s</text>`+"\n", x+swatch+6, y+swatch-4, label)
			y += swatch + 6
		}
	}

	if hasMissing {
		fmt.Fprintf(svg, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="black" stroke-width="0.5"/>`+"\n", x, y, swatch, swatch, missingDataColor)
		fmt.Fprintf(svg, `<text x="%.1f" y="%.1f" font-family="sans-serif" font-size="11">no data</text>`+"\n", x+swatch+6, y+swatch-4)
	}
}
