package pipeline

import (
	"fmt"
	"io"
	"log"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/referendum-atlas/referendum-atlas/internal/analysis"
	"github.com/referendum-atlas/referendum-atlas/internal/config"
	"github.com/referendum-atlas/referendum-atlas/internal/models"
	"github.com/referendum-atlas/referendum-atlas/internal/render"
	"github.com/referendum-atlas/referendum-atlas/pkg/checksum"
)

// Loader supplies the four input datasets.
type Loader interface {
	LoadRegions(filePath string) ([]models.RegionRecord, error)
	LoadDepartments(filePath string) ([]models.DepartmentRecord, error)
	LoadReferendum(filePath string) ([]models.VoteRecord, error)
	LoadRegionGeometries(filePath string) ([]models.RegionGeometry, error)
}

// Renderer draws the final figure from the joined dataset.
type Renderer interface {
	Render(features []models.MapFeature, spec render.Spec, outputPath string) error
}

// Service runs the whole pipeline: load, merge, filter, aggregate, print,
// render. Every stage is strictly sequential and operates on immutable
// in-memory tables.
type Service struct {
	loader   Loader
	renderer Renderer
	config   config.Config
	out      io.Writer
}

func NewService(loader Loader, renderer Renderer, cfg config.Config, out io.Writer) *Service {
	return &Service{
		loader:   loader,
		renderer: renderer,
		config:   cfg,
		out:      out,
	}
}

// Execute orchestrates the analysis workflow.
func (s *Service) Execute() error {
	// Step 1: load the reference tables and the raw vote table.
	regions, err := s.loader.LoadRegions(s.config.RegionsPath())
	if err != nil {
		return fmt.Errorf("failed to load regions: %w", err)
	}

	departments, err := s.loader.LoadDepartments(s.config.DepartmentsPath())
	if err != nil {
		return fmt.Errorf("failed to load departments: %w", err)
	}

	votes, err := s.loader.LoadReferendum(s.config.ReferendumPath())
	if err != nil {
		return fmt.Errorf("failed to load referendum results: %w", err)
	}

	// Step 2: flatten the reference tables into the area lookup.
	areas := analysis.MergeRegionsAndDepartments(regions, departments)
	log.Printf("Merged %d departments into the area lookup", len(areas))

	// Step 3: join votes with areas and drop excluded territories.
	filter := analysis.NewTerritorialFilter(s.config.ExcludedPrefixes)
	enriched := analysis.MergeReferendumAndAreas(votes, areas, filter)
	log.Printf("Joined %d of %d vote records after territorial filtering (excluded prefixes: %v)",
		len(enriched), len(votes), filter.Prefixes)

	// Step 4: aggregate by region.
	results := analysis.ComputeResultsByRegion(enriched)
	log.Printf("Aggregated totals for %d regions (table fingerprint %s)",
		results.Len(), checksum.TableHash(results.Fields()))

	// Step 5: print the totals table.
	if err := s.printResults(results); err != nil {
		return fmt.Errorf("failed to print results table: %w", err)
	}

	// Step 6: join the aggregated results onto the region boundaries.
	geometries, err := s.loader.LoadRegionGeometries(s.config.GeometriesPath())
	if err != nil {
		return fmt.Errorf("failed to load region geometries: %w", err)
	}

	features := analysis.BuildMapFeatures(geometries, results)
	defined := 0
	for _, feature := range features {
		if feature.HasRatio() {
			defined++
		}
	}
	log.Printf("Built %d map features, %d with a defined ratio", len(features), defined)

	// Step 7: hand the dataset and the directive to the renderer.
	spec := render.DefaultSpec(s.config.MapWidth, s.config.MapHeight)
	if err := s.renderer.Render(features, spec, s.config.MapOutputPath); err != nil {
		return fmt.Errorf("failed to render map: %w", err)
	}

	return nil
}

func (s *Service) printResults(results *analysis.ResultTable) error {
	printer := message.NewPrinter(language.English)

	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "code_reg\tname_reg\tRegistered\tAbstentions\tNull\tChoice A\tChoice B")
	for _, row := range results.Rows() {
		printer.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
			row.RegionCode, row.RegionName, row.Registered, row.Abstentions, row.Null, row.ChoiceA, row.ChoiceB)
	}

	return w.Flush()
}
