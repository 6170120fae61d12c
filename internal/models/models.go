package models

import (
	"fmt"
	"math"
	"strconv"

	"github.com/twpayne/go-geom"
)

// RegionRecord is one row of the region reference table.
type RegionRecord struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// DepartmentRecord is one row of the department reference table. Codes are
// zero-padded strings; RegionCode points at the owning RegionRecord.
type DepartmentRecord struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	RegionCode string `json:"region_code"`
}

// AreaRecord is the flat region/department lookup produced by merging the
// two reference tables. Region fields are empty when the department's
// region code had no match (the merge is a lenient left join).
type AreaRecord struct {
	RegionCode     string `json:"code_reg"`
	RegionName     string `json:"name_reg"`
	DepartmentCode string `json:"code_dep"`
	DepartmentName string `json:"name_dep"`
}

// RegionMatched reports whether the department's region code resolved
// against the region reference table.
func (a AreaRecord) RegionMatched() bool {
	return a.RegionCode != ""
}

// VoteRecord is one raw referendum row, keyed by department code.
type VoteRecord struct {
	DepartmentCode string `json:"code_dep"`
	Registered     int64  `json:"registered"`
	Abstentions    int64  `json:"abstentions"`
	Null           int64  `json:"null"`
	ChoiceA        int64  `json:"choice_a"`
	ChoiceB        int64  `json:"choice_b"`
}

func (v *VoteRecord) IsValid() bool {
	return v.DepartmentCode != "" &&
		v.Registered >= 0 &&
		v.Abstentions >= 0 &&
		v.Null >= 0 &&
		v.ChoiceA >= 0 &&
		v.ChoiceB >= 0
}

// EnrichedVoteRecord is a VoteRecord joined with its AreaRecord.
type EnrichedVoteRecord struct {
	VoteRecord
	RegionCode     string `json:"code_reg"`
	RegionName     string `json:"name_reg"`
	DepartmentName string `json:"name_dep"`
}

// RegionalTotal is one aggregated row per region: the five count columns
// summed across every surviving department of the region.
type RegionalTotal struct {
	RegionCode  string `json:"code_reg"`
	RegionName  string `json:"name_reg"`
	Registered  int64  `json:"registered"`
	Abstentions int64  `json:"abstentions"`
	Null        int64  `json:"null"`
	ChoiceA     int64  `json:"choice_a"`
	ChoiceB     int64  `json:"choice_b"`
}

// Fields returns the row as plain strings in stable column order, for
// fingerprinting and golden-output comparison.
func (t RegionalTotal) Fields() []string {
	return []string{
		t.RegionCode,
		t.RegionName,
		strconv.FormatInt(t.Registered, 10),
		strconv.FormatInt(t.Abstentions, 10),
		strconv.FormatInt(t.Null, 10),
		strconv.FormatInt(t.ChoiceA, 10),
		strconv.FormatInt(t.ChoiceB, 10),
	}
}

// RegionGeometry is one region boundary from the GeoJSON source.
type RegionGeometry struct {
	Code     string
	Name     string
	Geometry geom.T
}

// MapFeature is a region boundary joined with its aggregated results.
// Totals is nil when no vote data matched the geometry; Ratio is NaN when
// undefined (no data, or a zero ChoiceA+ChoiceB denominator).
type MapFeature struct {
	RegionCode string
	RegionName string
	Geometry   geom.T
	Totals     *RegionalTotal
	Ratio      float64
}

// HasRatio reports whether the feature carries a defined ratio.
func (f MapFeature) HasRatio() bool {
	return !math.IsNaN(f.Ratio)
}

// LoadError describes a fatal input problem with enough context to point
// at the offending file and line.
type LoadError struct {
	File    string
	Line    int
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		if e.Err != nil {
			return fmt.Sprintf("%s:%d: %s: %v", e.File, e.Line, e.Message, e.Err)
		}
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.File, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
