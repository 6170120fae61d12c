package analysis

import (
	"github.com/referendum-atlas/referendum-atlas/internal/models"
)

// MergeRegionsAndDepartments flattens the two reference tables into one
// area lookup, one row per department. Departments drive the join; a
// department whose region code has no match keeps empty region fields
// rather than being dropped.
func MergeRegionsAndDepartments(regions []models.RegionRecord, departments []models.DepartmentRecord) []models.AreaRecord {
	regionsByCode := make(map[string]models.RegionRecord, len(regions))
	for _, region := range regions {
		regionsByCode[region.Code] = region
	}

	areas := make([]models.AreaRecord, 0, len(departments))
	for _, department := range departments {
		area := models.AreaRecord{
			DepartmentCode: department.Code,
			DepartmentName: department.Name,
		}
		if region, ok := regionsByCode[department.RegionCode]; ok {
			area.RegionCode = region.Code
			area.RegionName = region.Name
		}
		areas = append(areas, area)
	}

	return areas
}

// MergeReferendumAndAreas joins raw vote rows with the area lookup on
// department code, then removes rows outside the mainland scope. Unlike
// the area merge this join is strict: a vote row whose department code
// has no area match is silently dropped.
func MergeReferendumAndAreas(votes []models.VoteRecord, areas []models.AreaRecord, filter TerritorialFilter) []models.EnrichedVoteRecord {
	areasByDepartment := make(map[string]models.AreaRecord, len(areas))
	for _, area := range areas {
		areasByDepartment[area.DepartmentCode] = area
	}

	var enriched []models.EnrichedVoteRecord
	for _, vote := range votes {
		area, ok := areasByDepartment[vote.DepartmentCode]
		if !ok {
			continue
		}
		if filter.Excludes(vote.DepartmentCode) {
			continue
		}

		enriched = append(enriched, models.EnrichedVoteRecord{
			VoteRecord:     vote,
			RegionCode:     area.RegionCode,
			RegionName:     area.RegionName,
			DepartmentName: area.DepartmentName,
		})
	}

	return enriched
}
