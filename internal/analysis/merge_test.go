package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/referendum-atlas/referendum-atlas/internal/models"
)

func TestMergeRegionsAndDepartments(t *testing.T) {
	regions := []models.RegionRecord{{Code: "1", Name: "R1"}}
	departments := []models.DepartmentRecord{{Code: "01", RegionCode: "1", Name: "D1"}}

	areas := MergeRegionsAndDepartments(regions, departments)

	assert.Len(t, areas, 1)
	assert.Equal(t, models.AreaRecord{
		RegionCode:     "1",
		RegionName:     "R1",
		DepartmentCode: "01",
		DepartmentName: "D1",
	}, areas[0])
}

func TestMergeRegionsAndDepartmentsPreservesDepartmentRowCount(t *testing.T) {
	regions := []models.RegionRecord{
		{Code: "1", Name: "R1"},
		{Code: "2", Name: "R2"},
	}
	departments := []models.DepartmentRecord{
		{Code: "01", RegionCode: "1", Name: "D1"},
		{Code: "02", RegionCode: "1", Name: "D2"},
		{Code: "03", RegionCode: "2", Name: "D3"},
	}

	areas := MergeRegionsAndDepartments(regions, departments)

	assert.Len(t, areas, len(departments))
}

func TestMergeRegionsAndDepartmentsKeepsUnmatchedDepartments(t *testing.T) {
	regions := []models.RegionRecord{{Code: "1", Name: "R1"}}
	departments := []models.DepartmentRecord{
		{Code: "01", RegionCode: "1", Name: "D1"},
		{Code: "02", RegionCode: "9", Name: "D2"},
	}

	areas := MergeRegionsAndDepartments(regions, departments)

	assert.Len(t, areas, 2)
	assert.True(t, areas[0].RegionMatched())
	assert.False(t, areas[1].RegionMatched())
	assert.Empty(t, areas[1].RegionCode)
	assert.Empty(t, areas[1].RegionName)
	assert.Equal(t, "02", areas[1].DepartmentCode)
	assert.Equal(t, "D2", areas[1].DepartmentName)
}

func TestMergeReferendumAndAreas(t *testing.T) {
	areas := []models.AreaRecord{
		{RegionCode: "1", RegionName: "R1", DepartmentCode: "01", DepartmentName: "D1"},
	}
	votes := []models.VoteRecord{
		{DepartmentCode: "01", Registered: 100, Abstentions: 10, Null: 2, ChoiceA: 50, ChoiceB: 38},
	}

	enriched := MergeReferendumAndAreas(votes, areas, NewTerritorialFilter([]string{"97", "98", "99"}))

	assert.Len(t, enriched, 1)
	assert.Equal(t, "1", enriched[0].RegionCode)
	assert.Equal(t, "R1", enriched[0].RegionName)
	assert.Equal(t, "D1", enriched[0].DepartmentName)
	assert.Equal(t, int64(100), enriched[0].Registered)
	assert.Equal(t, int64(50), enriched[0].ChoiceA)
}

func TestMergeReferendumAndAreasDropsUnmatchedVotes(t *testing.T) {
	areas := []models.AreaRecord{
		{RegionCode: "1", RegionName: "R1", DepartmentCode: "01", DepartmentName: "D1"},
	}
	votes := []models.VoteRecord{
		{DepartmentCode: "01", Registered: 100},
		{DepartmentCode: "ZZ", Registered: 100},
	}

	enriched := MergeReferendumAndAreas(votes, areas, NewTerritorialFilter(nil))

	assert.Len(t, enriched, 1)
	assert.Equal(t, "01", enriched[0].DepartmentCode)
}

func TestMergeReferendumAndAreasDropsExcludedTerritories(t *testing.T) {
	areas := []models.AreaRecord{
		{RegionCode: "1", RegionName: "R1", DepartmentCode: "01", DepartmentName: "D1"},
		{RegionCode: "9", RegionName: "Overseas", DepartmentCode: "971", DepartmentName: "Guadeloupe"},
	}
	votes := []models.VoteRecord{
		{DepartmentCode: "01", Registered: 100, ChoiceA: 50, ChoiceB: 38},
		{DepartmentCode: "971", Registered: 200, ChoiceA: 80, ChoiceB: 90},
	}

	enriched := MergeReferendumAndAreas(votes, areas, NewTerritorialFilter([]string{"97", "98", "99"}))

	assert.Len(t, enriched, 1)
	for _, record := range enriched {
		assert.False(t, strings.HasPrefix(record.DepartmentCode, "97"))
		assert.False(t, strings.HasPrefix(record.DepartmentCode, "98"))
		assert.False(t, strings.HasPrefix(record.DepartmentCode, "99"))
	}
}
