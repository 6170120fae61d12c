package models

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVoteRecordIsValid(t *testing.T) {
	valid := VoteRecord{DepartmentCode: "01", Registered: 100, Abstentions: 10, Null: 2, ChoiceA: 50, ChoiceB: 38}
	assert.True(t, valid.IsValid())

	noCode := valid
	noCode.DepartmentCode = ""
	assert.False(t, noCode.IsValid())

	negative := valid
	negative.ChoiceB = -1
	assert.False(t, negative.IsValid())
}

func TestAreaRecordRegionMatched(t *testing.T) {
	assert.True(t, AreaRecord{RegionCode: "1", DepartmentCode: "01"}.RegionMatched())
	assert.False(t, AreaRecord{DepartmentCode: "01"}.RegionMatched())
}

func TestMapFeatureHasRatio(t *testing.T) {
	assert.True(t, MapFeature{Ratio: 0.5}.HasRatio())
	assert.True(t, MapFeature{Ratio: 0}.HasRatio())
	assert.False(t, MapFeature{Ratio: math.NaN()}.HasRatio())
}

func TestRegionalTotalFields(t *testing.T) {
	total := RegionalTotal{
		RegionCode: "1", RegionName: "R1",
		Registered: 100, Abstentions: 10, Null: 2, ChoiceA: 50, ChoiceB: 38,
	}

	assert.Equal(t, []string{"1", "R1", "100", "10", "2", "50", "38"}, total.Fields())
}

func TestLoadErrorMessage(t *testing.T) {
	cause := errors.New("boom")

	withLine := &LoadError{File: "data/referendum.csv", Line: 12, Message: "failed to parse vote record", Err: cause}
	assert.Equal(t, "data/referendum.csv:12: failed to parse vote record: boom", withLine.Error())
	assert.ErrorIs(t, withLine, cause)

	withoutLine := &LoadError{File: "data/regions.geojson", Message: "failed to decode GeoJSON"}
	assert.Equal(t, "data/regions.geojson: failed to decode GeoJSON", withoutLine.Error())
}
