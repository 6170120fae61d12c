package analysis

import (
	"github.com/referendum-atlas/referendum-atlas/internal/models"
)

// ResultTable holds one RegionalTotal per region. Row order is the order
// in which region codes were first seen in the input, and lookup by
// region code is O(1).
type ResultTable struct {
	rows  []models.RegionalTotal
	index map[string]int
}

func (t *ResultTable) Rows() []models.RegionalTotal {
	return t.rows
}

func (t *ResultTable) Len() int {
	return len(t.rows)
}

// ByCode returns the aggregated row for a region code.
func (t *ResultTable) ByCode(code string) (models.RegionalTotal, bool) {
	i, ok := t.index[code]
	if !ok {
		return models.RegionalTotal{}, false
	}
	return t.rows[i], true
}

// Fields returns every row as plain strings, for fingerprinting.
func (t *ResultTable) Fields() [][]string {
	fields := make([][]string, 0, len(t.rows))
	for _, row := range t.rows {
		fields = append(fields, row.Fields())
	}
	return fields
}

// ComputeResultsByRegion groups the enriched vote rows by (region code,
// region name) and sums the five count columns within each group. Only
// regions with at least one surviving row appear.
func ComputeResultsByRegion(enriched []models.EnrichedVoteRecord) *ResultTable {
	table := &ResultTable{index: make(map[string]int)}

	for _, record := range enriched {
		i, ok := table.index[record.RegionCode]
		if !ok {
			i = len(table.rows)
			table.index[record.RegionCode] = i
			table.rows = append(table.rows, models.RegionalTotal{
				RegionCode: record.RegionCode,
				RegionName: record.RegionName,
			})
		}

		row := &table.rows[i]
		row.Registered += record.Registered
		row.Abstentions += record.Abstentions
		row.Null += record.Null
		row.ChoiceA += record.ChoiceA
		row.ChoiceB += record.ChoiceB
	}

	return table
}
