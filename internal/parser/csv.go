package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/referendum-atlas/referendum-atlas/internal/models"
	"github.com/referendum-atlas/referendum-atlas/pkg/checksum"
)

// Column names as they appear in the raw files.
const (
	colCode       = "code"
	colName       = "name"
	colRegionCode = "region_code"

	colDepartmentCode = "Department code"
	colRegistered     = "Registered"
	colAbstentions    = "Abstentions"
	colNull           = "Null"
	colChoiceA        = "Choice A"
	colChoiceB        = "Choice B"
)

// Loader reads the reference tables, the raw referendum table and the
// region geometries from disk. Each file handle lives only for the
// duration of its load call.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

// LoadRegions reads the comma-delimited region reference table.
func (l *Loader) LoadRegions(filePath string) ([]models.RegionRecord, error) {
	var regions []models.RegionRecord

	err := readCSV(filePath, ',', []string{colCode, colName}, func(record []string, idx map[string]int, line int) error {
		regions = append(regions, models.RegionRecord{
			Code: record[idx[colCode]],
			Name: record[idx[colName]],
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Loaded %d region records from %s", len(regions), filePath)
	return regions, nil
}

// LoadDepartments reads the comma-delimited department reference table.
func (l *Loader) LoadDepartments(filePath string) ([]models.DepartmentRecord, error) {
	var departments []models.DepartmentRecord

	err := readCSV(filePath, ',', []string{colCode, colRegionCode, colName}, func(record []string, idx map[string]int, line int) error {
		departments = append(departments, models.DepartmentRecord{
			Code:       record[idx[colCode]],
			Name:       record[idx[colName]],
			RegionCode: record[idx[colRegionCode]],
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Loaded %d department records from %s", len(departments), filePath)
	return departments, nil
}

// LoadReferendum reads the semicolon-delimited raw vote table.
func (l *Loader) LoadReferendum(filePath string) ([]models.VoteRecord, error) {
	required := []string{colDepartmentCode, colRegistered, colAbstentions, colNull, colChoiceA, colChoiceB}

	var votes []models.VoteRecord

	err := readCSV(filePath, ';', required, func(record []string, idx map[string]int, line int) error {
		vote, err := parseVoteRecord(record, idx)
		if err != nil {
			return &models.LoadError{File: filePath, Line: line, Message: "failed to parse vote record", Err: err}
		}

		if !vote.IsValid() {
			return &models.LoadError{File: filePath, Line: line, Message: "invalid vote record: empty department code or negative count"}
		}

		votes = append(votes, *vote)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Loaded %d vote records from %s", len(votes), filePath)
	return votes, nil
}

func parseVoteRecord(record []string, idx map[string]int) (*models.VoteRecord, error) {
	registered, err := strconv.ParseInt(record[idx[colRegistered]], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %q count: %w", colRegistered, err)
	}

	abstentions, err := strconv.ParseInt(record[idx[colAbstentions]], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %q count: %w", colAbstentions, err)
	}

	nullBallots, err := strconv.ParseInt(record[idx[colNull]], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %q count: %w", colNull, err)
	}

	choiceA, err := strconv.ParseInt(record[idx[colChoiceA]], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %q count: %w", colChoiceA, err)
	}

	choiceB, err := strconv.ParseInt(record[idx[colChoiceB]], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %q count: %w", colChoiceB, err)
	}

	return &models.VoteRecord{
		DepartmentCode: record[idx[colDepartmentCode]],
		Registered:     registered,
		Abstentions:    abstentions,
		Null:           nullBallots,
		ChoiceA:        choiceA,
		ChoiceB:        choiceB,
	}, nil
}

// readCSV opens a delimited file, indexes its header, and feeds every
// data record to handle. The file checksum is logged before parsing so
// runs over identical inputs can be compared in the logs.
func readCSV(filePath string, comma rune, requiredColumns []string, handle func(record []string, idx map[string]int, line int) error) error {
	fileSum, err := checksum.FileChecksum(filePath)
	if err != nil {
		return err
	}
	log.Printf("Reading %s (checksum %s)", filePath, fileSum)

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = comma

	header, err := reader.Read()
	if err != nil {
		return &models.LoadError{File: filePath, Line: 1, Message: "failed to read header", Err: err}
	}

	idx, err := headerIndex(filePath, header, requiredColumns)
	if err != nil {
		return err
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return &models.LoadError{File: filePath, Line: line, Message: "failed to read record", Err: err}
		}

		if err := handle(record, idx, line); err != nil {
			return err
		}
	}

	return nil
}

// headerIndex maps required column names to their positions. Extra input
// columns are simply never read, which is how unused columns get dropped.
func headerIndex(filePath string, header []string, requiredColumns []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, column := range header {
		idx[column] = i
	}

	for _, column := range requiredColumns {
		if _, ok := idx[column]; !ok {
			return nil, &models.LoadError{File: filePath, Line: 1, Message: fmt.Sprintf("missing required column %q", column)}
		}
	}

	return idx, nil
}
