package input

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/limaJavier/alignments/pkg/model"

	"github.com/samber/lo"
)

// ChoicesFromCsv reads the student choices stored at file
func ChoicesFromCsv(file string, maxChoices int) (model.Choices, error) {
	reader, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("cannot open input file: %w", err)
	}
	defer reader.Close()

	return ParseChoices(reader, maxChoices)
}

// ParseChoices reads a header row followed by one "student,specialty,..." row per student. The delimiter
// (',' or ';') is taken from the header. Blank cells are ignored and specialties are trimmed and sorted
func ParseChoices(reader io.Reader, maxChoices int) (model.Choices, error) {
	buffered := bufio.NewReader(reader)
	header, err := buffered.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("cannot read header: %w", err)
	} else if strings.TrimSpace(header) == "" {
		return nil, fmt.Errorf("missing header row")
	}

	csvReader := csv.NewReader(buffered)
	csvReader.Comma = delimiter(header)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	choices := make(model.Choices)
	for {
		row, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("cannot read row: %w", err)
		}
		line, _ := csvReader.FieldPos(0)
		line++ // Account for the header

		if lo.EveryBy(row, func(cell string) bool { return strings.TrimSpace(cell) == "" }) {
			continue
		}

		student := strings.TrimSpace(row[0])
		if student == "" {
			return nil, fmt.Errorf("line %d: missing student identifier", line)
		} else if _, ok := choices[student]; ok {
			return nil, fmt.Errorf("line %d: student \"%v\" is listed more than once", line, student)
		}

		specialties := lo.FilterMap(row[1:], func(cell string, _ int) (model.Specialty, bool) {
			cell = strings.TrimSpace(cell)
			return model.Specialty(cell), cell != ""
		})
		slices.Sort(specialties)

		if duplicates := lo.FindDuplicates(specialties); len(duplicates) > 0 {
			return nil, fmt.Errorf("line %d: student \"%v\" chose %v more than once", line, student, duplicates)
		} else if len(specialties) > maxChoices {
			return nil, fmt.Errorf("line %d: student \"%v\" chose %d specialties, at most %d are allowed", line, student, len(specialties), maxChoices)
		}

		choices[student] = specialties
	}

	return choices, nil
}

func delimiter(header string) rune {
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}
	return ','
}
