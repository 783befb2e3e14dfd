// Package ingest validates and parses uploaded CSV files and computes the
// per-file summary statistics returned to the client.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"datviz-backend/internal/models"
)

var allowedExtensions = map[string]bool{"csv": true}

// datetimeLayouts are tried in order when deciding whether a text column
// holds dates.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
}

// ValidateFilename accepts only filenames with a recognized extension. The
// check is on the suffix after the last dot, lowercased, so "a.CSV" passes
// and "a.csv.txt" does not.
func ValidateFilename(name string) bool {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return false
	}
	return allowedExtensions[strings.ToLower(name[idx+1:])]
}

// ParseCSV decodes a CSV stream into row-records keyed by column name.
// Cells are converted to typed scalars; an empty cell becomes nil and counts
// as a missing value.
func ParseCSV(r io.Reader) ([]models.Row, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty CSV file")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var rows []models.Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		row := make(models.Row, len(header))
		for i, col := range header {
			row[col] = parseCell(record[i])
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// parseCell converts a raw cell to int64, float64, bool or string. Empty
// cells become nil.
func parseCell(raw string) any {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	if i, err := strconv.ParseInt(value, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	switch strings.ToLower(value) {
	case "true":
		return true
	case "false":
		return false
	}
	return value
}

// Statistics computes column count, row count, missing-cell count and the
// inferred type of every column. It never fails: any internal error degrades
// to an all-"N/A" placeholder instead of propagating.
func Statistics(rows []models.Row) (stats models.FileStatistics) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: Failed to compute file statistics: %v", r)
			stats = models.FileStatistics{
				NumColumns:      "N/A",
				NumObservations: "N/A",
				MissingValues:   "N/A",
				VariableTypes:   "N/A",
			}
		}
	}()

	if len(rows) == 0 {
		return models.FileStatistics{
			NumColumns:      "N/A",
			NumObservations: "N/A",
			MissingValues:   "N/A",
			VariableTypes:   map[string]string{},
		}
	}

	columns := make([]string, 0, len(rows[0]))
	for col := range rows[0] {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	missing := 0
	types := make(map[string]string, len(columns))
	for _, col := range columns {
		values := make([]any, 0, len(rows))
		for _, row := range rows {
			v := row[col]
			if v == nil {
				missing++
				continue
			}
			values = append(values, v)
		}
		types[col] = inferType(values)
	}

	return models.FileStatistics{
		NumColumns:      len(columns),
		NumObservations: len(rows),
		MissingValues:   missing,
		VariableTypes:   types,
	}
}

// inferType reports the common scalar type of a column's non-missing values.
// Text columns whose every value parses as a date become "datetime"; other
// text or mixed columns become "string".
func inferType(values []any) string {
	if len(values) == 0 {
		return "string"
	}

	allInt, allFloat, allBool, allString := true, true, true, true
	for _, v := range values {
		switch v.(type) {
		case int64:
			allBool, allString = false, false
		case float64:
			allInt, allBool, allString = false, false, false
		case bool:
			allInt, allFloat, allString = false, false, false
		case string:
			allInt, allFloat, allBool = false, false, false
		}
	}

	switch {
	case allInt:
		return "int64"
	case allFloat:
		return "float64"
	case allBool:
		return "bool"
	case allString:
		if allDatetime(values) {
			return "datetime"
		}
		return "string"
	}
	return "string"
}

func allDatetime(values []any) bool {
	for _, v := range values {
		s, ok := v.(string)
		if !ok || !parsesAsDatetime(s) {
			return false
		}
	}
	return true
}

func parsesAsDatetime(s string) bool {
	for _, layout := range datetimeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
