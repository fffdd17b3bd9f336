// Package spreadsheet renders tabular report data into XLSX workbooks.
package spreadsheet

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// ActivityRow is one flattened activity log row destined for a report sheet.
type ActivityRow struct {
	Instructor   string
	CourseCode   string
	ActivityType string
	LogDate      time.Time
	Details      string
}

var activityHeader = []string{"Instructor", "Course Code", "Activity Type", "Log Date", "Details"}

// BuildActivityWorkbook serializes rows into an XLSX workbook with a single
// header row followed by one row per activity log entry.
func BuildActivityWorkbook(sheetName string, rows []ActivityRow) ([]byte, error) {
	if sheetName == "" {
		sheetName = "Report"
	}

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := writeRow(f, sheetName, 1, headerValues()); err != nil {
		return nil, err
	}

	for i, row := range rows {
		values := []interface{}{
			row.Instructor,
			row.CourseCode,
			row.ActivityType,
			row.LogDate.UTC().Format(time.RFC3339),
			row.Details,
		}
		if err := writeRow(f, sheetName, i+2, values); err != nil {
			return nil, err
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	return buffer.Bytes(), nil
}

func headerValues() []interface{} {
	values := make([]interface{}, len(activityHeader))
	for i, h := range activityHeader {
		values[i] = h
	}
	return values
}

func writeRow(f *excelize.File, sheet string, rowIndex int, values []interface{}) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowIndex)
		if err != nil {
			return fmt.Errorf("invalid cell coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}
	return nil
}
