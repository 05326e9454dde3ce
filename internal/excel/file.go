package excel

import (
	"fmt"
	"strings"

	"github.com/youssef7511/AVCNA/internal/dto"

	"github.com/xuri/excelize/v2"
)

// ImportFile reads one sheet into typed entities. The first row holds
// the column headers; every following row with at least one non-blank
// cell becomes one entity. sheetName empty means the first sheet.
func ImportFile[T any](path, sheetName string, codec *Codec[T]) ([]T, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("excel: open %s: %w", path, err)
	}
	defer f.Close()

	sheet, err := resolveSheet(f, sheetName)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("excel: read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := rows[0]
	var entities []T
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		entities = append(entities, codec.Decode(headers, row))
	}
	return entities, nil
}

// ExportFile writes entities to a new workbook, headers bold on a blue
// fill like the desktop exports users are used to.
func ExportFile[T any](entities []T, path, sheetName string, codec *Codec[T]) error {
	if sheetName == "" {
		sheetName = "Data"
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("excel: name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1976D2"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("excel: header style: %w", err)
	}

	names := codec.Names()
	for col, name := range names {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return fmt.Errorf("excel: write header: %w", err)
		}
	}
	first, _ := excelize.CoordinatesToCellName(1, 1)
	last, _ := excelize.CoordinatesToCellName(len(names), 1)
	if err := f.SetCellStyle(sheetName, first, last, headerStyle); err != nil {
		return fmt.Errorf("excel: style header: %w", err)
	}

	for i := range entities {
		for col, value := range codec.Encode(&entities[i]) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("excel: write row %d: %w", i+2, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("excel: save %s: %w", path, err)
	}
	return nil
}

// ValidateFile checks that every expected column is present in the
// file's header row (case-insensitive) and reports what was found.
// A file that cannot be opened is reported as a validation failure,
// not an error: from the user's point of view it is a bad file, the
// same category as a bad header row.
func ValidateFile(path string, expectedColumns []string) *dto.FileValidation {
	result := &dto.FileValidation{IsValid: true}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.IsValid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Erreur lors de l'ouverture du fichier : %v", err))
		return result
	}
	defer f.Close()

	sheet, err := resolveSheet(f, "")
	if err != nil {
		result.IsValid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Erreur lors de l'ouverture du fichier : %v", err))
		return result
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		result.IsValid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Erreur lors de l'ouverture du fichier : %v", err))
		return result
	}

	var headers []string
	if len(rows) > 0 {
		headers = rows[0]
	}
	for _, h := range headers {
		result.FoundColumns = append(result.FoundColumns, strings.TrimSpace(h))
	}

	dataRows := 0
	for _, row := range rows[min(1, len(rows)):] {
		if !blankRow(row) {
			dataRows++
		}
	}
	result.RowCount = dataRows

	result.MissingColumns = MissingColumns(result.FoundColumns, expectedColumns)
	if len(result.MissingColumns) > 0 {
		result.IsValid = false
		result.Errors = append(result.Errors,
			"Colonnes manquantes : "+strings.Join(result.MissingColumns, ", "))
	}

	return result
}

func resolveSheet(f *excelize.File, sheetName string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("excel: workbook has no sheets")
	}
	if sheetName == "" {
		return sheets[0], nil
	}
	for _, s := range sheets {
		if s == sheetName {
			return s, nil
		}
	}
	return "", fmt.Errorf("excel: sheet %q not found", sheetName)
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
