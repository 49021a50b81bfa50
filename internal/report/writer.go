package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"xlcompare/internal/compare"
	"xlcompare/internal/excel"
	"xlcompare/internal/logger"

	"github.com/xuri/excelize/v2"
)

// Fixed sheet names of the result workbook.
const (
	SheetSummary         = "Summary"
	SheetStructureIssues = "Structure_Issues"
	SheetDtypeIssues     = "Dtype_Issues"
	SheetValueMismatches = "Value_Mismatches"
)

// Write assembles the four-sheet result workbook and saves it at path.
func Write(path string, res *compare.Result) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %v", err)
		}
	}

	editor := excel.CreateNewFile()
	defer editor.Close()

	if err := editor.RenameSheet("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("failed to create summary sheet: %v", err)
	}
	for _, name := range []string{SheetStructureIssues, SheetDtypeIssues, SheetValueMismatches} {
		if err := editor.AddSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %v", name, err)
		}
	}

	headerStyle, err := editor.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#DDEBF7"},
			Pattern: 1,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %v", err)
	}

	mismatchStyle, err := editor.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#FFEB9C"},
			Pattern: 1,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create mismatch style: %v", err)
	}

	if err := writeSummary(editor, res, headerStyle); err != nil {
		return err
	}
	if err := writeStructureIssues(editor, res, headerStyle); err != nil {
		return err
	}
	if err := writeDtypeIssues(editor, res, headerStyle); err != nil {
		return err
	}
	if err := writeValueMismatches(editor, res, headerStyle, mismatchStyle); err != nil {
		return err
	}

	if err := editor.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %v", err)
	}

	logger.Info("Report written", "path", path,
		"structure_issues", res.Summary.StructureIssueCount,
		"dtype_issues", res.Summary.DtypeIssueCount,
		"value_mismatches", res.Summary.ValueMismatchCount)
	return nil
}

func writeSummary(editor *excel.Editor, res *compare.Result, headerStyle int) error {
	s := res.Summary
	headers := []string{
		"sheets_source", "sheets_derived", "common_sheets",
		"structure_issue_count", "dtype_issue_count", "value_mismatch_count",
		"all_matched",
	}
	values := []interface{}{
		strings.Join(s.SourceSheets, ", "),
		strings.Join(s.DerivedSheets, ", "),
		strings.Join(s.CommonSheets, ", "),
		s.StructureIssueCount,
		s.DtypeIssueCount,
		s.ValueMismatchCount,
		s.AllMatched,
	}

	if err := writeHeaderRow(editor, SheetSummary, headers, headerStyle); err != nil {
		return err
	}
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return err
		}
		if err := editor.SetCellValue(SheetSummary, cell, v); err != nil {
			return fmt.Errorf("failed to write summary: %v", err)
		}
	}
	return setColumnWidths(editor, SheetSummary, len(headers), 22)
}

func writeStructureIssues(editor *excel.Editor, res *compare.Result, headerStyle int) error {
	headers := []string{"sheet", "issue", "detail"}
	if err := writeHeaderRow(editor, SheetStructureIssues, headers, headerStyle); err != nil {
		return err
	}
	for i, issue := range res.StructureIssues {
		row := []interface{}{issue.Sheet, issue.Issue, issue.Detail}
		if err := writeDataRow(editor, SheetStructureIssues, i+2, row); err != nil {
			return err
		}
	}
	return setColumnWidths(editor, SheetStructureIssues, len(headers), 36)
}

func writeDtypeIssues(editor *excel.Editor, res *compare.Result, headerStyle int) error {
	headers := []string{"sheet", "column", "source_dtype", "derived_dtype"}
	if err := writeHeaderRow(editor, SheetDtypeIssues, headers, headerStyle); err != nil {
		return err
	}
	for i, issue := range res.DtypeIssues {
		row := []interface{}{issue.Sheet, issue.Column, issue.SourceType, issue.DerivedType}
		if err := writeDataRow(editor, SheetDtypeIssues, i+2, row); err != nil {
			return err
		}
	}
	return setColumnWidths(editor, SheetDtypeIssues, len(headers), 18)
}

func writeValueMismatches(editor *excel.Editor, res *compare.Result, headerStyle, mismatchStyle int) error {
	headers := []string{"sheet", "row", "column", "source_value", "derived_value"}
	if err := writeHeaderRow(editor, SheetValueMismatches, headers, headerStyle); err != nil {
		return err
	}
	for i, vm := range res.ValueMismatches {
		rowNum := i + 2
		row := []interface{}{vm.Sheet, vm.Row, vm.Column, vm.SourceValue, vm.DerivedValue}
		if err := writeDataRow(editor, SheetValueMismatches, rowNum, row); err != nil {
			return err
		}

		// Highlight the two value cells (columns D and E)
		start, err := excelize.CoordinatesToCellName(4, rowNum)
		if err != nil {
			return err
		}
		end, err := excelize.CoordinatesToCellName(5, rowNum)
		if err != nil {
			return err
		}
		if err := editor.SetCellStyle(SheetValueMismatches, start, end, mismatchStyle); err != nil {
			return fmt.Errorf("failed to style mismatch cells: %v", err)
		}
	}
	return setColumnWidths(editor, SheetValueMismatches, len(headers), 20)
}

func writeHeaderRow(editor *excel.Editor, sheet string, headers []string, styleID int) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := editor.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header on %s: %v", sheet, err)
		}
	}
	start, err := excelize.CoordinatesToCellName(1, 1)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return editor.SetCellStyle(sheet, start, end, styleID)
}

func writeDataRow(editor *excel.Editor, sheet string, rowNum int, values []interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return err
		}
		if err := editor.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to write row on %s: %v", sheet, err)
		}
	}
	return nil
}

func setColumnWidths(editor *excel.Editor, sheet string, count int, width float64) error {
	endCol, err := excelize.ColumnNumberToName(count)
	if err != nil {
		return err
	}
	return editor.SetColWidth(sheet, "A", endCol, width)
}
