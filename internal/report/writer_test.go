package report

import (
	"path/filepath"
	"testing"
	"xlcompare/internal/compare"
	"xlcompare/internal/excel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *compare.Result {
	return &compare.Result{
		StructureIssues: []compare.StructureIssue{
			{Sheet: "Totals", Issue: "Missing in derived workbook", Detail: "Sheet not found in derived workbook"},
		},
		DtypeIssues: []compare.DtypeIssue{
			{Sheet: "Sales", Column: "Units", SourceType: "numeric", DerivedType: "text"},
		},
		ValueMismatches: []compare.ValueMismatch{
			{Sheet: "Sales", Row: 2, Column: "Revenue", SourceValue: "803.10", DerivedValue: "803.20"},
		},
		Summary: compare.Summary{
			SourceSheets:        []string{"Sales", "Totals"},
			DerivedSheets:       []string{"Sales"},
			CommonSheets:        []string{"Sales"},
			StructureIssueCount: 1,
			DtypeIssueCount:     1,
			ValueMismatchCount:  1,
		},
	}
}

func cellValue(t *testing.T, editor *excel.Editor, sheet, cell string) string {
	t.Helper()
	v, err := editor.GetCellValue(sheet, cell)
	require.NoError(t, err)
	return v
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.xlsx")
	require.NoError(t, Write(path, sampleResult()))

	editor, err := excel.OpenFile(path)
	require.NoError(t, err)
	defer editor.Close()

	assert.Equal(t,
		[]string{SheetSummary, SheetStructureIssues, SheetDtypeIssues, SheetValueMismatches},
		editor.GetSheetNames())

	// Summary
	assert.Equal(t, "Sales, Totals", cellValue(t, editor, SheetSummary, "A2"))
	assert.Equal(t, "1", cellValue(t, editor, SheetSummary, "D2"))

	// Structure issues
	assert.Equal(t, "sheet", cellValue(t, editor, SheetStructureIssues, "A1"))
	assert.Equal(t, "Missing in derived workbook", cellValue(t, editor, SheetStructureIssues, "B2"))

	// Dtype issues
	assert.Equal(t, "numeric", cellValue(t, editor, SheetDtypeIssues, "C2"))

	// Value mismatches
	assert.Equal(t, "2", cellValue(t, editor, SheetValueMismatches, "B2"))
	assert.Equal(t, "803.20", cellValue(t, editor, SheetValueMismatches, "E2"))
}

func TestWriteEmptyResultKeepsHeaderRows(t *testing.T) {
	res := &compare.Result{
		Summary: compare.Summary{
			SourceSheets:  []string{"Sheet1"},
			DerivedSheets: []string{"Sheet1"},
			CommonSheets:  []string{"Sheet1"},
			AllMatched:    true,
		},
	}

	path := filepath.Join(t.TempDir(), "clean.xlsx")
	require.NoError(t, Write(path, res))

	editor, err := excel.OpenFile(path)
	require.NoError(t, err)
	defer editor.Close()

	for sheet, firstHeader := range map[string]string{
		SheetStructureIssues: "sheet",
		SheetDtypeIssues:     "sheet",
		SheetValueMismatches: "sheet",
	} {
		rows, err := editor.GetAllRows(sheet)
		require.NoError(t, err)
		require.Len(t, rows, 1, "issue sheet %s should only hold its header row", sheet)
		assert.Equal(t, firstHeader, rows[0][0])
	}
}
