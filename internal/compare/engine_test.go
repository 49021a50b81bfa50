package compare

import (
	"testing"
	"xlcompare/internal/excel"
	"xlcompare/internal/mapping"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func salesSheet() *excel.Sheet {
	return &excel.Sheet{
		Name:    "Sales",
		Columns: []string{"Region", "Units", "Revenue"},
		Rows: [][]string{
			{"North", "10", "1050.25"},
			{"South", "7", "803.10"},
			{"West", "12", "1377.00"},
		},
	}
}

func workbookWith(sheets ...*excel.Sheet) *excel.Workbook {
	return &excel.Workbook{Path: "test.xlsx", Sheets: sheets}
}

func TestIdenticalWorkbooksMatch(t *testing.T) {
	source := workbookWith(salesSheet())
	derived := workbookWith(salesSheet())

	res := Workbooks(source, derived, Options{NumericTolerance: 1e-9})

	assert.Empty(t, res.StructureIssues)
	assert.Empty(t, res.DtypeIssues)
	assert.Empty(t, res.ValueMismatches)
	assert.True(t, res.Summary.AllMatched)
	assert.Equal(t, []string{"Sales"}, res.Summary.CommonSheets)
}

func TestNumericDifferenceWithinTolerance(t *testing.T) {
	source := workbookWith(salesSheet())
	derived := workbookWith(salesSheet())
	derived.Sheets[0].Rows[0][2] = "1050.2500000001"

	res := Workbooks(source, derived, Options{NumericTolerance: 1e-6})

	assert.Empty(t, res.ValueMismatches)
	assert.True(t, res.Summary.AllMatched)
}

func TestNumericDifferenceBeyondTolerance(t *testing.T) {
	source := workbookWith(salesSheet())
	derived := workbookWith(salesSheet())
	derived.Sheets[0].Rows[1][2] = "803.20"

	res := Workbooks(source, derived, Options{NumericTolerance: 1e-9})

	require.Len(t, res.ValueMismatches, 1)
	vm := res.ValueMismatches[0]
	assert.Equal(t, "Sales", vm.Sheet)
	assert.Equal(t, 2, vm.Row)
	assert.Equal(t, "Revenue", vm.Column)
	assert.Equal(t, "803.10", vm.SourceValue)
	assert.Equal(t, "803.20", vm.DerivedValue)
	assert.False(t, res.Summary.AllMatched)
}

func TestColumnOrderDifferenceStillAlignsByName(t *testing.T) {
	source := workbookWith(salesSheet())
	derived := workbookWith(&excel.Sheet{
		Name:    "Sales",
		Columns: []string{"Units", "Region", "Revenue"},
		Rows: [][]string{
			{"10", "North", "1050.25"},
			{"7", "South", "803.10"},
			{"12", "West", "1377.00"},
		},
	})

	res := Workbooks(source, derived, Options{NumericTolerance: 1e-9})

	require.Len(t, res.StructureIssues, 1)
	assert.Equal(t, "Column order/name mismatch", res.StructureIssues[0].Issue)
	assert.Empty(t, res.ValueMismatches, "values must align by column name, not position")
	assert.Empty(t, res.DtypeIssues)
}

func TestMissingSheetsReportedBothWays(t *testing.T) {
	source := workbookWith(salesSheet(), &excel.Sheet{Name: "Totals"})
	derived := workbookWith(salesSheet(), &excel.Sheet{Name: "Extra"})

	res := Workbooks(source, derived, Options{})

	require.Len(t, res.StructureIssues, 2)
	assert.Equal(t, "Totals", res.StructureIssues[0].Sheet)
	assert.Equal(t, "Missing in derived workbook", res.StructureIssues[0].Issue)
	assert.Equal(t, "Extra", res.StructureIssues[1].Sheet)
	assert.Equal(t, "Missing in source workbook", res.StructureIssues[1].Issue)
	assert.Equal(t, []string{"Sales"}, res.Summary.CommonSheets)
}

func TestRowCountMismatch(t *testing.T) {
	source := workbookWith(salesSheet())
	short := salesSheet()
	short.Rows = short.Rows[:2]
	derived := workbookWith(short)

	res := Workbooks(source, derived, Options{NumericTolerance: 1e-9})

	require.NotEmpty(t, res.StructureIssues)
	assert.Equal(t, "Row count mismatch", res.StructureIssues[0].Issue)
	assert.Equal(t, "source=3, derived=2", res.StructureIssues[0].Detail)

	// The third source row compares against empty derived cells.
	require.Len(t, res.ValueMismatches, 3)
	for _, vm := range res.ValueMismatches {
		assert.Equal(t, 3, vm.Row)
		assert.Equal(t, "", vm.DerivedValue)
	}
}

func TestColumnCountMismatch(t *testing.T) {
	source := workbookWith(salesSheet())
	wide := salesSheet()
	wide.Columns = append(wide.Columns, "Margin")
	derived := workbookWith(wide)

	res := Workbooks(source, derived, Options{NumericTolerance: 1e-9})

	var issues []string
	for _, si := range res.StructureIssues {
		issues = append(issues, si.Issue)
	}
	assert.Contains(t, issues, "Column count mismatch")
	assert.Contains(t, issues, "Column order/name mismatch")
}

func TestDtypeMismatchReported(t *testing.T) {
	source := workbookWith(salesSheet())
	derived := workbookWith(&excel.Sheet{
		Name:    "Sales",
		Columns: []string{"Region", "Units", "Revenue"},
		Rows: [][]string{
			{"North", "ten", "1050.25"},
			{"South", "seven", "803.10"},
			{"West", "twelve", "1377.00"},
		},
	})

	res := Workbooks(source, derived, Options{NumericTolerance: 1e-9})

	require.Len(t, res.DtypeIssues, 1)
	di := res.DtypeIssues[0]
	assert.Equal(t, "Units", di.Column)
	assert.Equal(t, "numeric", di.SourceType)
	assert.Equal(t, "text", di.DerivedType)
}

func TestMappingRenamesDerivedColumns(t *testing.T) {
	source := workbookWith(salesSheet())
	derived := workbookWith(&excel.Sheet{
		Name:    "Sales",
		Columns: []string{"Region", "Qty", "Revenue"},
		Rows: [][]string{
			{"North", "10", "1050.25"},
			{"South", "7", "803.10"},
			{"West", "12", "1377.00"},
		},
	})

	mc := &mapping.MappingConfig{Mappings: []mapping.ColumnMapping{
		{DerivedColumn: "Qty", SourceColumn: "Units"},
	}}

	res := Workbooks(source, derived, Options{NumericTolerance: 1e-9, Mapping: mc})

	assert.Empty(t, res.StructureIssues, "mapped columns count as name matches")
	assert.Empty(t, res.ValueMismatches)
	assert.True(t, res.Summary.AllMatched)
}

func TestIgnoredColumnSkipsComparison(t *testing.T) {
	source := workbookWith(salesSheet())
	derived := workbookWith(salesSheet())
	derived.Sheets[0].Rows[0][2] = "9999.99"

	mc := &mapping.MappingConfig{Mappings: []mapping.ColumnMapping{
		{DerivedColumn: "Revenue", IsIgnored: true},
	}}

	res := Workbooks(source, derived, Options{NumericTolerance: 1e-9, Mapping: mc})

	assert.Empty(t, res.ValueMismatches)
	assert.Empty(t, res.DtypeIssues)
}

func TestBlankCellsCompareEqual(t *testing.T) {
	source := workbookWith(&excel.Sheet{
		Name:    "Sheet1",
		Columns: []string{"A"},
		Rows:    [][]string{{"  "}},
	})
	derived := workbookWith(&excel.Sheet{
		Name:    "Sheet1",
		Columns: []string{"A"},
		Rows:    [][]string{{""}},
	})

	res := Workbooks(source, derived, Options{NumericTolerance: 1e-9})

	assert.Empty(t, res.ValueMismatches)
	assert.True(t, res.Summary.AllMatched)
}

func TestSummaryCounts(t *testing.T) {
	source := workbookWith(salesSheet(), &excel.Sheet{Name: "Totals"})
	derived := workbookWith(salesSheet())
	derived.Sheets[0].Rows[2][0] = "East"

	res := Workbooks(source, derived, Options{NumericTolerance: 1e-9})

	assert.Equal(t, 1, res.Summary.StructureIssueCount)
	assert.Equal(t, 0, res.Summary.DtypeIssueCount)
	assert.Equal(t, 1, res.Summary.ValueMismatchCount)
	assert.False(t, res.Summary.AllMatched)
	assert.Equal(t, []string{"Sales", "Totals"}, res.Summary.SourceSheets)
	assert.Equal(t, []string{"Sales"}, res.Summary.DerivedSheets)
}
