package compare

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"xlcompare/internal/excel"
	"xlcompare/internal/logger"
	"xlcompare/internal/mapping"
)

// Options controls a comparison run.
type Options struct {
	// NumericTolerance is the maximum absolute difference under which two
	// numeric cells still count as equal.
	NumericTolerance float64

	// Mapping optionally renames derived columns to their source names and
	// excludes ignored columns from dtype and value comparison.
	Mapping *mapping.MappingConfig
}

// Workbooks compares a source-of-truth workbook against a derived one and
// returns every structure issue, dtype issue, and value mismatch found.
func Workbooks(source, derived *excel.Workbook, opts Options) *Result {
	logger.Info("Comparing workbooks",
		"source", source.Path,
		"derived", derived.Path,
		"tolerance", opts.NumericTolerance)

	res := &Result{}

	ignored := map[string]bool{}
	if opts.Mapping != nil {
		ignored = opts.Mapping.Ignored()
	}

	sourceSheets := source.SheetNames()
	derivedSheets := derived.SheetNames()
	sort.Strings(sourceSheets)
	sort.Strings(derivedSheets)

	// Sheet presence
	for _, name := range sourceSheets {
		if derived.Sheet(name) == nil {
			res.StructureIssues = append(res.StructureIssues, StructureIssue{
				Sheet:  name,
				Issue:  "Missing in derived workbook",
				Detail: "Sheet not found in derived workbook",
			})
		}
	}
	for _, name := range derivedSheets {
		if source.Sheet(name) == nil {
			res.StructureIssues = append(res.StructureIssues, StructureIssue{
				Sheet:  name,
				Issue:  "Missing in source workbook",
				Detail: "Sheet not found in source workbook",
			})
		}
	}

	// Compare common sheets
	var common []string
	for _, name := range sourceSheets {
		if derived.Sheet(name) != nil {
			common = append(common, name)
		}
	}

	for _, name := range common {
		compareSheet(res, source.Sheet(name), derived.Sheet(name), opts, ignored)
	}

	res.Summary = Summary{
		SourceSheets:        sourceSheets,
		DerivedSheets:       derivedSheets,
		CommonSheets:        common,
		StructureIssueCount: len(res.StructureIssues),
		DtypeIssueCount:     len(res.DtypeIssues),
		ValueMismatchCount:  len(res.ValueMismatches),
	}
	res.Summary.AllMatched = res.Summary.StructureIssueCount == 0 &&
		res.Summary.DtypeIssueCount == 0 &&
		res.Summary.ValueMismatchCount == 0

	logger.Info("Comparison completed",
		"structure_issues", res.Summary.StructureIssueCount,
		"dtype_issues", res.Summary.DtypeIssueCount,
		"value_mismatches", res.Summary.ValueMismatchCount,
		"all_matched", res.Summary.AllMatched)

	return res
}

func compareSheet(res *Result, src, drv *excel.Sheet, opts Options, ignored map[string]bool) {
	// Row/column counts
	if len(src.Rows) != len(drv.Rows) {
		res.StructureIssues = append(res.StructureIssues, StructureIssue{
			Sheet:  src.Name,
			Issue:  "Row count mismatch",
			Detail: fmt.Sprintf("source=%d, derived=%d", len(src.Rows), len(drv.Rows)),
		})
	}
	if len(src.Columns) != len(drv.Columns) {
		res.StructureIssues = append(res.StructureIssues, StructureIssue{
			Sheet:  src.Name,
			Issue:  "Column count mismatch",
			Detail: fmt.Sprintf("source=%d, derived=%d", len(src.Columns), len(drv.Columns)),
		})
	}

	// Derived column names after mapping renames; index keeps pointing at
	// the derived sheet's physical column.
	drvNames := make([]string, len(drv.Columns))
	drvIndex := make(map[string]int, len(drv.Columns))
	for i, c := range drv.Columns {
		name := c
		if opts.Mapping != nil {
			name = opts.Mapping.Resolve(c)
		}
		drvNames[i] = name
		if _, seen := drvIndex[name]; !seen {
			drvIndex[name] = i
		}
	}

	// Column names and order
	if !equalStrings(src.Columns, drvNames) {
		res.StructureIssues = append(res.StructureIssues, StructureIssue{
			Sheet: src.Name,
			Issue: "Column order/name mismatch",
			Detail: fmt.Sprintf("source=[%s], derived=[%s]",
				strings.Join(src.Columns, ", "), strings.Join(drvNames, ", ")),
		})
	}

	// Shared columns, in source order. Values still align by name even when
	// the physical order differs.
	var shared []string
	for _, c := range src.Columns {
		if _, ok := drvIndex[c]; ok && !ignored[c] {
			shared = append(shared, c)
		}
	}

	// Dtype comparison
	for _, c := range shared {
		srcType := InferColumnType(src.ColumnValues(c))
		drvType := InferColumnType(columnValuesAt(drv, drvIndex[c]))
		if srcType != drvType {
			res.DtypeIssues = append(res.DtypeIssues, DtypeIssue{
				Sheet:       src.Name,
				Column:      c,
				SourceType:  srcType.String(),
				DerivedType: drvType.String(),
			})
		}
	}

	// Cell-by-cell value comparison over the longer of the two sheets;
	// rows absent on one side read as empty.
	maxRows := len(src.Rows)
	if len(drv.Rows) > maxRows {
		maxRows = len(drv.Rows)
	}
	for r := 0; r < maxRows; r++ {
		for _, c := range shared {
			va := src.Cell(r, src.ColumnIndex(c))
			vb := drv.Cell(r, drvIndex[c])
			if !approxEqual(va, vb, opts.NumericTolerance) {
				res.ValueMismatches = append(res.ValueMismatches, ValueMismatch{
					Sheet:        src.Name,
					Row:          r + 1,
					Column:       c,
					SourceValue:  va,
					DerivedValue: vb,
				})
			}
		}
	}
}

// approxEqual reports whether two cell values match: both blank counts as
// equal, numeric values compare within tolerance, everything else by
// trimmed string equality.
func approxEqual(a, b string, tolerance float64) bool {
	ta := strings.TrimSpace(a)
	tb := strings.TrimSpace(b)

	if ta == "" && tb == "" {
		return true
	}

	fa, errA := strconv.ParseFloat(ta, 64)
	fb, errB := strconv.ParseFloat(tb, 64)
	if errA == nil && errB == nil && isFinite(fa) && isFinite(fb) {
		return math.Abs(fa-fb) <= tolerance
	}

	return ta == tb
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func columnValuesAt(s *excel.Sheet, idx int) []string {
	values := make([]string, len(s.Rows))
	for r := range s.Rows {
		values[r] = s.Cell(r, idx)
	}
	return values
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
