package excel

import (
	"fmt"
	"xlcompare/internal/logger"
)

// Workbook is an in-memory snapshot of an Excel file. All sheets are read
// once at load time; nothing is kept open afterwards.
type Workbook struct {
	Path   string
	Sheets []*Sheet
}

// Sheet is a named 2D table. Columns holds the header row in file order,
// Rows the data rows below it. Rows may be ragged; Cell pads with "".
type Sheet struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// LoadWorkbook reads every sheet of the file into a Workbook model.
func LoadWorkbook(path string) (*Workbook, error) {
	editor, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer editor.Close()

	wb := &Workbook{Path: path}
	for _, name := range editor.GetSheetNames() {
		rows, err := editor.GetAllRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %v", name, err)
		}

		sheet := &Sheet{Name: name}
		if len(rows) > 0 {
			sheet.Columns = rows[0]
			sheet.Rows = rows[1:]
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}

	logger.Info("Loaded workbook", "path", path, "sheet_count", len(wb.Sheets))
	return wb, nil
}

// SheetNames returns the sheet names in file order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, 0, len(w.Sheets))
	for _, s := range w.Sheets {
		names = append(names, s.Name)
	}
	return names
}

// Sheet returns the sheet with the given name, or nil.
func (w *Workbook) Sheet(name string) *Sheet {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Cell returns the value at the given data row and column index. Positions
// outside the sheet read as empty, matching how Excel pads short rows.
func (s *Sheet) Cell(row, col int) string {
	if row < 0 || row >= len(s.Rows) {
		return ""
	}
	r := s.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// ColumnIndex returns the ordinal position of a column name, or -1.
func (s *Sheet) ColumnIndex(name string) int {
	for i, c := range s.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// ColumnValues returns every data cell of the named column, padded to the
// sheet's row count.
func (s *Sheet) ColumnValues(name string) []string {
	idx := s.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	values := make([]string, len(s.Rows))
	for r := range s.Rows {
		values[r] = s.Cell(r, idx)
	}
	return values
}
