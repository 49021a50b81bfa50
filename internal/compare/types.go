package compare

// StructureIssue reports a difference in workbook shape: sheet sets,
// row/column counts, or column name/order.
type StructureIssue struct {
	Sheet  string `json:"sheet"`
	Issue  string `json:"issue"`
	Detail string `json:"detail"`
}

// DtypeIssue reports a column whose inferred data type differs between the
// two workbooks.
type DtypeIssue struct {
	Sheet       string `json:"sheet"`
	Column      string `json:"column"`
	SourceType  string `json:"source_dtype"`
	DerivedType string `json:"derived_dtype"`
}

// ValueMismatch reports a single cell whose values disagree. Row is the
// 1-based data row (the header row is not counted).
type ValueMismatch struct {
	Sheet        string `json:"sheet"`
	Row          int    `json:"row"`
	Column       string `json:"column"`
	SourceValue  string `json:"source_value"`
	DerivedValue string `json:"derived_value"`
}

// Summary aggregates the outcome of a comparison run.
type Summary struct {
	SourceSheets        []string `json:"sheets_source"`
	DerivedSheets       []string `json:"sheets_derived"`
	CommonSheets        []string `json:"common_sheets"`
	StructureIssueCount int      `json:"structure_issue_count"`
	DtypeIssueCount     int      `json:"dtype_issue_count"`
	ValueMismatchCount  int      `json:"value_mismatch_count"`
	AllMatched          bool     `json:"all_matched"`
}

// Result holds everything a comparison run produced. It feeds both the
// report writer and the shell's pass/fail display.
type Result struct {
	StructureIssues []StructureIssue `json:"structure_issues"`
	DtypeIssues     []DtypeIssue     `json:"dtype_issues"`
	ValueMismatches []ValueMismatch  `json:"value_mismatches"`
	Summary         Summary          `json:"summary"`
}
