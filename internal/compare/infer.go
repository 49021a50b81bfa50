package compare

import (
	"strconv"
	"strings"
	"time"
)

// ColumnType is the inferred data type of a column.
type ColumnType int

const (
	TypeEmpty ColumnType = iota
	TypeNumeric
	TypeBoolean
	TypeDate
	TypeText
)

func (t ColumnType) String() string {
	switch t {
	case TypeEmpty:
		return "empty"
	case TypeNumeric:
		return "numeric"
	case TypeBoolean:
		return "boolean"
	case TypeDate:
		return "date"
	default:
		return "text"
	}
}

// Date layouts excelize commonly renders, plus ISO forms seen in report
// exports.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006",
	"01-02-06",
	"1/2/06 15:04",
	"02-Jan-06",
}

// ClassifyCell determines the data type of a single cell value.
func ClassifyCell(value string) ColumnType {
	v := strings.TrimSpace(value)
	if v == "" {
		return TypeEmpty
	}

	switch strings.ToLower(v) {
	case "true", "false":
		return TypeBoolean
	}

	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return TypeNumeric
	}

	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return TypeDate
		}
	}

	return TypeText
}

// InferColumnType infers the type of a column from its cell values: the
// single kind shared by every non-empty cell, text when mixed, empty when
// the column has no data.
func InferColumnType(values []string) ColumnType {
	inferred := TypeEmpty
	for _, v := range values {
		kind := ClassifyCell(v)
		if kind == TypeEmpty {
			continue
		}
		if inferred == TypeEmpty {
			inferred = kind
			continue
		}
		if kind != inferred {
			return TypeText
		}
	}
	return inferred
}
