package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyCell(t *testing.T) {
	tests := []struct {
		input    string
		expected ColumnType
	}{
		{"", TypeEmpty},
		{"   ", TypeEmpty},
		{"123", TypeNumeric},
		{"-42.5", TypeNumeric},
		{"1e-9", TypeNumeric},
		{"true", TypeBoolean},
		{"FALSE", TypeBoolean},
		{"2024-03-01", TypeDate},
		{"01/02/2024", TypeDate},
		{"2024-03-01 12:30:00", TypeDate},
		{"hello", TypeText},
		{"12 units", TypeText},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClassifyCell(tt.input), "ClassifyCell(%q)", tt.input)
	}
}

func TestInferColumnType(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		expected ColumnType
	}{
		{"all numeric", []string{"1", "2.5", "-3"}, TypeNumeric},
		{"numeric with blanks", []string{"1", "", "3"}, TypeNumeric},
		{"all text", []string{"a", "b"}, TypeText},
		{"mixed kinds fall back to text", []string{"1", "hello"}, TypeText},
		{"all boolean", []string{"true", "false"}, TypeBoolean},
		{"all dates", []string{"2024-01-01", "2024-06-30"}, TypeDate},
		{"no data", []string{"", "  "}, TypeEmpty},
		{"empty slice", nil, TypeEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InferColumnType(tt.values))
		})
	}
}

func TestColumnTypeString(t *testing.T) {
	assert.Equal(t, "numeric", TypeNumeric.String())
	assert.Equal(t, "boolean", TypeBoolean.String())
	assert.Equal(t, "date", TypeDate.String())
	assert.Equal(t, "text", TypeText.String())
	assert.Equal(t, "empty", TypeEmpty.String())
}

func TestApproxEqual(t *testing.T) {
	tests := []struct {
		a, b      string
		tolerance float64
		expected  bool
	}{
		{"", "", 0, true},
		{" ", "", 0, true},
		{"abc", "abc", 0, true},
		{" abc ", "abc", 0, true},
		{"abc", "abd", 0, false},
		{"1.0", "1", 0, true},
		{"1.0", "1.000001", 1e-9, false},
		{"1.0", "1.000001", 1e-3, true},
		{"100", "101", 0.5, false},
		{"100", "100.4", 0.5, true},
		{"1", "", 1e-9, false},
		{"NaN", "NaN", 1e-9, true}, // non-finite values compare as strings
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, approxEqual(tt.a, tt.b, tt.tolerance),
			"approxEqual(%q, %q, %v)", tt.a, tt.b, tt.tolerance)
	}
}
