package mapping

import (
	"encoding/json"
	"os"
)

// ColumnMapping declares that a column in the derived workbook corresponds
// to a differently named column in the source workbook, or that it should
// be left out of the comparison entirely.
type ColumnMapping struct {
	DerivedColumn string `json:"derived_column"`
	SourceColumn  string `json:"source_column"`
	IsIgnored     bool   `json:"is_ignored"`
}

// MappingConfig holds all column mappings
type MappingConfig struct {
	Mappings []ColumnMapping `json:"mappings"`
}

// SaveToFile saves the mapping configuration to a JSON file
func (mc *MappingConfig) SaveToFile(filepath string) error {
	data, err := json.MarshalIndent(mc, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath, data, 0644)
}

// LoadFromFile loads mapping configuration from a JSON file
func LoadFromFile(filepath string) (*MappingConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	var config MappingConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Renames returns the derived -> source column rename table, ignored
// entries excluded.
func (mc *MappingConfig) Renames() map[string]string {
	renames := make(map[string]string)
	for _, m := range mc.Mappings {
		if !m.IsIgnored && m.SourceColumn != "" {
			renames[m.DerivedColumn] = m.SourceColumn
		}
	}
	return renames
}

// Ignored returns the set of column names excluded from comparison. Both
// the derived and the mapped source name of an ignored entry are included.
func (mc *MappingConfig) Ignored() map[string]bool {
	ignored := make(map[string]bool)
	for _, m := range mc.Mappings {
		if m.IsIgnored {
			ignored[m.DerivedColumn] = true
			if m.SourceColumn != "" {
				ignored[m.SourceColumn] = true
			}
		}
	}
	return ignored
}

// Resolve maps a derived column name to its source equivalent, leaving
// unmapped names untouched.
func (mc *MappingConfig) Resolve(derivedColumn string) string {
	for _, m := range mc.Mappings {
		if m.DerivedColumn == derivedColumn && !m.IsIgnored && m.SourceColumn != "" {
			return m.SourceColumn
		}
	}
	return derivedColumn
}
