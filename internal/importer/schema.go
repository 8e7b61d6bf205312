package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for a punch import file,
// the interchange format for migrating from another tracker.
type ImportSchema struct {
	UserID     string        `json:"user_id"`
	ContractID string        `json:"contract_id,omitempty"`
	Entries    []EntryImport `json:"entries"`
}

// EntryImport defines one punch in the import file.
type EntryImport struct {
	Type    string `json:"type"`
	At      string `json:"at"`
	Comment string `json:"comment,omitempty"`
	// Contract overrides the file-level ContractID for this punch.
	Contract string `json:"contract,omitempty"`
}

// LoadImportSchema reads and parses a punch import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
