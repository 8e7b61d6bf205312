package importer

import (
	"fmt"
	"time"

	"github.com/bside-ms/bside-nexus-sub000/internal/domain"
)

// ValidateImportSchema checks the import file for errors before conversion.
// Returns a slice of all validation errors found, so a user can fix the
// whole file in one pass instead of error-by-error.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if schema.UserID == "" {
		errs = append(errs, fmt.Errorf("user_id is required"))
	}
	if len(schema.Entries) == 0 {
		errs = append(errs, fmt.Errorf("entries must not be empty"))
	}

	seen := make(map[string]int)
	for i, e := range schema.Entries {
		errs = append(errs, validateEntry(i, e)...)

		key := e.Type + "|" + e.At
		if prev, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("entries[%d]: duplicate of entries[%d] (%s at %s)", i, prev, e.Type, e.At))
			continue
		}
		seen[key] = i
	}

	return errs
}

func validateEntry(i int, e EntryImport) []error {
	var errs []error

	if !domain.ValidEntryTypes[e.Type] {
		errs = append(errs, fmt.Errorf("entries[%d].type: invalid type %q", i, e.Type))
	}
	if e.At == "" {
		errs = append(errs, fmt.Errorf("entries[%d].at is required", i))
	} else if _, err := time.Parse(time.RFC3339, e.At); err != nil {
		errs = append(errs, fmt.Errorf("entries[%d].at: invalid timestamp %q (expected RFC3339)", i, e.At))
	}
	if len(e.Comment) > domain.MaxCommentLen {
		errs = append(errs, fmt.Errorf("entries[%d].comment: %d chars exceeds maximum of %d", i, len(e.Comment), domain.MaxCommentLen))
	}

	return errs
}
