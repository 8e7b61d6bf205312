package importer

import (
	"sort"
	"time"

	"github.com/bside-ms/bside-nexus-sub000/internal/domain"
	"github.com/google/uuid"
)

// ConvertToEntries turns a validated import file into domain entries,
// sorted by timestamp. Call ValidateImportSchema first; conversion assumes
// every timestamp parses.
func ConvertToEntries(schema *ImportSchema) []*domain.TimeLogEntry {
	now := time.Now().UTC()
	entries := make([]*domain.TimeLogEntry, 0, len(schema.Entries))

	for _, e := range schema.Entries {
		at, err := time.Parse(time.RFC3339, e.At)
		if err != nil {
			continue
		}

		contract := schema.ContractID
		if e.Contract != "" {
			contract = e.Contract
		}

		entries = append(entries, &domain.TimeLogEntry{
			ID:         uuid.New().String(),
			UserID:     schema.UserID,
			ContractID: contract,
			EntryType:  domain.EntryType(e.Type),
			LoggedAt:   at.UTC(),
			Comment:    e.Comment,
			CreatedAt:  now,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LoggedAt.Before(entries[j].LoggedAt)
	})
	return entries
}
