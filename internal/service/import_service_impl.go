package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/bside-ms/bside-nexus-sub000/internal/db"
	"github.com/bside-ms/bside-nexus-sub000/internal/domain"
	"github.com/bside-ms/bside-nexus-sub000/internal/importer"
	"github.com/bside-ms/bside-nexus-sub000/internal/repository"
	"github.com/bside-ms/bside-nexus-sub000/internal/worktime"
	"github.com/rs/zerolog"
)

// ErrImportInvalid is returned when the import file fails validation.
var ErrImportInvalid = errors.New("import file is invalid")

// ImportSummary reports what one import run wrote.
type ImportSummary struct {
	EntriesCreated int
	DaysRecomputed []string
	ValidationErrs []error
}

type importService struct {
	seg *worktime.Segmenter
	uow db.UnitOfWork
	log zerolog.Logger
}

// NewImportService creates the bulk punch importer.
func NewImportService(seg *worktime.Segmenter, uow db.UnitOfWork, log zerolog.Logger) ImportService {
	return &importService{seg: seg, uow: uow, log: log}
}

func (s *importService) Import(ctx context.Context, schema *importer.ImportSchema) (*ImportSummary, error) {
	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return &ImportSummary{ValidationErrs: errs}, fmt.Errorf("%w: %d problems", ErrImportInvalid, len(errs))
	}

	entries := importer.ConvertToEntries(schema)
	days := affectedDays(s.seg, entries)

	summary := &ImportSummary{EntriesCreated: len(entries), DaysRecomputed: days}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteEntryRepo(tx)
		for _, e := range entries {
			if err := txEntries.Create(ctx, e); err != nil {
				return err
			}
		}
		for _, day := range days {
			contracts := contractsOnDay(entries, s.seg, day)
			for _, contract := range contracts {
				if _, err := aggregateDayTx(ctx, tx, s.seg, schema.UserID, contract, day); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", schema.UserID).
		Int("entries", summary.EntriesCreated).
		Int("days", len(summary.DaysRecomputed)).
		Msg("import complete")
	return summary, nil
}

// affectedDays collects the civil day of every imported entry plus the
// preceding day, which may own a midnight-spanning bracket. Sorted, unique.
func affectedDays(seg *worktime.Segmenter, entries []*domain.TimeLogEntry) []string {
	set := make(map[string]struct{})
	for _, e := range entries {
		day := seg.CivilDate(e.LoggedAt)
		set[day] = struct{}{}
		if t, err := time.ParseInLocation(worktime.DateLayout, day, seg.Location()); err == nil {
			set[t.AddDate(0, 0, -1).Format(worktime.DateLayout)] = struct{}{}
		}
	}

	days := make([]string, 0, len(set))
	for day := range set {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}

// contractsOnDay lists the distinct contract scopes seen on the civil day.
func contractsOnDay(entries []*domain.TimeLogEntry, seg *worktime.Segmenter, day string) []string {
	set := make(map[string]struct{})
	for _, e := range entries {
		if seg.CivilDate(e.LoggedAt) == day {
			set[e.ContractID] = struct{}{}
		}
	}
	if len(set) == 0 {
		// A preceding day with no entries of its own still gets the
		// default scope recomputed.
		return []string{""}
	}

	contracts := make([]string, 0, len(set))
	for c := range set {
		contracts = append(contracts, c)
	}
	sort.Strings(contracts)
	return contracts
}
