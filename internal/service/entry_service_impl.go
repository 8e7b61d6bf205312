package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bside-ms/bside-nexus-sub000/internal/db"
	"github.com/bside-ms/bside-nexus-sub000/internal/domain"
	"github.com/bside-ms/bside-nexus-sub000/internal/repository"
	"github.com/bside-ms/bside-nexus-sub000/internal/worktime"
	"github.com/google/uuid"
)

type entryService struct {
	entries  repository.EntryRepo
	seg      *worktime.Segmenter
	checker  *worktime.Checker
	policy   worktime.Policy
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

// NewEntryService creates the booking/deletion use cases. The now func is
// injectable for tests; nil means time.Now.
func NewEntryService(entries repository.EntryRepo, seg *worktime.Segmenter, policy worktime.Policy, uow db.UnitOfWork, observer UseCaseObserver, now func() time.Time) EntryService {
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	if now == nil {
		now = time.Now
	}
	return &entryService{
		entries:  entries,
		seg:      seg,
		checker:  worktime.NewChecker(seg),
		policy:   policy,
		uow:      uow,
		observer: observer,
		now:      now,
	}
}

func (s *entryService) Book(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	start := time.Now()
	result, err := s.book(ctx, req)
	observe(ctx, s.observer, "book_entry", start, err, map[string]any{
		"user_id": req.UserID, "entry_type": string(req.EntryType), "force": req.Force,
	})
	return result, err
}

func (s *entryService) book(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	if !domain.ValidEntryTypes[string(req.EntryType)] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEntryType, req.EntryType)
	}
	if len(req.Comment) > domain.MaxCommentLen {
		return nil, fmt.Errorf("%w: %d > %d chars", ErrCommentTooLong, len(req.Comment), domain.MaxCommentLen)
	}

	now := s.now()
	at := now
	if req.At != nil {
		at = *req.At
	}
	if err := s.policy.Validate(at, now); err != nil {
		return nil, err
	}

	verdict := worktime.Verdict{Valid: true}
	if req.EntryType == domain.EntryStop {
		existing, err := s.loadSurroundingEntries(ctx, req.UserID, req.ContractID, at)
		if err != nil {
			return nil, err
		}
		verdict = s.checker.Check(existing, worktime.ProposedEntry{
			EntryType: req.EntryType,
			LoggedAt:  at,
		})
		if !verdict.Valid && !req.Force {
			// Advisory refusal: nothing is written, the caller may retry
			// with Force after an explicit confirmation.
			return &BookingResult{Verdict: verdict}, fmt.Errorf("%s: %w", verdict.Warning, ErrBreakWarning)
		}
	}

	entry := &domain.TimeLogEntry{
		ID:         uuid.New().String(),
		UserID:     req.UserID,
		ContractID: req.ContractID,
		EntryType:  req.EntryType,
		LoggedAt:   at.UTC(),
		Comment:    req.Comment,
		CreatedAt:  now.UTC(),
	}

	result := &BookingResult{Entry: entry, Verdict: verdict}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteEntryRepo(tx)
		if err := txEntries.Create(ctx, entry); err != nil {
			return err
		}

		day, err := s.owningDay(ctx, txEntries, entry)
		if err != nil {
			return err
		}
		result.Day = day

		record, err := aggregateDayTx(ctx, tx, s.seg, req.UserID, req.ContractID, day)
		if err != nil {
			return err
		}
		result.Record = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *entryService) Delete(ctx context.Context, id, deletedBy, reason string) error {
	start := time.Now()
	err := s.delete(ctx, id, deletedBy, reason)
	observe(ctx, s.observer, "delete_entry", start, err, map[string]any{"entry_id": id})
	return err
}

func (s *entryService) delete(ctx context.Context, id, deletedBy, reason string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteEntryRepo(tx)
		entry, err := txEntries.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := txEntries.SoftDelete(ctx, id, deletedBy, reason, s.now()); err != nil {
			return err
		}

		// The deleted entry may have belonged to its own civil day or, via a
		// midnight-spanning bracket, to the previous one. Recompute both;
		// aggregation is idempotent, so the superfluous one is harmless.
		day := s.seg.CivilDate(entry.LoggedAt)
		dayStart, err := time.ParseInLocation(worktime.DateLayout, day, s.seg.Location())
		if err != nil {
			return fmt.Errorf("parsing workday %q: %w", day, err)
		}
		previous := dayStart.AddDate(0, 0, -1).Format(worktime.DateLayout)

		for _, d := range []string{previous, day} {
			if _, err := aggregateDayTx(ctx, tx, s.seg, entry.UserID, entry.ContractID, d); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *entryService) ListDay(ctx context.Context, userID, day string) ([]*domain.TimeLogEntry, domain.DayStats, error) {
	loc := s.seg.Location()
	dayStart, err := time.ParseInLocation(worktime.DateLayout, day, loc)
	if err != nil {
		return nil, domain.DayStats{}, fmt.Errorf("parsing workday %q: %w", day, err)
	}

	// Same lead-in as aggregation: a stop just past midnight belongs to the
	// previous day's group, which only segments correctly when its start is
	// in the loaded window.
	loaded, err := s.entries.ListForUserBetween(ctx, userID,
		dayStart.AddDate(0, 0, -1), dayStart.Add(aggregationWindow))
	if err != nil {
		return nil, domain.DayStats{}, err
	}

	groups, _ := s.seg.Segment(loaded)
	group := groups[day]
	return group, worktime.ComputeDayStats(group, loc), nil
}

func (s *entryService) ListDeleted(ctx context.Context, userID, day string) ([]*domain.TimeLogEntry, error) {
	dayStart, err := time.ParseInLocation(worktime.DateLayout, day, s.seg.Location())
	if err != nil {
		return nil, fmt.Errorf("parsing workday %q: %w", day, err)
	}
	return s.entries.ListDeletedForUserBetween(ctx, userID, dayStart, dayStart.AddDate(0, 0, 1))
}

func (s *entryService) SettleDay(ctx context.Context, userID, day string) (int, error) {
	group, _, err := s.ListDay(ctx, userID, day)
	if err != nil {
		return 0, err
	}
	ids := make([]string, 0, len(group))
	for _, e := range group {
		ids = append(ids, e.ID)
	}
	if err := s.entries.MarkSettled(ctx, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// loadSurroundingEntries fetches the previous and current civil day relative
// to the proposed instant, the window the compliance check simulates over.
func (s *entryService) loadSurroundingEntries(ctx context.Context, userID, contractID string, at time.Time) ([]*domain.TimeLogEntry, error) {
	loc := s.seg.Location()
	local := at.In(loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	loaded, err := s.entries.ListForUserBetween(ctx, userID, dayStart.AddDate(0, 0, -1), dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return filterByContract(loaded, contractID), nil
}

// owningDay locates the workday group the freshly committed entry landed in.
func (s *entryService) owningDay(ctx context.Context, entries repository.EntryRepo, e *domain.TimeLogEntry) (string, error) {
	loc := s.seg.Location()
	local := e.LoggedAt.In(loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	loaded, err := entries.ListForUserBetween(ctx, e.UserID, dayStart.AddDate(0, 0, -1), dayStart.AddDate(0, 0, 1))
	if err != nil {
		return "", err
	}

	groups, _ := s.seg.Segment(filterByContract(loaded, e.ContractID))
	for day, group := range groups {
		for _, candidate := range group {
			if candidate.ID == e.ID {
				return day, nil
			}
		}
	}
	// Not in any group (should not happen for a just-committed entry);
	// fall back to the entry's own civil day.
	return s.seg.CivilDate(e.LoggedAt), nil
}
