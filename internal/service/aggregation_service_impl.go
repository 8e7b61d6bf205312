package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bside-ms/bside-nexus-sub000/internal/db"
	"github.com/bside-ms/bside-nexus-sub000/internal/domain"
	"github.com/bside-ms/bside-nexus-sub000/internal/repository"
	"github.com/bside-ms/bside-nexus-sub000/internal/worktime"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// aggregationWindow is how far past a workday's midnight entries are loaded.
// Together with the one-day lead-in below it catches a shift that opened the
// previous evening and closed after midnight without pulling in unrelated
// days.
const aggregationWindow = 48 * time.Hour

type aggregationService struct {
	seg      *worktime.Segmenter
	uow      db.UnitOfWork
	records  repository.DailyRecordRepo
	log      zerolog.Logger
	observer UseCaseObserver
}

// NewAggregationService creates the idempotent daily aggregator.
func NewAggregationService(seg *worktime.Segmenter, uow db.UnitOfWork, records repository.DailyRecordRepo, log zerolog.Logger, observer UseCaseObserver) AggregationService {
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &aggregationService{seg: seg, uow: uow, records: records, log: log, observer: observer}
}

func (s *aggregationService) AggregateDay(ctx context.Context, userID, contractID, day string) (*domain.DailyRecord, error) {
	start := time.Now()
	var record *domain.DailyRecord

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var txErr error
		record, txErr = aggregateDayTx(ctx, tx, s.seg, userID, contractID, day)
		return txErr
	})

	observe(ctx, s.observer, "aggregate_day", start, err, map[string]any{
		"user_id": userID, "day": day, "contract_id": contractID,
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("user_id", userID).
		Str("day", day).
		Float64("work_hours", record.TotalWorkHours).
		Bool("has_errors", record.HasErrors).
		Msg("aggregated workday")
	return record, nil
}

func (s *aggregationService) AggregateRange(ctx context.Context, userID, contractID, from, to string) ([]*domain.DailyRecord, error) {
	loc := s.seg.Location()
	fromDay, err := time.ParseInLocation(worktime.DateLayout, from, loc)
	if err != nil {
		return nil, fmt.Errorf("parsing range start %q: %w", from, err)
	}
	toDay, err := time.ParseInLocation(worktime.DateLayout, to, loc)
	if err != nil {
		return nil, fmt.Errorf("parsing range end %q: %w", to, err)
	}
	if toDay.Before(fromDay) {
		return nil, fmt.Errorf("range end %s precedes start %s", to, from)
	}

	var records []*domain.DailyRecord
	for day := fromDay; !day.After(toDay); day = day.AddDate(0, 0, 1) {
		key := day.Format(worktime.DateLayout)
		record, err := s.AggregateDay(ctx, userID, contractID, key)
		if err != nil {
			return records, fmt.Errorf("aggregating %s: %w", key, err)
		}
		records = append(records, record)
	}

	s.log.Info().
		Str("user_id", userID).
		Str("from", from).
		Str("to", to).
		Int("days", len(records)).
		Msg("backfill complete")
	return records, nil
}

func (s *aggregationService) ListRecords(ctx context.Context, userID, from, to string) ([]*domain.DailyRecord, error) {
	return s.records.ListForUserBetween(ctx, userID, from, to)
}

// aggregateDayTx performs one full recompute-and-replace for the key inside
// the caller's transaction. Every call overwrites the row; there is no
// incremental patching, which is what makes re-aggregation after an edit or
// soft-delete converge.
func aggregateDayTx(ctx context.Context, tx db.DBTX, seg *worktime.Segmenter, userID, contractID, day string) (*domain.DailyRecord, error) {
	loc := seg.Location()
	dayStart, err := time.ParseInLocation(worktime.DateLayout, day, loc)
	if err != nil {
		return nil, fmt.Errorf("parsing workday %q: %w", day, err)
	}

	// The window starts one civil day early so a stop shortly after this
	// day's midnight can be attributed to its opening start on the previous
	// day instead of being orphaned onto this one.
	entries := repository.NewSQLiteEntryRepo(tx)
	loaded, err := entries.ListForUserBetween(ctx, userID,
		dayStart.AddDate(0, 0, -1), dayStart.Add(aggregationWindow))
	if err != nil {
		return nil, err
	}

	scoped := filterByContract(loaded, contractID)
	groups, _ := seg.Segment(scoped)
	stats := worktime.ComputeDayStats(groups[day], loc)

	record := &domain.DailyRecord{
		ID:              uuid.New().String(),
		UserID:          userID,
		Day:             day,
		ContractID:      contractID,
		TotalWorkHours:  roundHours(stats.NetMinutes),
		TotalBreakHours: roundHours(stats.AdjustedBreakMinutes),
		HasErrors:       len(stats.Issues) > 0,
		ErrorDetails:    strings.Join(stats.IssueDetails(), "; "),
		UpdatedAt:       time.Now().UTC(),
	}

	if err := repository.NewSQLiteDailyRecordRepo(tx).Upsert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func filterByContract(entries []*domain.TimeLogEntry, contractID string) []*domain.TimeLogEntry {
	scoped := make([]*domain.TimeLogEntry, 0, len(entries))
	for _, e := range entries {
		if e.ContractID == contractID {
			scoped = append(scoped, e)
		}
	}
	return scoped
}

// roundHours converts minutes to hours with two decimal places.
func roundHours(minutes int) float64 {
	return math.Round(float64(minutes)/60*100) / 100
}
