package whoop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rolltrack/rolltrack/internal/telemetry/metrics"
	"github.com/rolltrack/rolltrack/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	// how far back the first sync reaches when nothing is stored yet
	initialBackfillDays = 30
	// recent days are re-fetched, whoop recomputes scores during the day
	resyncOverlapDays = 2
)

//go:generate mockgen -source=$GOFILE -destination=syncer_mocks_test.go -package=whoop_test

type recoveriesSource interface {
	Recoveries(ctx context.Context, since time.Time) ([]Recovery, error)
}

type recoveriesStore interface {
	UpsertRecovery(ctx context.Context, recovery Recovery) error
	LatestDay(ctx context.Context) (time.Time, error)
}

// Syncer pulls recovery data from the WHOOP API into the local store.
// The periodic loop lives in the server, Sync can also be triggered
// through the API.
type Syncer struct {
	source         recoveriesSource
	store          recoveriesStore
	metricsManager *metrics.Manager

	now func() time.Time
}

func NewSyncer(
	source recoveriesSource,
	store recoveriesStore,
	metricsManager *metrics.Manager,
) *Syncer {
	return &Syncer{
		source:         source,
		store:          store,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

// Sync fetches recoveries since the last stored day and upserts them.
// Returns the number of synced records.
func (s *Syncer) Sync(ctx context.Context) (synced int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "whoop.sync")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	startedAt := s.now()
	defer func() {
		s.metricsManager.HistWhoopSyncDuration.Observe(s.now().Sub(startedAt).Seconds())
	}()

	latestDay, err := s.store.LatestDay(ctx)
	if err != nil {
		return 0, fmt.Errorf("get latest synced day: %w", err)
	}

	since := s.now().AddDate(0, 0, -initialBackfillDays)
	if !latestDay.IsZero() {
		since = latestDay.AddDate(0, 0, -resyncOverlapDays)
	}

	recoveries, err := s.source.Recoveries(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("fetch recoveries: %w", err)
	}

	for _, recovery := range recoveries {
		if err := s.store.UpsertRecovery(ctx, recovery); err != nil {
			return synced, fmt.Errorf("upsert recovery for %s: %w", recovery.Day.Format(time.DateOnly), err)
		}
		synced++
	}

	span.SetAttributes(attribute.Int("synced", synced))
	s.metricsManager.CounterWhoopSyncedRecords.Add(float64(synced))
	return synced, nil
}

// SyncAndLog runs a sync and only logs the outcome, for the periodic loop.
func (s *Syncer) SyncAndLog(ctx context.Context) {
	synced, err := s.Sync(ctx)
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			log.Debugln("whoop sync skipped, not connected")
			return
		}
		log.Errorf("whoop sync failed: %s", err)
		return
	}
	log.Debugf("whoop sync done, %d records", synced)
}
