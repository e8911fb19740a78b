package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rolltrack/rolltrack/internal/readiness"
	"github.com/rolltrack/rolltrack/internal/telemetry/metrics"
	"github.com/rolltrack/rolltrack/internal/telemetry/tracing"
	"github.com/rolltrack/rolltrack/internal/training"
	"github.com/rolltrack/rolltrack/internal/whoop"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=analyzer_mocks_test.go -package=insights_test

type trainingRepo interface {
	ListAll(ctx context.Context, params training.SessionParams) ([]training.Session, error)
}

type readinessRepo interface {
	ListRange(ctx context.Context, from, to time.Time) ([]readiness.Checkin, error)
}

type recoveriesRepo interface {
	ListRange(ctx context.Context, from, to time.Time) ([]whoop.Recovery, error)
}

const (
	overviewCacheKey = "rolltrack-insights-overview"

	// lookbackDays is how far back the correlation and diversity
	// computations reach
	lookbackDays = 90
)

// Overview is everything the insights tab shows, computed in one go.
type Overview struct {
	Streaks      StreakSummary   `json:"streaks"`
	Load         LoadSummary     `json:"load"`
	Suggestion   Suggestion      `json:"suggestion"`
	Correlations Correlations    `json:"correlations"`
	Diversity    DiversityResult `json:"diversity"`
	WeeklyTrend  float64         `json:"weeklyHoursTrend"`
	ComputedAt   time.Time       `json:"computedAt"`
}

type Analyzer struct {
	trainingRepo   trainingRepo
	readinessRepo  readinessRepo
	recoveriesRepo recoveriesRepo
	redisClient    *redis.Client
	metricsManager *metrics.Manager
	cacheTTL       time.Duration
	now            func() time.Time
}

func NewAnalyzer(
	trainingRepo trainingRepo,
	readinessRepo readinessRepo,
	recoveriesRepo recoveriesRepo,
	redisClient *redis.Client,
	metricsManager *metrics.Manager,
	cacheTTL time.Duration,
) *Analyzer {
	return &Analyzer{
		trainingRepo:   trainingRepo,
		readinessRepo:  readinessRepo,
		recoveriesRepo: recoveriesRepo,
		redisClient:    redisClient,
		metricsManager: metricsManager,
		cacheTTL:       cacheTTL,
		now:            time.Now,
	}
}

// Overview returns the cached overview if fresh enough, otherwise recomputes
// it from the repos and caches the result.
func (a *Analyzer) Overview(ctx context.Context) (_ *Overview, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "insights.analyzer.overview")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if cached := a.cachedOverview(ctx); cached != nil {
		span.SetAttributes(attribute.Bool("from-cache", true))
		return cached, nil
	}
	span.SetAttributes(attribute.Bool("from-cache", false))

	started := a.now()
	overview, err := a.computeOverview(ctx)
	if err != nil {
		return nil, err
	}
	a.metricsManager.HistInsightsCompDuration.Observe(time.Since(started).Seconds())

	a.cacheOverview(ctx, overview)

	return overview, nil
}

func (a *Analyzer) cachedOverview(ctx context.Context) *Overview {
	cmd := a.redisClient.Get(ctx, overviewCacheKey)
	if cmd.Err() != nil {
		return nil
	}
	cachedBytes := cmd.Val()
	if cachedBytes == "" {
		return nil
	}

	var overview Overview
	if err := json.Unmarshal([]byte(cachedBytes), &overview); err != nil {
		log.Errorf("failed to unmarshal cached insights overview: %s", err)
		return nil
	}
	return &overview
}

func (a *Analyzer) cacheOverview(ctx context.Context, overview *Overview) {
	overviewJson, err := json.Marshal(overview)
	if err != nil {
		log.Errorf("failed to marshal insights overview for cache: %s", err)
		return
	}
	if err := a.redisClient.Set(ctx, overviewCacheKey, overviewJson, a.cacheTTL).Err(); err != nil {
		log.Errorf("failed to cache insights overview: %s", err)
	}
}

// InvalidateCache drops the cached overview. Called after new sessions or
// check-ins land, so the next read recomputes.
func (a *Analyzer) InvalidateCache(ctx context.Context) {
	if err := a.redisClient.Del(ctx, overviewCacheKey).Err(); err != nil {
		log.Errorf("failed to invalidate insights overview cache: %s", err)
	}
}

func (a *Analyzer) computeOverview(ctx context.Context) (*Overview, error) {
	now := a.now()

	sessions, err := a.lookbackSessions(ctx, now)
	if err != nil {
		return nil, err
	}

	overview := &Overview{
		Streaks:     Streaks(sessionTimes(sessions), now),
		Load:        LoadAnalysis(sessions, now),
		WeeklyTrend: WeeklyHoursTrend(sessions),
		Diversity:   TechniqueDiversity(sessions),
		ComputedAt:  now,
	}

	from := now.AddDate(0, 0, -lookbackDays)

	checkins, err := a.readinessRepo.ListRange(ctx, from, now)
	if err != nil {
		// readiness data is optional for the overview, log and move on
		log.Errorf("insights overview, list checkins: %s", err)
	}

	recoveries, err := a.recoveriesRepo.ListRange(ctx, from, now)
	if err != nil {
		log.Errorf("insights overview, list whoop recoveries: %s", err)
	}

	overview.Correlations = Correlations{
		RecoveryVsPerformance: RecoveryVsPerformance(sessions, recoveries),
		EnergyVsIntensity:     EnergyVsIntensity(checkins, sessions),
		SleepVsNextDayPerf:    SleepVsNextDayPerformance(checkins, sessions),
	}

	overview.Suggestion = a.suggestion(overview.Load, overview.Streaks, checkins, recoveries, now)

	return overview, nil
}

// SuggestionNow computes only today's training suggestion, skipping the cache.
func (a *Analyzer) SuggestionNow(ctx context.Context) (_ *Suggestion, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "insights.analyzer.suggestion")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := a.now()

	sessions, err := a.lookbackSessions(ctx, now)
	if err != nil {
		return nil, err
	}

	streaks := Streaks(sessionTimes(sessions), now)
	load := LoadAnalysis(sessions, now)

	today := dayKey(now)
	checkins, err := a.readinessRepo.ListRange(ctx, today, now)
	if err != nil {
		log.Errorf("insights suggestion, get today checkin: %s", err)
	}
	recoveries, err := a.recoveriesRepo.ListRange(ctx, today, now)
	if err != nil {
		log.Errorf("insights suggestion, get today whoop recovery: %s", err)
	}

	suggestion := a.suggestion(load, streaks, checkins, recoveries, now)

	a.metricsManager.CounterSuggestionsServed.Inc()

	return &suggestion, nil
}

func (a *Analyzer) suggestion(
	load LoadSummary,
	streaks StreakSummary,
	checkins []readiness.Checkin,
	recoveries []whoop.Recovery,
	now time.Time,
) Suggestion {
	input := SuggestionInput{
		Load:    load,
		Streaks: streaks,
	}

	today := dayKey(now)
	for i := range checkins {
		if dayKey(checkins[i].Day).Equal(today) {
			score := checkins[i].Score()
			input.ReadinessScore = &score
			if checkins[i].SleepHours > 0 {
				sleepHours := checkins[i].SleepHours
				input.SleepHours = &sleepHours
			}
			break
		}
	}
	for i := range recoveries {
		if dayKey(recoveries[i].Day).Equal(today) {
			input.WhoopRecovery = &recoveries[i].Score
			break
		}
	}

	return Suggest(input)
}

func (a *Analyzer) lookbackSessions(ctx context.Context, now time.Time) ([]training.Session, error) {
	from := now.AddDate(0, 0, -lookbackDays)
	sessions, err := a.trainingRepo.ListAll(ctx, training.SessionParams{
		From:               &from,
		ExcludeTestingData: true,
	})
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func sessionTimes(sessions []training.Session) []time.Time {
	times := make([]time.Time, 0, len(sessions))
	for _, s := range sessions {
		times = append(times, s.HappenedAt)
	}
	return times
}
