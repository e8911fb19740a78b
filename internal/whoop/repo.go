package whoop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rolltrack/rolltrack/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/oauth2"
)

var ErrNoToken = errors.New("no whoop token stored")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// SaveToken stores the OAuth token. A single athlete, a single token row.
func (r *Repo) SaveToken(ctx context.Context, token *oauth2.Token) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.whoop.saveToken")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO whoop_token (id, access_token, refresh_token, token_type, expiry, updated_at)
			VALUES (1, $1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE SET
				access_token = EXCLUDED.access_token,
				refresh_token = EXCLUDED.refresh_token,
				token_type = EXCLUDED.token_type,
				expiry = EXCLUDED.expiry,
				updated_at = EXCLUDED.updated_at;`,
		token.AccessToken, token.RefreshToken, token.TokenType, token.Expiry, time.Now(),
	)
	return err
}

func (r *Repo) GetToken(ctx context.Context) (_ *oauth2.Token, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.whoop.getToken")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	token := &oauth2.Token{}
	err = r.db.
		QueryRow(ctx, `
			SELECT access_token, refresh_token, token_type, expiry
			FROM whoop_token
			WHERE id = 1
		`).
		Scan(&token.AccessToken, &token.RefreshToken, &token.TokenType, &token.Expiry)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoToken
		}
		return nil, err
	}
	return token, nil
}

// UpsertRecovery stores the daily recovery, overwriting the record for the
// same day. WHOOP recomputes scores during the day, last write wins.
func (r *Repo) UpsertRecovery(ctx context.Context, recovery Recovery) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.whoop.upsertRecovery")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("day", recovery.Day.Format(time.DateOnly)))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO whoop_recovery
				(day, score, hrv_milli, resting_hr, sleep_performance, day_strain, synced_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (day) DO UPDATE SET
				score = EXCLUDED.score,
				hrv_milli = EXCLUDED.hrv_milli,
				resting_hr = EXCLUDED.resting_hr,
				sleep_performance = EXCLUDED.sleep_performance,
				day_strain = EXCLUDED.day_strain,
				synced_at = EXCLUDED.synced_at;`,
		recovery.Day, recovery.Score, recovery.HRVMillis, recovery.RestingHR,
		recovery.SleepPerformance, recovery.DayStrain, recovery.SyncedAt,
	)
	return err
}

// ListRange returns the recoveries in [from, to], oldest first.
func (r *Repo) ListRange(ctx context.Context, from, to time.Time) (_ []Recovery, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.whoop.listRange")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, day, score, hrv_milli, resting_hr, sleep_performance, day_strain, synced_at
			FROM whoop_recovery
			WHERE day >= $1 AND day <= $2
			ORDER BY day ASC;`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	recoveries := make([]Recovery, 0)
	for rows.Next() {
		var rec Recovery
		if err := rows.Scan(
			&rec.ID, &rec.Day, &rec.Score, &rec.HRVMillis, &rec.RestingHR,
			&rec.SleepPerformance, &rec.DayStrain, &rec.SyncedAt,
		); err != nil {
			return nil, err
		}
		recoveries = append(recoveries, rec)
	}

	return recoveries, nil
}

// LatestDay returns the day of the most recent stored recovery,
// or the zero time when nothing was synced yet.
func (r *Repo) LatestDay(ctx context.Context) (_ time.Time, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.whoop.latestDay")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var day time.Time
	err = r.db.
		QueryRow(ctx, `SELECT day FROM whoop_recovery ORDER BY day DESC LIMIT 1`).
		Scan(&day)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return day, nil
}
