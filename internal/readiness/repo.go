package readiness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rolltrack/rolltrack/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Upsert inserts the check-in, or overwrites the existing one for the same day.
func (r *Repo) Upsert(ctx context.Context, checkin Checkin) (_ *Checkin, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.readiness.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	checkin.Day = DayKey(checkin.Day)

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO readiness_checkin
				(day, sleep_hours, sleep_quality, soreness, stress, energy, mood, resting_hr, notes)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (day) DO UPDATE SET
				sleep_hours = EXCLUDED.sleep_hours,
				sleep_quality = EXCLUDED.sleep_quality,
				soreness = EXCLUDED.soreness,
				stress = EXCLUDED.stress,
				energy = EXCLUDED.energy,
				mood = EXCLUDED.mood,
				resting_hr = EXCLUDED.resting_hr,
				notes = EXCLUDED.notes
			RETURNING id;`,
		checkin.Day, checkin.SleepHours, checkin.SleepQuality, checkin.Soreness,
		checkin.Stress, checkin.Energy, checkin.Mood, checkin.RestingHR, checkin.Notes,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("checkin.id", id))

	checkin.ID = id
	return &checkin, nil
}

func (r *Repo) GetByDay(ctx context.Context, day time.Time) (_ *Checkin, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.readiness.getByDay")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("day", day.Format(time.DateOnly)))

	rows, err := r.db.Query(
		ctx,
		`SELECT
				id, day, sleep_hours, sleep_quality, soreness, stress, energy, mood, resting_hr, notes
			FROM readiness_checkin
			WHERE day = $1;`,
		DayKey(day),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	checkins, err := r.rows2checkins(rows)
	if err != nil {
		return nil, err
	}

	if len(checkins) != 1 {
		return nil, ErrCheckinNotFound
	}

	return &checkins[0], nil
}

// ListRange returns the check-ins in [from, to], oldest first.
func (r *Repo) ListRange(ctx context.Context, from, to time.Time) (_ []Checkin, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.readiness.listRange")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("from", from.Format(time.DateOnly)))
	span.SetAttributes(attribute.String("to", to.Format(time.DateOnly)))

	rows, err := r.db.Query(
		ctx,
		`SELECT
				id, day, sleep_hours, sleep_quality, soreness, stress, energy, mood, resting_hr, notes
			FROM readiness_checkin
			WHERE day >= $1 AND day <= $2
			ORDER BY day ASC;`,
		DayKey(from), DayKey(to),
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return r.rows2checkins(rows)
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.readiness.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM readiness_checkin WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCheckinNotFound
	}
	return nil
}

func (r *Repo) rows2checkins(rows pgx.Rows) ([]Checkin, error) {
	var checkins []Checkin
	for rows.Next() {
		var c Checkin
		if err := rows.Scan(
			&c.ID, &c.Day, &c.SleepHours, &c.SleepQuality, &c.Soreness,
			&c.Stress, &c.Energy, &c.Mood, &c.RestingHR, &c.Notes,
		); err != nil {
			return nil, err
		}
		checkins = append(checkins, c)
	}

	if checkins == nil {
		checkins = make([]Checkin, 0)
	}

	return checkins, nil
}
