package gyms

import (
	"context"
	"errors"
	"fmt"

	"github.com/rolltrack/rolltrack/internal/telemetry/tracing"
	"github.com/rolltrack/rolltrack/pkg"

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

func (r *Repo) Add(ctx context.Context, gym Gym) (_ *Gym, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gyms.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO gym (name, city, country, affiliation, notes, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id;`,
		gym.Name, gym.City, gym.Country, gym.Affiliation, gym.Notes, gym.CreatedAt,
	).Scan(&gym.ID)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrGymExists
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int("gym.id", gym.ID))
	return &gym, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Gym, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gyms.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	gym := &Gym{}
	err = r.db.QueryRow(
		ctx,
		`SELECT id, name, city, country, affiliation, notes, created_at
			FROM gym
			WHERE id = $1;`,
		id,
	).Scan(&gym.ID, &gym.Name, &gym.City, &gym.Country, &gym.Affiliation, &gym.Notes, &gym.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGymNotFound
		}
		return nil, err
	}
	return gym, nil
}

func (r *Repo) Update(ctx context.Context, gym *Gym) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gyms.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", gym.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE gym SET
				name = $1, city = $2, country = $3, affiliation = $4, notes = $5
			WHERE id = $6;`,
		gym.Name, gym.City, gym.Country, gym.Affiliation, gym.Notes, gym.ID,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return ErrGymExists
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGymNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gyms.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM gym WHERE id = $1`, id)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return ErrGymInUse
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGymNotFound
	}
	return nil
}

func (r *Repo) List(ctx context.Context) (_ []Gym, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gyms.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, city, country, affiliation, notes, created_at
			FROM gym
			ORDER BY name ASC;`,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	gyms := make([]Gym, 0)
	for rows.Next() {
		var g Gym
		if err := rows.Scan(
			&g.ID, &g.Name, &g.City, &g.Country, &g.Affiliation, &g.Notes, &g.CreatedAt,
		); err != nil {
			return nil, err
		}
		gyms = append(gyms, g)
	}

	return gyms, nil
}
