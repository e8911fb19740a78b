package training

import (
	"context"
	"encoding/json"
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

func (r *Repo) Add(ctx context.Context, session Session) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	techniquesJson, err := json.Marshal(session.TechniquesDrilled)
	if err != nil {
		return nil, fmt.Errorf("marshal techniques: %w", err)
	}
	metadataJson, err := json.Marshal(session.Metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO training_session
				(gym_id, class_type, duration_minutes, intensity, rounds_sparred,
				 submissions_for, submissions_against, techniques, injury_note, notes,
				 metadata, happened_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id;`,
		session.GymID, session.Type, session.DurationMinutes, session.Intensity,
		session.RoundsSparred, session.SubmissionsFor, session.SubmissionsAgainst,
		techniquesJson, session.InjuryNote, session.Notes, metadataJson, session.HappenedAt,
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

	span.SetAttributes(attribute.Int("session.id", id))

	session.ID = id
	return &session, nil
}

func (r *Repo) Update(ctx context.Context, session *Session) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", session.ID))

	techniquesJson, err := json.Marshal(session.TechniquesDrilled)
	if err != nil {
		return fmt.Errorf("marshal techniques: %w", err)
	}
	metadataJson, err := json.Marshal(session.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE training_session SET
				gym_id = $1, class_type = $2, duration_minutes = $3, intensity = $4,
				rounds_sparred = $5, submissions_for = $6, submissions_against = $7,
				techniques = $8, injury_note = $9, notes = $10, metadata = $11, happened_at = $12
			WHERE id = $13;`,
		session.GymID, session.Type, session.DurationMinutes, session.Intensity,
		session.RoundsSparred, session.SubmissionsFor, session.SubmissionsAgainst,
		techniquesJson, session.InjuryNote, session.Notes, metadataJson, session.HappenedAt,
		session.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM training_session WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT
				id, gym_id, class_type, duration_minutes, intensity, rounds_sparred,
				submissions_for, submissions_against, techniques, injury_note, notes,
				metadata, happened_at
			FROM training_session
			WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	sessions, err := r.rows2sessions(rows)
	if err != nil {
		return nil, err
	}

	if len(sessions) != 1 {
		return nil, ErrSessionNotFound
	}

	return &sessions[0], nil
}

// ListAll returns all sessions matching the given filter params, newest first.
func (r *Repo) ListAll(ctx context.Context, params SessionParams) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("class_type", params.Type.String()))
	span.SetAttributes(attribute.Bool("exclude-testing-data", params.ExcludeTestingData))
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}
	if params.To != nil {
		span.SetAttributes(attribute.String("to", params.To.String()))
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT
				id, gym_id, class_type, duration_minutes, intensity, rounds_sparred,
				submissions_for, submissions_against, techniques, injury_note, notes,
				metadata, happened_at
			FROM training_session
				WHERE ($1::text = '' OR class_type = $1)
				AND ($2::int IS NULL OR gym_id = $2)
				AND ($3::timestamptz IS NULL OR happened_at >= $3)
				AND ($4::timestamptz IS NULL OR happened_at <= $4)
				AND ($5::boolean IS FALSE OR metadata->>'testing' IS NULL OR metadata->>'testing' != 'true')
			ORDER BY happened_at DESC;`,
		params.Type, params.GymID,
		params.From, params.To,
		params.ExcludeTestingData,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	sessions, err := r.rows2sessions(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2sessions: %w", err)
	}
	return sessions, nil
}

// List is like ListAll, but returns the specific PAGE of sessions,
// i.e. is used for pagination.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Session, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("page", params.Page))
	span.SetAttributes(attribute.Int("size", params.Size))

	if params.Page < 1 {
		return nil, -1, errors.New("page must be greater than 0")
	}
	if params.Size < 1 {
		return nil, -1, errors.New("size must be greater than 0")
	}

	limit := params.Size
	offset := (params.Page - 1) * params.Size
	countAll, err := r.SessionsCount(ctx, params.SessionParams)
	if err != nil {
		return nil, -1, err
	}

	if countAll <= limit {
		limit = countAll
		offset = 0
	}

	if countAll-offset < limit {
		offset = countAll - limit
	}

	span.SetAttributes(attribute.Int("count_all", countAll))
	span.SetAttributes(attribute.Int("limit", limit))
	span.SetAttributes(attribute.Int("offset", offset))

	rows, err := r.db.Query(
		ctx,
		`SELECT
				id, gym_id, class_type, duration_minutes, intensity, rounds_sparred,
				submissions_for, submissions_against, techniques, injury_note, notes,
				metadata, happened_at
			FROM training_session
				WHERE ($1::text = '' OR class_type = $1)
				AND ($2::int IS NULL OR gym_id = $2)
				AND ($3::timestamptz IS NULL OR happened_at >= $3)
				AND ($4::timestamptz IS NULL OR happened_at <= $4)
				AND ($5::boolean IS FALSE OR metadata->>'testing' IS NULL OR metadata->>'testing' != 'true')
			ORDER BY happened_at DESC
			LIMIT $6
			OFFSET $7;`,
		params.Type, params.GymID,
		params.From, params.To,
		params.ExcludeTestingData,
		limit, offset,
	)
	if err != nil {
		return nil, -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, -1, err
	}

	sessions, err := r.rows2sessions(rows)
	if err != nil {
		return nil, -1, err
	}
	return sessions, countAll, nil
}

func (r *Repo) SessionsCount(ctx context.Context, params SessionParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT COUNT(*) FROM training_session
			WHERE ($1::text = '' OR class_type = $1)
			AND ($2::int IS NULL OR gym_id = $2)
			AND ($3::timestamptz IS NULL OR happened_at >= $3)
			AND ($4::timestamptz IS NULL OR happened_at <= $4)
			AND ($5::boolean IS FALSE OR metadata->>'testing' IS NULL OR metadata->>'testing' != 'true');
	`,
		params.Type, params.GymID,
		params.From, params.To,
		params.ExcludeTestingData,
	)
	if err != nil {
		return -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return -1, err
	}

	if rows.Next() {
		var count int
		if err := rows.Scan(&count); err == nil {
			return count, nil
		}
	}

	return -1, errors.New("unexpected error, failed to get sessions count")
}

func (r *Repo) rows2sessions(rows pgx.Rows) ([]Session, error) {
	var sessions []Session
	for rows.Next() {
		var s Session
		var techniquesBytes []byte
		var metadataBytes []byte
		var happenedAt time.Time
		if err := rows.Scan(
			&s.ID, &s.GymID, &s.Type, &s.DurationMinutes, &s.Intensity, &s.RoundsSparred,
			&s.SubmissionsFor, &s.SubmissionsAgainst, &techniquesBytes, &s.InjuryNote,
			&s.Notes, &metadataBytes, &happenedAt,
		); err != nil {
			return nil, err
		}

		s.HappenedAt = happenedAt

		if len(techniquesBytes) > 0 {
			if err := json.Unmarshal(techniquesBytes, &s.TechniquesDrilled); err != nil {
				return nil, fmt.Errorf("unmarshal techniques for session %d: %w", s.ID, err)
			}
		}
		if s.TechniquesDrilled == nil {
			s.TechniquesDrilled = make([]string, 0)
		}

		if len(metadataBytes) > 0 {
			if err := json.Unmarshal(metadataBytes, &s.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal metadata for session %d: %w", s.ID, err)
			}
		}
		if s.Metadata == nil {
			s.Metadata = make(map[string]string)
		}

		sessions = append(sessions, s)
	}

	if sessions == nil {
		sessions = make([]Session, 0)
	}

	return sessions, nil
}
