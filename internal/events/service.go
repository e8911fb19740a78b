package events

import (
	"context"
	"fmt"

	"github.com/rolltrack/rolltrack/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/codes"
)

type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) AddCompetition(ctx context.Context, c Competition) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.add.competition")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	event, err := s.repo.Add(ctx, NewCompetitionEvent(c))
	if err != nil {
		return 0, fmt.Errorf("add competition event: %w", err)
	}
	return event.ID, nil
}

func (s *Service) AddPromotion(ctx context.Context, p Promotion) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.add.promotion")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	event, err := s.repo.Add(ctx, NewPromotionEvent(p))
	if err != nil {
		return 0, fmt.Errorf("add promotion event: %w", err)
	}
	return event.ID, nil
}

func (s *Service) AddSeminar(ctx context.Context, sem Seminar) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.add.seminar")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	event, err := s.repo.Add(ctx, NewSeminarEvent(sem))
	if err != nil {
		return 0, fmt.Errorf("add seminar event: %w", err)
	}
	return event.ID, nil
}

func (s *Service) AddInjury(ctx context.Context, i Injury) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.add.injury")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	event, err := s.repo.Add(ctx, NewInjuryEvent(i))
	if err != nil {
		return 0, fmt.Errorf("add injury event: %w", err)
	}
	return event.ID, nil
}

func (s *Service) List(ctx context.Context, params ListParams) (_ []*Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.list")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	events, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *Service) Count(ctx context.Context, params EventParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.count")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	count, err := s.repo.Count(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}

func (s *Service) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.delete")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	return s.repo.Delete(ctx, id)
}
