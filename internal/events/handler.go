package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rolltrack/rolltrack/internal/telemetry/tracing"
	"github.com/rolltrack/rolltrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=events_mocks_test.go -package=events_test

type service interface {
	AddCompetition(ctx context.Context, c Competition) (int, error)
	AddPromotion(ctx context.Context, p Promotion) (int, error)
	AddSeminar(ctx context.Context, sem Seminar) (int, error)
	AddInjury(ctx context.Context, i Injury) (int, error)
	List(ctx context.Context, params ListParams) ([]*Event, error)
	Count(ctx context.Context, params EventParams) (int, error)
	Delete(ctx context.Context, id int) error
}

type Handler struct {
	service service
}

func NewHandler(service service) *Handler {
	return &Handler{
		service: service,
	}
}

type ListResponse struct {
	Events []*Event `json:"events"`
	Total  int      `json:"total"`
}

type DeleteEventResponse struct {
	DeletedID int `json:"deletedId"`
}

func (h *Handler) HandleAddCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.new.competition")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var competition Competition
	if err := json.NewDecoder(r.Body).Decode(&competition); err != nil {
		log.Errorf("new competition, unmarshal json params: %s", err)
		http.Error(w, "add competition failed", http.StatusBadRequest)
		return
	}

	if competition.Timestamp.IsZero() {
		competition.Timestamp = time.Now()
	}

	id, err := h.service.AddCompetition(ctx, competition)
	if err != nil {
		log.Errorf("new competition: %s", err)
		http.Error(w, "add competition failed", http.StatusInternalServerError)
		return
	}
	competition.ID = id

	competitionJson, err := json.Marshal(competition)
	if err != nil {
		log.Errorf("failed to marshal new competition: %s", err)
		http.Error(w, "error, failed to add new competition", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, competitionJson, http.StatusCreated)
}

func (h *Handler) HandleAddPromotion(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.new.promotion")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var promotion Promotion
	if err := json.NewDecoder(r.Body).Decode(&promotion); err != nil {
		log.Errorf("new promotion, unmarshal json params: %s", err)
		http.Error(w, "add promotion failed", http.StatusBadRequest)
		return
	}

	if promotion.Belt == "" {
		http.Error(w, "error, belt empty", http.StatusBadRequest)
		return
	}
	if promotion.Timestamp.IsZero() {
		promotion.Timestamp = time.Now()
	}

	id, err := h.service.AddPromotion(ctx, promotion)
	if err != nil {
		log.Errorf("new promotion: %s", err)
		http.Error(w, "add promotion failed", http.StatusInternalServerError)
		return
	}
	promotion.ID = id

	promotionJson, err := json.Marshal(promotion)
	if err != nil {
		log.Errorf("failed to marshal new promotion: %s", err)
		http.Error(w, "error, failed to add new promotion", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, promotionJson, http.StatusCreated)
}

func (h *Handler) HandleAddSeminar(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.new.seminar")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var seminar Seminar
	if err := json.NewDecoder(r.Body).Decode(&seminar); err != nil {
		log.Errorf("new seminar, unmarshal json params: %s", err)
		http.Error(w, "add seminar failed", http.StatusBadRequest)
		return
	}

	if seminar.Timestamp.IsZero() {
		seminar.Timestamp = time.Now()
	}

	id, err := h.service.AddSeminar(ctx, seminar)
	if err != nil {
		log.Errorf("new seminar: %s", err)
		http.Error(w, "add seminar failed", http.StatusInternalServerError)
		return
	}
	seminar.ID = id

	seminarJson, err := json.Marshal(seminar)
	if err != nil {
		log.Errorf("failed to marshal new seminar: %s", err)
		http.Error(w, "error, failed to add new seminar", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, seminarJson, http.StatusCreated)
}

func (h *Handler) HandleAddInjury(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.new.injury")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var injury Injury
	if err := json.NewDecoder(r.Body).Decode(&injury); err != nil {
		log.Errorf("new injury, unmarshal json params: %s", err)
		http.Error(w, "add injury failed", http.StatusBadRequest)
		return
	}

	if injury.Location == "" {
		http.Error(w, "error, injury location empty", http.StatusBadRequest)
		return
	}
	if injury.Timestamp.IsZero() {
		injury.Timestamp = time.Now()
	}

	id, err := h.service.AddInjury(ctx, injury)
	if err != nil {
		log.Errorf("new injury: %s", err)
		http.Error(w, "add injury failed", http.StatusInternalServerError)
		return
	}
	injury.ID = id

	injuryJson, err := json.Marshal(injury)
	if err != nil {
		log.Errorf("failed to marshal new injury: %s", err)
		http.Error(w, "error, failed to add new injury", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, injuryJson, http.StatusCreated)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.list")
	defer span.End()

	vars := mux.Vars(r)
	page, err := strconv.Atoi(vars["page"])
	if err != nil {
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil {
		http.Error(w, "parse form error, parameter <size>", http.StatusBadRequest)
		return
	}
	if page < 1 || size < 1 {
		http.Error(w, "invalid page or size (has to be non-zero value)", http.StatusBadRequest)
		return
	}

	var eventParams EventParams
	if typeStr := r.URL.Query().Get("type"); typeStr != "" {
		eventType := EventType(typeStr)
		if !eventType.IsValid() {
			http.Error(w, "invalid event type", http.StatusBadRequest)
			return
		}
		eventParams.Type = &eventType
	}

	events, err := h.service.List(ctx, ListParams{
		EventParams: eventParams,
		Page:        page,
		Size:        size,
	})
	if err != nil {
		log.Errorf("list events error: %s", err)
		http.Error(w, "failed to get events", http.StatusInternalServerError)
		return
	}

	total, err := h.service.Count(ctx, eventParams)
	if err != nil {
		log.Errorf("count events error: %s", err)
		http.Error(w, "failed to get events", http.StatusInternalServerError)
		return
	}

	listRespJson, err := json.Marshal(ListResponse{
		Events: events,
		Total:  total,
	})
	if err != nil {
		log.Errorf("marshal events error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listRespJson, http.StatusOK)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.delete")
	defer span.End()

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrEventNotFound) {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete event %d: %s", id, err)
		http.Error(w, "event not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteEventResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}
