package readiness

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rolltrack/rolltrack/internal/telemetry/metrics"
	"github.com/rolltrack/rolltrack/internal/telemetry/tracing"
	"github.com/rolltrack/rolltrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=checkins_mocks_test.go -package=readiness_test

type checkinsRepo interface {
	Upsert(ctx context.Context, checkin Checkin) (*Checkin, error)
	GetByDay(ctx context.Context, day time.Time) (*Checkin, error)
	ListRange(ctx context.Context, from, to time.Time) ([]Checkin, error)
	Delete(ctx context.Context, id int) error
}

// overviewInvalidator drops the cached insights overview, so the
// correlations and suggestions pick up the changed check-ins.
type overviewInvalidator interface {
	InvalidateCache(ctx context.Context)
}

type CheckinResponse struct {
	Checkin
	Score float64 `json:"score"`
}

type ListResponse struct {
	Checkins []CheckinResponse `json:"checkins"`
}

type DeleteCheckinResponse struct {
	DeletedID int `json:"deletedId"`
}

type Handler struct {
	repo           checkinsRepo
	invalidator    overviewInvalidator
	metricsManager *metrics.Manager
}

func NewHandler(repo checkinsRepo, invalidator overviewInvalidator, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		invalidator:    invalidator,
		metricsManager: metricsManager,
	}
}

// HandleUpsert adds the daily check-in, overwriting the one
// already reported for the same day, if any.
func (handler *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.readiness.upsert")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var checkin Checkin
	if err := json.NewDecoder(r.Body).Decode(&checkin); err != nil {
		log.Tracef("new checkin, unmarshal json params: %s", err)
		http.Error(w, "add checkin failed", http.StatusBadRequest)
		return
	}

	if checkin.Day.IsZero() {
		checkin.Day = time.Now()
	}

	if err := checkin.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	savedCheckin, err := handler.repo.Upsert(ctx, checkin)
	if err != nil {
		log.Errorf("failed to save checkin for %s: %s", checkin.Day.Format(time.DateOnly), err)
		http.Error(w, "error, failed to save checkin", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterReadinessReports.Inc()
	handler.invalidator.InvalidateCache(ctx)

	respJson, err := json.Marshal(CheckinResponse{
		Checkin: *savedCheckin,
		Score:   savedCheckin.Score(),
	})
	if err != nil {
		log.Errorf("failed to marshal checkin: %s", err)
		http.Error(w, "error, failed to save checkin", http.StatusInternalServerError)
		return
	}

	log.Debugf("checkin saved: %s", respJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusCreated)
}

func (handler *Handler) HandleGetByDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.readiness.getByDay")
	defer span.End()

	vars := mux.Vars(r)
	dayStr := vars["day"]
	day, err := time.Parse(time.DateOnly, dayStr)
	if err != nil {
		http.Error(w, "error, invalid day, use YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	checkin, err := handler.repo.GetByDay(ctx, day)
	if err != nil {
		if errors.Is(err, ErrCheckinNotFound) {
			http.Error(w, "checkin not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get checkin for %s: %s", dayStr, err)
		http.Error(w, "failed to get checkin", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(CheckinResponse{
		Checkin: *checkin,
		Score:   checkin.Score(),
	})
	if err != nil {
		log.Errorf("failed to marshal checkin: %s", err)
		http.Error(w, "failed to marshal checkin", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.readiness.list")
	defer span.End()

	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		parsed, err := time.Parse(time.DateOnly, fromStr)
		if err != nil {
			http.Error(w, "error, invalid from, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		from = parsed
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		parsed, err := time.Parse(time.DateOnly, toStr)
		if err != nil {
			http.Error(w, "error, invalid to, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		to = parsed
	}

	if from.After(to) {
		http.Error(w, "error, from after to", http.StatusBadRequest)
		return
	}

	checkins, err := handler.repo.ListRange(ctx, from, to)
	if err != nil {
		log.Errorf("list checkins error: %s", err)
		http.Error(w, "failed to get checkins", http.StatusInternalServerError)
		return
	}

	listResp := ListResponse{
		Checkins: make([]CheckinResponse, 0, len(checkins)),
	}
	for _, c := range checkins {
		listResp.Checkins = append(listResp.Checkins, CheckinResponse{
			Checkin: c,
			Score:   c.Score(),
		})
	}

	respJson, err := json.Marshal(listResp)
	if err != nil {
		log.Errorf("marshal checkins error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.readiness.delete")
	defer span.End()

	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrCheckinNotFound) {
			http.Error(w, "checkin not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete checkin %d: %s", id, err)
		http.Error(w, "checkin not deleted", http.StatusInternalServerError)
		return
	}

	handler.invalidator.InvalidateCache(ctx)

	deleteRespJson, err := json.Marshal(DeleteCheckinResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}
