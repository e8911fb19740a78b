package training

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

//go:generate mockgen -source=$GOFILE -destination=sessions_mocks_test.go -package=training_test

type sessionsRepo interface {
	Add(ctx context.Context, session Session) (*Session, error)
	Get(ctx context.Context, id int) (*Session, error)
	List(ctx context.Context, params ListParams) (_ []Session, total int, err error)
	ListAll(ctx context.Context, params SessionParams) (_ []Session, err error)
	Update(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id int) error
	SessionsCount(ctx context.Context, params SessionParams) (int, error)
}

// overviewInvalidator drops the cached insights overview, so the
// numbers shown in the insights tab pick up the changed sessions.
type overviewInvalidator interface {
	InvalidateCache(ctx context.Context)
}

type DeleteSessionResponse struct {
	DeletedID int `json:"deletedId"`
}

type UpdateSessionResponse struct {
	UpdatedID int `json:"updatedId"`
}

type AddSessionResponse struct {
	Session
	// CountThisWeek is the number of sessions logged since the last Monday,
	// the just added one included. Shown in the client right after logging.
	CountThisWeek int `json:"countThisWeek"`
}

type ListResponse struct {
	Sessions []Session `json:"sessions"`
	Total    int       `json:"total"`
}

type Handler struct {
	repo           sessionsRepo
	invalidator    overviewInvalidator
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewHandler(repo sessionsRepo, invalidator overviewInvalidator, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		invalidator:    invalidator,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var session Session
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		log.Tracef("new session, unmarshal json params: %s", err)
		http.Error(w, "add session failed", http.StatusBadRequest)
		return
	}

	if err := session.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if session.HappenedAt.IsZero() {
		session.HappenedAt = handler.now()
	}

	addedSession, err := handler.repo.Add(ctx, session)
	if err != nil {
		log.Errorf("failed to add new session [%s]: %s", session.Type, err)
		http.Error(w, "error, failed to add new session", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterSessions.Inc()
	handler.invalidator.InvalidateCache(ctx)

	weekStart := startOfWeek(handler.now())
	sessionsThisWeek, err := handler.repo.ListAll(ctx, SessionParams{
		From:               &weekStart,
		ExcludeTestingData: true,
	})
	if err != nil {
		// just log the error, no need to return error to the client
		log.Errorf("failed to get sessions this week: %s", err)
	}

	addSessionResponse := AddSessionResponse{
		Session:       *addedSession,
		CountThisWeek: len(sessionsThisWeek),
	}

	addedSessionJson, err := json.Marshal(addSessionResponse)
	if err != nil {
		log.Errorf("failed to marshal new session: %s", err)
		http.Error(w, "error, failed to add new session", http.StatusInternalServerError)
		return
	}

	log.Debugf("new session added: %s", addedSessionJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedSessionJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.get")
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

	session, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get session %d: %s", id, err)
		http.Error(w, "failed to get session", http.StatusInternalServerError)
		return
	}

	sessionJson, err := json.Marshal(session)
	if err != nil {
		log.Errorf("failed to marshal session: %s", err)
		http.Error(w, "failed to marshal session", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sessionJson, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.delete")
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

	session, err := handler.repo.Get(ctx, id)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		log.Errorf("failed to get session %d: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	} else if errors.Is(err, ErrSessionNotFound) {
		log.Debugf("session %d not found", id)
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	log.Debugf("deleting session %+v", session)

	if err := handler.repo.Delete(ctx, id); err != nil {
		log.Errorf("failed to delete session %d: %s", id, err)
		http.Error(w, "session not deleted", http.StatusInternalServerError)
		return
	}

	handler.invalidator.InvalidateCache(ctx)

	deleteRespJson, err := json.Marshal(DeleteSessionResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.update")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var session Session
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		log.Errorf("update session, unmarshal json params: %s", err)
		http.Error(w, "update session failed", http.StatusBadRequest)
		return
	}

	if err := session.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	currentSession, err := handler.repo.Get(ctx, session.ID)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		log.Errorf("failed to get session %d: %s", session.ID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	} else if errors.Is(err, ErrSessionNotFound) {
		log.Debugf("session %d not found", session.ID)
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	log.Debugf("update session %+v -> %+v", currentSession, session)

	if err := handler.repo.Update(ctx, &session); err != nil {
		log.Errorf("failed to update session [%d]: %s", session.ID, err)
		http.Error(w, "error, failed to update session", http.StatusInternalServerError)
		return
	}

	handler.invalidator.InvalidateCache(ctx)

	updateRespJson, err := json.Marshal(UpdateSessionResponse{
		UpdatedID: session.ID,
	})
	if err != nil {
		log.Errorf("failed to marshal update response: %s", err)
		http.Error(w, "failed to marshal update response", http.StatusInternalServerError)
		return
	}

	log.Debugf("session updated: [%s]: %d", session.Type, session.ID)
	pkg.WriteJSONResponseOK(w, string(updateRespJson))
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.list")
	defer span.End()

	vars := mux.Vars(r)
	pageStr := vars["page"]
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		log.Tracef("handle get sessions page, from <page> param: %s", err)
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	sizeStr := vars["size"]
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		log.Tracef("handle get sessions page, from <size> param: %s", err)
		http.Error(w, "parse form error, parameter <size>", http.StatusBadRequest)
		return
	}

	if page < 1 {
		http.Error(w, "invalid page (has to be non-zero value)", http.StatusBadRequest)
		return
	}
	if size < 1 {
		http.Error(w, "invalid size (has to be non-zero value)", http.StatusBadRequest)
		return
	}

	params, err := sessionParamsFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sessions, total, err := handler.repo.List(ctx, ListParams{
		SessionParams: params,
		Page:          page,
		Size:          size,
	})
	if err != nil {
		log.Errorf("list sessions error: %s", err)
		http.Error(w, "failed to get sessions", http.StatusInternalServerError)
		return
	}

	sessionsPageResponse := ListResponse{
		Sessions: sessions,
		Total:    total,
	}

	sessionsPageResponseJson, err := json.Marshal(sessionsPageResponse)
	if err != nil {
		log.Errorf("marshal sessions error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sessionsPageResponseJson, http.StatusOK)
}

func sessionParamsFromQuery(r *http.Request) (SessionParams, error) {
	var params SessionParams

	if typeStr := r.URL.Query().Get("type"); typeStr != "" {
		classType := ClassType(typeStr)
		if !classType.IsValid() {
			return SessionParams{}, errors.New("invalid class type")
		}
		params.Type = classType
	}

	if gymIDStr := r.URL.Query().Get("gym_id"); gymIDStr != "" {
		gymID, err := strconv.Atoi(gymIDStr)
		if err != nil {
			return SessionParams{}, errors.New("failed to parse gym_id param")
		}
		params.GymID = &gymID
	}

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return SessionParams{}, errors.New("failed to parse from param")
		}
		params.From = &from
	}

	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return SessionParams{}, errors.New("failed to parse to param")
		}
		params.To = &to
	}

	if excludeTestingDataStr := r.URL.Query().Get("exclude_testing_data"); excludeTestingDataStr != "" {
		excludeTestingData, err := strconv.ParseBool(excludeTestingDataStr)
		if err != nil {
			return SessionParams{}, errors.New("failed to parse exclude_testing_data param")
		}
		params.ExcludeTestingData = excludeTestingData
	}

	return params, nil
}

// startOfWeek returns the last Monday midnight, in the local time zone.
func startOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	year, month, day := t.AddDate(0, 0, -(weekday - 1)).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
