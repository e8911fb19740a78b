package whoop

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rolltrack/rolltrack/internal/telemetry/tracing"
	"github.com/rolltrack/rolltrack/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=whoop_test

type oauthClient interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) error
	Connected(ctx context.Context) (bool, error)
}

type syncRunner interface {
	Sync(ctx context.Context) (int, error)
}

type recoveriesLister interface {
	ListRange(ctx context.Context, from, to time.Time) ([]Recovery, error)
}

type Handler struct {
	client oauthClient
	syncer syncRunner
	repo   recoveriesLister

	randStateGenerator func() string
	state              string
}

// GenerateStateString is the default OAuth state generator.
func GenerateStateString() string {
	return uuid.NewString()
}

func NewHandler(
	client oauthClient,
	syncer syncRunner,
	repo recoveriesLister,
	randStateGenerator func() string,
) *Handler {
	return &Handler{
		client:             client,
		syncer:             syncer,
		repo:               repo,
		randStateGenerator: randStateGenerator,
	}
}

// HandleConnect redirects the browser to the WHOOP consent page.
func (handler *Handler) HandleConnect(w http.ResponseWriter, r *http.Request) {
	handler.state = handler.randStateGenerator()
	redirectURL := handler.client.AuthCodeURL(handler.state)
	log.Tracef("redirecting to whoop consent page: %s", redirectURL)
	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}

// HandleConnectCallback completes the OAuth flow, WHOOP redirects here
// with the authorization code.
func (handler *Handler) HandleConnectCallback(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.whoop.connectCallback")
	defer span.End()

	if state := r.FormValue("state"); state != handler.state || state == "" {
		log.Errorf("whoop connect callback: state mismatch")
		http.Error(w, "state mismatch", http.StatusForbidden)
		return
	}

	code := r.FormValue("code")
	if code == "" {
		http.Error(w, "code missing", http.StatusBadRequest)
		return
	}

	if err := handler.client.Exchange(ctx, code); err != nil {
		log.Errorf("whoop connect callback: %s", err)
		http.Error(w, "failed to connect whoop", http.StatusInternalServerError)
		return
	}

	// one-shot state
	handler.state = ""

	log.Debugln("whoop connected")
	pkg.WriteJSONResponseOK(w, `{"connected":true}`)
}

func (handler *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.whoop.status")
	defer span.End()

	connected, err := handler.client.Connected(ctx)
	if err != nil {
		log.Errorf("whoop status: %s", err)
		http.Error(w, "failed to get whoop status", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"connected":%t}`, connected))
}

// HandleSync triggers a sync run outside the periodic schedule.
func (handler *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.whoop.sync")
	defer span.End()

	synced, err := handler.syncer.Sync(ctx)
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			http.Error(w, "whoop not connected", http.StatusConflict)
			return
		}
		log.Errorf("whoop sync: %s", err)
		http.Error(w, "whoop sync failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"synced":%d}`, synced))
}

// HandleListRecoveries returns stored recoveries in a day range,
// the last 30 days by default.
func (handler *Handler) HandleListRecoveries(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.whoop.listRecoveries")
	defer span.End()

	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if fromParam := r.URL.Query().Get("from"); fromParam != "" {
		parsed, err := time.Parse(time.DateOnly, fromParam)
		if err != nil {
			http.Error(w, "invalid from date", http.StatusBadRequest)
			return
		}
		from = parsed
	}
	if toParam := r.URL.Query().Get("to"); toParam != "" {
		parsed, err := time.Parse(time.DateOnly, toParam)
		if err != nil {
			http.Error(w, "invalid to date", http.StatusBadRequest)
			return
		}
		to = parsed
	}

	recoveries, err := handler.repo.ListRange(ctx, from, to)
	if err != nil {
		log.Errorf("whoop list recoveries: %s", err)
		http.Error(w, "failed to list recoveries", http.StatusInternalServerError)
		return
	}

	pkg.SendJsonResponse(w, http.StatusOK, recoveries)
}
