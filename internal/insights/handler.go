package insights

import (
	"encoding/json"
	"net/http"

	"github.com/rolltrack/rolltrack/internal/telemetry/tracing"
	"github.com/rolltrack/rolltrack/pkg"

	log "github.com/sirupsen/logrus"
)

type Handler struct {
	analyzer *Analyzer
}

func NewHandler(analyzer *Analyzer) *Handler {
	return &Handler{
		analyzer: analyzer,
	}
}

func (handler *Handler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.overview")
	defer span.End()

	overview, err := handler.analyzer.Overview(ctx)
	if err != nil {
		log.Errorf("failed to get insights overview: %s", err)
		http.Error(w, "failed to get insights overview", http.StatusInternalServerError)
		return
	}

	handler.writeJSON(w, overview)
}

func (handler *Handler) HandleStreaks(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.streaks")
	defer span.End()

	overview, err := handler.analyzer.Overview(ctx)
	if err != nil {
		log.Errorf("failed to get streaks: %s", err)
		http.Error(w, "failed to get streaks", http.StatusInternalServerError)
		return
	}

	handler.writeJSON(w, overview.Streaks)
}

func (handler *Handler) HandleLoad(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.load")
	defer span.End()

	overview, err := handler.analyzer.Overview(ctx)
	if err != nil {
		log.Errorf("failed to get load analysis: %s", err)
		http.Error(w, "failed to get load analysis", http.StatusInternalServerError)
		return
	}

	handler.writeJSON(w, overview.Load)
}

func (handler *Handler) HandleSuggestion(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.suggestion")
	defer span.End()

	// the suggestion reflects today's check-in and recovery,
	// always computed fresh
	suggestion, err := handler.analyzer.SuggestionNow(ctx)
	if err != nil {
		log.Errorf("failed to get suggestion: %s", err)
		http.Error(w, "failed to get suggestion", http.StatusInternalServerError)
		return
	}

	handler.writeJSON(w, suggestion)
}

func (handler *Handler) HandleCorrelations(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.correlations")
	defer span.End()

	overview, err := handler.analyzer.Overview(ctx)
	if err != nil {
		log.Errorf("failed to get correlations: %s", err)
		http.Error(w, "failed to get correlations", http.StatusInternalServerError)
		return
	}

	handler.writeJSON(w, overview.Correlations)
}

func (handler *Handler) HandleDiversity(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.diversity")
	defer span.End()

	overview, err := handler.analyzer.Overview(ctx)
	if err != nil {
		log.Errorf("failed to get technique diversity: %s", err)
		http.Error(w, "failed to get technique diversity", http.StatusInternalServerError)
		return
	}

	handler.writeJSON(w, overview.Diversity)
}

func (handler *Handler) writeJSON(w http.ResponseWriter, v any) {
	respJson, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal insights response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}
