package transcribe

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rolltrack/rolltrack/internal/telemetry/metrics"
	"github.com/rolltrack/rolltrack/internal/telemetry/tracing"
	"github.com/rolltrack/rolltrack/internal/training"
	"github.com/rolltrack/rolltrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// whisper caps uploads at 25MB
const maxAudioSizeBytes = 25 << 20

// formats whisper accepts
var allowedAudioExtensions = map[string]bool{
	".flac": true,
	".m4a":  true,
	".mp3":  true,
	".mp4":  true,
	".mpeg": true,
	".mpga": true,
	".oga":  true,
	".ogg":  true,
	".wav":  true,
	".webm": true,
}

//go:generate mockgen -source=$GOFILE -destination=transcribe_mocks_test.go -package=transcribe_test

type transcriber interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

type sessionsRepo interface {
	Get(ctx context.Context, id int) (*training.Session, error)
	Update(ctx context.Context, session *training.Session) error
}

type Handler struct {
	transcriber    transcriber
	sessionsRepo   sessionsRepo
	metricsManager *metrics.Manager
}

func NewHandler(
	transcriber transcriber,
	sessionsRepo sessionsRepo,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		transcriber:    transcriber,
		sessionsRepo:   sessionsRepo,
		metricsManager: metricsManager,
	}
}

type TranscribeResponse struct {
	SessionID  int    `json:"sessionId"`
	Transcript string `json:"transcript"`
}

// HandleSessionVoiceNote transcribes an uploaded voice note and appends
// the transcript to the session notes.
func (handler *Handler) HandleSessionVoiceNote(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.transcribe.sessionVoiceNote")
	defer span.End()

	vars := mux.Vars(r)
	idStr := vars["id"]
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.Int("session.id", id))

	r.Body = http.MaxBytesReader(w, r.Body, maxAudioSizeBytes)
	if err := r.ParseMultipartForm(maxAudioSizeBytes); err != nil {
		log.Errorf("transcribe session %d: parse form: %s", id, err)
		http.Error(w, "invalid or too large audio upload", http.StatusBadRequest)
		return
	}

	audioFile, audioHeader, err := r.FormFile("audio")
	if err != nil {
		http.Error(w, "audio file missing", http.StatusBadRequest)
		return
	}
	defer func() {
		if err := audioFile.Close(); err != nil {
			log.Errorf("transcribe session %d: close audio file: %s", id, err)
		}
	}()

	ext := strings.ToLower(filepath.Ext(audioHeader.Filename))
	if !allowedAudioExtensions[ext] {
		http.Error(w, "unsupported audio format", http.StatusBadRequest)
		return
	}

	session, err := handler.sessionsRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, training.ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		log.Errorf("transcribe session %d: get session: %s", id, err)
		http.Error(w, "failed to get session", http.StatusInternalServerError)
		return
	}

	transcript, err := handler.transcriber.Transcribe(ctx, audioHeader.Filename, audioFile)
	if err != nil {
		log.Errorf("transcribe session %d: %s", id, err)
		http.Error(w, "transcription failed", http.StatusInternalServerError)
		return
	}

	if session.Notes == "" {
		session.Notes = transcript
	} else {
		session.Notes += "\n\n" + transcript
	}
	if err := handler.sessionsRepo.Update(ctx, session); err != nil {
		log.Errorf("transcribe session %d: update notes: %s", id, err)
		http.Error(w, "failed to update session notes", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterTranscriptions.Inc()
	log.Debugf("session %d voice note transcribed, %d chars", id, len(transcript))

	pkg.SendJsonResponse(w, http.StatusOK, TranscribeResponse{
		SessionID:  id,
		Transcript: transcript,
	})
}
