package transcribe

import (
	"context"
	"fmt"
	"io"

	"github.com/rolltrack/rolltrack/internal/telemetry/tracing"

	openai "github.com/sashabaranov/go-openai"
)

// Service turns voice notes into text using OpenAI Whisper.
type Service struct {
	client *openai.Client
}

func NewService(apiKey string) *Service {
	return &Service{
		client: openai.NewClient(apiKey),
	}
}

func (s *Service) Transcribe(ctx context.Context, filename string, audio io.Reader) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "transcribe.whisper")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	resp, err := s.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: filename,
		Reader:   audio,
	})
	if err != nil {
		return "", fmt.Errorf("whisper transcription: %w", err)
	}
	return resp.Text, nil
}
