package pipeline

import (
	"context"
	"time"

	"remindme/internal/model"
	"remindme/internal/reminder"
	pkgLog "remindme/pkg/log"
	"remindme/pkg/speech"
)

const (
	defaultWorkersPerQueue = 5
	defaultRetryBackoff    = 10 * time.Second
)

// Sender delivers outbound messages through the messaging transport.
type Sender interface {
	SendText(ctx context.Context, userID, text string) error
	SendPrompt(ctx context.Context, userID, text string, keyboard [][]model.KeyboardButton) error
}

// VoiceFetcher resolves an opaque audio-file reference to raw audio bytes.
type VoiceFetcher interface {
	FetchVoice(ctx context.Context, fileID string) ([]byte, error)
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      pkgLog.Logger
	UseCase     reminder.UseCase
	Sender      Sender
	Fetcher     VoiceFetcher
	Transcriber speech.Transcriber

	WorkersPerQueue int
	RetryBackoff    time.Duration
}

// Pipeline owns the ordered queues between processing stages, each drained by
// a fixed-size worker pool.
type Pipeline struct {
	l           pkgLog.Logger
	uc          reminder.UseCase
	sender      Sender
	fetcher     VoiceFetcher
	transcriber speech.Transcriber

	workers int
	backoff time.Duration

	inboundText     *Queue[model.TextMessage]
	inboundVoice    *Queue[model.VoiceMessage]
	decodedCommand  *Queue[model.TextMessage]
	outboundText    *Queue[model.TextMessage]
	outboundPrompt  *Queue[model.PromptMessage]
	confirmedAction *Queue[model.ActionMessage]
}

// New creates the pipeline with all six queues.
func New(cfg Config) *Pipeline {
	workers := cfg.WorkersPerQueue
	if workers <= 0 {
		workers = defaultWorkersPerQueue
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	return &Pipeline{
		l:           cfg.Logger,
		uc:          cfg.UseCase,
		sender:      cfg.Sender,
		fetcher:     cfg.Fetcher,
		transcriber: cfg.Transcriber,
		workers:     workers,
		backoff:     backoff,

		inboundText:     NewQueue[model.TextMessage]("inboundText"),
		inboundVoice:    NewQueue[model.VoiceMessage]("inboundVoice"),
		decodedCommand:  NewQueue[model.TextMessage]("decodedCommand"),
		outboundText:    NewQueue[model.TextMessage]("outboundText"),
		outboundPrompt:  NewQueue[model.PromptMessage]("outboundConfirmPrompt"),
		confirmedAction: NewQueue[model.ActionMessage]("confirmedAction"),
	}
}
