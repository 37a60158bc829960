package pipeline_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"remindme/internal/model"
	"remindme/internal/pipeline"
	"remindme/internal/reminder"
	"remindme/pkg/speech"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

type mockUseCase struct {
	handleFunc func(userID, text string) (reminder.Reply, error)
	applyFunc  func(userID, payload string) (string, error)
}

func (m *mockUseCase) HandleText(ctx context.Context, userID, text string, now time.Time) (reminder.Reply, error) {
	return m.handleFunc(userID, text)
}

func (m *mockUseCase) ApplyConfirmed(ctx context.Context, userID, payload string) (string, error) {
	return m.applyFunc(userID, payload)
}

func (m *mockUseCase) RenderList(ctx context.Context, userID string, period *model.Period) (string, error) {
	return "", nil
}

type sentText struct {
	userID string
	text   string
}

type sentPrompt struct {
	userID   string
	text     string
	keyboard [][]model.KeyboardButton
}

type mockSender struct {
	failures int32 // SendText fails while > 0, decrementing per attempt

	texts   chan sentText
	prompts chan sentPrompt
}

func newMockSender() *mockSender {
	return &mockSender{
		texts:   make(chan sentText, 16),
		prompts: make(chan sentPrompt, 16),
	}
}

func (m *mockSender) SendText(ctx context.Context, userID, text string) error {
	if atomic.AddInt32(&m.failures, -1) >= 0 {
		return errors.New("send failed")
	}
	m.texts <- sentText{userID: userID, text: text}
	return nil
}

func (m *mockSender) SendPrompt(ctx context.Context, userID, text string, keyboard [][]model.KeyboardButton) error {
	m.prompts <- sentPrompt{userID: userID, text: text, keyboard: keyboard}
	return nil
}

type mockFetcher struct {
	audio []byte
	err   error
}

func (m *mockFetcher) FetchVoice(ctx context.Context, fileID string) ([]byte, error) {
	return m.audio, m.err
}

type mockTranscriber struct {
	transcript string
	err        error
}

func (m *mockTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	return m.transcript, m.err
}

func startPipeline(t *testing.T, cfg pipeline.Config) *pipeline.Pipeline {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = &mockLogger{}
	}
	p := pipeline.New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("pipeline run returned %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("pipeline did not stop after cancellation")
		}
	})
	return p
}

func waitText(t *testing.T, sender *mockSender) sentText {
	t.Helper()
	select {
	case msg := <-sender.texts:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for outbound text")
		return sentText{}
	}
}

func TestPipelineTextFlow(t *testing.T) {
	sender := newMockSender()
	uc := &mockUseCase{
		handleFunc: func(userID, text string) (reminder.Reply, error) {
			return reminder.Reply{Text: "answer to " + text}, nil
		},
	}
	p := startPipeline(t, pipeline.Config{UseCase: uc, Sender: sender})

	p.Dispatch(model.InboundEvent{Type: model.EventMessage, UserID: "42", Text: "список"})

	got := waitText(t, sender)
	if got.userID != "42" || got.text != "answer to список" {
		t.Errorf("unexpected delivery %+v", got)
	}
}

func TestPipelinePromptFlow(t *testing.T) {
	sender := newMockSender()
	keyboard := [][]model.KeyboardButton{{{Label: "Yes", Payload: "0"}}}
	uc := &mockUseCase{
		handleFunc: func(userID, text string) (reminder.Reply, error) {
			return reminder.Reply{Text: "sure?", Keyboard: keyboard}, nil
		},
	}
	p := startPipeline(t, pipeline.Config{UseCase: uc, Sender: sender})

	p.EnqueueText("42", "удалить 1")

	select {
	case got := <-sender.prompts:
		if got.text != "sure?" || len(got.keyboard) != 1 {
			t.Errorf("unexpected prompt %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for prompt")
	}
}

func TestPipelineVoiceFlow(t *testing.T) {
	sender := newMockSender()
	uc := &mockUseCase{
		handleFunc: func(userID, text string) (reminder.Reply, error) {
			return reminder.Reply{Text: "got: " + text}, nil
		},
	}
	p := startPipeline(t, pipeline.Config{
		UseCase:     uc,
		Sender:      sender,
		Fetcher:     &mockFetcher{audio: []byte("ogg")},
		Transcriber: &mockTranscriber{transcript: "завтра в 10:00 встреча"},
	})

	p.Dispatch(model.InboundEvent{Type: model.EventVoice, UserID: "42", FileID: "file1"})

	got := waitText(t, sender)
	if got.text != "got: завтра в 10:00 встреча" {
		t.Errorf("transcript did not reach the command stage: %+v", got)
	}
}

func TestPipelineVoiceFailures(t *testing.T) {
	t.Run("No Speech", func(t *testing.T) {
		sender := newMockSender()
		p := startPipeline(t, pipeline.Config{
			UseCase:     &mockUseCase{},
			Sender:      sender,
			Fetcher:     &mockFetcher{audio: []byte("ogg")},
			Transcriber: &mockTranscriber{err: speech.ErrNoSpeech},
		})

		p.EnqueueVoice("42", "file1")

		got := waitText(t, sender)
		if got.text != "Google Speech Recognition could not understand audio" {
			t.Errorf("unexpected reply %q", got.text)
		}
	})

	t.Run("Fetch Error", func(t *testing.T) {
		sender := newMockSender()
		p := startPipeline(t, pipeline.Config{
			UseCase:     &mockUseCase{},
			Sender:      sender,
			Fetcher:     &mockFetcher{err: errors.New("download failed")},
			Transcriber: &mockTranscriber{},
		})

		p.EnqueueVoice("42", "file1")

		got := waitText(t, sender)
		if got.text != "Could not request results from Google Speech Recognition service" {
			t.Errorf("unexpected reply %q", got.text)
		}
	})

	t.Run("Not Configured", func(t *testing.T) {
		sender := newMockSender()
		p := startPipeline(t, pipeline.Config{UseCase: &mockUseCase{}, Sender: sender})

		p.EnqueueVoice("42", "file1")

		got := waitText(t, sender)
		if got.text != "Could not request results from Google Speech Recognition service" {
			t.Errorf("unexpected reply %q", got.text)
		}
	})
}

func TestPipelineConfirmFlow(t *testing.T) {
	sender := newMockSender()
	uc := &mockUseCase{
		applyFunc: func(userID, payload string) (string, error) {
			return "applied " + payload, nil
		},
	}
	p := startPipeline(t, pipeline.Config{UseCase: uc, Sender: sender})

	p.Dispatch(model.InboundEvent{Type: model.EventReply, UserID: "42", Payload: "0"})

	got := waitText(t, sender)
	if got.text != "applied 0" {
		t.Errorf("unexpected ack %q", got.text)
	}
}

func TestPipelineListEvent(t *testing.T) {
	sender := newMockSender()
	received := make(chan string, 1)
	uc := &mockUseCase{
		handleFunc: func(userID, text string) (reminder.Reply, error) {
			received <- text
			return reminder.Reply{}, nil
		},
	}
	p := startPipeline(t, pipeline.Config{UseCase: uc, Sender: sender})

	p.Dispatch(model.InboundEvent{Type: model.EventTask, UserID: "42"})

	select {
	case text := <-received:
		if text != "список" {
			t.Errorf("list event must decode to the list command, got %q", text)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for command")
	}
}

func TestPipelineRetriesOutbound(t *testing.T) {
	sender := newMockSender()
	sender.failures = 2
	uc := &mockUseCase{
		handleFunc: func(userID, text string) (reminder.Reply, error) {
			return reminder.Reply{Text: "hello"}, nil
		},
	}
	p := startPipeline(t, pipeline.Config{
		UseCase:      uc,
		Sender:       sender,
		RetryBackoff: 10 * time.Millisecond,
	})

	p.EnqueueText("42", "anything")

	got := waitText(t, sender)
	if got.text != "hello" {
		t.Errorf("expected delivery after retries, got %+v", got)
	}
}

func TestPipelineDropsOnStoreFault(t *testing.T) {
	sender := newMockSender()
	calls := make(chan string, 2)
	uc := &mockUseCase{
		handleFunc: func(userID, text string) (reminder.Reply, error) {
			calls <- text
			if text == "broken" {
				return reminder.Reply{}, errors.New("store down")
			}
			return reminder.Reply{Text: "ok"}, nil
		},
	}
	p := startPipeline(t, pipeline.Config{UseCase: uc, Sender: sender})

	p.EnqueueText("42", "broken")
	p.EnqueueText("42", "fine")

	// Only the healthy message produces a delivery; the faulted one is gone.
	got := waitText(t, sender)
	if got.text != "ok" {
		t.Errorf("unexpected delivery %+v", got)
	}
	select {
	case extra := <-sender.texts:
		t.Errorf("faulted message must be dropped, got %+v", extra)
	case <-time.After(100 * time.Millisecond):
	}
}
