package pipeline

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"remindme/internal/model"
	"remindme/pkg/speech"
)

const (
	replyNoSpeech      = "Google Speech Recognition could not understand audio"
	replySpeechFailure = "Could not request results from Google Speech Recognition service"
)

// Run starts the worker pools and blocks until the context is cancelled.
// Cancellation closes queue intake; messages still in flight are lost, which
// is the accepted shutdown contract.
func (p *Pipeline) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < p.workers; i++ {
		g.Go(func() error { return runWorker(ctx, p.inboundText, p.handleInboundText) })
		g.Go(func() error { return runWorker(ctx, p.inboundVoice, p.handleInboundVoice) })
		g.Go(func() error { return runWorker(ctx, p.decodedCommand, p.handleDecodedCommand) })
		g.Go(func() error { return runWorker(ctx, p.outboundText, p.handleOutboundText) })
		g.Go(func() error { return runWorker(ctx, p.outboundPrompt, p.handleOutboundPrompt) })
		g.Go(func() error { return runWorker(ctx, p.confirmedAction, p.handleConfirmedAction) })
	}

	g.Go(func() error {
		<-ctx.Done()
		p.closeAll()
		return ctx.Err()
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (p *Pipeline) closeAll() {
	p.inboundText.Close()
	p.inboundVoice.Close()
	p.decodedCommand.Close()
	p.outboundText.Close()
	p.outboundPrompt.Close()
	p.confirmedAction.Close()
}

// runWorker drains one queue until cancellation. A message leaves the queue
// only when its handler completes; handlers that want a retry re-enqueue
// explicitly.
func runWorker[T any](ctx context.Context, q *Queue[T], handle func(context.Context, T)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-q.C():
			if !ok {
				return nil
			}
			handle(ctx, msg)
		}
	}
}

func (p *Pipeline) handleInboundText(ctx context.Context, msg model.TextMessage) {
	p.enqueueDecoded(msg)
}

func (p *Pipeline) handleInboundVoice(ctx context.Context, msg model.VoiceMessage) {
	if p.fetcher == nil || p.transcriber == nil {
		p.l.Warnf(ctx, "pipeline %s: voice support not configured, dropping message %s", p.inboundVoice.Name(), msg.ID)
		p.EnqueueOutbound(msg.UserID, replySpeechFailure)
		return
	}

	audio, err := p.fetcher.FetchVoice(ctx, msg.FileID)
	if err != nil {
		p.l.Errorf(ctx, "pipeline %s: failed to fetch voice file (msg %s): %v", p.inboundVoice.Name(), msg.ID, err)
		p.EnqueueOutbound(msg.UserID, replySpeechFailure)
		return
	}

	transcript, err := p.transcriber.Transcribe(ctx, audio)
	if errors.Is(err, speech.ErrNoSpeech) {
		p.EnqueueOutbound(msg.UserID, replyNoSpeech)
		return
	}
	if err != nil {
		p.l.Errorf(ctx, "pipeline %s: transcription failed (msg %s): %v", p.inboundVoice.Name(), msg.ID, err)
		p.EnqueueOutbound(msg.UserID, replySpeechFailure)
		return
	}

	p.l.Infof(ctx, "pipeline: transcribed voice message %s for user %s: %q", msg.ID, msg.UserID, transcript)
	p.enqueueDecoded(model.TextMessage{ID: msg.ID, UserID: msg.UserID, Text: transcript})
}

func (p *Pipeline) handleDecodedCommand(ctx context.Context, msg model.TextMessage) {
	reply, err := p.uc.HandleText(ctx, msg.UserID, msg.Text, time.Now())
	if err != nil {
		// Store faults drop the message rather than retrying forever.
		p.l.Errorf(ctx, "pipeline %s: dropping message %s after store fault: %v", p.decodedCommand.Name(), msg.ID, err)
		return
	}
	if reply.Prompt() {
		p.EnqueuePrompt(msg.UserID, reply.Text, reply.Keyboard)
		return
	}
	if reply.Text != "" {
		p.EnqueueOutbound(msg.UserID, reply.Text)
	}
}

func (p *Pipeline) handleOutboundText(ctx context.Context, msg model.TextMessage) {
	if err := p.sender.SendText(ctx, msg.UserID, msg.Text); err != nil {
		p.retryOutbound(ctx, msg.ID, err, func() { p.outboundText.Put(msg) })
	}
}

func (p *Pipeline) handleOutboundPrompt(ctx context.Context, msg model.PromptMessage) {
	if err := p.sender.SendPrompt(ctx, msg.UserID, msg.Text, msg.Keyboard); err != nil {
		p.retryOutbound(ctx, msg.ID, err, func() { p.outboundPrompt.Put(msg) })
	}
}

func (p *Pipeline) handleConfirmedAction(ctx context.Context, msg model.ActionMessage) {
	ack, err := p.uc.ApplyConfirmed(ctx, msg.UserID, msg.Payload)
	if err != nil {
		p.l.Errorf(ctx, "pipeline %s: dropping message %s after store fault: %v", p.confirmedAction.Name(), msg.ID, err)
		return
	}
	if ack != "" {
		p.EnqueueOutbound(msg.UserID, ack)
	}
}

// retryOutbound waits the fixed backoff and re-enqueues the message at the
// tail. At-least-once with no retry cap: delivery faults are never surfaced
// to the user except as delay.
func (p *Pipeline) retryOutbound(ctx context.Context, msgID string, cause error, requeue func()) {
	p.l.Warnf(ctx, "pipeline: send failed for message %s, retrying in %s: %v", msgID, p.backoff, cause)
	select {
	case <-ctx.Done():
		return
	case <-time.After(p.backoff):
	}
	requeue()
}
