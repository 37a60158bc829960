package pipeline

import (
	"github.com/google/uuid"

	"remindme/internal/model"
)

// listRequest is the command text a bare list request decodes to.
const listRequest = "список"

// Dispatch routes an inbound transport event onto the matching queue.
func (p *Pipeline) Dispatch(ev model.InboundEvent) {
	switch ev.Type {
	case model.EventMessage:
		p.EnqueueText(ev.UserID, ev.Text)
	case model.EventVoice:
		p.EnqueueVoice(ev.UserID, ev.FileID)
	case model.EventReply:
		p.EnqueueAction(ev.UserID, ev.Payload)
	case model.EventTask:
		// A list request is just the list command by another entry point.
		p.enqueueDecoded(model.TextMessage{ID: uuid.NewString(), UserID: ev.UserID, Text: listRequest})
	}
}

// EnqueueText puts a raw inbound text message on the inboundText queue.
func (p *Pipeline) EnqueueText(userID, text string) {
	p.inboundText.Put(model.TextMessage{ID: uuid.NewString(), UserID: userID, Text: text})
}

// EnqueueVoice puts an audio-file reference on the inboundVoice queue.
func (p *Pipeline) EnqueueVoice(userID, fileID string) {
	p.inboundVoice.Put(model.VoiceMessage{ID: uuid.NewString(), UserID: userID, FileID: fileID})
}

// EnqueueAction puts a confirmation payload on the confirmedAction queue.
func (p *Pipeline) EnqueueAction(userID, payload string) {
	p.confirmedAction.Put(model.ActionMessage{ID: uuid.NewString(), UserID: userID, Payload: payload})
}

// EnqueueOutbound puts a plain reply on the outboundText queue.
func (p *Pipeline) EnqueueOutbound(userID, text string) {
	p.outboundText.Put(model.TextMessage{ID: uuid.NewString(), UserID: userID, Text: text})
}

// EnqueuePrompt puts a confirmation prompt on the outboundConfirmPrompt queue.
func (p *Pipeline) EnqueuePrompt(userID, text string, keyboard [][]model.KeyboardButton) {
	p.outboundPrompt.Put(model.PromptMessage{ID: uuid.NewString(), UserID: userID, Text: text, Keyboard: keyboard})
}

func (p *Pipeline) enqueueDecoded(msg model.TextMessage) {
	p.decodedCommand.Put(msg)
}
