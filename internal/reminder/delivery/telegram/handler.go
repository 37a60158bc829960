package telegram

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"remindme/internal/model"
	pkgResponse "remindme/pkg/response"
	pkgTelegram "remindme/pkg/telegram"
)

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It maps the update onto the inbound event envelope, hands it to the
// pipeline and responds 200 immediately; all real work happens in the queue
// workers, well within the Telegram webhook timeout.
//
// @Summary     Telegram webhook
// @Description Receives Telegram bot updates (text, voice, button presses)
// @Tags        Webhook
// @Accept      json
// @Produce     json
// @Success     200 {object} map[string]string "update accepted"
// @Router      /webhook/telegram [post]
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err)
		return
	}

	ev, ok := eventFromUpdate(update)
	if !ok {
		// Polls, channel posts and other update kinds are not ours.
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	h.pipe.Dispatch(ev)
	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// eventFromUpdate converts a Telegram update into the transport-neutral
// inbound envelope. Bot-command slashes map onto their command-word
// equivalents so the interpreter stays transport-agnostic.
func eventFromUpdate(update pkgTelegram.Update) (model.InboundEvent, bool) {
	if cb := update.CallbackQuery; cb != nil && cb.From != nil {
		return model.InboundEvent{
			Type:    model.EventReply,
			UserID:  strconv.FormatInt(cb.From.ID, 10),
			Payload: cb.Data,
		}, true
	}

	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return model.InboundEvent{}, false
	}
	userID := strconv.FormatInt(msg.Chat.ID, 10)

	if msg.Voice != nil {
		return model.InboundEvent{
			Type:   model.EventVoice,
			UserID: userID,
			FileID: msg.Voice.FileID,
		}, true
	}

	switch msg.Text {
	case "":
		return model.InboundEvent{}, false
	case "/list":
		return model.InboundEvent{Type: model.EventTask, UserID: userID}, true
	case "/start", "/help":
		return model.InboundEvent{Type: model.EventMessage, UserID: userID, Text: "помощь"}, true
	}

	return model.InboundEvent{
		Type:   model.EventMessage,
		UserID: userID,
		Text:   msg.Text,
	}, true
}
