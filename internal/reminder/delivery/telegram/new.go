package telegram

import (
	"github.com/gin-gonic/gin"

	"remindme/internal/pipeline"
	pkgLog "remindme/pkg/log"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

type handler struct {
	l    pkgLog.Logger
	pipe *pipeline.Pipeline
}

// New creates a new Telegram delivery handler.
func New(l pkgLog.Logger, pipe *pipeline.Pipeline) Handler {
	return &handler{
		l:    l,
		pipe: pipe,
	}
}
