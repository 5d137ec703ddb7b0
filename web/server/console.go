package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang/glog"
)

// ConsoleMessage is one raytracer log line shown in the client console
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Scene     string    `json:"scene"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// streamLogger logs a streamed render to glog and queues each line as a
// "console" event. The raytracer only logs from the goroutine that called
// Render, so lines arrive in order between tile events.
type streamLogger struct {
	ctx      context.Context
	server   *Server
	events   chan<- SSEEvent
	renderID string
	scene    string
}

func (s *Server) newStreamLogger(ctx context.Context, events chan<- SSEEvent, sceneName string) *streamLogger {
	return &streamLogger{
		ctx:      ctx,
		server:   s,
		events:   events,
		renderID: fmt.Sprintf("render-%d", time.Now().UnixNano()),
		scene:    sceneName,
	}
}

// Printf implements core.Logger
func (l *streamLogger) Printf(format string, args ...interface{}) {
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	glog.Infof("[%s] %s", l.renderID, message)

	l.server.sendJSONEvent(l.ctx, l.events, "console", ConsoleMessage{
		RenderID:  l.renderID,
		Scene:     l.scene,
		Message:   message,
		Timestamp: time.Now(),
	})
}
