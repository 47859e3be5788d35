package server

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nocis/vk-raytracing-tutorial/pkg/core"
)

// ConsoleMessage is one pipeline log line returned to the client
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by forwarding messages to the server log
// and to a per-request console channel
type WebLogger struct {
	renderID    string
	logger      *slog.Logger
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a logger for one render request
func NewWebLogger(renderID string, logger *slog.Logger, consoleChan chan<- ConsoleMessage) core.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebLogger{
		renderID:    renderID,
		logger:      logger,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	wl.logger.Info(strings.TrimRight(message, "\n"), "render", wl.renderID)

	if wl.consoleChan != nil {
		select {
		case wl.consoleChan <- ConsoleMessage{
			Message:   message,
			Timestamp: time.Now(),
			Level:     "info",
		}:
		default:
			// Channel full, drop rather than stall the launch
		}
	}
}

// drainConsole collects everything currently buffered in ch
func drainConsole(ch chan ConsoleMessage) []ConsoleMessage {
	var messages []ConsoleMessage
	for {
		select {
		case msg := <-ch:
			messages = append(messages, msg)
		default:
			return messages
		}
	}
}
