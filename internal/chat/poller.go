package chat

import (
	"context"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/api"
	"github.com/clinicdesk/clinicdesk/pkg/logging"
)

// History fetches a conversation's messages. *api.ChatService satisfies
// it; tests substitute a stub.
type History interface {
	Messages(ctx context.Context, conversationID string) ([]api.Message, error)
}

const defaultPollInterval = 3 * time.Second

// Poller keeps a thread current by re-fetching the conversation on an
// interval, the fallback when the backend offers no websocket. New rows
// fold into the thread through the same dedupe path as live messages.
type Poller struct {
	thread   *Thread
	source   History
	interval time.Duration
	logger   *logging.Logger
}

// NewPoller creates a poller for a thread. A non-positive interval uses
// the default.
func NewPoller(thread *Thread, source History, interval time.Duration, logger *logging.Logger) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Poller{thread: thread, source: source, interval: interval, logger: logger}
}

// Run polls until the context is canceled. A failed fetch is logged and
// the next tick tries again.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			rows, err := p.source.Messages(ctx, p.thread.conversationID)
			if err != nil {
				p.logger.Warn("chat poll failed", "conversation_id", p.thread.conversationID, "error", err)
				continue
			}
			for _, row := range rows {
				p.thread.AppendRemote(row)
			}
		}
	}
}
