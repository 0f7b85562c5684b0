package views

import (
	"context"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/api"
	"github.com/clinicdesk/clinicdesk/internal/chat"
	"github.com/clinicdesk/clinicdesk/internal/nav"
	"github.com/clinicdesk/clinicdesk/pkg/logging"
)

// Conversation backs one chat thread screen with optimistic sends.
type Conversation struct {
	client *api.Client
	logger *logging.Logger

	params nav.ConversationParams
	thread *chat.Thread
	sender *chat.Sender

	// pollInterval overrides the fallback poll cadence; zero means the
	// poller's default.
	pollInterval time.Duration
}

// NewConversation creates the screen for one conversation.
func NewConversation(client *api.Client, params nav.ConversationParams, logger *logging.Logger) *Conversation {
	if logger == nil {
		logger = logging.Default()
	}
	thread := chat.NewThread(params.ConversationID)
	return &Conversation{
		client: client,
		logger: logger,
		params: params,
		thread: thread,
		sender: chat.NewSender(thread, client.Chat, logger),
	}
}

// Load fetches the message history and marks the thread read. A failed
// mark-read is logged, not surfaced; the history is still usable.
func (c *Conversation) Load(ctx context.Context) error {
	history, err := c.client.Chat.Messages(ctx, c.params.ConversationID)
	if err != nil {
		return err
	}
	c.thread.Load(history)

	if err := c.client.Chat.MarkRead(ctx, c.params.ConversationID, c.params.ParticipantID); err != nil {
		c.logger.Warn("mark read failed", "conversation_id", c.params.ConversationID, "error", err)
	}
	return nil
}

// Messages returns the thread in display order, including pending and
// failed local messages.
func (c *Conversation) Messages() []chat.Message {
	return c.thread.Messages()
}

// Send posts a message optimistically as this screen's participant.
func (c *Conversation) Send(ctx context.Context, content string) (chat.Message, error) {
	return c.sender.Send(ctx, c.params.ParticipantID, c.params.ParticipantType, content)
}

// Retry resends a failed message.
func (c *Conversation) Retry(ctx context.Context, tempID string) (chat.Message, error) {
	return c.sender.Retry(ctx, tempID)
}

// Discard drops a failed message.
func (c *Conversation) Discard(tempID string) {
	c.thread.Discard(tempID)
}

// Listen streams live messages into the thread until the context is
// canceled. When the websocket is unavailable it degrades to polling
// the conversation. Meant to run in its own goroutine while the screen
// is up.
func (c *Conversation) Listen(ctx context.Context, token string) error {
	live := chat.NewLive(c.thread, token, c.logger)
	err := live.Run(ctx, c.client.BaseURL(ctx))
	if err == nil || ctx.Err() != nil {
		return err
	}
	c.logger.Warn("live chat unavailable, polling instead", "conversation_id", c.params.ConversationID, "error", err)
	poller := chat.NewPoller(c.thread, c.client.Chat, c.pollInterval, c.logger)
	return poller.Run(ctx)
}
