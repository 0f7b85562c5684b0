package chat

import (
	"context"
	"fmt"

	"github.com/clinicdesk/clinicdesk/internal/api"
	"github.com/clinicdesk/clinicdesk/pkg/logging"
)

// Poster sends one message to the backend. *api.ChatService satisfies
// it; tests substitute a stub.
type Poster interface {
	Send(ctx context.Context, conversationID string, req api.SendMessageRequest) (*api.Message, error)
}

// Sender runs the optimistic send flow for one conversation: append a
// pending message, issue the request, then confirm or fail it.
type Sender struct {
	thread *Thread
	poster Poster
	logger *logging.Logger
}

// NewSender creates a Sender for a thread.
func NewSender(thread *Thread, poster Poster, logger *logging.Logger) *Sender {
	if logger == nil {
		logger = logging.Default()
	}
	return &Sender{thread: thread, poster: poster, logger: logger}
}

// Send appends the message optimistically and posts it. On success the
// temporary message is replaced by the stored copy; on failure it is
// marked failed and the error returned so the view can offer a retry.
func (s *Sender) Send(ctx context.Context, senderID, senderType, content string) (Message, error) {
	local := s.thread.AppendLocal(senderID, senderType, content)
	return s.deliver(ctx, local)
}

// Retry resends a failed message under its existing temporary id.
func (s *Sender) Retry(ctx context.Context, tempID string) (Message, error) {
	local, ok := s.thread.Retry(tempID)
	if !ok {
		return Message{}, fmt.Errorf("chat: no failed message %s to retry", tempID)
	}
	return s.deliver(ctx, local)
}

func (s *Sender) deliver(ctx context.Context, local Message) (Message, error) {
	stored, err := s.poster.Send(ctx, s.thread.conversationID, api.SendMessageRequest{
		SenderID:   local.SenderID,
		SenderType: local.SenderType,
		Content:    local.Content,
	})
	if err != nil {
		s.thread.Fail(local.ID)
		s.logger.Warn("message send failed", "conversation_id", s.thread.conversationID, "temp_id", local.ID, "error", err)
		local.State = Failed
		return local, fmt.Errorf("chat: send message: %w", err)
	}
	s.thread.Confirm(local.ID, *stored)
	m, err := fromAPI(*stored)
	if err != nil {
		// bad stored timestamp; report the confirmed send with the
		// optimistic one
		local.ID = stored.ID
		local.State = Confirmed
		return local, nil
	}
	return m, nil
}
