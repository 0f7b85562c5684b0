package api

import (
	"context"
	"fmt"
	"net/url"
)

// ChatService is the chat resource group.
type ChatService struct {
	c *Client
}

// SendMessageRequest posts one message into a conversation.
type SendMessageRequest struct {
	SenderID   string `json:"sender_id" validate:"required"`
	SenderType string `json:"sender_type" validate:"required,oneof=patient doctor staff"`
	Content    string `json:"content" validate:"required"`
}

// Conversations lists the chat threads a participant belongs to.
// GET /api/chat/conversations?participant_id={id}&participant_type={type}
func (s *ChatService) Conversations(ctx context.Context, participantID, participantType string) ([]Conversation, error) {
	q := url.Values{}
	q.Set("participant_id", participantID)
	q.Set("participant_type", participantType)
	var out []Conversation
	if err := s.c.get(ctx, "/api/chat/conversations", q, &out, "chat"); err != nil {
		return nil, err
	}
	return out, nil
}

// Messages returns a conversation's messages, oldest first.
// GET /api/chat/conversations/{id}/messages
func (s *ChatService) Messages(ctx context.Context, conversationID string) ([]Message, error) {
	var out []Message
	path := "/api/chat/conversations/" + url.PathEscape(conversationID) + "/messages"
	if err := s.c.get(ctx, path, nil, &out, "chat"); err != nil {
		return nil, err
	}
	return out, nil
}

// Send posts a message and returns the stored copy with its server id.
// POST /api/chat/conversations/{id}/messages
func (s *ChatService) Send(ctx context.Context, conversationID string, req SendMessageRequest) (*Message, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("api: invalid message: %w", err)
	}
	out := new(Message)
	path := "/api/chat/conversations/" + url.PathEscape(conversationID) + "/messages"
	if err := s.c.post(ctx, path, req, out, "chat"); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead marks every message addressed to the participant as read.
// POST /api/chat/conversations/{id}/read
func (s *ChatService) MarkRead(ctx context.Context, conversationID, participantID string) error {
	body := map[string]string{"participant_id": participantID}
	path := "/api/chat/conversations/" + url.PathEscape(conversationID) + "/read"
	return s.c.post(ctx, path, body, nil, "chat")
}
