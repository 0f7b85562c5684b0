package views

import (
	"context"

	"github.com/clinicdesk/clinicdesk/internal/api"
	"github.com/clinicdesk/clinicdesk/internal/nav"
)

// ConversationList backs the chat inbox for any role.
type ConversationList struct {
	client          *api.Client
	participantID   string
	participantType string

	conversations []api.Conversation
}

// NewConversationList creates the inbox for a participant.
func NewConversationList(client *api.Client, participantID, participantType string) *ConversationList {
	return &ConversationList{
		client:          client,
		participantID:   participantID,
		participantType: participantType,
	}
}

// Load fetches the participant's conversations.
func (l *ConversationList) Load(ctx context.Context) error {
	convs, err := l.client.Chat.Conversations(ctx, l.participantID, l.participantType)
	if err != nil {
		return err
	}
	l.conversations = convs
	return nil
}

// Conversations returns the loaded inbox.
func (l *ConversationList) Conversations() []api.Conversation {
	return l.conversations
}

// UnreadTotal sums unread counts across the inbox for the tab badge.
func (l *ConversationList) UnreadTotal() int {
	total := 0
	for _, c := range l.conversations {
		total += c.UnreadCount
	}
	return total
}

// OpenParams builds the navigation params for opening one conversation
// as this participant.
func (l *ConversationList) OpenParams(conversationID string) nav.ConversationParams {
	return nav.ConversationParams{
		ConversationID:  conversationID,
		ParticipantID:   l.participantID,
		ParticipantType: l.participantType,
	}
}
