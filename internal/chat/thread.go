// Package chat keeps the client-side state of a conversation:
// optimistic outgoing messages with an explicit delivery state, history
// loaded from the backend, and live messages arriving over a websocket.
package chat

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/api"
)

// DeliveryState tracks an outgoing message's progress. Incoming and
// historical messages are always Confirmed.
type DeliveryState int

const (
	// Pending means the message was appended locally and the send
	// request has not resolved yet.
	Pending DeliveryState = iota
	// Confirmed means the backend stored the message and assigned it
	// an id.
	Confirmed
	// Failed means the send request was rejected; the message stays
	// visible so the user can retry or discard it.
	Failed
)

func (s DeliveryState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Confirmed:
		return "confirmed"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Message is one chat message as the conversation view holds it.
type Message struct {
	ID             string
	ConversationID string
	SenderID       string
	SenderType     string
	Content        string
	CreatedAt      time.Time
	Read           bool
	State          DeliveryState
}

// IsLocal reports whether the message still carries a client-assigned
// temporary id.
func (m Message) IsLocal() bool {
	return strings.HasPrefix(m.ID, localIDPrefix)
}

const localIDPrefix = "local-"

// Thread is the ordered message list for one conversation. Safe for use
// from the fetch goroutine and the websocket reader concurrently.
type Thread struct {
	conversationID string

	mu       sync.Mutex
	messages []Message
	byID     map[string]int
}

// NewThread creates an empty thread for a conversation.
func NewThread(conversationID string) *Thread {
	return &Thread{
		conversationID: conversationID,
		byID:           make(map[string]int),
	}
}

// Load replaces the thread contents with fetched history. Pending and
// failed local messages survive a reload so an in-flight send is not
// silently dropped by a refresh. Rows with an unparseable timestamp are
// dropped rather than failing the whole fetch.
func (t *Thread) Load(history []api.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var local []Message
	for _, m := range t.messages {
		if m.State != Confirmed {
			local = append(local, m)
		}
	}

	t.messages = t.messages[:0]
	t.byID = make(map[string]int, len(history)+len(local))
	for _, row := range history {
		m, err := fromAPI(row)
		if err != nil {
			continue
		}
		t.appendLocked(m)
	}
	for _, m := range local {
		t.appendLocked(m)
	}
}

// AppendLocal adds an optimistic outgoing message with a temporary id
// and returns it. The caller sends the request and then resolves the
// message with Confirm or Fail.
func (t *Thread) AppendLocal(senderID, senderType, content string) Message {
	m := Message{
		ID:             localIDPrefix + uuid.New().String(),
		ConversationID: t.conversationID,
		SenderID:       senderID,
		SenderType:     senderType,
		Content:        content,
		CreatedAt:      time.Now(),
		State:          Pending,
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.appendLocked(m)
	return m
}

// Confirm replaces the temporary message with the stored copy the
// backend returned. Unknown temp ids are ignored; the send may have
// resolved after the message was discarded. If the websocket echo of the
// stored message already arrived, the temp entry is dropped instead so
// the message does not appear twice.
func (t *Thread) Confirm(tempID string, stored api.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	i, ok := t.byID[tempID]
	if !ok {
		return
	}
	delete(t.byID, tempID)
	if _, echoed := t.byID[stored.ID]; echoed {
		t.removeLocked(i)
		return
	}
	m, err := fromAPI(stored)
	if err != nil {
		// keep the optimistic timestamp when the stored copy carries
		// a bad one; the id and state still reconcile
		m = t.messages[i]
		m.ID = stored.ID
		m.State = Confirmed
	}
	t.messages[i] = m
	t.byID[m.ID] = i
}

// Fail marks a pending message as failed. It stays in place for retry.
func (t *Thread) Fail(tempID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i, ok := t.byID[tempID]; ok && t.messages[i].State == Pending {
		t.messages[i].State = Failed
	}
}

// Retry flips a failed message back to pending and returns its content
// so the caller can resend it. The second return is false when the id
// is unknown or the message is not in the failed state.
func (t *Thread) Retry(tempID string) (Message, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	i, ok := t.byID[tempID]
	if !ok || t.messages[i].State != Failed {
		return Message{}, false
	}
	t.messages[i].State = Pending
	return t.messages[i], true
}

// Discard removes a failed message the user gave up on.
func (t *Thread) Discard(tempID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	i, ok := t.byID[tempID]
	if !ok || t.messages[i].State != Failed {
		return
	}
	delete(t.byID, tempID)
	t.removeLocked(i)
}

// AppendRemote adds a message that arrived over the live socket or a
// poll. Duplicates of already-known server ids are dropped, including
// the echo of a message this client just confirmed, as are rows with an
// unparseable timestamp.
func (t *Thread) AppendRemote(row api.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, known := t.byID[row.ID]; known {
		return
	}
	m, err := fromAPI(row)
	if err != nil {
		return
	}
	t.appendLocked(m)
}

// Messages returns a copy of the thread in display order.
func (t *Thread) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

func (t *Thread) appendLocked(m Message) {
	t.byID[m.ID] = len(t.messages)
	t.messages = append(t.messages, m)
}

func (t *Thread) removeLocked(i int) {
	t.messages = append(t.messages[:i], t.messages[i+1:]...)
	for id, j := range t.byID {
		if j > i {
			t.byID[id] = j - 1
		}
	}
}

func fromAPI(row api.Message) (Message, error) {
	created, err := time.Parse(time.RFC3339, row.CreatedAt)
	if err != nil {
		return Message{}, fmt.Errorf("chat: unparseable created_at %q: %w", row.CreatedAt, err)
	}
	return Message{
		ID:             row.ID,
		ConversationID: row.ConversationID,
		SenderID:       row.SenderID,
		SenderType:     row.SenderType,
		Content:        row.Content,
		CreatedAt:      created,
		Read:           row.Read,
		State:          Confirmed,
	}, nil
}
