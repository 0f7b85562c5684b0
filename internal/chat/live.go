package chat

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/clinicdesk/clinicdesk/internal/api"
	"github.com/clinicdesk/clinicdesk/pkg/logging"
)

// Live streams incoming messages for one conversation over a websocket
// and folds them into the thread.
type Live struct {
	thread *Thread
	dialer *websocket.Dialer
	logger *logging.Logger
	token  string
}

// NewLive creates a live subscriber for a thread.
func NewLive(thread *Thread, token string, logger *logging.Logger) *Live {
	if logger == nil {
		logger = logging.Default()
	}
	return &Live{
		thread: thread,
		dialer: websocket.DefaultDialer,
		logger: logger,
		token:  token,
	}
}

// Run connects to the conversation's websocket endpoint on the given
// backend base URL and appends every received message to the thread.
// It returns when the context is canceled or the connection drops.
func (l *Live) Run(ctx context.Context, baseURL string) error {
	endpoint := wsURL(baseURL) + "/api/chat/conversations/" + l.thread.conversationID + "/ws"

	header := http.Header{}
	if l.token != "" {
		header.Set("Authorization", "Bearer "+l.token)
	}

	conn, resp, err := l.dialer.DialContext(ctx, endpoint, header)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return fmt.Errorf("chat: dial %s: %w", endpoint, err)
	}
	defer conn.Close()

	// Unblock the read loop when the context is canceled.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		var row api.Message
		if err := conn.ReadJSON(&row); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("chat: read message: %w", err)
		}
		l.thread.AppendRemote(row)
	}
}

// wsURL rewrites an http(s) base URL to its ws(s) counterpart.
func wsURL(base string) string {
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base
}
