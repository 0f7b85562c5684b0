package mockapi

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/clinicdesk/clinicdesk/internal/api"
	"github.com/clinicdesk/clinicdesk/pkg/logging"
)

// hub tracks the websocket subscribers of each conversation and fans
// new messages out to them.
type hub struct {
	logger   *logging.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[string]map[*websocket.Conn]struct{} // conversation id -> conns
}

func newHub(logger *logging.Logger) *hub {
	return &hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			// The mock backend serves local dev clients on other ports.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: make(map[string]map[*websocket.Conn]struct{}),
	}
}

func (h *hub) add(conversationID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[conversationID] == nil {
		h.conns[conversationID] = make(map[*websocket.Conn]struct{})
	}
	h.conns[conversationID][conn] = struct{}{}
}

func (h *hub) remove(conversationID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns[conversationID], conn)
}

// broadcast sends a message to every subscriber of a conversation.
// Write failures drop the connection; the reader goroutine cleans up.
func (h *hub) broadcast(conversationID string, msg api.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns[conversationID] {
		if err := conn.WriteJSON(msg); err != nil {
			h.logger.Warn("websocket write failed", "conversation_id", conversationID, "error", err)
			conn.Close()
			delete(h.conns[conversationID], conn)
		}
	}
}

// handleConversationWS upgrades the request and keeps the connection
// subscribed until the client goes away.
func (s *Server) handleConversationWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.store.ConversationExists(id) {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}
	conn, err := s.hub.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	s.hub.add(id, conn)
	defer func() {
		s.hub.remove(id, conn)
		conn.Close()
	}()

	// Reads only detect disconnects; clients send over REST.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
