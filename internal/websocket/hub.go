// internal/websocket/hub.go
package websocket

import (
	"context"
	"sync"

	"landdeals-console/internal/domain/auth"
	"landdeals-console/internal/domain/listview"
	wstypes "landdeals-console/internal/domain/websocket"
	"landdeals-console/internal/pkg/permission"

	"go.uber.org/zap"
)

// Authenticator resolves a console session token.
type Authenticator interface {
	Resolve(ctx context.Context, sessionID string) (*auth.Session, error)
}

type Hub struct {
	// Registered clients by user ID
	clients map[int64]map[*Client]bool
	mu      sync.RWMutex

	// Registration/unregistration
	Register   chan *Client
	unregister chan *Client

	// Broadcasting
	broadcast chan *BroadcastMessage
	done      chan struct{}
	stopOnce  sync.Once

	// Handler registry for modular message handling
	handlerRegistry *HandlerRegistry

	authenticator Authenticator
	logger        *zap.Logger
}

// BroadcastMessage targets the given users, or everyone when UserIDs is
// nil. A non-empty SessionID narrows delivery to that session's sockets.
type BroadcastMessage struct {
	UserIDs   []int64
	SessionID string
	Channel   wstypes.ChannelType
	Message   *wstypes.WSMessage
}

func NewHub(authenticator Authenticator, logger *zap.Logger) *Hub {
	return &Hub{
		clients:         make(map[int64]map[*Client]bool),
		Register:        make(chan *Client),
		unregister:      make(chan *Client),
		broadcast:       make(chan *BroadcastMessage, 256),
		done:            make(chan struct{}),
		handlerRegistry: NewHandlerRegistry(),
		authenticator:   authenticator,
		logger:          logger,
	}
}

// AuthenticateClient resolves the session token a socket presented.
func (h *Hub) AuthenticateClient(ctx context.Context, token string) (*ClientAuth, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	sess, err := h.authenticator.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	return &ClientAuth{
		UserID:       sess.User.ID,
		SessionID:    sess.ID,
		Username:     sess.User.Username,
		Role:         sess.User.Role,
		Capabilities: permission.Strings(sess.User.Role),
	}, nil
}

// RegisterHandler registers a message handler
func (h *Hub) RegisterHandler(handler MessageHandler) {
	h.handlerRegistry.Register(handler)
}

// HandleClientMessage routes a client message to its registered handler.
// It reports false when no handler claims the event.
func (h *Hub) HandleClientMessage(ctx context.Context, client *Client, msg *wstypes.WSMessage) (bool, error) {
	handler, exists := h.handlerRegistry.GetHandler(msg.Type)
	if !exists {
		return false, nil
	}
	return true, handler.HandleMessage(ctx, client, msg)
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.BroadcastMessage(msg)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.userID] == nil {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	h.logger.Info("websocket client connected",
		zap.Int64("user_id", client.userID),
		zap.String("session_id", client.sessionID),
		zap.Int("total", h.totalClients()))

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeConnected, map[string]interface{}{
		"user_id":      client.userID,
		"session_id":   client.sessionID,
		"role":         client.role,
		"capabilities": client.capabilities,
	}))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.userID]; ok {
		if _, exists := clients[client]; exists {
			delete(clients, client)
			client.Close()

			if len(clients) == 0 {
				delete(h.clients, client.userID)
			}

			h.logger.Info("websocket client disconnected",
				zap.Int64("user_id", client.userID),
				zap.String("session_id", client.sessionID),
				zap.Int("total", h.totalClients()))
		}
	}
}

func (h *Hub) deliver(client *Client, msg *BroadcastMessage) {
	if msg.SessionID != "" && client.sessionID != msg.SessionID {
		return
	}
	if client.IsSubscribed(msg.Channel) {
		client.SendMessage(msg.Message)
	}
}

func (h *Hub) BroadcastMessage(msg *BroadcastMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if msg.UserIDs == nil {
		for _, clients := range h.clients {
			for client := range clients {
				h.deliver(client, msg)
			}
		}
		return
	}

	for _, userID := range msg.UserIDs {
		for client := range h.clients[userID] {
			h.deliver(client, msg)
		}
	}
}

// enqueue hands msg to the run loop. After shutdown it is dropped.
func (h *Hub) enqueue(msg *BroadcastMessage) {
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}

func (h *Hub) GetConnectedClients(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.totalClients()
}

// Public methods for broadcasting

// PublishView pushes a view snapshot to the session that owns the view.
func (h *Hub) PublishView(userID int64, sessionID string, snap *listview.Snapshot) {
	h.enqueue(&BroadcastMessage{
		UserIDs:   []int64{userID},
		SessionID: sessionID,
		Channel:   wstypes.ChannelViews,
		Message:   wstypes.NewMessage(wstypes.EventTypeViewUpdated, snap),
	})
}

// PublishNotice pushes a view's toast to the session that owns the view.
func (h *Hub) PublishNotice(userID int64, sessionID string, notice wstypes.ViewNoticeData) {
	h.enqueue(&BroadcastMessage{
		UserIDs:   []int64{userID},
		SessionID: sessionID,
		Channel:   wstypes.ChannelNotices,
		Message:   wstypes.NewMessage(wstypes.EventTypeViewNotice, notice),
	})
}

// PublishViewClosed tells the session a view is gone.
func (h *Hub) PublishViewClosed(userID int64, sessionID, viewID string) {
	h.enqueue(&BroadcastMessage{
		UserIDs:   []int64{userID},
		SessionID: sessionID,
		Channel:   wstypes.ChannelViews,
		Message: wstypes.NewMessage(wstypes.EventTypeViewClosed, map[string]string{
			"view_id": viewID,
		}),
	})
}

// ForceLogout tells a session, or every session of the user when
// sessionID is empty, that it has been signed out.
func (h *Hub) ForceLogout(userID int64, sessionID string, reason string) {
	h.enqueue(&BroadcastMessage{
		UserIDs:   []int64{userID},
		SessionID: sessionID,
		Channel:   wstypes.ChannelSystem,
		Message: wstypes.NewMessage(wstypes.EventTypeForceLogout, wstypes.SessionEventData{
			SessionID: sessionID,
			Reason:    reason,
			Message:   "You have been logged out",
		}),
	})
}

// IsUserConnected checks if a user has any active connections
func (h *Hub) IsUserConnected(userID int64) bool {
	return h.GetConnectedClients(userID) > 0
}

// DisconnectSession closes the sockets of one session, or of every
// session of the user when sessionID is empty.
func (h *Hub) DisconnectSession(userID int64, sessionID string, reason string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[userID]
	if !ok {
		return
	}

	disconnectMsg := wstypes.NewMessage(wstypes.EventTypeDisconnected, map[string]interface{}{
		"reason": reason,
	})
	for client := range clients {
		if sessionID != "" && client.sessionID != sessionID {
			continue
		}
		client.SendMessage(disconnectMsg)
		client.Close()
		delete(clients, client)
	}
	if len(clients) == 0 {
		delete(h.clients, userID)
	}

	h.logger.Info("disconnected websocket clients",
		zap.Int64("user_id", userID),
		zap.String("session_id", sessionID),
		zap.String("reason", reason))
}

func (h *Hub) totalClients() int {
	total := 0
	for _, clients := range h.clients {
		total += len(clients)
	}
	return total
}

func (h *Hub) shutdown() {
	h.stopOnce.Do(func() { close(h.done) })

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			client.Close()
		}
	}
	h.clients = make(map[int64]map[*Client]bool)
}
