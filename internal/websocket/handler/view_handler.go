// internal/websocket/handler/view_handler.go
package handler

import (
	"context"
	"fmt"

	"landdeals-console/internal/domain/listview"
	wstypes "landdeals-console/internal/domain/websocket"
	ws "landdeals-console/internal/websocket"
)

// Views is the list view surface reachable over the socket.
type Views interface {
	Search(sessionID, viewID, term string) (*listview.Snapshot, error)
	Page(ctx context.Context, sessionID, viewID string, page int) (*listview.Snapshot, error)
	Refresh(ctx context.Context, sessionID, viewID string) (*listview.Snapshot, error)
}

// ViewHandler lets the browser type into a view's search box and move
// between pages without a REST round trip. Results arrive as
// view:updated events.
type ViewHandler struct {
	views Views
}

func NewViewHandler(views Views) *ViewHandler {
	return &ViewHandler{views: views}
}

func (h *ViewHandler) SupportedEvents() []wstypes.EventType {
	return []wstypes.EventType{
		wstypes.EventTypeViewSearch,
		wstypes.EventTypeViewPage,
		wstypes.EventTypeViewRefresh,
	}
}

func (h *ViewHandler) HandleMessage(ctx context.Context, client *ws.Client, msg *wstypes.WSMessage) error {
	var cmd wstypes.ViewCommand
	if err := ws.DecodeData(msg.Data, &cmd); err != nil {
		return fmt.Errorf("invalid view command: %w", err)
	}
	if cmd.ViewID == "" {
		return fmt.Errorf("view_id is required")
	}

	var err error
	switch msg.Type {
	case wstypes.EventTypeViewSearch:
		_, err = h.views.Search(client.SessionID(), cmd.ViewID, cmd.Search)
	case wstypes.EventTypeViewPage:
		_, err = h.views.Page(ctx, client.SessionID(), cmd.ViewID, cmd.Page)
	case wstypes.EventTypeViewRefresh:
		_, err = h.views.Refresh(ctx, client.SessionID(), cmd.ViewID)
	default:
		return fmt.Errorf("%w: %s", ws.ErrUnknownEvent, msg.Type)
	}
	return err
}
