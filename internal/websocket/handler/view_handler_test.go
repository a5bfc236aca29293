package handler

import (
	"context"
	"testing"

	"landdeals-console/internal/domain/listview"
	wstypes "landdeals-console/internal/domain/websocket"
	xerrors "landdeals-console/internal/pkg/errors"
	ws "landdeals-console/internal/websocket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	op, session, view, term string
	page                    int
}

type fakeViews struct{ calls []call }

func (f *fakeViews) Search(sessionID, viewID, term string) (*listview.Snapshot, error) {
	f.calls = append(f.calls, call{op: "search", session: sessionID, view: viewID, term: term})
	return &listview.Snapshot{}, nil
}

func (f *fakeViews) Page(_ context.Context, sessionID, viewID string, page int) (*listview.Snapshot, error) {
	f.calls = append(f.calls, call{op: "page", session: sessionID, view: viewID, page: page})
	return &listview.Snapshot{}, nil
}

func (f *fakeViews) Refresh(_ context.Context, sessionID, viewID string) (*listview.Snapshot, error) {
	if viewID == "gone" {
		return nil, xerrors.ErrNotFound
	}
	f.calls = append(f.calls, call{op: "refresh", session: sessionID, view: viewID})
	return &listview.Snapshot{}, nil
}

func TestViewHandlerRoutesCommands(t *testing.T) {
	views := &fakeViews{}
	h := NewViewHandler(views)
	client := ws.NewClient(nil, nil, &ws.ClientAuth{UserID: 1, SessionID: "s1"})
	ctx := context.Background()

	require.NoError(t, h.HandleMessage(ctx, client, wstypes.NewMessage(wstypes.EventTypeViewSearch,
		map[string]interface{}{"view_id": "v1", "search": "ram"})))
	require.NoError(t, h.HandleMessage(ctx, client, wstypes.NewMessage(wstypes.EventTypeViewPage,
		map[string]interface{}{"view_id": "v1", "page": 3})))
	require.NoError(t, h.HandleMessage(ctx, client, wstypes.NewMessage(wstypes.EventTypeViewRefresh,
		map[string]interface{}{"view_id": "v1"})))

	assert.Equal(t, []call{
		{op: "search", session: "s1", view: "v1", term: "ram"},
		{op: "page", session: "s1", view: "v1", page: 3},
		{op: "refresh", session: "s1", view: "v1"},
	}, views.calls)
}

func TestViewHandlerErrors(t *testing.T) {
	h := NewViewHandler(&fakeViews{})
	client := ws.NewClient(nil, nil, &ws.ClientAuth{UserID: 1, SessionID: "s1"})
	ctx := context.Background()

	assert.Error(t, h.HandleMessage(ctx, client, wstypes.NewMessage(wstypes.EventTypeViewSearch, map[string]interface{}{})))
	assert.ErrorIs(t, h.HandleMessage(ctx, client, wstypes.NewMessage(wstypes.EventTypeViewRefresh,
		map[string]interface{}{"view_id": "gone"})), xerrors.ErrNotFound)
	assert.ErrorIs(t, h.HandleMessage(ctx, client, wstypes.NewMessage(wstypes.EventTypePing,
		map[string]interface{}{"view_id": "v1"})), ws.ErrUnknownEvent)
	assert.Len(t, h.SupportedEvents(), 3)
}
