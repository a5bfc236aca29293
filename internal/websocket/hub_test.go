package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"landdeals-console/internal/domain/auth"
	"landdeals-console/internal/domain/listview"
	wstypes "landdeals-console/internal/domain/websocket"
	xerrors "landdeals-console/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAuth map[string]*auth.Session

func (f fakeAuth) Resolve(_ context.Context, id string) (*auth.Session, error) {
	if s, ok := f[id]; ok {
		return s, nil
	}
	return nil, xerrors.ErrSessionExpired
}

func newTestHub() *Hub {
	return NewHub(fakeAuth{
		"s1": {ID: "s1", User: auth.User{ID: 1, Role: auth.RoleAdmin}},
		"s2": {ID: "s2", User: auth.User{ID: 1, Role: auth.RoleAdmin}},
		"u":  {ID: "u", User: auth.User{ID: 2, Role: auth.RoleUser}},
	}, zap.NewNop())
}

func connect(t *testing.T, h *Hub, token string) *Client {
	t.Helper()
	ca, err := h.AuthenticateClient(context.Background(), token)
	require.NoError(t, err)
	c := NewClient(h, nil, ca)
	h.registerClient(c)
	// Drop the welcome message.
	<-c.send
	return c
}

func next(t *testing.T, c *Client) *wstypes.WSMessage {
	t.Helper()
	select {
	case data := <-c.send:
		var msg wstypes.WSMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		return &msg
	default:
		t.Fatal("no message queued")
		return nil
	}
}

func assertQuiet(t *testing.T, c *Client) {
	t.Helper()
	select {
	case data := <-c.send:
		t.Fatalf("unexpected message %s", data)
	default:
	}
}

func TestAuthenticateClient(t *testing.T) {
	h := newTestHub()

	ca, err := h.AuthenticateClient(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), ca.UserID)
	assert.Contains(t, ca.Capabilities, "owners:view")

	_, err = h.AuthenticateClient(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingToken)
	_, err = h.AuthenticateClient(context.Background(), "nope")
	assert.ErrorIs(t, err, xerrors.ErrSessionExpired)
}

func TestViewUpdatesReachOnlyTheOwningSession(t *testing.T) {
	h := newTestHub()
	a := connect(t, h, "s1")
	b := connect(t, h, "s2")

	h.BroadcastMessage(&BroadcastMessage{
		UserIDs:   []int64{1},
		SessionID: "s1",
		Channel:   wstypes.ChannelViews,
		Message:   wstypes.NewMessage(wstypes.EventTypeViewUpdated, &listview.Snapshot{ViewID: "v1"}),
	})

	msg := next(t, a)
	assert.Equal(t, wstypes.EventTypeViewUpdated, msg.Type)
	assertQuiet(t, b)
}

func TestPlainUsersCannotSubscribeToViews(t *testing.T) {
	h := newTestHub()
	c := connect(t, h, "u")

	assert.False(t, c.IsSubscribed(wstypes.ChannelViews))
	assert.True(t, c.IsSubscribed(wstypes.ChannelSystem))
	assert.False(t, c.Subscribe("audit"))
}

func TestDisconnectSession(t *testing.T) {
	h := newTestHub()
	a := connect(t, h, "s1")
	b := connect(t, h, "s2")

	h.DisconnectSession(1, "s1", "logout")
	assert.Equal(t, wstypes.EventTypeDisconnected, next(t, a).Type)
	assert.Error(t, a.ctx.Err())
	assert.NoError(t, b.ctx.Err())
	assert.Equal(t, 1, h.GetConnectedClients(1))

	h.DisconnectSession(1, "", "logout-all")
	assert.False(t, h.IsUserConnected(1))
	assert.Zero(t, h.TotalClients())
}

func TestRunDeliversAndStops(t *testing.T) {
	h := newTestHub()
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()

	ca, err := h.AuthenticateClient(context.Background(), "s1")
	require.NoError(t, err)
	c := NewClient(h, nil, ca)
	h.Register <- c

	h.PublishNotice(1, "s1", wstypes.ViewNoticeData{ViewID: "v1", Level: "success", Message: "Owner deleted successfully!"})

	require.Eventually(t, func() bool { return len(c.send) == 2 }, time.Second, 5*time.Millisecond)
	<-c.send
	assert.Equal(t, wstypes.EventTypeViewNotice, next(t, c).Type)

	cancel()
	<-stopped

	// Publishing after shutdown must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 300; i++ {
			h.PublishViewClosed(1, "s1", "v1")
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked after shutdown")
	}
	assert.Error(t, c.ctx.Err())
}

func TestSlowClientDropsMessages(t *testing.T) {
	h := newTestHub()
	c := connect(t, h, "s1")

	for i := 0; i < cap(c.send)+10; i++ {
		c.SendMessage(wstypes.NewMessage(wstypes.EventTypePong, nil))
	}
	assert.Len(t, c.send, cap(c.send))

	c.Close()
	c.Close()
}
