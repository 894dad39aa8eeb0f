package realtime_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"universo/internal/auth"
	"universo/internal/logging"
	"universo/internal/model"
	"universo/internal/realtime"
)

var identities = map[string]auth.Identity{
	"admin": {UserID: 1, Email: "admin@universo.com", Role: model.RoleAdmin},
	"ana":   {UserID: 2, Email: "ana@x.com", Role: model.RoleEmployee},
}

func newServer(t *testing.T, hub *realtime.Hub) *httptest.Server {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", func(c *gin.Context) {
		if id, ok := identities[c.Query("as")]; ok {
			c.Request = c.Request.WithContext(auth.NewContext(c.Request.Context(), id))
		}
	}, hub.ServeWs)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(c *qt.C, srv *httptest.Server, as string) *websocket.Conn {
	c.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?as=" + as
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(resp.StatusCode, qt.Equals, http.StatusSwitchingProtocols)
	c.Cleanup(func() { conn.Close() })
	return conn
}

func readJSON(c *qt.C, conn *websocket.Conn, v any) {
	c.Helper()
	c.Assert(conn.SetReadDeadline(time.Now().Add(5*time.Second)), qt.IsNil)
	c.Assert(conn.ReadJSON(v), qt.IsNil)
}

type presence struct {
	Type string                `json:"type"`
	Data []realtime.OnlineUser `json:"data"`
}

func TestHubBroadcast(t *testing.T) {
	c := qt.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := realtime.NewHub(logging.Discard(), nil)
	go hub.Run(ctx)
	srv := newServer(t, hub)

	admin := dial(c, srv, "admin")
	var online presence
	readJSON(c, admin, &online)
	c.Assert(online.Type, qt.Equals, "online_users")
	c.Assert(online.Data, qt.HasLen, 1)

	ana := dial(c, srv, "ana")
	readJSON(c, admin, &online)
	c.Assert(online.Data, qt.HasLen, 2)

	hub.Publish(realtime.Event{Type: "task.updated", ID: 7})

	var ev realtime.Event
	readJSON(c, admin, &ev)
	c.Assert(ev, qt.DeepEquals, realtime.Event{Type: "task.updated", ID: 7})

	// Employees never receive the presence list.
	readJSON(c, ana, &ev)
	c.Assert(ev, qt.DeepEquals, realtime.Event{Type: "task.updated", ID: 7})

	c.Assert(ana.Close(), qt.IsNil)
	readJSON(c, admin, &online)
	c.Assert(online.Data, qt.DeepEquals, []realtime.OnlineUser{{ID: 1, Email: "admin@universo.com", Role: "ADMINISTRADOR"}})
}

func TestHubRejectsAnonymous(t *testing.T) {
	c := qt.New(t)
	hub := realtime.NewHub(logging.Discard(), nil)
	srv := newServer(t, hub)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	c.Assert(err, qt.IsNotNil)
	c.Assert(resp.StatusCode, qt.Equals, http.StatusUnauthorized)
}

func TestHubChecksOrigin(t *testing.T) {
	c := qt.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := realtime.NewHub(logging.Discard(), []string{"http://localhost:5173"})
	go hub.Run(ctx)
	srv := newServer(t, hub)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?as=ana"

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://evil.example"}})
	c.Assert(err, qt.IsNotNil)
	c.Assert(resp.StatusCode, qt.Equals, http.StatusForbidden)

	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://localhost:5173"}})
	c.Assert(err, qt.IsNil)
	conn.Close()
}

func TestPublishAfterStopDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := realtime.NewHub(logging.Discard(), nil)
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	for i := 0; i < 100; i++ {
		hub.Publish(realtime.Event{Type: "task.created", ID: uint(i)})
	}
}
