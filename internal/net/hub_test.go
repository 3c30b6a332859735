package net

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + SnapshotPath
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readSnapshot(t *testing.T, conn *websocket.Conn) []byte {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	kind, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.BinaryMessage, kind)
	return data
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 5*time.Second, 10*time.Millisecond)
}

func TestHubSendsLatestOnConnect(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	hub.Publish([]byte("first"))
	hub.Publish([]byte("second"))
	conn := dialHub(t, srv)
	assert.Equal(t, []byte("second"), readSnapshot(t, conn))
}

func TestHubBroadcastsToAllViewers(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	a := dialHub(t, srv)
	b := dialHub(t, srv)
	waitFor(t, func() bool { return hub.Count() == 2 })

	hub.Publish([]byte("snap"))
	assert.Equal(t, []byte("snap"), readSnapshot(t, a))
	assert.Equal(t, []byte("snap"), readSnapshot(t, b))
}

func TestHubIgnoresViewerMessagesAndDropsClosedViewers(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dialHub(t, srv)
	waitFor(t, func() bool { return hub.Count() == 1 })
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("draw please")))
	hub.Publish([]byte("x"))
	assert.Equal(t, []byte("x"), readSnapshot(t, conn))

	conn.Close()
	waitFor(t, func() bool { return hub.Count() == 0 })
	hub.Publish([]byte("y"))
}

func TestSubscribe(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()
	hub.Publish([]byte("hello"))

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan []byte, 1)
	done := make(chan error, 1)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + SnapshotPath
	go func() {
		done <- Subscribe(ctx, url, func(b []byte) {
			select {
			case got <- b:
			default:
			}
		})
	}()

	select {
	case b := <-got:
		assert.Equal(t, []byte("hello"), b)
	case <-time.After(5 * time.Second):
		t.Fatal("no snapshot")
	}
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("subscribe did not stop")
	}
}

func TestShareLinks(t *testing.T) {
	link := ShareLink("192.168.1.4", 8888)
	assert.Equal(t, "sketchboard://192.168.1.4:8888", link)

	url, err := ViewerURL(link + "/")
	require.NoError(t, err)
	assert.Equal(t, "ws://192.168.1.4:8888/snapshots", url)

	_, err = ViewerURL("localboard://1.2.3.4:1")
	assert.Error(t, err)
	_, err = ViewerURL("sketchboard://nohost")
	assert.Error(t, err)
}

func TestHubReplacesQueuedSnapshotForSlowViewer(t *testing.T) {
	hub := NewHub()
	slow := newPeer(nil) // no writer drains it
	hub.add(slow)

	hub.Publish([]byte("A"))
	hub.Publish([]byte("B"))

	select {
	case got := <-slow.send:
		assert.Equal(t, []byte("B"), got)
	default:
		t.Fatal("nothing queued for viewer")
	}
	select {
	case got := <-slow.send:
		t.Fatalf("stale snapshot %q still queued", got)
	default:
	}
}

func TestHubTracksViewersWithSameAddress(t *testing.T) {
	hub := NewHub()
	first, second := newPeer(nil), newPeer(nil)
	first.addr, second.addr = "10.0.0.2:5000", "10.0.0.2:5000"
	hub.add(first)
	hub.add(second)
	require.Equal(t, 2, hub.Count())

	hub.remove(first)
	assert.Equal(t, 1, hub.Count())
	_, open := <-first.send
	assert.False(t, open, "removed viewer's queue must be closed")

	hub.Publish([]byte("still here"))
	assert.Equal(t, []byte("still here"), <-second.send)

	hub.remove(second)
	assert.Equal(t, 0, hub.Count())
}
