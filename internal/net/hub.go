package net

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Scheme prefixes share links handed to viewers.
	Scheme = "sketchboard://"
	// SnapshotPath is where the hub accepts websocket viewers.
	SnapshotPath = "/snapshots"

	writeWait = 5 * time.Second
)

// ShareLink builds the link a viewer opens to watch a board.
func ShareLink(host string, port int) string {
	return fmt.Sprintf("%s%s", Scheme, net.JoinHostPort(host, fmt.Sprint(port)))
}

// ViewerURL converts a share link into the websocket URL of the hub.
func ViewerURL(link string) (string, error) {
	if !strings.HasPrefix(link, Scheme) {
		return "", fmt.Errorf("not a share link: %q", link)
	}
	addr := strings.TrimSuffix(strings.TrimPrefix(link, Scheme), "/")
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return "", fmt.Errorf("share link %q: %w", link, err)
	}
	return "ws://" + addr + SnapshotPath, nil
}

// Peer is one connected viewer.
type Peer struct {
	Conn *websocket.Conn
	addr string
	// send holds at most the newest snapshot not yet written.
	send chan []byte
}

func newPeer(conn *websocket.Conn) *Peer {
	p := &Peer{Conn: conn, send: make(chan []byte, 1)}
	if conn != nil {
		p.addr = conn.RemoteAddr().String()
	}
	return p
}

// Hub pushes board snapshots to read-only viewers. Viewers get the latest
// snapshot on connect and every published one after that.
type Hub struct {
	peers    map[*Peer]struct{}
	latest   []byte
	mu       sync.RWMutex
	upgrader websocket.Upgrader
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		peers: make(map[*Peer]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Publish stores data as the latest snapshot and queues it for every
// viewer. A viewer still writing an older snapshot has its queued one
// replaced, so it always ends on the newest.
func (h *Hub) Publish(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = data
	for p := range h.peers {
		select {
		case <-p.send:
			log.Printf("[SHARE] Viewer %s is behind, replacing queued snapshot", p.addr)
		default:
		}
		// Only senders hold mu, so the slot is free here.
		p.send <- data
	}
}

// Count returns the number of connected viewers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

func (h *Hub) add(p *Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.peers[p] = struct{}{}
	if h.latest != nil {
		p.send <- h.latest
	}
	log.Printf("[SHARE] Viewer connected from %s", p.addr)
}

func (h *Hub) remove(p *Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.peers[p]; ok {
		delete(h.peers, p)
		close(p.send)
	}
	log.Printf("[SHARE] Viewer %s disconnected", p.addr)
}

// ServeHTTP upgrades a viewer connection and serves it until it closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[SHARE] Upgrade failed: %v", err)
		return
	}
	p := newPeer(conn)
	h.add(p)
	go h.writeLoop(p)

	// viewers are read-only: drain and drop whatever they send
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(p)
	conn.Close()
}

func (h *Hub) writeLoop(p *Peer) {
	for data := range p.send {
		p.Conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := p.Conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
			log.Printf("[SHARE] Error sending to %s: %v", p.addr, err)
			p.Conn.Close()
			for range p.send {
			}
			return
		}
	}
}

// ListenAndServe runs the hub on port until ctx is cancelled.
func (h *Hub) ListenAndServe(ctx context.Context, port int) error {
	mux := http.NewServeMux()
	mux.Handle(SnapshotPath, h)
	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[SHARE] Snapshot hub listening on port %d", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("share hub: %w", err)
	}
	return nil
}

// Subscribe connects to a hub and calls fn with each snapshot until ctx
// is cancelled or the hub goes away.
func Subscribe(ctx context.Context, url string, fn func([]byte)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", url, err)
	}
	defer conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read snapshot: %w", err)
		}
		if kind == websocket.BinaryMessage {
			fn(data)
		}
	}
}
