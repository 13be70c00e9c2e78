package net

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"CollageBoard/internal/state"
)

// BridgePath is where renderers connect.
const BridgePath = "/ws"

// Bridge connects out-of-process renderers to a Store: snapshots go out,
// events come in.
type Bridge struct {
	store    *state.Store
	peers    *PeerManager
	upgrader websocket.Upgrader
}

// NewBridge creates a bridge for store. Call Run to start broadcasting.
//
// Requests without an Origin header (native renderers) and same-host origins
// are accepted. allowedOrigins lists further origins, such as
// "http://192.168.1.20:3000"; "*" accepts any.
func NewBridge(store *state.Store, allowedOrigins ...string) *Bridge {
	return &Bridge{
		store: store,
		peers: NewPeerManager(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originPolicy(allowedOrigins),
		},
	}
}

func originPolicy(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(strings.TrimSuffix(a, "/"), origin) {
				return true
			}
		}
		u, err := url.Parse(origin)
		if err == nil && strings.EqualFold(u.Host, r.Host) {
			return true
		}
		log.Printf("[BRIDGE] Rejected origin %q from %s", origin, r.RemoteAddr)
		return false
	}
}

// Peers returns the connected renderer count.
func (b *Bridge) Peers() int { return b.peers.Count() }

// ServeHTTP upgrades the request and serves one renderer until it leaves.
func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[BRIDGE] Upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}
	defer conn.Close()

	peer := newPeer(conn)
	b.peers.Add(peer)
	defer b.peers.Remove(peer)

	if err := peer.Send(StateMessage(b.store.State())); err != nil {
		log.Printf("[BRIDGE] Failed to send initial state to %s: %v", peer.Addr(), err)
		return
	}

	for {
		var msg NetworkMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[BRIDGE] Read from %s ended: %v", peer.Addr(), err)
			}
			return
		}
		ev, err := msg.Event()
		if err != nil {
			log.Printf("[BRIDGE] Ignoring message from %s: %v", peer.Addr(), err)
			continue
		}
		b.store.Dispatch(ev)
	}
}

// Run broadcasts every published snapshot until ctx is done.
func (b *Bridge) Run(ctx context.Context) {
	ch, cancel := b.store.Subscribe()
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case s, ok := <-ch:
			if !ok {
				return
			}
			b.peers.Broadcast(StateMessage(s))
		}
	}
}

// Serve listens on addr and serves the bridge until ctx is done. The bound
// address is reported on ready, which may be nil.
func (b *Bridge) Serve(ctx context.Context, addr string, ready func(net.Addr)) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle(BridgePath, b)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go b.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		b.peers.CloseAll()
	}()

	log.Printf("[BRIDGE] Listening on %s", listener.Addr())
	if ready != nil {
		ready(listener.Addr())
	}
	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve bridge: %w", err)
	}
	return nil
}
