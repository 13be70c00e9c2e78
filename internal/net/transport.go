package net

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// Peer is a connected renderer.
type Peer struct {
	conn *websocket.Conn
	mu   sync.Mutex // serializes writes; gorilla allows one writer at a time

	// Revision of the last snapshot written, valid once sentState is set.
	lastRev   uint64
	sentState bool
}

func newPeer(conn *websocket.Conn) *Peer {
	return &Peer{conn: conn}
}

// Addr returns the remote address of the peer.
func (p *Peer) Addr() string {
	return p.conn.RemoteAddr().String()
}

// Send writes one message to the peer. A snapshot whose revision is not newer
// than the last one written is skipped, so a peer never sees state go back.
func (p *Peer) Send(msg NetworkMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if msg.State != nil && p.sentState && msg.State.Revision <= p.lastRev {
		return nil
	}
	if err := p.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	if err := p.conn.WriteJSON(msg); err != nil {
		return err
	}
	if msg.State != nil {
		p.lastRev, p.sentState = msg.State.Revision, true
	}
	return nil
}

// PeerManager tracks the renderers connected to the host.
type PeerManager struct {
	peers map[*Peer]struct{}
	mu    sync.RWMutex
}

// NewPeerManager creates a new manager.
func NewPeerManager() *PeerManager {
	return &PeerManager{
		peers: make(map[*Peer]struct{}),
	}
}

// Add registers p to receive broadcasts.
func (pm *PeerManager) Add(p *Peer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.peers[p] = struct{}{}
	log.Printf("[BRIDGE] Renderer connected from %s", p.Addr())
}

// Remove stops broadcasts to p. Removing an unknown peer does nothing.
func (pm *PeerManager) Remove(p *Peer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if _, ok := pm.peers[p]; !ok {
		return
	}
	delete(pm.peers, p)
	log.Printf("[BRIDGE] Renderer disconnected: %s", p.Addr())
}

// Count returns the number of connected peers.
func (pm *PeerManager) Count() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// Broadcast sends msg to every peer. Peers that fail are closed; their read
// loop then removes them.
func (pm *PeerManager) Broadcast(msg NetworkMessage) {
	pm.mu.RLock()
	peers := make([]*Peer, 0, len(pm.peers))
	for p := range pm.peers {
		peers = append(peers, p)
	}
	pm.mu.RUnlock()

	for _, p := range peers {
		if err := p.Send(msg); err != nil {
			log.Printf("[BRIDGE] Error sending to %s: %v", p.Addr(), err)
			p.conn.Close()
		}
	}
}

// CloseAll drops every connection.
func (pm *PeerManager) CloseAll() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	for p := range pm.peers {
		p.conn.Close()
		delete(pm.peers, p)
	}
}
