package notify

import (
	"encoding/json"
	"errors"
	"log"
	"net"
	"sync"
)

const (
	RegisterMessageType   = "register"
	UnregisterMessageType = "unregister"
	NewReleaseMessageType = "new_release"
)

// RegisterMessage is what a client sends to start or stop receiving pushes.
type RegisterMessage struct {
	Type   string `json:"type"`
	UserID string `json:"user_id"`
}

// NewReleaseMessage is the push sent when the checker accepts a new release.
type NewReleaseMessage struct {
	Type    string `json:"type"`
	GameID  string `json:"game_id"`
	Title   string `json:"title,omitempty"`
	Version string `json:"version,omitempty"`
	Build   string `json:"build,omitempty"`
}

type Client struct {
	UserID string
	Addr   *net.UDPAddr
}

// Registry holds the last known UDP address per user. Re-registering
// overwrites the old address, so clients behind changing NATs just
// register again.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]Client
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]Client)}
}

func (r *Registry) Register(userID string, addr *net.UDPAddr) {
	if userID == "" || addr == nil {
		return
	}
	r.mu.Lock()
	r.clients[userID] = Client{UserID: userID, Addr: addr}
	r.mu.Unlock()
}

func (r *Registry) Remove(userID string) {
	r.mu.Lock()
	delete(r.clients, userID)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

func (r *Registry) Snapshot() []Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clients := make([]Client, 0, len(r.clients))
	for _, client := range r.clients {
		clients = append(clients, client)
	}
	return clients
}

type Server struct {
	addr     string
	registry *Registry
	logger   *log.Logger
	conn     *net.UDPConn
}

func NewServer(addr string, registry *Registry, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{addr: addr, registry: registry, logger: logger}
}

func (s *Server) Run() error {
	udpAddr, err := net.ResolveUDPAddr("udp", s.addr)
	if err != nil {
		return err
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return err
	}
	s.conn = conn
	defer conn.Close()

	s.logger.Printf("UDP notify server listening on %s", s.addr)

	buffer := make([]byte, 2048)
	for {
		n, addr, err := conn.ReadFromUDP(buffer)
		if err != nil {
			return err
		}
		s.handleDatagram(buffer[:n], addr)
	}
}

func (s *Server) handleDatagram(data []byte, addr *net.UDPAddr) {
	var msg RegisterMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.logger.Printf("invalid UDP message from %s: %v", addr, err)
		return
	}
	if msg.UserID == "" {
		s.logger.Printf("UDP message without user_id from %s", addr)
		return
	}
	switch msg.Type {
	case RegisterMessageType:
		s.registry.Register(msg.UserID, addr)
		s.logger.Printf("registered UDP client %s (%s)", msg.UserID, addr)
	case UnregisterMessageType:
		s.registry.Remove(msg.UserID)
		s.logger.Printf("unregistered UDP client %s", msg.UserID)
	}
}

// BroadcastNewRelease pushes one new_release datagram to every registered
// client. UDP gives no delivery guarantee; one retry, then the client is
// dropped from the registry.
func (s *Server) BroadcastNewRelease(gameID, title, version, build string) {
	if s.conn == nil {
		s.logger.Printf("UDP notify server not running")
		return
	}
	payload, err := json.Marshal(NewReleaseMessage{
		Type:    NewReleaseMessageType,
		GameID:  gameID,
		Title:   title,
		Version: version,
		Build:   build,
	})
	if err != nil {
		s.logger.Printf("failed to marshal broadcast: %v", err)
		return
	}

	for _, client := range s.registry.Snapshot() {
		s.sendWithRetry(client, payload)
	}
}

func (s *Server) sendWithRetry(client Client, payload []byte) {
	if err := s.sendOnce(client, payload); err == nil {
		return
	}
	if err := s.sendOnce(client, payload); err != nil {
		s.logger.Printf("failed to notify user %s at %s: %v", client.UserID, client.Addr, err)
		s.registry.Remove(client.UserID)
	}
}

func (s *Server) sendOnce(client Client, payload []byte) error {
	if client.Addr == nil {
		return errors.New("missing client address")
	}
	_, err := s.conn.WriteToUDP(payload, client.Addr)
	return err
}
