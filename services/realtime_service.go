package services

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"stock_advisor_backend/models"

	"github.com/gorilla/websocket"
)

// Constants for service configuration
const (
	MaxWebSocketClients   = 100 // Maximum concurrent WebSocket clients
	WebSocketWriteTimeout = 10 * time.Second
	WebSocketPongTimeout  = 60 * time.Second
	WebSocketPingInterval = 30 * time.Second
)

// WebSocketMessage represents a message to broadcast
type WebSocketMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
	Time string      `json:"time"`
}

// Client represents a WebSocket client
type Client struct {
	conn *websocket.Conn
	send chan []byte
}

// RealtimeService pushes dataset lifecycle events to connected clients
type RealtimeService struct {
	clients    map[*Client]bool
	broadcast  chan WebSocketMessage
	register   chan *Client
	unregister chan *Client
	shutdown   chan struct{}
	mu         sync.RWMutex
	upgrader   websocket.Upgrader
}

// Global realtime service
var GlobalRealtimeService *RealtimeService

// InitRealtimeService initializes the realtime event hub
func InitRealtimeService() error {
	GlobalRealtimeService = &RealtimeService{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan WebSocketMessage, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		shutdown:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	// Start the hub
	go GlobalRealtimeService.run()

	log.Println("Realtime Service initialized")
	return nil
}

// Shutdown gracefully shuts down the service
func (s *RealtimeService) Shutdown() {
	close(s.shutdown)

	// Close all client connections
	s.mu.Lock()
	for client := range s.clients {
		close(client.send)
		client.conn.Close()
	}
	s.clients = make(map[*Client]bool)
	s.mu.Unlock()

	log.Println("Realtime Service shutdown complete")
}

// BroadcastDatasetReloaded notifies clients that a fresh snapshot is live
func (s *RealtimeService) BroadcastDatasetReloaded(status models.DatasetStatus) {
	message := WebSocketMessage{
		Type: "dataset_reloaded",
		Data: status,
		Time: time.Now().Format(time.RFC3339),
	}

	select {
	case s.broadcast <- message:
	default:
		log.Println("Broadcast channel full, dropping dataset_reloaded event")
	}
}

// run starts the WebSocket hub
func (s *RealtimeService) run() {
	for {
		select {
		case <-s.shutdown:
			return

		case client := <-s.register:
			s.mu.Lock()
			// Check client limit
			if len(s.clients) >= MaxWebSocketClients {
				s.mu.Unlock()
				client.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "Server at capacity"))
				client.conn.Close()
				log.Printf("WebSocket client rejected: max clients reached (%d)", MaxWebSocketClients)
				continue
			}
			s.clients[client] = true
			clientCount := len(s.clients)
			s.mu.Unlock()
			log.Printf("WebSocket client connected. Total clients: %d", clientCount)

		case client := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
			}
			clientCount := len(s.clients)
			s.mu.Unlock()
			log.Printf("WebSocket client disconnected. Total clients: %d", clientCount)

		case message := <-s.broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				log.Printf("Error marshaling broadcast message: %v", err)
				continue
			}

			s.mu.Lock()
			deadClients := make([]*Client, 0)
			for client := range s.clients {
				select {
				case client.send <- data:
				default:
					// Client buffer full, mark for removal
					deadClients = append(deadClients, client)
				}
			}
			for _, client := range deadClients {
				delete(s.clients, client)
				close(client.send)
			}
			s.mu.Unlock()
		}
	}
}

// HandleWebSocket handles WebSocket connections
func (s *RealtimeService) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	// Check if at capacity before upgrading
	s.mu.RLock()
	atCapacity := len(s.clients) >= MaxWebSocketClients
	s.mu.RUnlock()

	if atCapacity {
		http.Error(w, "Server at capacity", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		conn: conn,
		send: make(chan []byte, 256),
	}

	s.register <- client

	go client.writePump()
	go client.readPump(s)
}

// writePump writes messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(WebSocketPingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(WebSocketWriteTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(WebSocketWriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump reads messages from the WebSocket connection. Inbound traffic
// is only used to keep the connection alive; the stream is one-way.
func (c *Client) readPump(s *RealtimeService) {
	defer func() {
		s.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(WebSocketPongTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(WebSocketPongTimeout))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}
	}
}
