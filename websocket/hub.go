package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// MessageTypeAchievementUnlocked is sent to a user when they earn
	// a new achievement
	MessageTypeAchievementUnlocked MessageType = "achievement_unlocked"
	// MessageTypeMatchRecorded is sent to a user when one of their
	// matches was saved
	MessageTypeMatchRecorded MessageType = "match_recorded"
	// MessageTypeMMRUpdated is sent to a user when their MMR changes
	MessageTypeMMRUpdated MessageType = "mmr_updated"
	// MessageTypeHeroesSynced is sent to all clients after a hero
	// catalog import
	MessageTypeHeroesSynced MessageType = "heroes_synced"
	// MessageTypeError is sent when an error occurs
	MessageTypeError MessageType = "error"
)

// Message represents a WebSocket message
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// AchievementPayload contains achievement unlock information
type AchievementPayload struct {
	AchievementID string `json:"achievement_id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Emoji         string `json:"emoji"`
	Category      string `json:"category"`
	UnlockedAt    string `json:"unlocked_at"`
}

// MatchPayload contains match information for notifications
type MatchPayload struct {
	MatchID  string `json:"match_id,omitempty"`
	Hero     string `json:"hero"`
	Outcome  string `json:"outcome"`
	PlayedAt string `json:"played_at"`
}

// MMRPayload contains MMR update information
type MMRPayload struct {
	MMR    int    `json:"mmr"`
	Rank   string `json:"rank"`
	Change int    `json:"change"`
}

// Hub maintains the set of active clients and routes messages
type Hub struct {
	// Registered clients by user ID
	clients map[uint64]*Client

	// All clients for broadcast
	allClients map[*Client]bool

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Broadcast to all clients
	broadcast chan []byte

	// Send to specific user
	sendToUser chan *UserMessage

	mutex sync.RWMutex
}

// UserMessage is a message targeted at a specific user
type UserMessage struct {
	UserID  uint64
	Message []byte
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint64]*Client),
		allClients: make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
		sendToUser: make(chan *UserMessage),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client.userID] = client
			h.allClients[client] = true
			h.mutex.Unlock()
			log.Printf("WebSocket: Client connected - User %d (%s)", client.userID, client.username)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.allClients[client]; ok {
				delete(h.allClients, client)
				delete(h.clients, client.userID)
				close(client.send)
				log.Printf("WebSocket: Client disconnected - User %d (%s)", client.userID, client.username)
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			var dead []*Client
			h.mutex.RLock()
			for client := range h.allClients {
				select {
				case client.send <- message:
				default:
					// Client send buffer full, close connection
					dead = append(dead, client)
				}
			}
			h.mutex.RUnlock()
			h.drop(dead)

		case userMsg := <-h.sendToUser:
			var dead []*Client
			h.mutex.RLock()
			if client, ok := h.clients[userMsg.UserID]; ok {
				select {
				case client.send <- userMsg.Message:
				default:
					// Client send buffer full
					dead = append(dead, client)
				}
			}
			h.mutex.RUnlock()
			h.drop(dead)
		}
	}
}

// drop removes stalled clients under the write lock; send paths only
// hold the read lock, so they must not mutate the maps themselves
func (h *Hub) drop(clients []*Client) {
	if len(clients) == 0 {
		return
	}
	h.mutex.Lock()
	for _, client := range clients {
		if _, ok := h.allClients[client]; ok {
			close(client.send)
			delete(h.allClients, client)
			delete(h.clients, client.userID)
		}
	}
	h.mutex.Unlock()
}

// NotifyAchievementUnlocked sends an unlock notification to the user
// who earned the achievement
func (h *Hub) NotifyAchievementUnlocked(userID uint64, payload *AchievementPayload) {
	msg := Message{
		Type:    MessageTypeAchievementUnlocked,
		Payload: payload,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("WebSocket: Failed to marshal achievement message: %v", err)
		return
	}

	log.Printf("WebSocket: Sending achievement_unlocked (%s) to user %d (connected: %v)",
		payload.AchievementID, userID, h.IsUserConnected(userID))
	h.sendToUser <- &UserMessage{
		UserID:  userID,
		Message: data,
	}
}

// NotifyMatchRecorded sends a match-saved notification to the user
func (h *Hub) NotifyMatchRecorded(userID uint64, payload *MatchPayload) {
	msg := Message{
		Type:    MessageTypeMatchRecorded,
		Payload: payload,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("WebSocket: Failed to marshal match message: %v", err)
		return
	}

	h.sendToUser <- &UserMessage{
		UserID:  userID,
		Message: data,
	}
}

// NotifyMMRUpdated sends an MMR change notification to the user
func (h *Hub) NotifyMMRUpdated(userID uint64, payload *MMRPayload) {
	msg := Message{
		Type:    MessageTypeMMRUpdated,
		Payload: payload,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("WebSocket: Failed to marshal mmr message: %v", err)
		return
	}

	h.sendToUser <- &UserMessage{
		UserID:  userID,
		Message: data,
	}
}

// BroadcastHeroesSynced notifies all clients that the hero catalog was
// refreshed
func (h *Hub) BroadcastHeroesSynced(totalHeroes int) {
	msg := Message{
		Type: MessageTypeHeroesSynced,
		Payload: map[string]interface{}{
			"total_heroes": totalHeroes,
		},
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("WebSocket: Failed to marshal heroes synced message: %v", err)
		return
	}

	h.broadcast <- data
	log.Printf("WebSocket: Broadcasted heroes synced with %d heroes", totalHeroes)
}

// GetConnectedUserCount returns the number of connected users
func (h *Hub) GetConnectedUserCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.allClients)
}

// IsUserConnected checks if a specific user is connected
func (h *Hub) IsUserConnected(userID uint64) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	_, ok := h.clients[userID]
	return ok
}
