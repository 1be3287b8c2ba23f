package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Hub tracks connected clients and which campaign each one is viewing.
// Saves fan out to every viewer of the affected campaign; there is no other
// server-initiated traffic.
type Hub struct {
	clients    map[*Client]bool
	campaigns  map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	join       chan *joinRequest
	broadcast  chan *campaignMessage
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopped    bool
	mu         sync.RWMutex
}

type joinRequest struct {
	client     *Client
	campaignID string
}

type campaignMessage struct {
	campaignID string
	data       []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		campaigns:  make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan *joinRequest),
		broadcast:  make(chan *campaignMessage, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.campaigns = make(map[string]map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if !h.stopped {
				if _, ok := h.clients[client]; ok {
					delete(h.clients, client)
					h.leaveCampaignLocked(client)
					client.Close()
				}
			}
			h.mu.Unlock()

		case req := <-h.join:
			h.mu.Lock()
			if !h.stopped {
				h.leaveCampaignLocked(req.client)
				viewers, ok := h.campaigns[req.campaignID]
				if !ok {
					viewers = make(map[*Client]bool)
					h.campaigns[req.campaignID] = viewers
				}
				viewers[req.client] = true
				req.client.campaignID = req.campaignID
			}
			h.mu.Unlock()
			req.client.sendJoined(req.campaignID)

		case msg := <-h.broadcast:
			h.mu.RLock()
			for client := range h.campaigns[msg.campaignID] {
				select {
				case client.send <- msg.data:
				default:
					// Slow consumer; drop rather than stall the hub.
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Stop gracefully shuts down the hub, closing every client connection. It
// blocks until Run has exited.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	close(h.stop)
	<-h.done
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister safely unregisters a client, tolerating a hub that is already
// stopping.
func (h *Hub) Unregister(client *Client) {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()
	if stopped {
		return
	}

	select {
	case h.unregister <- client:
	default:
	}
}

// BroadcastCharacterUpdated notifies everyone viewing a campaign that a
// sheet was saved.
func (h *Hub) BroadcastCharacterUpdated(campaignID, characterID uuid.UUID, sheet interface{}) {
	h.broadcastToCampaign(campaignID, MessageTypeCharacterUpdated, CharacterUpdatedPayload{
		CampaignID:  campaignID.String(),
		CharacterID: characterID.String(),
		Sheet:       sheet,
	})
}

// BroadcastCharacterDeleted notifies campaign viewers of a deletion.
func (h *Hub) BroadcastCharacterDeleted(campaignID, characterID uuid.UUID) {
	h.broadcastToCampaign(campaignID, MessageTypeCharacterDeleted, CharacterDeletedPayload{
		CampaignID:  campaignID.String(),
		CharacterID: characterID.String(),
	})
}

func (h *Hub) broadcastToCampaign(campaignID uuid.UUID, msgType MessageType, payload interface{}) {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		log.Printf("ERROR [websocket.broadcast] marshal payload: %v", err)
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("ERROR [websocket.broadcast] marshal message: %v", err)
		return
	}

	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()
	if stopped {
		return
	}

	select {
	case h.broadcast <- &campaignMessage{campaignID: campaignID.String(), data: data}:
	default:
		log.Printf("WARN [websocket.broadcast] dropping update for campaign %s: queue full", campaignID)
	}
}

// leaveCampaignLocked removes a client from its current campaign set; the
// caller holds h.mu.
func (h *Hub) leaveCampaignLocked(client *Client) {
	if client.campaignID == "" {
		return
	}
	if viewers, ok := h.campaigns[client.campaignID]; ok {
		delete(viewers, client)
		if len(viewers) == 0 {
			delete(h.campaigns, client.campaignID)
		}
	}
	client.campaignID = ""
}
