package websocket

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"
)

type envelope struct {
	topic string
	data  []byte
	to    *Client // set for a direct reply
}

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Outbound messages, routed by topic.
	broadcast chan envelope

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	done chan struct{}
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan envelope, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		done:       make(chan struct{}),
	}
}

// Run starts the Hub's message processing loop. It returns after Stop.
func (h *Hub) Run() {
	log.Info().Msg("Websocket hub started")
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Info().Int("total_clients", len(h.clients)).Str("topic", client.Topic).Msg("Client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case msg := <-h.broadcast:
			if msg.to != nil {
				if _, ok := h.clients[msg.to]; ok {
					select {
					case msg.to.Send <- msg.data:
					default:
					}
				}
				continue
			}
			for client := range h.clients {
				if !client.wants(msg.topic) {
					continue
				}
				select {
				case client.Send <- msg.data:
				default:
					// Slow client; drop it rather than block the hub.
					close(client.Send)
					delete(h.clients, client)
				}
			}
		case <-h.done:
			for client := range h.clients {
				close(client.Send)
				delete(h.clients, client)
			}
			log.Info().Msg("Websocket hub stopped")
			return
		}
	}
}

// Stop terminates Run and disconnects every client.
func (h *Hub) Stop() {
	close(h.done)
}

// Publish encodes msg and queues it for every client subscribed to the
// message's topic. The topic is the action up to its first dot.
func (h *Hub) Publish(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("action", msg.Action).Msg("Failed to encode websocket message")
		return
	}
	select {
	case h.broadcast <- envelope{topic: TopicOf(msg.Action), data: data}:
	case <-h.done:
	}
}

// Reply queues data for a single client.
func (h *Hub) Reply(client *Client, data []byte) {
	select {
	case h.broadcast <- envelope{to: client, data: data}:
	case <-h.done:
	}
}

// TopicOf returns the topic of an action, e.g. "import" for "import.completed".
func TopicOf(action string) string {
	topic, _, _ := strings.Cut(action, ".")
	return topic
}
