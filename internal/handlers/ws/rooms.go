package ws

import (
	"log"
	"sync"
)

// Rooms maps conversations to the set of realtime connections currently
// subscribed to them. One instance is constructed at process start and
// passed by reference to every connection handler; membership mutations are
// serialized by the registry lock. A connection occupies at most one room,
// and a conversation may hold many connections from many users (several per
// user for multiple devices).
type Rooms struct {
	mu         sync.RWMutex
	rooms      map[uint]map[Client]uint
	membership map[Client]uint
}

func NewRooms() *Rooms {
	return &Rooms{
		rooms:      make(map[uint]map[Client]uint),
		membership: make(map[Client]uint),
	}
}

// Join adds the connection to a conversation's room, detaching it from its
// previous room first.
func (r *Rooms) Join(conversationID uint, c Client, userID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.membership[c]; ok && prev != conversationID {
		r.detach(prev, c)
	}

	room := r.rooms[conversationID]
	if room == nil {
		room = make(map[Client]uint)
		r.rooms[conversationID] = room
	}
	room[c] = userID
	r.membership[c] = conversationID
}

// Leave detaches the connection from the given room. The participant row is
// untouched; this is a transport-level detach.
func (r *Rooms) Leave(conversationID uint, c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.membership[c] == conversationID {
		r.detach(conversationID, c)
	}
}

// Remove detaches the connection from whatever room it occupies. Called
// unconditionally on transport close.
func (r *Rooms) Remove(c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if conversationID, ok := r.membership[c]; ok {
		r.detach(conversationID, c)
	}
}

// Broadcast delivers an event to every connection in the room, including
// the sender's own connections. Connections whose write fails are removed.
func (r *Rooms) Broadcast(conversationID uint, event interface{}) {
	r.mu.RLock()
	conns := make([]Client, 0, len(r.rooms[conversationID]))
	for c := range r.rooms[conversationID] {
		conns = append(conns, c)
	}
	r.mu.RUnlock()

	var failed []Client
	for _, c := range conns {
		if err := c.WriteJSON(event); err != nil {
			log.Printf("Error broadcasting to room %d: %v", conversationID, err)
			failed = append(failed, c)
		}
	}

	for _, c := range failed {
		r.Remove(c)
	}
}

// CountConnections returns the number of connections in a room.
func (r *Rooms) CountConnections(conversationID uint) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[conversationID])
}

// caller holds r.mu
func (r *Rooms) detach(conversationID uint, c Client) {
	if room, ok := r.rooms[conversationID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(r.rooms, conversationID)
		}
	}
	delete(r.membership, c)
}
