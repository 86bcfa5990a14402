package ws

import "sync"

// Conn serializes writes to one underlying websocket connection. The
// transport forbids concurrent writers, and a room broadcast can race the
// connection's own read-loop replies, so every accepted connection is
// wrapped before it is handed to the registry.
type Conn struct {
	mu   sync.Mutex
	conn Client
}

func NewConn(c Client) *Conn {
	return &Conn{conn: c}
}

func (c *Conn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *Conn) Close() error {
	return c.conn.Close()
}
