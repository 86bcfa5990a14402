package ws

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// overlapClient detects concurrent entry into WriteJSON, which the real
// transport punishes with a panic.
type overlapClient struct {
	inWrite  int32
	overlaps int32
	writes   int32
}

func (c *overlapClient) WriteJSON(v interface{}) error {
	if !atomic.CompareAndSwapInt32(&c.inWrite, 0, 1) {
		atomic.AddInt32(&c.overlaps, 1)
		return nil
	}
	time.Sleep(time.Millisecond)
	atomic.AddInt32(&c.writes, 1)
	atomic.StoreInt32(&c.inWrite, 0)
	return nil
}

func (c *overlapClient) Close() error { return nil }

func TestConnSerializesConcurrentBroadcasts(t *testing.T) {
	raw := &overlapClient{}
	conn := NewConn(raw)
	rooms := NewRooms()
	rooms.Join(1, conn, 10)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rooms.Broadcast(1, "event")
		}()
	}
	wg.Wait()

	if n := atomic.LoadInt32(&raw.overlaps); n != 0 {
		t.Errorf("underlying connection saw %d overlapping writes, want 0", n)
	}
	if n := atomic.LoadInt32(&raw.writes); n != 8 {
		t.Errorf("delivered %d writes, want 8", n)
	}
}

func TestConnSerializesBroadcastAgainstDirectWrite(t *testing.T) {
	raw := &overlapClient{}
	conn := NewConn(raw)
	rooms := NewRooms()
	rooms.Join(1, conn, 10)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rooms.Broadcast(1, "event")
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			// A read-loop reply racing the broadcast.
			conn.WriteJSON(map[string]string{"type": "pong"})
		}()
	}
	wg.Wait()

	if n := atomic.LoadInt32(&raw.overlaps); n != 0 {
		t.Errorf("underlying connection saw %d overlapping writes, want 0", n)
	}
	if n := atomic.LoadInt32(&raw.writes); n != 8 {
		t.Errorf("delivered %d writes, want 8", n)
	}
}
