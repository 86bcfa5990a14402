package ws

import (
	"errors"
	"sync"
	"testing"
)

// fakeClient records everything written to it
type fakeClient struct {
	mu       sync.Mutex
	written  []interface{}
	closed   bool
	failNext bool
}

func (f *fakeClient) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext {
		return errors.New("write failed")
	}
	f.written = append(f.written, v)
	return nil
}

func (f *fakeClient) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeClient) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.written)
}

func TestRoomsJoinAndBroadcast(t *testing.T) {
	rooms := NewRooms()
	a := &fakeClient{}
	b := &fakeClient{}
	outsider := &fakeClient{}

	rooms.Join(1, a, 10)
	rooms.Join(1, b, 20)
	rooms.Join(2, outsider, 30)

	rooms.Broadcast(1, map[string]string{"type": "new_message"})

	if a.writeCount() != 1 {
		t.Errorf("client a received %d events, want 1", a.writeCount())
	}
	if b.writeCount() != 1 {
		t.Errorf("client b received %d events, want 1", b.writeCount())
	}
	if outsider.writeCount() != 0 {
		t.Errorf("outsider in another room received %d events, want 0", outsider.writeCount())
	}
}

func TestRoomsBroadcastIncludesSender(t *testing.T) {
	rooms := NewRooms()
	sender := &fakeClient{}
	rooms.Join(1, sender, 10)

	rooms.Broadcast(1, map[string]string{"type": "new_message"})

	if sender.writeCount() != 1 {
		t.Errorf("sender connection received %d events, want 1", sender.writeCount())
	}
}

func TestRoomsMultipleDevices(t *testing.T) {
	rooms := NewRooms()
	phone := &fakeClient{}
	laptop := &fakeClient{}

	// Same user on two connections
	rooms.Join(1, phone, 10)
	rooms.Join(1, laptop, 10)

	if got := rooms.CountConnections(1); got != 2 {
		t.Fatalf("CountConnections = %d, want 2", got)
	}

	rooms.Broadcast(1, "event")
	if phone.writeCount() != 1 || laptop.writeCount() != 1 {
		t.Errorf("devices received %d/%d events, want 1/1", phone.writeCount(), laptop.writeCount())
	}
}

func TestRoomsLeaveStopsDelivery(t *testing.T) {
	rooms := NewRooms()
	a := &fakeClient{}
	b := &fakeClient{}
	rooms.Join(1, a, 10)
	rooms.Join(1, b, 20)

	rooms.Leave(1, a)
	rooms.Broadcast(1, "event")

	if a.writeCount() != 0 {
		t.Errorf("left client received %d events, want 0", a.writeCount())
	}
	if b.writeCount() != 1 {
		t.Errorf("remaining client received %d events, want 1", b.writeCount())
	}
}

func TestRoomsJoinMovesConnection(t *testing.T) {
	rooms := NewRooms()
	c := &fakeClient{}

	rooms.Join(1, c, 10)
	rooms.Join(2, c, 10)

	if got := rooms.CountConnections(1); got != 0 {
		t.Errorf("old room still has %d connections, want 0", got)
	}
	if got := rooms.CountConnections(2); got != 1 {
		t.Errorf("new room has %d connections, want 1", got)
	}

	rooms.Broadcast(1, "event")
	if c.writeCount() != 0 {
		t.Errorf("connection received event from a room it moved out of")
	}
}

func TestRoomsRemoveOnClose(t *testing.T) {
	rooms := NewRooms()
	c := &fakeClient{}
	rooms.Join(1, c, 10)

	rooms.Remove(c)

	if got := rooms.CountConnections(1); got != 0 {
		t.Errorf("room has %d connections after Remove, want 0", got)
	}
	// Remove of an unknown connection is a no-op
	rooms.Remove(&fakeClient{})
}

func TestRoomsBroadcastEvictsFailedWriters(t *testing.T) {
	rooms := NewRooms()
	ok := &fakeClient{}
	broken := &fakeClient{failNext: true}
	rooms.Join(1, ok, 10)
	rooms.Join(1, broken, 20)

	rooms.Broadcast(1, "event")

	if got := rooms.CountConnections(1); got != 1 {
		t.Errorf("room has %d connections after failed write, want 1", got)
	}
	if ok.writeCount() != 1 {
		t.Errorf("healthy client received %d events, want 1", ok.writeCount())
	}
}

func TestRoomsConcurrentAccess(t *testing.T) {
	rooms := NewRooms()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c := &fakeClient{}
			rooms.Join(uint(n%3+1), c, uint(n))
			rooms.Broadcast(uint(n%3+1), "event")
			rooms.Remove(c)
		}(i)
	}
	wg.Wait()

	for room := uint(1); room <= 3; room++ {
		if got := rooms.CountConnections(room); got != 0 {
			t.Errorf("room %d has %d connections after all removed, want 0", room, got)
		}
	}
}
