package websocket

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu       sync.Mutex
	fail     bool
	closed   bool
	closedCh chan struct{}
	// stall blocks every write until the connection is closed.
	stall bool
	got   chan ActivityEvent
}

func newFakeConn(fail bool) *fakeConn {
	return &fakeConn{fail: fail, got: make(chan ActivityEvent, 64), closedCh: make(chan struct{})}
}

func newStalledConn() *fakeConn {
	f := newFakeConn(false)
	f.stall = true
	return f
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	if f.fail {
		return errors.New("broken pipe")
	}
	if f.stall {
		<-f.closedCh
		return errors.New("use of closed connection")
	}
	f.got <- v.(ActivityEvent)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.closedCh)
	}
	return nil
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func TestHubBroadcastsToEveryClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a, b := newFakeConn(false), newFakeConn(false)
	hub.Register(&Client{UserID: uuid.New(), Conn: a})
	hub.Register(&Client{UserID: uuid.New(), Conn: b})
	require.Eventually(t, func() bool { return hub.Len() == 2 }, time.Second, 5*time.Millisecond)

	hub.Publish(ActivityEvent{Type: EventPublished, ContentType: "news", ID: "n1", Title: "Hello"})

	for _, conn := range []*fakeConn{a, b} {
		select {
		case ev := <-conn.got:
			assert.Equal(t, EventPublished, ev.Type)
			assert.Equal(t, "n1", ev.ID)
			assert.False(t, ev.At.IsZero())
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}
}

func TestHubDropsFailingClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	bad := newFakeConn(true)
	hub.Register(&Client{UserID: uuid.New(), Conn: bad})
	hub.Publish(ActivityEvent{Type: EventDeleted, ContentType: "podcasts", ID: "p1"})

	assert.Eventually(t, func() bool { return hub.Len() == 0 && bad.isClosed() }, time.Second, 10*time.Millisecond)
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{UserID: uuid.New(), Conn: newFakeConn(false)}
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 5*time.Millisecond)

	hub.Unregister(client)
	assert.Eventually(t, func() bool { return hub.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHubStalledClientDoesNotBlockOthers(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	stalled, healthy := newStalledConn(), newFakeConn(false)
	hub.Register(&Client{UserID: uuid.New(), Conn: stalled})
	hub.Register(&Client{UserID: uuid.New(), Conn: healthy})
	require.Eventually(t, func() bool { return hub.Len() == 2 }, time.Second, 5*time.Millisecond)

	hub.Publish(ActivityEvent{Type: EventCreated, ContentType: "news", ID: "n1"})
	select {
	case ev := <-healthy.got:
		assert.Equal(t, "n1", ev.ID)
	case <-time.After(time.Second):
		t.Fatal("healthy client starved by stalled client")
	}

	lenDone := make(chan int, 1)
	go func() { lenDone <- hub.Len() }()
	select {
	case n := <-lenDone:
		assert.Equal(t, 2, n)
	case <-time.After(time.Second):
		t.Fatal("Len blocked behind a stalled write")
	}
}

func TestHubDisconnectsClientThatFallsBehind(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	stalled, healthy := newStalledConn(), newFakeConn(false)
	hub.Register(&Client{UserID: uuid.New(), Conn: stalled})
	hub.Register(&Client{UserID: uuid.New(), Conn: healthy})
	require.Eventually(t, func() bool { return hub.Len() == 2 }, time.Second, 5*time.Millisecond)

	// One event sits in the stalled write, the rest overflow its queue.
	for i := 0; i < clientQueueSize+2; i++ {
		hub.Publish(ActivityEvent{Type: EventUpdated, ContentType: "podcasts", ID: "p1"})
		<-healthy.got
	}

	assert.Eventually(t, func() bool { return hub.Len() == 1 && stalled.isClosed() }, time.Second, 10*time.Millisecond)
	assert.False(t, healthy.isClosed())
}

func TestHubUnregisterWaitsForWriter(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	conn := newFakeConn(false)
	client := &Client{UserID: uuid.New(), Conn: conn}
	hub.Register(client)
	hub.Publish(ActivityEvent{Type: EventDeleted, ContentType: "news", ID: "n2"})

	hub.Unregister(client)
	select {
	case <-client.done:
	default:
		t.Fatal("writer still running after Unregister returned")
	}
	assert.Equal(t, 0, hub.Len())
}
