package proofstream

import (
	"sync"

	"github.com/gorilla/websocket"
)

const eventQueueMaxSize = 16

// Subscription is a live attestation stream. Events are delivered on the
// Events channel until the stream terminates or Close is called.
type Subscription struct {
	conn   *websocket.Conn
	events chan Event
	done   chan struct{}

	mtx  sync.Mutex
	err  error
	once sync.Once
}

func newSubscription(conn *websocket.Conn) *Subscription {
	return &Subscription{
		conn:   conn,
		events: make(chan Event, eventQueueMaxSize),
		done:   make(chan struct{}),
	}
}

// Events returns the channel emitting attestations. The channel is closed
// when the stream terminates, in which case Err reports the cause.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Err returns the error that terminated the stream, nil if the stream was
// closed by the consumer.
func (s *Subscription) Err() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.err
}

// Close tears down the subscription. It is safe to call it multiple times.
func (s *Subscription) Close() {
	s.once.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}

func (s *Subscription) readLoop() {
	defer close(s.events)

	for {
		var event Event
		if err := s.conn.ReadJSON(&event); err != nil {
			select {
			case <-s.done:
				// closed by the consumer, not an error
			default:
				s.mtx.Lock()
				s.err = err
				s.mtx.Unlock()
			}
			return
		}

		select {
		case s.events <- event:
		case <-s.done:
			return
		}
	}
}
