// Package notify holds the transient user-facing message queue backing
// the toast strip. Messages expire on their own after a fixed delay
// unless dismissed first.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-portal/pkg/metrics"
)

type MessageType string

const (
	TypeSuccess MessageType = "success"
	TypeError   MessageType = "error"
)

// DefaultTTL is how long a message stays up before auto-dismissal.
const DefaultTTL = 4 * time.Second

// Message is one entry in the queue. ID identifies the exact entry so
// an expiry firing late never removes whatever shifted into its index.
type Message struct {
	ID   string      `json:"id"`
	Type MessageType `json:"type"`
	Text string      `json:"text"`
}

// Queue is an ordered set of transient messages. Insertion order is
// display order. Safe for concurrent use; expiry timers run on their
// own goroutines.
type Queue struct {
	mu       sync.Mutex
	messages []Message
	timers   map[string]*time.Timer
	ttl      time.Duration
	metrics  *metrics.Metrics
	closed   bool
}

func NewQueue(ttl time.Duration, m *metrics.Metrics) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Queue{
		timers:  make(map[string]*time.Timer),
		ttl:     ttl,
		metrics: m,
	}
}

func (q *Queue) PushSuccess(text string) Message {
	return q.push(TypeSuccess, text)
}

func (q *Queue) PushError(text string) Message {
	return q.push(TypeError, text)
}

func (q *Queue) push(kind MessageType, text string) Message {
	q.mu.Lock()
	defer q.mu.Unlock()

	msg := Message{
		ID:   uuid.New().String(),
		Type: kind,
		Text: text,
	}
	if q.closed {
		return msg
	}

	q.messages = append(q.messages, msg)
	q.timers[msg.ID] = time.AfterFunc(q.ttl, func() {
		q.expire(msg.ID)
	})

	if q.metrics != nil {
		q.metrics.NotificationsPushed.WithLabelValues(string(kind)).Inc()
	}
	return msg
}

// Dismiss removes the message at the given position. Dismissing an
// index that no longer exists is a deliberate no-op.
func (q *Queue) Dismiss(index int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if index < 0 || index >= len(q.messages) {
		return
	}
	q.removeLocked(q.messages[index].ID)
}

// DismissID removes a message by identity, if still present.
func (q *Queue) DismissID(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.removeLocked(id)
}

func (q *Queue) expire(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.removeLocked(id) && q.metrics != nil {
		q.metrics.NotificationsExpired.Inc()
	}
}

func (q *Queue) removeLocked(id string) bool {
	if timer, ok := q.timers[id]; ok {
		timer.Stop()
		delete(q.timers, id)
	}
	for i, msg := range q.messages {
		if msg.ID == id {
			q.messages = append(q.messages[:i], q.messages[i+1:]...)
			return true
		}
	}
	return false
}

// Messages returns a snapshot in display order.
func (q *Queue) Messages() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()

	snapshot := make([]Message, len(q.messages))
	copy(snapshot, q.messages)
	return snapshot
}

// Close cancels all pending expiry timers. Messages pushed after Close
// are dropped so stale timers cannot act on torn-down state.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
	q.messages = nil
}
