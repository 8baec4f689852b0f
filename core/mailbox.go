package core

import (
	"context"
	"sync"

	"github.com/encodeous/routesim/perf"
)

// Mailbox is an unbounded FIFO inbox. Any number of goroutines may Push
// concurrently, but only the owning router may wait on or drain it.
type Mailbox struct {
	mu     sync.Mutex
	msgs   []Message
	notify chan struct{}
}

func NewMailbox() *Mailbox {
	return &Mailbox{
		notify: make(chan struct{}, 1),
	}
}

// Push appends msg and wakes the owner. It never blocks on the reader.
func (m *Mailbox) Push(msg Message) {
	m.mu.Lock()
	m.msgs = append(m.msgs, msg)
	m.mu.Unlock()
	select {
	case m.notify <- struct{}{}:
	default: // the owner already has a pending wakeup
	}
	perf.MessagesSent.Add(1)
}

func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.msgs)
}

// WaitLen blocks until at least n messages are queued or ctx is done
func (m *Mailbox) WaitLen(ctx context.Context, n int) error {
	for {
		if m.Len() >= n {
			return nil
		}
		select {
		case <-m.notify:
		case <-ctx.Done():
			return context.Cause(ctx)
		}
	}
}

// Pop blocks until a message is available and removes it from the head of the queue
func (m *Mailbox) Pop(ctx context.Context) (Message, error) {
	if err := m.WaitLen(ctx, 1); err != nil {
		return Message{}, err
	}
	m.mu.Lock()
	msg := m.msgs[0]
	m.msgs[0] = Message{}
	m.msgs = m.msgs[1:]
	m.mu.Unlock()
	perf.MessagesReceived.Add(1)
	return msg, nil
}

// Drain removes and returns every queued message in arrival order without blocking
func (m *Mailbox) Drain() []Message {
	m.mu.Lock()
	msgs := m.msgs
	m.msgs = nil
	m.mu.Unlock()
	perf.MessagesReceived.Add(float64(len(msgs)))
	return msgs
}
