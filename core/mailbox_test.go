package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/encodeous/routesim/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMailbox_FIFO(t *testing.T) {
	m := NewMailbox()
	for i := range 5 {
		m.Push(Message{Round: i})
	}
	assert.Equal(t, 5, m.Len())
	for i := range 3 {
		msg, err := m.Pop(context.Background())
		require.NoError(t, err)
		assert.Equal(t, i, msg.Round)
	}
	rest := m.Drain()
	require.Len(t, rest, 2)
	assert.Equal(t, 3, rest[0].Round)
	assert.Equal(t, 4, rest[1].Round)
	assert.Empty(t, m.Drain())
	assert.Equal(t, 0, m.Len())
}

func TestMailbox_ConcurrentPush(t *testing.T) {
	defer goleak.VerifyNone(t)
	m := NewMailbox()
	wg := sync.WaitGroup{}
	for sender := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				m.Push(Message{From: state.Handle(sender), Round: i})
			}
		}()
	}
	wg.Wait()

	msgs := m.Drain()
	require.Len(t, msgs, 1000)
	// each sender's messages keep their relative order
	next := make(map[state.Handle]int)
	for _, msg := range msgs {
		assert.Equal(t, next[msg.From], msg.Round)
		next[msg.From]++
	}
}

func TestMailbox_WaitLen(t *testing.T) {
	defer goleak.VerifyNone(t)
	m := NewMailbox()
	go func() {
		for i := range 3 {
			time.Sleep(5 * time.Millisecond)
			m.Push(Message{Round: i})
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, m.WaitLen(ctx, 3))
	assert.Len(t, m.Drain(), 3)
}

func TestMailbox_PopCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)
	m := NewMailbox()
	ctx, cancel := context.WithCancelCause(context.Background())
	stop := errors.New("router stopped")
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel(stop)
	}()
	_, err := m.Pop(ctx)
	assert.ErrorIs(t, err, stop)
}

func TestMailbox_PushNeverBlocks(t *testing.T) {
	m := NewMailbox()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 10000 {
			m.Push(Message{})
		}
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("push blocked without a reader")
	}
	assert.Equal(t, 10000, m.Len())
}
