package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestHubBroadcastRoutesToWatchers(t *testing.T) {
	h := newHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.run(ctx)

	a := &Client{send: make(chan []byte, 1)}
	b := &Client{send: make(chan []byte, 1)}
	a.watch("g1")
	b.watch("g2")
	h.register <- a
	h.register <- b

	h.broadcast <- broadcastMsg{gameID: "g1", payload: []byte("state")}

	select {
	case msg := <-a.send:
		assert.Equal(t, []byte("state"), msg)
	case <-time.After(time.Second):
		t.Fatal("watching client did not receive the broadcast")
	}
	select {
	case <-b.send:
		t.Fatal("client watching another game received the broadcast")
	default:
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	h := newHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.run(ctx)

	c := &Client{send: make(chan []byte, 1)}
	c.watch("g1")
	h.register <- c
	h.unregister <- c

	select {
	case _, open := <-c.send:
		assert.False(t, open, "send channel must be closed after unregister")
	case <-time.After(time.Second):
		t.Fatal("send channel not closed after unregister")
	}

	// Broadcasts after removal must not reach the dropped client.
	h.broadcast <- broadcastMsg{gameID: "g1", payload: []byte("late")}
}
