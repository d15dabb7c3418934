package ws

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPushToAllTabs(t *testing.T) {
	h := NewHub()
	a := NewClient("p-1", nil)
	b := NewClient("p-1", nil)
	h.Register(a)
	h.Register(b)
	assert.Equal(t, 2, h.Online("p-1"))

	ok := h.Push("p-1", "notification", map[string]string{"title": "digest"})
	require.True(t, ok)

	for _, c := range []*Client{a, b} {
		var ev Event
		require.NoError(t, json.Unmarshal(<-c.send, &ev))
		assert.Equal(t, "notification", ev.Type)
	}
}

func TestHubSendOffline(t *testing.T) {
	h := NewHub()
	assert.False(t, h.Send("nobody", []byte("x")))
	assert.False(t, h.Send("", []byte("x")))
}

func TestHubDropsSlowClient(t *testing.T) {
	h := NewHub()
	c := NewClient("p-2", nil)
	h.Register(c)
	for i := 0; i < cap(c.send); i++ {
		c.send <- []byte("fill")
	}
	assert.False(t, h.Send("p-2", []byte("overflow")))
	assert.Equal(t, 0, h.Online("p-2"))
}

func TestHubUnregisterIsIdempotent(t *testing.T) {
	h := NewHub()
	c := NewClient("p-3", nil)
	h.Register(c)
	h.Unregister(c)
	h.Unregister(c)
	assert.Equal(t, 0, h.Online("p-3"))
}

func TestHubPushWhileClientDisconnects(t *testing.T) {
	for i := 0; i < 200; i++ {
		h := NewHub()
		c := NewClient("p-4", nil)
		h.Register(c)

		var wg sync.WaitGroup
		for j := 0; j < 4; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for k := 0; k < 32; k++ {
					h.Push("p-4", "notification", k)
				}
			}()
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Unregister(c)
		}()
		wg.Wait()

		assert.Equal(t, 0, h.Online("p-4"))
	}
}

func TestClosedClientRejectsSend(t *testing.T) {
	c := NewClient("p-5", nil)
	c.Close()
	sent, full := c.enqueue([]byte("late"))
	assert.False(t, sent)
	assert.False(t, full)
	c.Close()
}
