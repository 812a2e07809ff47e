package websocket

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub, userID uuid.UUID, buffer int) *Client {
	return &Client{
		hub:    hub,
		send:   make(chan []byte, buffer),
		userID: userID,
	}
}

func waitForClients(t *testing.T, hub *Hub, userID uuid.UUID, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return hub.ClientCount(userID) == want
	}, time.Second, 5*time.Millisecond)
}

func receive(t *testing.T, c *Client) *Message {
	t.Helper()
	select {
	case data, ok := <-c.send:
		require.True(t, ok, "client channel closed")
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return &msg
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
	return nil
}

func TestHub_PublishReachesEveryConnectionOfUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	userID := uuid.New()
	otherID := uuid.New()

	first := newTestClient(hub, userID, 4)
	second := newTestClient(hub, userID, 4)
	other := newTestClient(hub, otherID, 4)
	hub.Register(first)
	hub.Register(second)
	hub.Register(other)
	waitForClients(t, hub, userID, 2)
	waitForClients(t, hub, otherID, 1)

	msg, err := NewMessage(MessageTypeBattleResolved, BattleResolvedPayload{
		BattleID: uuid.NewString(),
		Outcome:  "won",
	})
	require.NoError(t, err)
	hub.Publish(userID, msg)

	for _, c := range []*Client{first, second} {
		got := receive(t, c)
		assert.Equal(t, MessageTypeBattleResolved, got.Type)

		var payload BattleResolvedPayload
		require.NoError(t, json.Unmarshal(got.Payload, &payload))
		assert.Equal(t, "won", payload.Outcome)
	}

	select {
	case <-other.send:
		t.Fatal("event leaked to another user")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterClosesClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	userID := uuid.New()
	c := newTestClient(hub, userID, 1)
	hub.Register(c)
	waitForClients(t, hub, userID, 1)

	hub.Unregister(c)
	waitForClients(t, hub, userID, 0)

	_, ok := <-c.send
	assert.False(t, ok, "send channel should be closed")
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	userID := uuid.New()
	c := newTestClient(hub, userID, 1)
	hub.Register(c)
	waitForClients(t, hub, userID, 1)

	msg, err := NewMessage(MessageTypePong, struct{}{})
	require.NoError(t, err)

	hub.Publish(userID, msg)
	hub.Publish(userID, msg)

	waitForClients(t, hub, userID, 0)
}

func TestHub_StopClosesClientsAndIgnoresLaterCalls(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	userID := uuid.New()
	c := newTestClient(hub, userID, 1)
	hub.Register(c)
	waitForClients(t, hub, userID, 1)

	hub.Stop()

	_, ok := <-c.send
	assert.False(t, ok)

	msg, _ := NewMessage(MessageTypePong, struct{}{})
	hub.Publish(userID, msg)
	hub.Unregister(c)
	hub.Stop()
	assert.Equal(t, 0, hub.ClientCount(userID))
}

func TestHub_ConcurrentStop(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NotPanics(t, hub.Stop)
		}()
	}
	wg.Wait()
}

func TestClient_SendAfterClose(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	userID := uuid.New()
	c := newTestClient(hub, userID, 4)
	hub.Register(c)
	waitForClients(t, hub, userID, 1)

	hub.Unregister(c)
	waitForClients(t, hub, userID, 0)

	pong, err := NewMessage(MessageTypePong, struct{}{})
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		c.Send(pong)
		c.Close()
	})
	assert.False(t, c.trySend([]byte("{}")))

	_, ok := <-c.send
	assert.False(t, ok, "nothing is queued on a closed client")
}

func TestClient_SendRacesClose(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	for i := 0; i < 50; i++ {
		c := newTestClient(hub, userID, 1)
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				c.trySend([]byte("{}"))
			}
		}()
		go func() {
			defer wg.Done()
			c.Close()
		}()
		wg.Wait()

		for range c.send {
		}
		assert.False(t, c.trySend([]byte("{}")))
	}
}
