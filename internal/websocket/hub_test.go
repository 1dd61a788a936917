package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient is a test double for Client that captures sent messages
type mockClient struct {
	id       string
	messages [][]byte
	mu       sync.Mutex
	closed   bool
}

func newMockClient(id string) *mockClient {
	return &mockClient{id: id}
}

func (m *mockClient) ID() string {
	return m.id
}

func (m *mockClient) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClientClosed
	}
	m.messages = append(m.messages, data)
	return nil
}

func (m *mockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockClient) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *mockClient) messageCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

func (m *mockClient) lastMessage() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.messages) == 0 {
		return nil
	}
	return m.messages[len(m.messages)-1]
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()

	a := newMockClient("a")
	b := newMockClient("b")
	hub.Register(a)
	hub.Register(b)
	hub.Register(b)
	assert.Equal(t, 2, hub.ClientCount())

	hub.Unregister(a)
	assert.Equal(t, 1, hub.ClientCount())

	require.NotPanics(t, func() { hub.Unregister(a) })
	hub.Unregister(b)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_BroadcastReachesEveryClient(t *testing.T) {
	hub := NewHub()

	clients := make([]*mockClient, 5)
	for i := range clients {
		clients[i] = newMockClient(fmt.Sprintf("client-%d", i))
		hub.Register(clients[i])
	}

	hub.Broadcast(LedgerEntryCreated(map[string]string{"id": "e1"}))

	for i, c := range clients {
		c := c
		assert.Eventually(t, func() bool { return c.messageCount() == 1 }, time.Second, 5*time.Millisecond, "client %d", i)
	}

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(clients[0].lastMessage(), &decoded))
	assert.Equal(t, "ledger_entry.created", decoded["type"])
	assert.Equal(t, "ledger_entry", decoded["entity"])
}

func TestHub_BroadcastWithoutClients(t *testing.T) {
	hub := NewHub()
	require.NotPanics(t, func() {
		hub.Broadcast(AssetDeleted(DeletedPayload{ID: "a1"}))
	})
}

func TestHub_BroadcastSkipsClosedClients(t *testing.T) {
	hub := NewHub()
	open := newMockClient("open")
	closed := newMockClient("closed")
	_ = closed.Close()
	hub.Register(open)
	hub.Register(closed)

	hub.Broadcast(ProjectUpdated(map[string]string{"id": "p1"}))

	assert.Eventually(t, func() bool { return open.messageCount() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, closed.messageCount())
}

func TestHub_CloseAll(t *testing.T) {
	hub := NewHub()
	a := newMockClient("a")
	b := newMockClient("b")
	hub.Register(a)
	hub.Register(b)

	hub.CloseAll()

	assert.Equal(t, 0, hub.ClientCount())
	assert.True(t, a.IsClosed())
	assert.True(t, b.IsClosed())
}

func TestHub_ConcurrentAccess(t *testing.T) {
	hub := NewHub()

	var wg sync.WaitGroup
	clientCount := 50

	clients := make([]*mockClient, clientCount)
	for i := range clients {
		clients[i] = newMockClient(fmt.Sprintf("client-%d", i))
	}

	for i := 0; i < clientCount; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			hub.Register(clients[idx])
		}(i)
	}
	wg.Wait()
	assert.Equal(t, clientCount, hub.ClientCount())

	for i := 0; i < clientCount; i++ {
		wg.Add(2)
		go func(idx int) {
			defer wg.Done()
			hub.Broadcast(LedgerEntryUpdated(map[string]int{"index": idx}))
		}(i)
		go func(idx int) {
			defer wg.Done()
			hub.Unregister(clients[idx])
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, hub.ClientCount())
}
