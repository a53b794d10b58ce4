package sse

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/domain"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testItem(id string) *domain.ClothingItem {
	item := &domain.ClothingItem{
		Name:     "Linen Shirt",
		Category: domain.CategoryTops,
	}
	item.ID = id
	return item
}

func waitForEvent(t *testing.T, ch chan Event) Event {
	t.Helper()
	select {
	case event := <-ch:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestManager_ConnectDisconnect(t *testing.T) {
	m := testManager(t)

	client, err := m.Connect("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, client.ID)
	assert.Equal(t, "user-1", client.UserID)
	assert.Equal(t, 1, m.ClientCount())

	m.Disconnect(client.ID)
	assert.Equal(t, 0, m.ClientCount())

	// Disconnecting an unknown client is a no-op.
	m.Disconnect("sse_missing")
}

func TestManager_EmitToUser(t *testing.T) {
	m := testManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Start(ctx)

	owner, err := m.Connect("user-1")
	require.NoError(t, err)
	other, err := m.Connect("user-2")
	require.NoError(t, err)

	m.Emit(NewItemCreatedEvent("user-1", testItem("item-1")))

	event := waitForEvent(t, owner.EventChan)
	assert.Equal(t, EventItemCreated, event.Type)
	data, ok := event.Data.(ItemEventData)
	require.True(t, ok)
	assert.Equal(t, "item-1", data.Item.ID)

	// The other user's client never sees it.
	select {
	case leaked := <-other.EventChan:
		t.Fatalf("event leaked across users: %s", leaked.Type)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestManager_BroadcastToAll(t *testing.T) {
	m := testManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Start(ctx)

	a, err := m.Connect("user-1")
	require.NoError(t, err)
	b, err := m.Connect("user-2")
	require.NoError(t, err)

	// Empty UserID broadcasts to everyone.
	m.Emit(Event{Type: EventHeartbeat, Timestamp: time.Now(), Data: HeartbeatEventData{ServerTime: time.Now()}})

	assert.Equal(t, EventHeartbeat, waitForEvent(t, a.EventChan).Type)
	assert.Equal(t, EventHeartbeat, waitForEvent(t, b.EventChan).Type)
}

func TestManager_EmitInvalidType(t *testing.T) {
	m := testManager(t)

	// Non-Event payloads are dropped without panicking.
	m.Emit("not an event")
}

func TestManager_Shutdown(t *testing.T) {
	m := testManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	go m.Start(ctx)

	client, err := m.Connect("user-1")
	require.NoError(t, err)

	m.Emit(NewItemDeletedEvent("user-1", "item-1"))
	event := waitForEvent(t, client.EventChan)
	assert.Equal(t, EventItemDeleted, event.Type)

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()
	require.NoError(t, m.Shutdown(shutdownCtx))

	// Emitting after shutdown is a silent no-op.
	m.Emit(NewItemDeletedEvent("user-1", "item-2"))
	assert.Equal(t, 0, m.ClientCount())
}

func TestManager_Clients(t *testing.T) {
	m := testManager(t)

	_, err := m.Connect("user-1")
	require.NoError(t, err)
	_, err = m.Connect("user-2")
	require.NoError(t, err)

	seen := map[string]bool{}
	for client := range m.Clients() {
		seen[client.UserID] = true
	}
	assert.Len(t, seen, 2)
	assert.True(t, seen["user-1"])
	assert.True(t, seen["user-2"])
}
