package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aloc23/priority-transfers-admin-sub001/internal/models"
)

func newHubServer(t *testing.T) (*Hub, *websocket.Conn) {
	t.Helper()

	hub := NewHub()
	go hub.Run()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		HandleWebSocket(hub, w, r)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	waitForClients(t, hub, 1)
	return hub, conn
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("hub never reached %d clients", want)
}

func TestHubDeliversPublishedEvents(t *testing.T) {
	hub, conn := newHubServer(t)

	fireAt := time.Now().Add(2 * time.Hour)
	hub.Publish(models.ReminderEvent{
		Type:         models.EventReminderScheduled,
		BookingID:    "B1",
		ReminderTime: &fireAt,
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event models.ReminderEvent
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, models.EventReminderScheduled, event.Type)
	assert.Equal(t, "B1", event.BookingID)
	require.NotNil(t, event.ReminderTime)
	assert.False(t, event.Timestamp.IsZero())
}

func TestHubUnregistersClosedClients(t *testing.T) {
	hub, conn := newHubServer(t)

	require.NoError(t, conn.Close())
	waitForClients(t, hub, 0)

	// Publishing with no clients must not block or panic.
	hub.Publish(models.ReminderEvent{
		Type:      models.EventReminderCancelled,
		BookingID: "B1",
	})
}
