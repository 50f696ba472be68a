package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ustinerary/planner/internal/handler"
	"github.com/ustinerary/planner/internal/notify"
	"github.com/ustinerary/planner/internal/store"
)

func TestEvents_RequiresUpgrade(t *testing.T) {
	hub := notify.NewHub(nil, nil)
	h := newHTTPHandler(handler.Services{Changes: hub})

	rec := serve(t, h, guest, http.MethodGet, "/events", nil)

	assert.NotEqual(t, http.StatusOK, rec.Code)
}

func TestEvents_StreamsChanges(t *testing.T) {
	hub := notify.NewHub(nil, nil)
	srv := httptest.NewServer(newHTTPHandler(handler.Services{Changes: hub}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// The subscription is registered after the upgrade completes; publish
	// until the first event arrives.
	got := make(chan handler.ChangeEvent, 1)
	go func() {
		var ev handler.ChangeEvent
		if err := conn.ReadJSON(&ev); err == nil {
			got <- ev
		}
	}()
	deadline := time.After(2 * time.Second)
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case ev := <-got:
			assert.Equal(t, "trip.t1.budget.v1", ev.Key)
			return
		case <-tick.C:
			hub.Publish(store.Change{Key: "trip.t1.budget.v1"})
		case <-deadline:
			t.Fatal("no change event received")
		}
	}
}

func TestEvents_RejectsForeignOrigin(t *testing.T) {
	hub := notify.NewHub(nil, nil)
	srv := httptest.NewServer(handler.NewServer(handler.Services{Changes: hub}, []string{"http://localhost:5173"}).Routes())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/events"
	header := http.Header{"Origin": []string{"http://elsewhere.example.com"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
