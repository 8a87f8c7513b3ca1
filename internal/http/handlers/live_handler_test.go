// README: Live feed tests over a real listener so the WebSocket upgrade can happen.
package handlers_test

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
)

type liveFrame struct {
	Type       string `json:"type"`
	Comparison *struct {
		DistanceKm float64 `json:"distance_km"`
		Total      int     `json:"total"`
	} `json:"comparison"`
}

func TestLive_PushesAndRefreshes(t *testing.T) {
	r := buildTestRouter(nil, nil)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/rides/live?distance=7&providers=uber&interval=60"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { conn.Close() })

	readFrame := func() liveFrame {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)
		var f liveFrame
		require.NoError(t, json.Unmarshal(raw, &f))
		return f
	}

	first := readFrame()
	assert.Equal(t, "comparison", first.Type)
	require.NotNil(t, first.Comparison)
	assert.Equal(t, 7.0, first.Comparison.DistanceKm)
	assert.Equal(t, 3, first.Comparison.Total)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "refresh"}))
	second := readFrame()
	assert.Equal(t, "comparison", second.Type)
	require.NotNil(t, second.Comparison)
	assert.Equal(t, 3, second.Comparison.Total)
}

func TestLive_RejectsBadInterval(t *testing.T) {
	r := buildTestRouter(nil, nil)

	w := doRequest(r, http.MethodGet, "/api/rides/live?interval=1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodGet, "/api/rides/live?sort=rating", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
