package proofstream_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/assetlock-network/lockbridge-daemon/pkg/proofstream"
)

var upgrader = websocket.Upgrader{}

type receivedSubscribe struct {
	AnchorBlock string `json:"anchorBlock"`
	Address     string `json:"address"`
}

// startTestStream runs a websocket server that checks the subscribe request
// and emits the given events.
func startTestStream(
	t *testing.T, wantAnchor, wantAddress string, events []proofstream.Event,
) proofstream.Service {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			conn, err := upgrader.Upgrade(w, r, nil)
			require.NoError(t, err)
			defer conn.Close()

			_, raw, err := conn.ReadMessage()
			require.NoError(t, err)
			var req receivedSubscribe
			require.NoError(t, json.Unmarshal(raw, &req))
			require.Equal(t, wantAnchor, req.AnchorBlock)
			require.Equal(t, wantAddress, req.Address)

			for _, event := range events {
				require.NoError(t, conn.WriteJSON(event))
			}

			// Keep the connection open until the client closes it.
			conn.ReadMessage()
		},
	))
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	return proofstream.NewService(wsURL)
}

func TestSubscribeReceivesEvents(t *testing.T) {
	t.Parallel()

	want := proofstream.Event{
		TxID:      "0000000000000000000000000000000000000000000000000000000000000abc",
		OutIndex:  0,
		BlockHash: "000000000000000000000000000000000000000000000000000000000000cafe",
		Signature: []byte("attestation"),
	}
	svc := startTestStream(t, "anchor-block", "an address", []proofstream.Event{want})

	sub, err := svc.Subscribe(context.Background(), "anchor-block", "an address")
	require.NoError(t, err)
	defer sub.Close()

	select {
	case event := <-sub.Events():
		require.Equal(t, want, event)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the event")
	}
}

func TestCloseTerminatesWithoutError(t *testing.T) {
	t.Parallel()

	svc := startTestStream(t, "anchor-block", "an address", nil)

	sub, err := svc.Subscribe(context.Background(), "anchor-block", "an address")
	require.NoError(t, err)

	sub.Close()

	select {
	case _, ok := <-sub.Events():
		require.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the events channel to close")
	}
	require.NoError(t, sub.Err())
}

func TestDroppedConnectionReportsError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			conn, err := upgrader.Upgrade(w, r, nil)
			require.NoError(t, err)

			conn.ReadMessage()
			// Drop the connection without a close handshake.
			conn.Close()
		},
	))
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	svc := proofstream.NewService(wsURL)

	sub, err := svc.Subscribe(context.Background(), "anchor-block", "an address")
	require.NoError(t, err)
	defer sub.Close()

	select {
	case _, ok := <-sub.Events():
		require.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the events channel to close")
	}
	require.Error(t, sub.Err())
}

func TestFailingSubscribe(t *testing.T) {
	t.Parallel()

	svc := proofstream.NewService("ws://127.0.0.1:1/subscribe")

	_, err := svc.Subscribe(context.Background(), "anchor-block", "an address")
	require.Error(t, err)
}
