package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedResponderEchoes(t *testing.T) {
	responder := &SimulatedResponder{Delay: time.Millisecond}

	reply, err := responder.Respond(context.Background(), ChatModel{Name: "ChatGPT"}, "hello")
	require.NoError(t, err)

	assert.Equal(t, `This is a simulated response to: "hello"`, reply)
}

func TestSimulatedResponderHonorsContext(t *testing.T) {
	responder := &SimulatedResponder{Delay: time.Minute}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := responder.Respond(ctx, ChatModel{}, "hello")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestWebhookResponder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		request := map[string]string{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, "Claude", request["model"])
		assert.Equal(t, "hello", request["message"])
		json.NewEncoder(w).Encode(map[string]string{"reply": "hi there"})
	}))
	defer server.Close()

	responder := &WebhookResponder{}
	model := ChatModel{Name: "Claude", Webhook: server.URL}

	reply, err := responder.Respond(context.Background(), model, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", reply)
}

func TestWebhookResponderNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	responder := &WebhookResponder{}
	_, err := responder.Respond(context.Background(), ChatModel{Webhook: server.URL}, "hello")

	assert.Error(t, err)
}
