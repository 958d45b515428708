package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// Responder produces the assistant reply for a conversation turn.
type Responder interface {
	Respond(ctx context.Context, model ChatModel, text string) (string, error)
}

// SimulatedResponder echoes the prompt back after a fixed delay. This is the
// reference behavior used when no real endpoint is wired up.
type SimulatedResponder struct {
	Delay time.Duration
}

// Respond implements Responder.
func (r *SimulatedResponder) Respond(ctx context.Context, model ChatModel, text string) (string, error) {
	select {
	case <-time.After(r.Delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return fmt.Sprintf("This is a simulated response to: %q", text), nil
}

// WebhookResponder posts the turn to the active model's webhook address.
//
// The request/response contract is provisional: we send
// {"model": <name>, "message": <text>} and accept {"reply": <text>}.
type WebhookResponder struct {
	HTTPClient *http.Client
}

type webhookRequest struct {
	Model   string `json:"model"`
	Message string `json:"message"`
}

type webhookResponse struct {
	Reply string `json:"reply"`
}

// Respond implements Responder.
func (r *WebhookResponder) Respond(ctx context.Context, model ChatModel, text string) (string, error) {
	body, err := json.Marshal(&webhookRequest{Model: model.Name, Message: text})
	if err != nil {
		return "", errors.Wrap(err, "marshaling webhook request")
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, model.Webhook, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "building webhook request")
	}
	request.Header.Set("Content-Type", "application/json")

	httpClient := r.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	response, err := httpClient.Do(request)
	if err != nil {
		return "", errors.Wrap(err, "calling webhook")
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return "", errors.Errorf("webhook returned status %d", response.StatusCode)
	}

	bytes, err := io.ReadAll(response.Body)
	if err != nil {
		return "", errors.Wrap(err, "reading webhook response")
	}
	reply := &webhookResponse{}
	if err := json.Unmarshal(bytes, reply); err != nil {
		return "", errors.Wrap(err, "unmarshaling webhook response")
	}
	return reply.Reply, nil
}
