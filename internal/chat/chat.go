// Package chat holds the conversation state: the ordered message history,
// the configurable chat model endpoints and the pending attachments.
package chat

import "time"

// Sender tags who produced a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is one conversation turn. Immutable once created; messages are
// append-only and insertion order is display order.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	MediaURLs []string  `json:"media_urls,omitempty"`
}

// ChatModel is a named, user-configurable conversational endpoint: a display
// identity plus the webhook address messages would be posted to.
type ChatModel struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Webhook     string `json:"webhook"`
	AvatarURL   string `json:"avatar"`
	Description string `json:"description,omitempty"`
}

// State is a snapshot of the conversation store.
type State struct {
	Messages       []Message
	Models         []ChatModel
	CurrentModelID string
	Loading        bool
	AttachedFiles  []string
}

// CurrentModel resolves the active model in a state snapshot.
func CurrentModel(state State) (ChatModel, bool) {
	for _, model := range state.Models {
		if model.ID == state.CurrentModelID {
			return model, true
		}
	}
	return ChatModel{}, false
}
