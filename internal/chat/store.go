package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"contentdesk/internal/debug"
	"contentdesk/internal/file"
	"contentdesk/internal/storage"
)

const persistenceKey = "chat"

var log = debug.GetLogger()

// persistedState is the subset of store state written to durable storage.
// The loading flag and pending attachments are transient.
type persistedState struct {
	Messages       []Message   `json:"messages"`
	Models         []ChatModel `json:"models"`
	CurrentModelID string      `json:"current_model_id"`
}

// defaultModels seeds the store when no snapshot exists. At least one model
// must always exist, so the seed is never empty.
func defaultModels() []ChatModel {
	return []ChatModel{
		{
			ID:          uuid.New().String(),
			Name:        "ChatGPT",
			Webhook:     "https://api.example.com/chatgpt",
			AvatarURL:   "https://api.dicebear.com/7.x/bottts/svg?seed=gpt&backgroundColor=ffb144",
			Description: "OpenAI GPT model",
		},
		{
			ID:          uuid.New().String(),
			Name:        "Claude",
			Webhook:     "https://api.example.com/claude",
			AvatarURL:   "https://api.dicebear.com/7.x/bottts/svg?seed=claude&backgroundColor=5436da",
			Description: "Anthropic Claude model",
		},
	}
}

// Store is the conversation state container.
//
// SendMessage appends the user turn and the assistant reply under the same
// lock discipline, so concurrent sends cannot corrupt message order; callers
// are still expected to gate on the loading flag rather than send in
// parallel.
type Store struct {
	mu        sync.Mutex
	state     State
	kv        storage.KV
	responder Responder
}

// NewStore builds a conversation store, restoring any persisted snapshot and
// seeding the default models otherwise.
func NewStore(kv storage.KV, responder Responder) *Store {
	s := &Store{kv: kv, responder: responder}
	if !s.restore() {
		s.state.Models = defaultModels()
		s.state.CurrentModelID = s.state.Models[0].ID
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	state := s.state
	state.Messages = append([]Message(nil), s.state.Messages...)
	state.Models = append([]ChatModel(nil), s.state.Models...)
	state.AttachedFiles = append([]string(nil), s.state.AttachedFiles...)
	return state
}

// SendMessage appends a user message and then the assistant reply. Empty
// text with no pending attachments is a silent no-op. Pending attachments
// become the message's media URLs and are cleared. The loading flag is true
// from the user append until the reply resolves, success or failure.
func (s *Store) SendMessage(ctx context.Context, text string) {
	s.mu.Lock()
	if strings.TrimSpace(text) == "" && len(s.state.AttachedFiles) == 0 {
		s.mu.Unlock()
		return
	}

	var mediaURLs []string
	for _, path := range s.state.AttachedFiles {
		url, err := file.ToURL(path)
		if err != nil {
			log.Warn("converting attachment to url", "path", path, "error", err)
			continue
		}
		mediaURLs = append(mediaURLs, url)
	}

	userMessage := Message{
		ID:        uuid.New().String(),
		Text:      text,
		Sender:    SenderUser,
		Timestamp: time.Now(),
		MediaURLs: mediaURLs,
	}
	s.state.Messages = append(s.state.Messages, userMessage)
	s.state.AttachedFiles = nil
	s.state.Loading = true
	model, _ := CurrentModel(s.state)
	s.persistLocked()
	s.mu.Unlock()

	reply, err := s.responder.Respond(ctx, model, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	if err != nil {
		log.Warn("producing assistant reply", "model", model.Name, "error", err)
		return
	}
	s.state.Messages = append(s.state.Messages, Message{
		ID:        uuid.New().String(),
		Text:      reply,
		Sender:    SenderAssistant,
		Timestamp: time.Now(),
	})
	s.persistLocked()
}

// ClearMessages empties the message history.
func (s *Store) ClearMessages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Messages = nil
	s.persistLocked()
}

// SetCurrentModel switches the active model. Unknown ids are ignored.
func (s *Store) SetCurrentModel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, model := range s.state.Models {
		if model.ID == id {
			s.state.CurrentModelID = id
			s.persistLocked()
			return
		}
	}
}

// AddModel registers a new chat model. Empty name or webhook (after
// trimming) is a silent no-op. The avatar defaults deterministically from
// the name when omitted.
func (s *Store) AddModel(name, webhook, avatar string) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(webhook) == "" {
		return
	}

	if avatar == "" {
		avatar = fmt.Sprintf("https://api.dicebear.com/7.x/bottts/svg?seed=%s", name)
	}
	model := ChatModel{
		ID:          uuid.New().String(),
		Name:        name,
		Webhook:     webhook,
		AvatarURL:   avatar,
		Description: fmt.Sprintf("Custom model: %s", name),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Models = append(s.state.Models, model)
	s.persistLocked()
}

// DeleteModel removes a model. Deleting the last remaining model is a
// no-op. Deleting the active model moves the active pointer to the first
// remaining model.
func (s *Store) DeleteModel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.state.Models) <= 1 {
		return
	}

	remaining := make([]ChatModel, 0, len(s.state.Models))
	found := false
	for _, model := range s.state.Models {
		if model.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, model)
	}
	if !found {
		return
	}

	s.state.Models = remaining
	if s.state.CurrentModelID == id {
		s.state.CurrentModelID = remaining[0].ID
	}
	s.persistLocked()
}

// UpdateModelAvatar replaces the avatar URL of the given model.
func (s *Store) UpdateModelAvatar(id, avatar string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Models {
		if s.state.Models[i].ID == id {
			s.state.Models[i].AvatarURL = avatar
			s.persistLocked()
			return
		}
	}
}

// SetAttachedFiles replaces the pending attachment list. No validation is
// performed here; that is the caller's concern.
func (s *Store) SetAttachedFiles(paths []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.AttachedFiles = append([]string(nil), paths...)
}

// ClearAttachedFiles empties the pending attachment list.
func (s *Store) ClearAttachedFiles() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.AttachedFiles = nil
}

func (s *Store) persistLocked() {
	snapshot := persistedState{
		Messages:       s.state.Messages,
		Models:         s.state.Models,
		CurrentModelID: s.state.CurrentModelID,
	}
	bytes, err := json.Marshal(snapshot)
	if err != nil {
		log.Warn("marshaling chat snapshot", "error", err)
		return
	}
	if err := s.kv.Set(persistenceKey, string(bytes)); err != nil {
		log.Warn("persisting chat snapshot", "error", err)
	}
}

// restore loads the persisted snapshot. Returns false when there is nothing
// usable, in which case the caller seeds defaults.
func (s *Store) restore() bool {
	value, ok, err := s.kv.Get(persistenceKey)
	if err != nil {
		log.Warn("reading persisted chat", "error", err)
		return false
	}
	if !ok {
		return false
	}
	snapshot := persistedState{}
	if err := json.Unmarshal([]byte(value), &snapshot); err != nil {
		log.Warn("unmarshaling persisted chat", "error", err)
		return false
	}
	if len(snapshot.Models) == 0 {
		return false
	}
	s.state.Messages = snapshot.Messages
	s.state.Models = snapshot.Models
	s.state.CurrentModelID = snapshot.CurrentModelID
	if _, ok := CurrentModel(s.state); !ok {
		s.state.CurrentModelID = snapshot.Models[0].ID
	}
	return true
}
