package chat

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentdesk/internal/storage"
)

// scriptedResponder returns a fixed reply or error and records the turn it
// was asked to answer.
type scriptedResponder struct {
	reply string
	err   error

	gotModel ChatModel
	gotText  string
}

func (r *scriptedResponder) Respond(_ context.Context, model ChatModel, text string) (string, error) {
	r.gotModel = model
	r.gotText = text
	return r.reply, r.err
}

func newTestStore(t *testing.T, responder Responder) *Store {
	t.Helper()
	if responder == nil {
		responder = &scriptedResponder{reply: "ok"}
	}
	return NewStore(storage.NewMemory(), responder)
}

func TestSendMessageAppendsUserThenAssistant(t *testing.T) {
	responder := &scriptedResponder{reply: "hello to you"}
	store := newTestStore(t, responder)

	store.SendMessage(context.Background(), "hello")

	state := store.Snapshot()
	require.Len(t, state.Messages, 2)
	assert.Equal(t, SenderUser, state.Messages[0].Sender)
	assert.Equal(t, "hello", state.Messages[0].Text)
	assert.Equal(t, SenderAssistant, state.Messages[1].Sender)
	assert.Equal(t, "hello to you", state.Messages[1].Text)
	assert.False(t, state.Loading)

	// The responder saw the active model.
	current, ok := CurrentModel(state)
	require.True(t, ok)
	assert.Equal(t, current.ID, responder.gotModel.ID)
}

func TestSendMessageEmptyTextIsNoop(t *testing.T) {
	store := newTestStore(t, nil)

	store.SendMessage(context.Background(), "   \n\t")

	state := store.Snapshot()
	assert.Empty(t, state.Messages)
	assert.False(t, state.Loading)
}

func TestSendMessageEmptyTextWithAttachmentsSends(t *testing.T) {
	store := newTestStore(t, nil)
	store.SetAttachedFiles([]string{"testdata/cat.png"})

	store.SendMessage(context.Background(), "")

	state := store.Snapshot()
	require.Len(t, state.Messages, 2)
	require.Len(t, state.Messages[0].MediaURLs, 1)
	assert.Contains(t, state.Messages[0].MediaURLs[0], "file://")
	assert.Contains(t, state.Messages[0].MediaURLs[0], "testdata/cat.png")
	// Pending attachments are consumed by the send.
	assert.Empty(t, state.AttachedFiles)
}

func TestSendMessageResponderFailureClearsLoading(t *testing.T) {
	store := newTestStore(t, &scriptedResponder{err: errors.New("webhook down")})

	store.SendMessage(context.Background(), "hello")

	state := store.Snapshot()
	// Only the user message made it in.
	require.Len(t, state.Messages, 1)
	assert.Equal(t, SenderUser, state.Messages[0].Sender)
	assert.False(t, state.Loading)
}

func TestSetCurrentModelUnknownIDIgnored(t *testing.T) {
	store := newTestStore(t, nil)
	before := store.Snapshot().CurrentModelID

	store.SetCurrentModel("no-such-model")

	assert.Equal(t, before, store.Snapshot().CurrentModelID)
}

func TestSetCurrentModelSwitches(t *testing.T) {
	store := newTestStore(t, nil)
	state := store.Snapshot()
	require.Len(t, state.Models, 2)

	store.SetCurrentModel(state.Models[1].ID)

	assert.Equal(t, state.Models[1].ID, store.Snapshot().CurrentModelID)
}

func TestAddModelValidation(t *testing.T) {
	store := newTestStore(t, nil)
	before := len(store.Snapshot().Models)

	store.AddModel("  ", "https://example.com/hook", "")
	store.AddModel("Llama", "   ", "")

	assert.Len(t, store.Snapshot().Models, before)
}

func TestAddModelDefaultsAvatarAndDescription(t *testing.T) {
	store := newTestStore(t, nil)

	store.AddModel("Llama", "https://example.com/hook", "")

	state := store.Snapshot()
	added := state.Models[len(state.Models)-1]
	assert.Equal(t, "Llama", added.Name)
	assert.Equal(t, "https://api.dicebear.com/7.x/bottts/svg?seed=Llama", added.AvatarURL)
	assert.Equal(t, "Custom model: Llama", added.Description)
	assert.NotEmpty(t, added.ID)
}

func TestDeleteLastModelIsNoop(t *testing.T) {
	store := newTestStore(t, nil)
	state := store.Snapshot()
	store.DeleteModel(state.Models[0].ID)

	// Down to one model; further deletes are no-ops.
	state = store.Snapshot()
	require.Len(t, state.Models, 1)
	store.DeleteModel(state.Models[0].ID)

	after := store.Snapshot()
	assert.Len(t, after.Models, 1)
	assert.Equal(t, state.CurrentModelID, after.CurrentModelID)
}

func TestDeleteActiveModelFallsBackToFirst(t *testing.T) {
	store := newTestStore(t, nil)
	store.AddModel("Llama", "https://example.com/hook", "")
	state := store.Snapshot()
	require.Len(t, state.Models, 3)

	store.DeleteModel(state.CurrentModelID)

	after := store.Snapshot()
	assert.Len(t, after.Models, 2)
	assert.Equal(t, after.Models[0].ID, after.CurrentModelID)
}

func TestDeleteInactiveModelKeepsActivePointer(t *testing.T) {
	store := newTestStore(t, nil)
	state := store.Snapshot()

	store.DeleteModel(state.Models[1].ID)

	after := store.Snapshot()
	assert.Equal(t, state.CurrentModelID, after.CurrentModelID)
}

func TestUpdateModelAvatar(t *testing.T) {
	store := newTestStore(t, nil)
	state := store.Snapshot()

	store.UpdateModelAvatar(state.Models[1].ID, "https://example.com/new.png")

	after := store.Snapshot()
	assert.Equal(t, "https://example.com/new.png", after.Models[1].AvatarURL)
	// Other models are untouched.
	assert.Equal(t, state.Models[0].AvatarURL, after.Models[0].AvatarURL)
}

func TestClearMessages(t *testing.T) {
	store := newTestStore(t, nil)
	store.SendMessage(context.Background(), "hello")
	require.NotEmpty(t, store.Snapshot().Messages)

	store.ClearMessages()

	assert.Empty(t, store.Snapshot().Messages)
}

func TestPersistenceRoundTrip(t *testing.T) {
	kv := storage.NewMemory()
	store := NewStore(kv, &scriptedResponder{reply: "ok"})
	store.SendMessage(context.Background(), "hello")
	store.AddModel("Llama", "https://example.com/hook", "")
	want := store.Snapshot()

	// A second store over the same KV restores messages, models and the
	// active pointer; transient fields start fresh.
	restored := NewStore(kv, &scriptedResponder{reply: "ok"})
	state := restored.Snapshot()

	require.Len(t, state.Messages, 2)
	assert.Equal(t, want.Messages[0].ID, state.Messages[0].ID)
	assert.Len(t, state.Models, 3)
	assert.Equal(t, want.CurrentModelID, state.CurrentModelID)
	assert.False(t, state.Loading)
	assert.Empty(t, state.AttachedFiles)
}

func TestRestoreFixesDanglingCurrentModel(t *testing.T) {
	kv := storage.NewMemory()
	require.NoError(t, kv.Set("chat", `{
		"messages": [],
		"models": [{"id": "m-1", "name": "Solo", "webhook": "https://example.com"}],
		"current_model_id": "m-gone"
	}`))

	store := NewStore(kv, &scriptedResponder{})

	assert.Equal(t, "m-1", store.Snapshot().CurrentModelID)
}
