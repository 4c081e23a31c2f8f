package stor

import (
	"errors"
	"testing"

	"github.com/materials-commons/rosterbot/pkg/rosterdb/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBindingStor(t *testing.T) BindingStor {
	stors, err := NewMemdbStors()
	require.NoError(t, err)
	return stors.BindingStor
}

func publicRef(channelID, messageID string) model.MessageRef {
	return model.MessageRef{ChannelID: channelID, MessageID: messageID, Visibility: model.VisibilityPublic}
}

func TestMemdbBindingStor_PutGetReplace(t *testing.T) {
	s := newTestBindingStor(t)

	_, err := s.GetBinding("user-a", model.SlotList)
	require.True(t, errors.Is(err, ErrNoBinding))

	require.NoError(t, s.PutBinding(&model.Binding{OwnerID: "user-a", Slot: model.SlotList, Ref: publicRef("c1", "m1")}))
	b, err := s.GetBinding("user-a", model.SlotList)
	require.NoError(t, err)
	assert.Equal(t, "m1", b.Ref.MessageID)

	require.NoError(t, s.PutBinding(&model.Binding{OwnerID: "user-a", Slot: model.SlotList, Ref: publicRef("c1", "m2")}))
	b, err = s.GetBinding("user-a", model.SlotList)
	require.NoError(t, err)
	assert.Equal(t, "m2", b.Ref.MessageID)

	bindings, err := s.ListBindings("user-a")
	require.NoError(t, err)
	assert.Len(t, bindings, 1, "a slot holds at most one binding")
}

func TestMemdbBindingStor_SlotsAndOwnersAreIndependent(t *testing.T) {
	s := newTestBindingStor(t)

	require.NoError(t, s.PutBinding(&model.Binding{OwnerID: "user-a", Slot: model.SlotList, Ref: publicRef("c1", "a-list")}))
	require.NoError(t, s.PutBinding(&model.Binding{OwnerID: "user-a", Slot: model.SlotStatus, Ref: publicRef("c1", "a-status")}))
	require.NoError(t, s.PutBinding(&model.Binding{OwnerID: "user-b", Slot: model.SlotList, Ref: publicRef("c1", "b-list")}))

	a, err := s.ListBindings("user-a")
	require.NoError(t, err)
	assert.Len(t, a, 2)

	require.NoError(t, s.DeleteBinding("user-a", model.SlotList))
	_, err = s.GetBinding("user-a", model.SlotList)
	assert.True(t, errors.Is(err, ErrNotFound))

	b, err := s.GetBinding("user-b", model.SlotList)
	require.NoError(t, err)
	assert.Equal(t, "b-list", b.Ref.MessageID)

	status, err := s.GetBinding("user-a", model.SlotStatus)
	require.NoError(t, err)
	assert.Equal(t, "a-status", status.Ref.MessageID)
}

func TestMemdbBindingStor_DeleteMissingIsNoop(t *testing.T) {
	s := newTestBindingStor(t)
	require.NoError(t, s.DeleteBinding("user-a", model.SlotOverflow))
}

func TestMemdbBindingStor_PutRequiresKey(t *testing.T) {
	s := newTestBindingStor(t)
	require.Error(t, s.PutBinding(&model.Binding{Slot: model.SlotList}))
	require.Error(t, s.PutBinding(&model.Binding{OwnerID: "user-a"}))
}

func TestMemdbBindingStor_PutCopiesBinding(t *testing.T) {
	s := newTestBindingStor(t)
	b := &model.Binding{OwnerID: "user-a", Slot: model.SlotList, Ref: publicRef("c1", "m1")}
	require.NoError(t, s.PutBinding(b))

	b.Ref.MessageID = "changed"
	stored, err := s.GetBinding("user-a", model.SlotList)
	require.NoError(t, err)
	assert.Equal(t, "m1", stored.Ref.MessageID)
}
