package render

import (
	"context"
	"errors"
	"testing"

	"github.com/materials-commons/rosterbot/pkg/platform"
	"github.com/materials-commons/rosterbot/pkg/rosterdb/model"
	"github.com/materials-commons/rosterbot/pkg/rosterdb/stor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncerFixture struct {
	platform *platform.FakePlatform
	bindings stor.BindingStor
	syncer   *Syncer
	dest     platform.Destination
}

func newSyncerFixture(t *testing.T, mode Mode) *syncerFixture {
	stors, err := stor.NewMemdbStors()
	require.NoError(t, err)

	p := platform.NewFakePlatform()
	ic := &platform.Interaction{ID: "ic-1", AppID: "app", Token: "token", ChannelID: "chan-1", UserID: "user-a"}

	return &syncerFixture{
		platform: p,
		bindings: stors.BindingStor,
		syncer:   NewSyncer(p, stors.BindingStor, mode),
		dest:     platform.DestinationFor(ic, model.VisibilityPublic),
	}
}

func (f *syncerFixture) bound(t *testing.T, slot model.Slot) *model.Binding {
	b, err := f.bindings.GetBinding("user-a", slot)
	require.NoError(t, err)
	return b
}

func TestSyncCreatesThenEdits(t *testing.T) {
	f := newSyncerFixture(t, DefaultMode)
	ctx := context.Background()

	require.NoError(t, f.syncer.Sync(ctx, "user-a", f.dest, teamWith(0), "Team created!"))
	assert.Len(t, f.platform.Sends, 2, "list and status are sent")
	assert.Equal(t, 2, f.platform.LiveMessages())

	list := f.bound(t, model.SlotList)
	status := f.bound(t, model.SlotStatus)
	assert.Equal(t, "chan-1", list.Ref.ChannelID)

	require.NoError(t, f.syncer.Sync(ctx, "user-a", f.dest, teamWith(1), "Player added!"))
	assert.Len(t, f.platform.Sends, 2, "second render edits in place")
	assert.Len(t, f.platform.Edits, 2)
	assert.Equal(t, list.Ref, f.bound(t, model.SlotList).Ref)
	assert.Equal(t, status.Ref, f.bound(t, model.SlotStatus).Ref)

	m, ok := f.platform.Message(status.Ref.MessageID)
	require.True(t, ok)
	assert.Equal(t, "Player added!", m.Content)
}

func TestSyncRecreatesExternallyDeletedMessage(t *testing.T) {
	f := newSyncerFixture(t, DefaultMode)
	ctx := context.Background()

	require.NoError(t, f.syncer.Sync(ctx, "user-a", f.dest, teamWith(1), "Player added!"))
	oldList := f.bound(t, model.SlotList)

	f.platform.DeleteExternally(oldList.Ref.MessageID)

	require.NoError(t, f.syncer.Sync(ctx, "user-a", f.dest, teamWith(2), "Player added!"))
	assert.Len(t, f.platform.Sends, 3, "exactly one replacement message")
	assert.Equal(t, 2, f.platform.LiveMessages())

	newList := f.bound(t, model.SlotList)
	assert.NotEqual(t, oldList.Ref.MessageID, newList.Ref.MessageID)

	require.NoError(t, f.syncer.Sync(ctx, "user-a", f.dest, teamWith(3), "Player added!"))
	assert.Len(t, f.platform.Sends, 3, "the replacement is edited on the next render")
	assert.Equal(t, newList.Ref, f.bound(t, model.SlotList).Ref)
}

func TestSyncRecreatesOnEditFailure(t *testing.T) {
	f := newSyncerFixture(t, DefaultMode)
	ctx := context.Background()

	require.NoError(t, f.syncer.Sync(ctx, "user-a", f.dest, teamWith(0), "Team created!"))
	status := f.bound(t, model.SlotStatus)
	f.platform.FailEdits[status.Ref.MessageID] = true

	require.NoError(t, f.syncer.Sync(ctx, "user-a", f.dest, teamWith(0), "Team updated!"))
	assert.NotEqual(t, status.Ref.MessageID, f.bound(t, model.SlotStatus).Ref.MessageID)
}

func TestSyncSendFailureLeavesSlotUnbound(t *testing.T) {
	f := newSyncerFixture(t, DefaultMode)
	ctx := context.Background()

	f.platform.FailSends = 1
	err := f.syncer.Sync(ctx, "user-a", f.dest, teamWith(0), "Team created!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list slot")

	_, err = f.bindings.GetBinding("user-a", model.SlotList)
	assert.True(t, errors.Is(err, stor.ErrNoBinding))
	f.bound(t, model.SlotStatus)

	require.NoError(t, f.syncer.Sync(ctx, "user-a", f.dest, teamWith(0), "Team updated!"))
	f.bound(t, model.SlotList)
}

func TestSyncOverflowSlot(t *testing.T) {
	f := newSyncerFixture(t, Mode{Visibility: model.VisibilityPublic, Pagination: PaginationOverflow})
	ctx := context.Background()

	require.NoError(t, f.syncer.Sync(ctx, "user-a", f.dest, teamWith(6), "Player added!"))
	overflow := f.bound(t, model.SlotOverflow)
	m, ok := f.platform.Message(overflow.Ref.MessageID)
	require.True(t, ok)
	assert.Contains(t, m.Content, "**Player 6:**")
	assert.Equal(t, 3, f.platform.LiveMessages())

	require.NoError(t, f.syncer.Sync(ctx, "user-a", f.dest, teamWith(5), "Player removed."))
	_, err := f.bindings.GetBinding("user-a", model.SlotOverflow)
	assert.True(t, errors.Is(err, stor.ErrNoBinding))
	assert.Equal(t, []string{overflow.Ref.MessageID}, f.platform.Deletes)
	assert.Equal(t, 2, f.platform.LiveMessages())
}

func TestSyncOverflowAlreadyDeleted(t *testing.T) {
	f := newSyncerFixture(t, Mode{Visibility: model.VisibilityPublic, Pagination: PaginationOverflow})
	ctx := context.Background()

	require.NoError(t, f.syncer.Sync(ctx, "user-a", f.dest, teamWith(6), ""))
	f.platform.DeleteExternally(f.bound(t, model.SlotOverflow).Ref.MessageID)

	require.NoError(t, f.syncer.Sync(ctx, "user-a", f.dest, teamWith(5), ""))
	_, err := f.bindings.GetBinding("user-a", model.SlotOverflow)
	assert.True(t, errors.Is(err, stor.ErrNoBinding))
}

func TestSyncEphemeral(t *testing.T) {
	f := newSyncerFixture(t, Mode{Visibility: model.VisibilityEphemeral, Pagination: PaginationSingle})
	ctx := context.Background()

	require.NoError(t, f.syncer.Sync(ctx, "user-a", f.dest, teamWith(0), "Team created!"))
	list := f.bound(t, model.SlotList)
	assert.Equal(t, model.VisibilityEphemeral, list.Ref.Visibility)
	require.NotNil(t, list.Ref.Interaction)
	assert.Equal(t, "ic-1", list.Ref.Interaction.ID)

	// Follow ups die with their interaction token, the next render from a
	// new interaction replaces them.
	f.platform.ExpireInteraction("ic-1")
	next := &platform.Interaction{ID: "ic-2", AppID: "app", Token: "token-2", ChannelID: "chan-1", UserID: "user-a"}

	require.NoError(t, f.syncer.Sync(ctx, "user-a", platform.DestinationFor(next, model.VisibilityEphemeral), teamWith(1), "Player added!"))
	assert.Equal(t, "ic-2", f.bound(t, model.SlotList).Ref.Interaction.ID)
	assert.Len(t, f.platform.Sends, 4)
}

func TestSyncUsersAreIndependent(t *testing.T) {
	f := newSyncerFixture(t, DefaultMode)
	ctx := context.Background()

	require.NoError(t, f.syncer.Sync(ctx, "user-a", f.dest, teamWith(1), ""))
	require.NoError(t, f.syncer.Sync(ctx, "user-b", f.dest, teamWith(2), ""))

	a := f.bound(t, model.SlotList)
	b, err := f.bindings.GetBinding("user-b", model.SlotList)
	require.NoError(t, err)
	assert.NotEqual(t, a.Ref.MessageID, b.Ref.MessageID)
	assert.Equal(t, 4, f.platform.LiveMessages())
}
