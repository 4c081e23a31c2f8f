package discord

import (
	"context"
	"testing"

	"github.com/materials-commons/rosterbot/pkg/platform"
	"github.com/materials-commons/rosterbot/pkg/rosterdb/model"
	"github.com/materials-commons/rosterbot/pkg/tutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapterMessageLifecycle(t *testing.T) {
	env := tutil.RequireEnv(t, "DISCORD_TOKEN", "ROSTERBOT_TEST_GUILD", "ROSTERBOT_TEST_CHANNEL")
	ctx := context.Background()

	a, err := NewAdapter(env[0])
	require.NoError(t, err)

	channelID, err := a.FindChannelByName(ctx, env[1], env[2])
	require.NoError(t, err)

	msg := platform.Message{
		Content: "integration test",
		Rows:    []platform.Row{{Buttons: []platform.Button{{CustomID: "edit_team", Label: "Edit Team", Style: platform.ButtonPrimary}}}},
	}
	ref, err := a.SendMessage(ctx, platform.Destination{ChannelID: channelID, Visibility: model.VisibilityPublic}, msg)
	require.NoError(t, err)

	posted, err := a.FetchMessage(ctx, ref)
	require.NoError(t, err)
	assert.True(t, posted.HasButton("edit_team"))

	msg.Content = "integration test, edited"
	require.NoError(t, a.EditMessage(ctx, ref, msg))
	require.NoError(t, a.DeleteMessage(ctx, ref))

	_, err = a.FetchMessage(ctx, ref)
	assert.True(t, platform.IsNotFound(err))
}
