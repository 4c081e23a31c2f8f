package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	var tests = []struct {
		customID string
		expected Command
	}{
		{customID: "create_team", expected: New(CreateTeam)},
		{customID: "edit_team", expected: New(EditTeam)},
		{customID: "add_players", expected: New(AddPlayer)},
		{customID: "show_my_discord_id", expected: New(ShowMyID)},
		{customID: "teamRegistration", expected: New(TeamForm)},
		{customID: "addPlayerModal", expected: New(AddPlayerForm)},
		{customID: "edit_player_0", expected: ForPlayer(EditPlayer, 0)},
		{customID: "remove_player_5", expected: ForPlayer(RemovePlayer, 5)},
		{customID: "editPlayerModal_3", expected: ForPlayer(EditPlayerForm, 3)},
	}

	for _, test := range tests {
		t.Run(test.customID, func(t *testing.T) {
			cmd, err := Decode(test.customID)
			require.NoError(t, err)
			require.Equal(t, test.expected, cmd)
			require.Equal(t, test.customID, cmd.Encode())
		})
	}
}

func TestDecodeRejectsBadIDs(t *testing.T) {
	var tests = []string{
		"",
		"create",
		"edit_player_",
		"edit_player_x",
		"remove_player_-1",
		"editPlayerModal_1.5",
	}

	for _, customID := range tests {
		t.Run(customID, func(t *testing.T) {
			_, err := Decode(customID)
			require.Error(t, err)
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "remove-player[2]", ForPlayer(RemovePlayer, 2).String())
	assert.Equal(t, "create-team", New(CreateTeam).String())
	assert.True(t, EditPlayerForm.HasIndex())
	assert.False(t, AddPlayerForm.HasIndex())
}
