package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/materials-commons/rosterbot/pkg/render"
	"github.com/materials-commons/rosterbot/pkg/rosterdb/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBotConfigDefaults(t *testing.T) {
	cfg, err := LoadBotConfig(NewMapConfig(map[string]string{DiscordTokenKey: "secret"}))
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, render.DefaultMode, cfg.Mode)
	assert.Equal(t, "register", cfg.RegisterChannel)
	assert.Equal(t, "my-discord-id", cfg.MyIDChannel)
	assert.Equal(t, 20, cfg.BootstrapScanLimit)
	assert.Equal(t, 64, cfg.DispatchQueueSize)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadBotConfigModes(t *testing.T) {
	cfg, err := LoadBotConfig(NewMapConfig(map[string]string{
		DiscordTokenKey:     "secret",
		RosterVisibilityKey: "ephemeral",
		RosterPaginationKey: "overflow",
	}))
	require.NoError(t, err)
	assert.Equal(t, model.VisibilityEphemeral, cfg.Mode.Visibility)
	assert.Equal(t, render.PaginationOverflow, cfg.Mode.Pagination)
}

func TestLoadBotConfigErrors(t *testing.T) {
	var tests = []struct {
		name   string
		values map[string]string
	}{
		{name: "missing token", values: map[string]string{}},
		{name: "bad visibility", values: map[string]string{DiscordTokenKey: "s", RosterVisibilityKey: "secret"}},
		{name: "bad pagination", values: map[string]string{DiscordTokenKey: "s", RosterPaginationKey: "pages"}},
		{name: "scan limit not an int", values: map[string]string{DiscordTokenKey: "s", BootstrapScanLimitKey: "many"}},
		{name: "scan limit too large", values: map[string]string{DiscordTokenKey: "s", BootstrapScanLimitKey: "500"}},
		{name: "scan limit zero", values: map[string]string{DiscordTokenKey: "s", BootstrapScanLimitKey: "0"}},
		{name: "negative queue", values: map[string]string{DiscordTokenKey: "s", DispatchQueueSizeKey: "-1"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := LoadBotConfig(NewMapConfig(test.values))
			require.Error(t, err)
		})
	}
}

func TestDotenvConfigLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ROSTERBOT_TEST_CHANNEL=signups\n"), 0600))
	t.Cleanup(func() { _ = os.Unsetenv("ROSTERBOT_TEST_CHANNEL") })

	c := NewDotenvConfig(path)
	require.NoError(t, c.Load())
	assert.Equal(t, "signups", c.GetKey("ROSTERBOT_TEST_CHANNEL"))
	assert.Equal(t, "fallback", c.GetKeyWithDefault("ROSTERBOT_TEST_UNSET", "fallback"))

	limit, err := c.GetIntKeyWithDefault("ROSTERBOT_TEST_UNSET", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, limit)
}

func TestDotenvConfigNoPath(t *testing.T) {
	require.NoError(t, NewDotenvConfig("").Load())
	require.Error(t, NewDotenvConfig(filepath.Join(t.TempDir(), "missing.env")).Load())
}
