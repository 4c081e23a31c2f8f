package config

import (
	"fmt"

	"github.com/materials-commons/rosterbot/pkg/render"
)

const (
	DiscordTokenKey       = "DISCORD_TOKEN"
	RosterVisibilityKey   = "ROSTER_VISIBILITY"
	RosterPaginationKey   = "ROSTER_PAGINATION"
	RegisterChannelKey    = "REGISTER_CHANNEL"
	MyIDChannelKey        = "MY_ID_CHANNEL"
	BootstrapScanLimitKey = "BOOTSTRAP_SCAN_LIMIT"
	DispatchQueueSizeKey  = "DISPATCH_QUEUE_SIZE"
	LogLevelKey           = "LOG_LEVEL"
	DotenvPathKey         = "ROSTERBOT_DOTENV_PATH"
)

// maxScanLimit is the most messages a single history request can return.
const maxScanLimit = 100

type BotConfig struct {
	Token              string
	Mode               render.Mode
	RegisterChannel    string
	MyIDChannel        string
	BootstrapScanLimit int
	DispatchQueueSize  int
	LogLevel           string
}

func LoadBotConfig(c Configer) (*BotConfig, error) {
	var err error

	cfg := &BotConfig{
		Token:           c.GetKey(DiscordTokenKey),
		RegisterChannel: c.GetKeyWithDefault(RegisterChannelKey, "register"),
		MyIDChannel:     c.GetKeyWithDefault(MyIDChannelKey, "my-discord-id"),
		LogLevel:        c.GetKeyWithDefault(LogLevelKey, "info"),
	}

	if cfg.Token == "" {
		return nil, fmt.Errorf("%s not set or blank", DiscordTokenKey)
	}

	cfg.Mode, err = render.ParseMode(c.GetKey(RosterVisibilityKey), c.GetKey(RosterPaginationKey))
	if err != nil {
		return nil, err
	}

	if cfg.BootstrapScanLimit, err = c.GetIntKeyWithDefault(BootstrapScanLimitKey, 20); err != nil {
		return nil, err
	}

	if cfg.BootstrapScanLimit < 1 || cfg.BootstrapScanLimit > maxScanLimit {
		return nil, fmt.Errorf("%s must be between 1 and %d, got %d", BootstrapScanLimitKey, maxScanLimit, cfg.BootstrapScanLimit)
	}

	if cfg.DispatchQueueSize, err = c.GetIntKeyWithDefault(DispatchQueueSizeKey, 64); err != nil {
		return nil, err
	}

	if cfg.DispatchQueueSize < 0 {
		return nil, fmt.Errorf("%s can't be negative", DispatchQueueSizeKey)
	}

	return cfg, nil
}
