package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/materials-commons/rosterbot/pkg/platform"
)

// maxHistory is the most messages the history endpoint returns per request.
const maxHistory = 100

func (a *Adapter) BotUserID() string {
	if a.session.State == nil || a.session.State.User == nil {
		return ""
	}

	return a.session.State.User.ID
}

func (a *Adapter) FindChannelByName(ctx context.Context, guildID, name string) (string, error) {
	channels, err := a.session.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return "", translate(err, "channels", "listing channels of guild %s", guildID)
	}

	for _, ch := range channels {
		if ch.Type == discordgo.ChannelTypeGuildText && ch.Name == name {
			return ch.ID, nil
		}
	}

	return "", fmt.Errorf("channel %q in guild %s: %w", name, guildID, platform.ErrNotFound)
}

// RecentMessages returns up to limit messages from channelID, newest first.
func (a *Adapter) RecentMessages(ctx context.Context, channelID string, limit int) ([]platform.PostedMessage, error) {
	if limit > maxHistory {
		limit = maxHistory
	}

	msgs, err := a.session.ChannelMessages(channelID, limit, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, translate(err, "history", "reading history of channel %s", channelID)
	}

	posted := make([]platform.PostedMessage, 0, len(msgs))
	for _, m := range msgs {
		posted = append(posted, *toPostedMessage(m))
	}

	return posted, nil
}
