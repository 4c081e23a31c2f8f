package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/materials-commons/rosterbot/pkg/bootstrap"
	"github.com/materials-commons/rosterbot/pkg/platform"
	"github.com/pkg/errors"
)

// Sink receives translated inbound events.
type Sink interface {
	Submit(ctx context.Context, ev platform.Event) error
}

// GuildAvailableFunc is called each time the gateway reports a guild, on
// startup and when the bot joins a new one.
type GuildAvailableFunc func(ctx context.Context, guildID string)

// Start installs the gateway handlers and opens the session. Handlers only
// translate events and hand them to sink.
func (a *Adapter) Start(ctx context.Context, sink Sink, onGuild GuildAvailableFunc, commands []bootstrap.SlashCommand) error {
	a.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		a.logger().Infof("Connected as %s#%s", r.User.Username, r.User.Discriminator)
		a.registerCommands(ctx, r, commands)
	})

	a.session.AddHandler(func(s *discordgo.Session, g *discordgo.GuildCreate) {
		if onGuild != nil {
			onGuild(ctx, g.ID)
		}
	})

	a.session.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		ev := translateInteraction(ic.Interaction)
		if ev == nil {
			return
		}
		a.submit(ctx, sink, ev)
	})

	a.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil {
			return
		}
		a.submit(ctx, sink, platform.MessagePosted{
			ChannelID:   m.ChannelID,
			ChannelName: a.channelName(m.ChannelID),
			MessageID:   m.ID,
			AuthorID:    m.Author.ID,
			AuthorIsBot: m.Author.Bot || m.Author.ID == a.BotUserID(),
		})
	})

	if err := a.session.Open(); err != nil {
		return errors.Wrapf(err, "opening discord gateway")
	}

	return nil
}

func (a *Adapter) submit(ctx context.Context, sink Sink, ev platform.Event) {
	if err := sink.Submit(ctx, ev); err != nil {
		a.logger().Warnf("Dropping %T: %s", ev, err)
	}
}

func (a *Adapter) registerCommands(ctx context.Context, r *discordgo.Ready, commands []bootstrap.SlashCommand) {
	appID := r.User.ID
	if r.Application != nil && r.Application.ID != "" {
		appID = r.Application.ID
	}

	for _, cmd := range commands {
		_, err := a.session.ApplicationCommandCreate(appID, "", &discordgo.ApplicationCommand{
			Name:        cmd.Name,
			Description: cmd.Description,
		}, discordgo.WithContext(ctx))
		if err != nil {
			a.logger().Errorf("Unable to register /%s: %s", cmd.Name, err)
			continue
		}
		a.logger().Debugf("Registered /%s", cmd.Name)
	}
}

func (a *Adapter) channelName(channelID string) string {
	if ch, err := a.session.State.Channel(channelID); err == nil {
		return ch.Name
	}

	ch, err := a.session.Channel(channelID)
	if err != nil {
		a.logger().Debugf("Unable to look up channel %s: %s", channelID, err)
		return ""
	}

	return ch.Name
}

// translateInteraction maps an interaction to a platform event. It returns
// nil for interaction types the bot has no use for.
func translateInteraction(i *discordgo.Interaction) platform.Event {
	pi := &platform.Interaction{
		ID:        i.ID,
		AppID:     i.AppID,
		Token:     i.Token,
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
		UserID:    interactionUserID(i),
		Raw:       i,
	}

	switch i.Type {
	case discordgo.InteractionMessageComponent:
		return platform.ButtonPressed{
			CustomID:    i.MessageComponentData().CustomID,
			UserID:      pi.UserID,
			Interaction: pi,
		}
	case discordgo.InteractionModalSubmit:
		data := i.ModalSubmitData()
		return platform.FormSubmitted{
			CustomID:    data.CustomID,
			UserID:      pi.UserID,
			Values:      modalValues(data.Components),
			Interaction: pi,
		}
	case discordgo.InteractionApplicationCommand:
		return platform.SlashCommandInvoked{
			Name:        i.ApplicationCommandData().Name,
			UserID:      pi.UserID,
			Interaction: pi,
		}
	default:
		return nil
	}
}

func interactionUserID(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}

	if i.User != nil {
		return i.User.ID
	}

	return ""
}
