package platform

import (
	"context"

	"github.com/materials-commons/rosterbot/pkg/rosterdb/model"
)

// Platform is the set of messaging operations the bot consumes. The discord
// package implements it against the Discord REST API, FakePlatform
// implements it in memory for tests.
type Platform interface {
	// SendMessage creates a new message at dest and returns a reference to it.
	SendMessage(ctx context.Context, dest Destination, msg Message) (model.MessageRef, error)

	// FetchMessage loads a previously sent message. Returns an error
	// satisfying IsNotFound when the message no longer exists.
	FetchMessage(ctx context.Context, ref model.MessageRef) (*PostedMessage, error)

	EditMessage(ctx context.Context, ref model.MessageRef, msg Message) error
	DeleteMessage(ctx context.Context, ref model.MessageRef) error

	// PresentForm shows a modal form to the user behind interaction. It
	// returns once the form is shown, the submission arrives later as a
	// FormSubmitted event.
	PresentForm(ctx context.Context, interaction *Interaction, form Form) error

	// Reply responds to an interaction that hasn't been acknowledged yet.
	Reply(ctx context.Context, interaction *Interaction, visibility model.Visibility, msg Message) error

	// Acknowledge tells the platform the interaction was received and that any
	// visible result will arrive through separate messages.
	Acknowledge(ctx context.Context, interaction *Interaction) error

	ReplyToMessage(ctx context.Context, ref model.MessageRef, content string) error
}

// Destination says where SendMessage should create a message. Ephemeral
// messages are sent as follow ups to Interaction and are only visible to
// the user that triggered it.
type Destination struct {
	ChannelID   string
	Visibility  model.Visibility
	Interaction *Interaction
}

func DestinationFor(interaction *Interaction, visibility model.Visibility) Destination {
	return Destination{
		ChannelID:   interaction.ChannelID,
		Visibility:  visibility,
		Interaction: interaction,
	}
}

// Interaction is the context of an inbound button press, form submission or
// slash command. Raw carries the platform specific value the adapter needs
// to respond (a *discordgo.Interaction for the discord adapter).
type Interaction struct {
	ID        string
	AppID     string
	Token     string
	GuildID   string
	ChannelID string
	UserID    string
	Raw       interface{}
}

func (i *Interaction) Handle() *model.InteractionHandle {
	return &model.InteractionHandle{ID: i.ID, AppID: i.AppID, Token: i.Token}
}
