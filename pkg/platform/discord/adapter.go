package discord

import (
	"context"

	"github.com/apex/log"
	"github.com/bwmarrin/discordgo"
	"github.com/materials-commons/rosterbot/pkg/clog"
	"github.com/materials-commons/rosterbot/pkg/platform"
	"github.com/materials-commons/rosterbot/pkg/rosterdb/model"
	"github.com/pkg/errors"
)

const intents = discordgo.IntentGuilds | discordgo.IntentGuildMessages | discordgo.IntentMessageContent

// Adapter implements platform.Platform and bootstrap.Directory on top of a
// discordgo session.
type Adapter struct {
	session *discordgo.Session
}

func NewAdapter(token string) (*Adapter, error) {
	if token == "" {
		return nil, errors.New("discord token is required")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, errors.Wrapf(err, "creating discord session")
	}

	session.Identify.Intents = intents

	return &Adapter{session: session}, nil
}

func (a *Adapter) Close() error {
	return a.session.Close()
}

func (a *Adapter) SendMessage(ctx context.Context, dest platform.Destination, msg platform.Message) (model.MessageRef, error) {
	ref := model.MessageRef{ChannelID: dest.ChannelID, Visibility: dest.Visibility}

	if dest.Visibility == model.VisibilityEphemeral {
		if dest.Interaction == nil {
			return ref, errors.New("ephemeral message needs an interaction")
		}

		m, err := a.session.FollowupMessageCreate(toInteraction(dest.Interaction.Handle()), true, &discordgo.WebhookParams{
			Content:    msg.Content,
			Components: toComponents(msg.Rows),
			Flags:      discordgo.MessageFlagsEphemeral,
		}, discordgo.WithContext(ctx))
		if err != nil {
			return ref, translate(err, "followup", "sending follow up for interaction %s", dest.Interaction.ID)
		}

		ref.MessageID = m.ID
		ref.Interaction = dest.Interaction.Handle()
		return ref, nil
	}

	m, err := a.session.ChannelMessageSendComplex(dest.ChannelID, &discordgo.MessageSend{
		Content:    msg.Content,
		Components: toComponents(msg.Rows),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return ref, translate(err, "send", "sending message to channel %s", dest.ChannelID)
	}

	ref.MessageID = m.ID
	return ref, nil
}

func (a *Adapter) FetchMessage(ctx context.Context, ref model.MessageRef) (*platform.PostedMessage, error) {
	var (
		m   *discordgo.Message
		err error
	)

	if h := ref.Interaction; isFollowup(ref) {
		m, err = a.session.WebhookMessage(h.AppID, h.Token, ref.MessageID, discordgo.WithContext(ctx))
	} else {
		m, err = a.session.ChannelMessage(ref.ChannelID, ref.MessageID, discordgo.WithContext(ctx))
	}

	if err != nil {
		return nil, translate(err, "fetch", "fetching message %s", ref.MessageID)
	}

	return toPostedMessage(m), nil
}

func (a *Adapter) EditMessage(ctx context.Context, ref model.MessageRef, msg platform.Message) error {
	content := msg.Content
	components := toComponents(msg.Rows)

	var err error
	if isFollowup(ref) {
		_, err = a.session.FollowupMessageEdit(toInteraction(ref.Interaction), ref.MessageID, &discordgo.WebhookEdit{
			Content:    &content,
			Components: &components,
		}, discordgo.WithContext(ctx))
	} else {
		_, err = a.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
			ID:         ref.MessageID,
			Channel:    ref.ChannelID,
			Content:    &content,
			Components: &components,
		}, discordgo.WithContext(ctx))
	}

	return translate(err, "edit", "editing message %s", ref.MessageID)
}

func (a *Adapter) DeleteMessage(ctx context.Context, ref model.MessageRef) error {
	var err error
	if isFollowup(ref) {
		err = a.session.FollowupMessageDelete(toInteraction(ref.Interaction), ref.MessageID, discordgo.WithContext(ctx))
	} else {
		err = a.session.ChannelMessageDelete(ref.ChannelID, ref.MessageID, discordgo.WithContext(ctx))
	}

	return translate(err, "delete", "deleting message %s", ref.MessageID)
}

func (a *Adapter) PresentForm(ctx context.Context, interaction *platform.Interaction, form platform.Form) error {
	err := a.respond(ctx, interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   form.CustomID,
			Title:      form.Title,
			Components: formComponents(form),
		},
	})

	return translate(err, "modal", "presenting form %s", form.CustomID)
}

func (a *Adapter) Reply(ctx context.Context, interaction *platform.Interaction, visibility model.Visibility, msg platform.Message) error {
	data := &discordgo.InteractionResponseData{
		Content:    msg.Content,
		Components: toComponents(msg.Rows),
	}
	if visibility == model.VisibilityEphemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	err := a.respond(ctx, interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})

	return translate(err, "reply", "replying to interaction %s", interaction.ID)
}

func (a *Adapter) Acknowledge(ctx context.Context, interaction *platform.Interaction) error {
	err := a.respond(ctx, interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})

	return translate(err, "ack", "acknowledging interaction %s", interaction.ID)
}

func (a *Adapter) ReplyToMessage(ctx context.Context, ref model.MessageRef, content string) error {
	_, err := a.session.ChannelMessageSendReply(ref.ChannelID, content, &discordgo.MessageReference{
		MessageID: ref.MessageID,
		ChannelID: ref.ChannelID,
	}, discordgo.WithContext(ctx))

	return translate(err, "reply", "replying to message %s", ref.MessageID)
}

func (a *Adapter) respond(ctx context.Context, interaction *platform.Interaction, resp *discordgo.InteractionResponse) error {
	di, ok := interaction.Raw.(*discordgo.Interaction)
	if !ok {
		di = toInteraction(interaction.Handle())
	}

	return a.session.InteractionRespond(di, resp, discordgo.WithContext(ctx))
}

func (a *Adapter) logger() *log.Entry {
	return clog.UsingCtx(clog.DiscordCtx)
}

func isFollowup(ref model.MessageRef) bool {
	return ref.Visibility == model.VisibilityEphemeral && ref.Interaction != nil
}

// toInteraction rebuilds enough of an interaction for the follow up
// endpoints, which only use the application id and token.
func toInteraction(h *model.InteractionHandle) *discordgo.Interaction {
	return &discordgo.Interaction{ID: h.ID, AppID: h.AppID, Token: h.Token}
}
