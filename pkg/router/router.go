package router

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/materials-commons/rosterbot/pkg/clog"
	"github.com/materials-commons/rosterbot/pkg/command"
	"github.com/materials-commons/rosterbot/pkg/platform"
	"github.com/materials-commons/rosterbot/pkg/render"
	"github.com/materials-commons/rosterbot/pkg/rosterdb/model"
	"github.com/materials-commons/rosterbot/pkg/rosterdb/stor"
)

// Router turns inbound platform events into roster changes. Every command
// is checked against the current store state before anything is mutated,
// and every accepted mutation is followed by a render of the user's view.
type Router struct {
	platform    platform.Platform
	rosterStor  stor.RosterStor
	syncer      *render.Syncer
	myIDChannel string
}

func NewRouter(p platform.Platform, rosterStor stor.RosterStor, syncer *render.Syncer, myIDChannel string) *Router {
	return &Router{
		platform:    p,
		rosterStor:  rosterStor,
		syncer:      syncer,
		myIDChannel: myIDChannel,
	}
}

func (r *Router) Handle(ctx context.Context, ev platform.Event) error {
	switch e := ev.(type) {
	case platform.ButtonPressed:
		return r.handleButton(ctx, e)
	case platform.FormSubmitted:
		return r.handleForm(ctx, e)
	case platform.SlashCommandInvoked:
		return r.handleSlashCommand(ctx, e)
	case platform.MessagePosted:
		return r.handleMessage(ctx, e)
	default:
		return fmt.Errorf("unsupported event %T", ev)
	}
}

func (r *Router) handleButton(ctx context.Context, e platform.ButtonPressed) error {
	cmd, err := command.Decode(e.CustomID)
	if err != nil {
		return fmt.Errorf("%w: button %q", ErrUnknownCommand, e.CustomID)
	}

	switch cmd.Kind {
	case command.CreateTeam, command.EditTeam:
		return r.openTeamForm(ctx, e.Interaction, e.UserID, cmd.Kind == command.EditTeam)
	case command.AddPlayer:
		return r.openAddPlayerForm(ctx, e.Interaction, e.UserID, cmd)
	case command.EditPlayer:
		return r.openEditPlayerForm(ctx, e.Interaction, e.UserID, cmd)
	case command.RemovePlayer:
		return r.removePlayer(ctx, e.Interaction, e.UserID, cmd)
	case command.ShowMyID:
		return r.showID(ctx, e.Interaction, e.UserID)
	default:
		return fmt.Errorf("%w: %s is not a button", ErrUnknownCommand, cmd)
	}
}

func (r *Router) handleForm(ctx context.Context, e platform.FormSubmitted) error {
	cmd, err := command.Decode(e.CustomID)
	if err != nil {
		return fmt.Errorf("%w: form %q", ErrUnknownCommand, e.CustomID)
	}

	switch cmd.Kind {
	case command.TeamForm:
		return r.saveTeam(ctx, e.Interaction, e.UserID, cmd, e.Values)
	case command.AddPlayerForm:
		return r.addPlayer(ctx, e.Interaction, e.UserID, cmd, e.Values)
	case command.EditPlayerForm:
		return r.updatePlayer(ctx, e.Interaction, e.UserID, cmd, e.Values)
	default:
		return fmt.Errorf("%w: %s is not a form", ErrUnknownCommand, cmd)
	}
}

func (r *Router) handleSlashCommand(ctx context.Context, e platform.SlashCommandInvoked) error {
	if e.Name != command.MyIDCommand {
		return fmt.Errorf("%w: /%s", ErrUnknownCommand, e.Name)
	}

	return r.showID(ctx, e.Interaction, e.UserID)
}

// handleMessage answers humans that type in the my-id channel with their id.
func (r *Router) handleMessage(ctx context.Context, e platform.MessagePosted) error {
	if e.AuthorIsBot || e.ChannelName != r.myIDChannel {
		return nil
	}

	ref := model.MessageRef{ChannelID: e.ChannelID, MessageID: e.MessageID, Visibility: model.VisibilityPublic}
	return r.platform.ReplyToMessage(ctx, ref, idMessage(e.AuthorID))
}

func (r *Router) openTeamForm(ctx context.Context, ic *platform.Interaction, userID string, editing bool) error {
	prefill := model.TeamFields{DiscordID: userID}

	team, err := r.rosterStor.GetTeam(userID)
	switch {
	case err == nil:
		prefill = team.Fields()
		if prefill.DiscordID == "" {
			prefill.DiscordID = userID
		}
	case !errors.Is(err, stor.ErrNoTeam):
		return err
	}

	return r.platform.PresentForm(ctx, ic, teamForm(editing, prefill))
}

func (r *Router) saveTeam(ctx context.Context, ic *platform.Interaction, userID string, cmd command.Command, values map[string]string) error {
	fields, ok := teamFieldsFrom(values)
	if !ok {
		return r.reject(ctx, ic, userID, cmd, MissingField)
	}

	team, created, err := r.rosterStor.UpsertTeam(userID, fields)
	if err != nil {
		return err
	}

	status := "Team updated!"
	if created {
		status = "Team created!"
	}

	r.logger(userID).WithField("team", team.TeamName).Info(status)
	return r.commit(ctx, ic, userID, team, status)
}

func (r *Router) openAddPlayerForm(ctx context.Context, ic *platform.Interaction, userID string, cmd command.Command) error {
	team, err := r.rosterStor.GetTeam(userID)
	switch {
	case errors.Is(err, stor.ErrNoTeam):
		return r.reject(ctx, ic, userID, cmd, NoTeam)
	case err != nil:
		return err
	case team.IsFull():
		return r.reject(ctx, ic, userID, cmd, RosterFull)
	}

	return r.platform.PresentForm(ctx, ic, addPlayerForm(len(team.Players)))
}

func (r *Router) addPlayer(ctx context.Context, ic *platform.Interaction, userID string, cmd command.Command, values map[string]string) error {
	player, ok := playerFrom(values)
	if !ok {
		return r.reject(ctx, ic, userID, cmd, MissingField)
	}

	team, err := r.rosterStor.AppendPlayer(userID, player)
	switch {
	case errors.Is(err, stor.ErrNoTeam):
		return r.reject(ctx, ic, userID, cmd, NoTeam)
	case errors.Is(err, stor.ErrRosterFull):
		return r.reject(ctx, ic, userID, cmd, RosterFull)
	case err != nil:
		return err
	}

	r.logger(userID).WithField("players", len(team.Players)).Info("Player added")
	return r.commit(ctx, ic, userID, team, "Player added!")
}

func (r *Router) openEditPlayerForm(ctx context.Context, ic *platform.Interaction, userID string, cmd command.Command) error {
	team, err := r.rosterStor.GetTeam(userID)
	switch {
	case errors.Is(err, stor.ErrNoTeam):
		return r.reject(ctx, ic, userID, cmd, NoPlayer)
	case err != nil:
		return err
	}

	p, ok := team.Player(cmd.Index)
	if !ok {
		return r.reject(ctx, ic, userID, cmd, NoPlayer)
	}

	return r.platform.PresentForm(ctx, ic, editPlayerForm(cmd.Index, p))
}

func (r *Router) updatePlayer(ctx context.Context, ic *platform.Interaction, userID string, cmd command.Command, values map[string]string) error {
	player, ok := playerFrom(values)
	if !ok {
		return r.reject(ctx, ic, userID, cmd, MissingField)
	}

	team, err := r.rosterStor.UpdatePlayer(userID, cmd.Index, player)
	switch {
	case errors.Is(err, stor.ErrNotFound):
		return r.reject(ctx, ic, userID, cmd, NoPlayer)
	case err != nil:
		return err
	}

	r.logger(userID).WithField("index", cmd.Index).Info("Player updated")
	return r.commit(ctx, ic, userID, team, "Player updated!")
}

func (r *Router) removePlayer(ctx context.Context, ic *platform.Interaction, userID string, cmd command.Command) error {
	team, err := r.rosterStor.RemovePlayer(userID, cmd.Index)
	switch {
	case errors.Is(err, stor.ErrNotFound):
		return r.reject(ctx, ic, userID, cmd, NoPlayer)
	case err != nil:
		return err
	}

	r.logger(userID).WithField("index", cmd.Index).Info("Player removed")
	return r.commit(ctx, ic, userID, team, "Player removed.")
}

func (r *Router) showID(ctx context.Context, ic *platform.Interaction, userID string) error {
	return r.platform.Reply(ctx, ic, model.VisibilityEphemeral, platform.Message{Content: idMessage(userID)})
}

// commit acknowledges the interaction and renders team. Render problems are
// logged here and not passed back, the mutation already happened.
func (r *Router) commit(ctx context.Context, ic *platform.Interaction, userID string, team *model.Team, status string) error {
	l := r.logger(userID)

	if err := r.platform.Acknowledge(ctx, ic); err != nil {
		l.Warnf("Unable to acknowledge interaction %s: %s", ic.ID, err)
	}

	dest := platform.DestinationFor(ic, r.syncer.Mode().Visibility)
	if err := r.syncer.Sync(ctx, userID, dest, team, status); err != nil {
		l.Errorf("Roster view not fully updated: %s", err)
	}

	return nil
}

// reject tells the user why cmd was refused and returns the matching
// PreconditionError.
func (r *Router) reject(ctx context.Context, ic *platform.Interaction, userID string, cmd command.Command, kind PreconditionKind) error {
	perr := &PreconditionError{Kind: kind, Command: cmd, UserID: userID}

	msg := platform.Message{Content: kind.UserMessage()}
	if err := r.platform.Reply(ctx, ic, model.VisibilityEphemeral, msg); err != nil {
		r.logger(userID).Warnf("Unable to send %q to user: %s", kind, err)
	}

	return perr
}

func (r *Router) logger(userID string) *log.Entry {
	return clog.UsingCtx(clog.RouterCtx).WithField("user", userID)
}

func idMessage(userID string) string {
	return fmt.Sprintf("Your Discord ID is: %s", userID)
}
