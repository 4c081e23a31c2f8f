package router

import (
	"fmt"
	"strings"

	"github.com/materials-commons/rosterbot/pkg/command"
	"github.com/materials-commons/rosterbot/pkg/platform"
	"github.com/materials-commons/rosterbot/pkg/rosterdb/model"
)

// Form field ids. These are what the platform hands back as submitted values.
const (
	FieldTeamName        = "teamName"
	FieldTeamTag         = "teamTag"
	FieldContactEmail    = "contactEmail"
	FieldDiscordID       = "discordId"
	FieldPubgName        = "pubgName"
	FieldPubgUID         = "pubgUid"
	FieldPlayerDiscordID = "playerDiscordId"
)

func teamForm(editing bool, prefill model.TeamFields) platform.Form {
	title := "Team Registration"
	if editing {
		title = "Edit Team"
	}

	return platform.Form{
		CustomID: command.New(command.TeamForm).Encode(),
		Title:    title,
		Fields: []platform.FormField{
			{ID: FieldTeamName, Label: "Team Name", Required: true, Value: prefill.TeamName},
			{ID: FieldTeamTag, Label: "Team Tag", Required: true, Value: prefill.TeamTag},
			{ID: FieldContactEmail, Label: "Contact Email", Required: true, Value: prefill.ContactEmail},
			{ID: FieldDiscordID, Label: "Your Discord ID", Required: true, Value: prefill.DiscordID},
		},
	}
}

func playerForm(cmd command.Command, title string, prefill model.Player) platform.Form {
	return platform.Form{
		CustomID: cmd.Encode(),
		Title:    title,
		Fields: []platform.FormField{
			{ID: FieldPubgName, Label: "PUBG Name", Required: true, Value: prefill.PubgName},
			{ID: FieldPubgUID, Label: "PUBG UID", Required: true, Value: prefill.PubgUID},
			{ID: FieldPlayerDiscordID, Label: "Discord ID", Required: true, Value: prefill.PlayerDiscordID},
		},
	}
}

func addPlayerForm(playerCount int) platform.Form {
	return playerForm(command.New(command.AddPlayerForm), fmt.Sprintf("Add Player %d", playerCount+1), model.Player{})
}

func editPlayerForm(index int, p model.Player) platform.Form {
	return playerForm(command.ForPlayer(command.EditPlayerForm, index), fmt.Sprintf("Edit Player %d", index+1), p)
}

// teamFieldsFrom pulls the team form values out of a submission. ok is false
// when any of them is blank.
func teamFieldsFrom(values map[string]string) (fields model.TeamFields, ok bool) {
	fields = model.TeamFields{
		TeamName:     strings.TrimSpace(values[FieldTeamName]),
		TeamTag:      strings.TrimSpace(values[FieldTeamTag]),
		ContactEmail: strings.TrimSpace(values[FieldContactEmail]),
		DiscordID:    strings.TrimSpace(values[FieldDiscordID]),
	}

	ok = fields.TeamName != "" && fields.TeamTag != "" && fields.ContactEmail != "" && fields.DiscordID != ""
	return fields, ok
}

func playerFrom(values map[string]string) (p model.Player, ok bool) {
	p = model.Player{
		PubgName:        strings.TrimSpace(values[FieldPubgName]),
		PubgUID:         strings.TrimSpace(values[FieldPubgUID]),
		PlayerDiscordID: strings.TrimSpace(values[FieldPlayerDiscordID]),
	}

	ok = p.PubgName != "" && p.PubgUID != "" && p.PlayerDiscordID != ""
	return p, ok
}
