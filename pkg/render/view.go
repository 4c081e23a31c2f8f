package render

import (
	"fmt"
	"strings"

	"github.com/materials-commons/rosterbot/pkg/command"
	"github.com/materials-commons/rosterbot/pkg/platform"
	"github.com/materials-commons/rosterbot/pkg/rosterdb/model"
)

// View is the desired content of every slot for one team. Overflow is nil
// when there is nothing to put on an overflow message.
type View struct {
	List     platform.Message
	Overflow *platform.Message
	Status   platform.Message
}

// Slot returns the message for slot and whether the slot should exist.
func (v View) Slot(slot model.Slot) (platform.Message, bool) {
	switch slot {
	case model.SlotList:
		return v.List, true
	case model.SlotOverflow:
		if v.Overflow == nil {
			return platform.Message{}, false
		}
		return *v.Overflow, true
	case model.SlotStatus:
		return v.Status, true
	default:
		return platform.Message{}, false
	}
}

// RenderTeam builds the View for team. The output only depends on its
// arguments, rendering the same team twice gives identical messages.
func RenderTeam(team *model.Team, mode Mode, status string) View {
	listed := team.Players
	var overflow []model.Player
	if mode.Pagination == PaginationOverflow && len(team.Players) > OverflowAfter {
		listed = team.Players[:OverflowAfter]
		overflow = team.Players[OverflowAfter:]
	}

	v := View{
		List:   renderList(team, listed, mode),
		Status: renderStatus(team, status),
	}

	if len(overflow) != 0 {
		o := renderOverflow(overflow, OverflowAfter)
		v.Overflow = &o
	}

	return v
}

func renderList(team *model.Team, players []model.Player, mode Mode) platform.Message {
	var b strings.Builder

	if team.TeamName != "" && team.TeamTag != "" {
		fmt.Fprintf(&b, "**%s (%s)**\n", team.TeamName, team.TeamTag)
	}

	b.WriteString("**Your Team Players:**\n")
	if len(team.Players) == 0 {
		b.WriteString("No players added yet.")
	}

	for i, p := range players {
		b.WriteString(playerLine(i, p))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nTotal players: %d/%d", len(team.Players), model.MaxPlayers)

	pairsPerRow := 1
	if mode.Pagination == PaginationSingle {
		// Two edit/remove pairs per row keeps six players inside the row limit.
		pairsPerRow = 2
	}

	return platform.Message{Content: b.String(), Rows: playerRows(0, len(players), pairsPerRow)}
}

func renderOverflow(players []model.Player, offset int) platform.Message {
	lines := make([]string, 0, len(players))
	for i, p := range players {
		lines = append(lines, playerLine(offset+i, p))
	}

	return platform.Message{
		Content: strings.Join(lines, "\n"),
		Rows:    playerRows(offset, len(players), 1),
	}
}

func renderStatus(team *model.Team, status string) platform.Message {
	return platform.Message{
		Content: status,
		Rows: []platform.Row{
			{
				Buttons: []platform.Button{
					{
						CustomID: command.New(command.EditTeam).Encode(),
						Label:    "Edit Team",
						Style:    platform.ButtonPrimary,
					},
					{
						CustomID: command.New(command.AddPlayer).Encode(),
						Label:    "Add Players",
						Style:    platform.ButtonSecondary,
						Disabled: team.IsFull(),
					},
				},
			},
		},
	}
}

func playerLine(index int, p model.Player) string {
	return fmt.Sprintf("**Player %d:** PUBG Name: %s, PUBG UID: %s, Discord ID: %s",
		index+1, p.PubgName, p.PubgUID, p.PlayerDiscordID)
}

func playerRows(offset, count, pairsPerRow int) []platform.Row {
	var rows []platform.Row

	for i := 0; i < count; i++ {
		if i%pairsPerRow == 0 {
			rows = append(rows, platform.Row{})
		}

		index := offset + i
		row := &rows[len(rows)-1]
		row.Buttons = append(row.Buttons,
			platform.Button{
				CustomID: command.ForPlayer(command.EditPlayer, index).Encode(),
				Label:    fmt.Sprintf("Edit Player %d", index+1),
				Style:    platform.ButtonPrimary,
			},
			platform.Button{
				CustomID: command.ForPlayer(command.RemovePlayer, index).Encode(),
				Label:    fmt.Sprintf("Remove Player %d", index+1),
				Style:    platform.ButtonDanger,
			})
	}

	return rows
}
