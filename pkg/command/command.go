// Package command encodes the custom ids carried by buttons and forms. A
// Command is built once when a button or form is rendered and decoded once
// when the platform hands the id back, no other code parses ids.
package command

import (
	"fmt"
	"strconv"
	"strings"
)

type Kind int

const (
	Unknown Kind = iota
	CreateTeam
	EditTeam
	AddPlayer
	EditPlayer
	RemovePlayer
	ShowMyID
	TeamForm
	AddPlayerForm
	EditPlayerForm
)

// MyIDCommand is the name of the slash command that replies with the
// invokers id.
const MyIDCommand = "myid"

// Fixed ids. They match the ids used by earlier versions of the bot so
// buttons on messages that are already posted keep working.
var fixedIDs = map[Kind]string{
	CreateTeam:    "create_team",
	EditTeam:      "edit_team",
	AddPlayer:     "add_players",
	ShowMyID:      "show_my_discord_id",
	TeamForm:      "teamRegistration",
	AddPlayerForm: "addPlayerModal",
}

// Prefixes for ids that carry a player index.
var indexedPrefixes = map[Kind]string{
	EditPlayer:     "edit_player_",
	RemovePlayer:   "remove_player_",
	EditPlayerForm: "editPlayerModal_",
}

var kindNames = map[Kind]string{
	Unknown:        "unknown",
	CreateTeam:     "create-team",
	EditTeam:       "edit-team",
	AddPlayer:      "add-player",
	EditPlayer:     "edit-player",
	RemovePlayer:   "remove-player",
	ShowMyID:       "show-my-id",
	TeamForm:       "team-form",
	AddPlayerForm:  "add-player-form",
	EditPlayerForm: "edit-player-form",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// HasIndex is true for kinds that address a player by position.
func (k Kind) HasIndex() bool {
	_, ok := indexedPrefixes[k]
	return ok
}

type Command struct {
	Kind  Kind
	Index int
}

func New(kind Kind) Command {
	return Command{Kind: kind}
}

func ForPlayer(kind Kind, index int) Command {
	return Command{Kind: kind, Index: index}
}

func (c Command) String() string {
	if c.Kind.HasIndex() {
		return fmt.Sprintf("%s[%d]", c.Kind, c.Index)
	}
	return c.Kind.String()
}

// Encode returns the custom id for c.
func (c Command) Encode() string {
	if prefix, ok := indexedPrefixes[c.Kind]; ok {
		return prefix + strconv.Itoa(c.Index)
	}

	return fixedIDs[c.Kind]
}

// Decode turns a custom id back into a Command. The index of indexed
// commands is only checked to be a non-negative integer, whether it still
// refers to a player is for the caller to decide against current state.
func Decode(customID string) (Command, error) {
	for kind, id := range fixedIDs {
		if id == customID {
			return New(kind), nil
		}
	}

	for kind, prefix := range indexedPrefixes {
		if !strings.HasPrefix(customID, prefix) {
			continue
		}

		index, err := strconv.Atoi(strings.TrimPrefix(customID, prefix))
		if err != nil || index < 0 {
			return Command{}, fmt.Errorf("bad player index in custom id %q", customID)
		}

		return ForPlayer(kind, index), nil
	}

	return Command{}, fmt.Errorf("unknown custom id %q", customID)
}
