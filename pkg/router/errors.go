package router

import (
	"errors"
	"fmt"

	"github.com/materials-commons/rosterbot/pkg/command"
)

var ErrUnknownCommand = errors.New("unknown command")

type PreconditionKind int

const (
	NoTeam PreconditionKind = iota + 1
	RosterFull
	NoPlayer
	MissingField
)

// Messages shown to the user when a precondition fails.
var preconditionMessages = map[PreconditionKind]string{
	NoTeam:       "You need to create a team first!",
	RosterFull:   "You already have 6 players in your team.",
	NoPlayer:     "Player not found.",
	MissingField: "All fields are required.",
}

var preconditionNames = map[PreconditionKind]string{
	NoTeam:       "no team",
	RosterFull:   "roster full",
	NoPlayer:     "no such player",
	MissingField: "missing field",
}

func (k PreconditionKind) String() string {
	return preconditionNames[k]
}

func (k PreconditionKind) UserMessage() string {
	return preconditionMessages[k]
}

// PreconditionError is returned when a command was refused before touching
// any state. The user has already been told why.
type PreconditionError struct {
	Kind    PreconditionKind
	Command command.Command
	UserID  string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s refused for %s: %s", e.Command, e.UserID, e.Kind)
}

func IsPrecondition(err error, kind PreconditionKind) bool {
	var perr *PreconditionError
	if errors.As(err, &perr) {
		return perr.Kind == kind
	}
	return false
}
