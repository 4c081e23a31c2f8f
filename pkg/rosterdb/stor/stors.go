package stor

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-memdb"
	"github.com/materials-commons/rosterbot/pkg/rosterdb/model"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrNoTeam     = fmt.Errorf("no team registered: %w", ErrNotFound)
	ErrNoPlayer   = fmt.Errorf("no such player: %w", ErrNotFound)
	ErrNoBinding  = fmt.Errorf("no message binding: %w", ErrNotFound)
	ErrRosterFull = fmt.Errorf("roster already has %d players", model.MaxPlayers)
)

type RosterStor interface {
	GetTeam(ownerID string) (*model.Team, error)
	UpsertTeam(ownerID string, fields model.TeamFields) (team *model.Team, created bool, err error)
	AppendPlayer(ownerID string, player model.Player) (*model.Team, error)
	UpdatePlayer(ownerID string, index int, player model.Player) (*model.Team, error)
	RemovePlayer(ownerID string, index int) (*model.Team, error)
	CountTeams() (int, error)
}

type BindingStor interface {
	GetBinding(ownerID string, slot model.Slot) (*model.Binding, error)
	PutBinding(binding *model.Binding) error
	DeleteBinding(ownerID string, slot model.Slot) error
	ListBindings(ownerID string) ([]model.Binding, error)
}

// Stors is the process lifetime state of the bot. Both stors share a single
// memdb so a snapshot is consistent across them.
type Stors struct {
	RosterStor  RosterStor
	BindingStor BindingStor
}

func NewMemdbStors() (*Stors, error) {
	db, err := memdb.NewMemDB(Schema())
	if err != nil {
		return nil, fmt.Errorf("creating roster db: %w", err)
	}

	return &Stors{
		RosterStor:  NewMemdbRosterStor(db),
		BindingStor: NewMemdbBindingStor(db),
	}, nil
}

func MustNewMemdbStors() *Stors {
	stors, err := NewMemdbStors()
	if err != nil {
		panic(err)
	}

	return stors
}
