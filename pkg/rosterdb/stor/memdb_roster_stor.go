package stor

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-memdb"
	"github.com/materials-commons/rosterbot/pkg/rosterdb/model"
)

// MemdbRosterStor keeps teams in a memdb table keyed by owner. Objects in
// memdb must not be modified after insert, so every mutation clones the
// stored team, changes the clone and inserts it back in one write txn.
type MemdbRosterStor struct {
	db *memdb.MemDB
}

func NewMemdbRosterStor(db *memdb.MemDB) *MemdbRosterStor {
	return &MemdbRosterStor{db: db}
}

func (s *MemdbRosterStor) GetTeam(ownerID string) (*model.Team, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	team, err := s.findTeam(txn, ownerID)
	if err != nil {
		return nil, err
	}

	return team.Clone(), nil
}

func (s *MemdbRosterStor) UpsertTeam(ownerID string, fields model.TeamFields) (*model.Team, bool, error) {
	created := false

	team, err := s.withTeamUpdate(ownerID, true, func(t *model.Team) error {
		if t.OwnerID == "" {
			created = true
			t.OwnerID = ownerID
		}
		t.SetFields(fields)
		return nil
	})

	if err != nil {
		return nil, false, err
	}

	return team, created, nil
}

func (s *MemdbRosterStor) AppendPlayer(ownerID string, player model.Player) (*model.Team, error) {
	return s.withTeamUpdate(ownerID, false, func(t *model.Team) error {
		if t.IsFull() {
			return ErrRosterFull
		}

		t.Players = append(t.Players, player)
		return nil
	})
}

func (s *MemdbRosterStor) UpdatePlayer(ownerID string, index int, player model.Player) (*model.Team, error) {
	return s.withTeamUpdate(ownerID, false, func(t *model.Team) error {
		if !t.HasPlayer(index) {
			return fmt.Errorf("player index %d: %w", index, ErrNoPlayer)
		}

		t.Players[index] = player
		return nil
	})
}

func (s *MemdbRosterStor) RemovePlayer(ownerID string, index int) (*model.Team, error) {
	return s.withTeamUpdate(ownerID, false, func(t *model.Team) error {
		if !t.HasPlayer(index) {
			return fmt.Errorf("player index %d: %w", index, ErrNoPlayer)
		}

		t.Players = append(t.Players[:index], t.Players[index+1:]...)
		return nil
	})
}

func (s *MemdbRosterStor) CountTeams() (int, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(TeamTable, PK)
	if err != nil {
		return 0, err
	}

	count := 0
	for obj := it.Next(); obj != nil; obj = it.Next() {
		count++
	}

	return count, nil
}

// withTeamUpdate runs fn against a copy of the owners team and stores the
// result. When fn returns an error nothing is written. When create is true
// and the owner has no team, fn receives a blank team instead of failing
// with ErrNoTeam.
func (s *MemdbRosterStor) withTeamUpdate(ownerID string, create bool, fn func(t *model.Team) error) (*model.Team, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}

	txn := s.db.Txn(true)
	defer txn.Abort()

	var team *model.Team
	existing, err := s.findTeam(txn, ownerID)
	switch {
	case err == nil:
		team = existing.Clone()
	case create && errors.Is(err, ErrNoTeam):
		team = &model.Team{Players: []model.Player{}}
	default:
		return nil, err
	}

	if err := fn(team); err != nil {
		return nil, err
	}

	if err := txn.Insert(TeamTable, team); err != nil {
		return nil, fmt.Errorf("saving team for %s: %w", ownerID, err)
	}

	txn.Commit()

	return team.Clone(), nil
}

func (s *MemdbRosterStor) findTeam(txn *memdb.Txn, ownerID string) (*model.Team, error) {
	raw, err := txn.First(TeamTable, PK, ownerID)
	if err != nil {
		return nil, fmt.Errorf("looking up team for %s: %w", ownerID, err)
	}

	if raw == nil {
		return nil, ErrNoTeam
	}

	return raw.(*model.Team), nil
}
