package model

// MaxPlayers is the roster cap for a single team.
const MaxPlayers = 6

type Player struct {
	PubgName        string
	PubgUID         string
	PlayerDiscordID string
}

// TeamFields holds the values submitted through the team form. Every field
// is required to be non-empty at submission time.
type TeamFields struct {
	TeamName     string
	TeamTag      string
	ContactEmail string
	DiscordID    string
}

// Team is the registration record for a single user. Teams stored in the
// roster db are never mutated in place, the stor layer always works on a
// copy (see Clone).
type Team struct {
	OwnerID      string
	TeamName     string
	TeamTag      string
	ContactEmail string
	DiscordID    string
	Players      []Player
}

func NewTeam(ownerID string, fields TeamFields) *Team {
	t := &Team{OwnerID: ownerID, Players: []Player{}}
	t.SetFields(fields)
	return t
}

func (t *Team) SetFields(fields TeamFields) {
	t.TeamName = fields.TeamName
	t.TeamTag = fields.TeamTag
	t.ContactEmail = fields.ContactEmail
	t.DiscordID = fields.DiscordID
}

func (t *Team) Fields() TeamFields {
	return TeamFields{
		TeamName:     t.TeamName,
		TeamTag:      t.TeamTag,
		ContactEmail: t.ContactEmail,
		DiscordID:    t.DiscordID,
	}
}

func (t *Team) Clone() *Team {
	c := *t
	c.Players = make([]Player, len(t.Players))
	copy(c.Players, t.Players)
	return &c
}

func (t *Team) IsFull() bool {
	return len(t.Players) >= MaxPlayers
}

func (t *Team) HasPlayer(index int) bool {
	return index >= 0 && index < len(t.Players)
}

// Player returns the player at index. The second return is false when the
// index is out of range.
func (t *Team) Player(index int) (Player, bool) {
	if !t.HasPlayer(index) {
		return Player{}, false
	}

	return t.Players[index], true
}
