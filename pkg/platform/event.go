package platform

// Event is an inbound platform event routed to the bot.
type Event interface {
	isEvent()
}

type ButtonPressed struct {
	CustomID    string
	UserID      string
	Interaction *Interaction
}

type FormSubmitted struct {
	CustomID    string
	UserID      string
	Values      map[string]string
	Interaction *Interaction
}

type SlashCommandInvoked struct {
	Name        string
	UserID      string
	Interaction *Interaction
}

// MessagePosted is a plain chat message seen in a channel the bot can read.
type MessagePosted struct {
	ChannelID   string
	ChannelName string
	MessageID   string
	AuthorID    string
	AuthorIsBot bool
}

func (ButtonPressed) isEvent()       {}
func (FormSubmitted) isEvent()       {}
func (SlashCommandInvoked) isEvent() {}
func (MessagePosted) isEvent()       {}
