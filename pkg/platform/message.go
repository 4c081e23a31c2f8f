package platform

type ButtonStyle int

const (
	ButtonPrimary ButtonStyle = iota + 1
	ButtonSecondary
	ButtonSuccess
	ButtonDanger
)

type Button struct {
	CustomID string
	Label    string
	Style    ButtonStyle
	Disabled bool
}

// Row is a horizontal group of buttons. Discord allows at most MaxRows rows
// per message and MaxButtonsPerRow buttons in a row.
type Row struct {
	Buttons []Button
}

const (
	MaxRows          = 5
	MaxButtonsPerRow = 5
)

type Message struct {
	Content string
	Rows    []Row
}

// PostedMessage is a message as read back from the platform.
type PostedMessage struct {
	ChannelID string
	MessageID string
	AuthorID  string
	Content   string
	Rows      []Row
}

// HasButton reports whether the first row of the message carries a button
// with customID.
func (m *PostedMessage) HasButton(customID string) bool {
	if len(m.Rows) == 0 {
		return false
	}

	for _, b := range m.Rows[0].Buttons {
		if b.CustomID == customID {
			return true
		}
	}

	return false
}

type FormField struct {
	ID       string
	Label    string
	Required bool
	Value    string
}

type Form struct {
	CustomID string
	Title    string
	Fields   []FormField
}
