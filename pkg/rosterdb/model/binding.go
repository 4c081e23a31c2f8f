package model

// Slot names the logical role of a rendered message for a user.
type Slot string

const (
	SlotList     Slot = "list"
	SlotStatus   Slot = "status"
	SlotOverflow Slot = "overflow"
)

var AllSlots = []Slot{SlotList, SlotOverflow, SlotStatus}

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityEphemeral Visibility = "ephemeral"
)

// InteractionHandle identifies the interaction an ephemeral message was
// created through. Follow-up messages can only be fetched or edited with the
// token of the interaction that created them.
type InteractionHandle struct {
	ID    string
	AppID string
	Token string
}

// MessageRef is a weak reference to a message on the platform. It never
// owns the message, the message may disappear at any time.
type MessageRef struct {
	ChannelID   string
	MessageID   string
	Visibility  Visibility
	Interaction *InteractionHandle
}

func (r MessageRef) IsZero() bool {
	return r.MessageID == ""
}

// Binding records which message currently renders a slot of a user's state.
type Binding struct {
	OwnerID string
	Slot    Slot
	Ref     MessageRef
}
