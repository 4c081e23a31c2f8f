package platform

import (
	"context"
	"fmt"
	"sync"

	"github.com/materials-commons/rosterbot/pkg/rosterdb/model"
)

// FakePlatform is an in memory Platform used in tests. Messages live in a map
// keyed by message id. Tests can delete messages behind the bots back and
// inject failures to exercise the recovery paths.
type FakePlatform struct {
	mu sync.Mutex

	BotID    string
	lastID   int
	messages map[string]*PostedMessage
	vis      map[string]model.Visibility
	order    []string

	// channels maps guild id -> channel name -> channel id.
	channels map[string]map[string]string

	expiredInteractions map[string]bool

	// FailSends makes the next n SendMessage calls fail.
	FailSends int
	// FailEdits makes EditMessage fail for the listed message ids.
	FailEdits map[string]bool
	// FailRecent makes RecentMessages fail.
	FailRecent bool

	Sends    []Message
	Edits    []Message
	Deletes  []string
	Forms    []Form
	Replies  []FakeReply
	Acks     []string
	Answered []string
}

type FakeReply struct {
	InteractionID string
	Visibility    model.Visibility
	Message       Message
}

func NewFakePlatform() *FakePlatform {
	return &FakePlatform{
		BotID:               "bot",
		lastID:              1000,
		messages:            make(map[string]*PostedMessage),
		vis:                 make(map[string]model.Visibility),
		channels:            make(map[string]map[string]string),
		expiredInteractions: make(map[string]bool),
		FailEdits:           make(map[string]bool),
	}
}

func (p *FakePlatform) SendMessage(_ context.Context, dest Destination, msg Message) (model.MessageRef, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.FailSends > 0 {
		p.FailSends--
		return model.MessageRef{}, &Error{Op: "send", StatusCode: 500, Message: "injected failure"}
	}

	if dest.Visibility == model.VisibilityEphemeral && dest.Interaction == nil {
		return model.MessageRef{}, fmt.Errorf("ephemeral send without an interaction")
	}

	id := p.nextID()
	p.messages[id] = &PostedMessage{
		ChannelID: dest.ChannelID,
		MessageID: id,
		AuthorID:  p.BotID,
		Content:   msg.Content,
		Rows:      copyRows(msg.Rows),
	}
	p.vis[id] = dest.Visibility
	p.order = append(p.order, id)
	p.Sends = append(p.Sends, msg)

	ref := model.MessageRef{ChannelID: dest.ChannelID, MessageID: id, Visibility: dest.Visibility}
	if dest.Interaction != nil && dest.Visibility == model.VisibilityEphemeral {
		ref.Interaction = dest.Interaction.Handle()
	}

	return ref, nil
}

func (p *FakePlatform) FetchMessage(_ context.Context, ref model.MessageRef) (*PostedMessage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, err := p.lookup(ref)
	if err != nil {
		return nil, err
	}

	c := *m
	c.Rows = copyRows(m.Rows)
	return &c, nil
}

func (p *FakePlatform) EditMessage(_ context.Context, ref model.MessageRef, msg Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, err := p.lookup(ref)
	if err != nil {
		return err
	}

	if p.FailEdits[ref.MessageID] {
		return &Error{Op: "edit", StatusCode: 403, Message: "injected failure"}
	}

	m.Content = msg.Content
	m.Rows = copyRows(msg.Rows)
	p.Edits = append(p.Edits, msg)
	return nil
}

func (p *FakePlatform) DeleteMessage(_ context.Context, ref model.MessageRef) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.lookup(ref); err != nil {
		return err
	}

	p.remove(ref.MessageID)
	p.Deletes = append(p.Deletes, ref.MessageID)
	return nil
}

func (p *FakePlatform) PresentForm(_ context.Context, interaction *Interaction, form Form) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.answer(interaction); err != nil {
		return err
	}

	p.Forms = append(p.Forms, form)
	return nil
}

func (p *FakePlatform) Reply(_ context.Context, interaction *Interaction, visibility model.Visibility, msg Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.answer(interaction); err != nil {
		return err
	}

	p.Replies = append(p.Replies, FakeReply{InteractionID: interaction.ID, Visibility: visibility, Message: msg})
	return nil
}

func (p *FakePlatform) Acknowledge(_ context.Context, interaction *Interaction) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.answer(interaction); err != nil {
		return err
	}

	p.Acks = append(p.Acks, interaction.ID)
	return nil
}

func (p *FakePlatform) ReplyToMessage(_ context.Context, ref model.MessageRef, content string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID()
	p.messages[id] = &PostedMessage{ChannelID: ref.ChannelID, MessageID: id, AuthorID: p.BotID, Content: content}
	p.vis[id] = model.VisibilityPublic
	p.order = append(p.order, id)
	p.Sends = append(p.Sends, Message{Content: content})
	return nil
}

func (p *FakePlatform) BotUserID() string {
	return p.BotID
}

func (p *FakePlatform) FindChannelByName(_ context.Context, guildID, name string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id, ok := p.channels[guildID][name]
	if !ok {
		return "", fmt.Errorf("channel %q in guild %s: %w", name, guildID, ErrNotFound)
	}

	return id, nil
}

// RecentMessages returns up to limit public messages in channelID, newest first.
func (p *FakePlatform) RecentMessages(_ context.Context, channelID string, limit int) ([]PostedMessage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.FailRecent {
		return nil, &Error{Op: "history", StatusCode: 500, Message: "injected failure"}
	}

	var msgs []PostedMessage
	for i := len(p.order) - 1; i >= 0 && len(msgs) < limit; i-- {
		m := p.messages[p.order[i]]
		if m.ChannelID != channelID || p.vis[m.MessageID] != model.VisibilityPublic {
			continue
		}
		msgs = append(msgs, *m)
	}

	return msgs, nil
}

// AddChannel makes a named channel visible to FindChannelByName.
func (p *FakePlatform) AddChannel(guildID, name, channelID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channels[guildID] == nil {
		p.channels[guildID] = make(map[string]string)
	}
	p.channels[guildID][name] = channelID
}

// PostUserMessage adds a message authored by someone other than the bot.
func (p *FakePlatform) PostUserMessage(channelID, authorID, content string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID()
	p.messages[id] = &PostedMessage{ChannelID: channelID, MessageID: id, AuthorID: authorID, Content: content}
	p.vis[id] = model.VisibilityPublic
	p.order = append(p.order, id)
	return id
}

// DeleteExternally removes a message without the bot knowing, the way a
// moderator deleting it would.
func (p *FakePlatform) DeleteExternally(messageID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.remove(messageID)
}

// ExpireInteraction invalidates the token of an interaction, follow ups made
// through it can no longer be fetched or edited.
func (p *FakePlatform) ExpireInteraction(interactionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.expiredInteractions[interactionID] = true
}

func (p *FakePlatform) Message(messageID string) (PostedMessage, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.messages[messageID]
	if !ok {
		return PostedMessage{}, false
	}
	return *m, true
}

// LiveMessages returns the number of bot authored messages that still exist.
func (p *FakePlatform) LiveMessages() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	count := 0
	for _, m := range p.messages {
		if m.AuthorID == p.BotID {
			count++
		}
	}
	return count
}

func (p *FakePlatform) lookup(ref model.MessageRef) (*PostedMessage, error) {
	if ref.Interaction != nil && p.expiredInteractions[ref.Interaction.ID] {
		return nil, &Error{Op: "webhook", StatusCode: 404, Code: 10015, Message: "Unknown Webhook", Missing: true}
	}

	m, ok := p.messages[ref.MessageID]
	if !ok {
		return nil, &Error{Op: "message", StatusCode: 404, Code: 10008, Message: "Unknown Message", Missing: true}
	}

	return m, nil
}

// answer marks interaction as responded to. The platform only accepts one
// initial response per interaction.
func (p *FakePlatform) answer(interaction *Interaction) error {
	for _, id := range p.Answered {
		if id == interaction.ID {
			return &Error{Op: "respond", StatusCode: 400, Code: 40060, Message: "Interaction has already been acknowledged."}
		}
	}

	p.Answered = append(p.Answered, interaction.ID)
	return nil
}

func (p *FakePlatform) remove(messageID string) {
	delete(p.messages, messageID)
	delete(p.vis, messageID)
	for i, id := range p.order {
		if id == messageID {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

func (p *FakePlatform) nextID() string {
	p.lastID++
	return fmt.Sprintf("%d", p.lastID)
}

func copyRows(rows []Row) []Row {
	if rows == nil {
		return nil
	}

	c := make([]Row, len(rows))
	for i, r := range rows {
		c[i].Buttons = append([]Button(nil), r.Buttons...)
	}
	return c
}
