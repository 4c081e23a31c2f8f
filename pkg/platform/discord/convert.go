package discord

import (
	"github.com/bwmarrin/discordgo"
	"github.com/materials-commons/rosterbot/pkg/platform"
)

var buttonStyles = map[platform.ButtonStyle]discordgo.ButtonStyle{
	platform.ButtonPrimary:   discordgo.PrimaryButton,
	platform.ButtonSecondary: discordgo.SecondaryButton,
	platform.ButtonSuccess:   discordgo.SuccessButton,
	platform.ButtonDanger:    discordgo.DangerButton,
}

func toComponents(rows []platform.Row) []discordgo.MessageComponent {
	components := make([]discordgo.MessageComponent, 0, len(rows))
	for _, row := range rows {
		buttons := make([]discordgo.MessageComponent, 0, len(row.Buttons))
		for _, b := range row.Buttons {
			style, ok := buttonStyles[b.Style]
			if !ok {
				style = discordgo.SecondaryButton
			}

			buttons = append(buttons, discordgo.Button{
				CustomID: b.CustomID,
				Label:    b.Label,
				Style:    style,
				Disabled: b.Disabled,
			})
		}
		components = append(components, discordgo.ActionsRow{Components: buttons})
	}

	return components
}

// fromComponents reads buttons back out of a message. Components decoded
// from the API are pointers, components we built ourselves are values.
func fromComponents(components []discordgo.MessageComponent) []platform.Row {
	var rows []platform.Row
	for _, c := range components {
		var inner []discordgo.MessageComponent
		switch r := c.(type) {
		case *discordgo.ActionsRow:
			inner = r.Components
		case discordgo.ActionsRow:
			inner = r.Components
		default:
			continue
		}

		var row platform.Row
		for _, ic := range inner {
			switch b := ic.(type) {
			case *discordgo.Button:
				row.Buttons = append(row.Buttons, fromButton(*b))
			case discordgo.Button:
				row.Buttons = append(row.Buttons, fromButton(b))
			}
		}
		rows = append(rows, row)
	}

	return rows
}

func fromButton(b discordgo.Button) platform.Button {
	pb := platform.Button{CustomID: b.CustomID, Label: b.Label, Disabled: b.Disabled, Style: platform.ButtonSecondary}
	for ps, ds := range buttonStyles {
		if ds == b.Style {
			pb.Style = ps
		}
	}

	return pb
}

func toPostedMessage(m *discordgo.Message) *platform.PostedMessage {
	pm := &platform.PostedMessage{
		ChannelID: m.ChannelID,
		MessageID: m.ID,
		Content:   m.Content,
		Rows:      fromComponents(m.Components),
	}

	if m.Author != nil {
		pm.AuthorID = m.Author.ID
	}

	return pm
}

// formComponents lays a form out as one short text input per row.
func formComponents(form platform.Form) []discordgo.MessageComponent {
	components := make([]discordgo.MessageComponent, 0, len(form.Fields))
	for _, f := range form.Fields {
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID: f.ID,
					Label:    f.Label,
					Style:    discordgo.TextInputShort,
					Required: f.Required,
					Value:    f.Value,
				},
			},
		})
	}

	return components
}

// modalValues collects the submitted text inputs keyed by their custom id.
func modalValues(components []discordgo.MessageComponent) map[string]string {
	values := make(map[string]string)
	for _, c := range components {
		var inner []discordgo.MessageComponent
		switch r := c.(type) {
		case *discordgo.ActionsRow:
			inner = r.Components
		case discordgo.ActionsRow:
			inner = r.Components
		}

		for _, ic := range inner {
			switch t := ic.(type) {
			case *discordgo.TextInput:
				values[t.CustomID] = t.Value
			case discordgo.TextInput:
				values[t.CustomID] = t.Value
			}
		}
	}

	return values
}
