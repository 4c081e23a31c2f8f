package bootstrap

import (
	"github.com/materials-commons/rosterbot/pkg/command"
	"github.com/materials-commons/rosterbot/pkg/platform"
)

// EntryPoint is a message with a single start button that the bot keeps
// present in a named channel of every guild it joins.
type EntryPoint struct {
	ChannelName string
	Content     string
	Button      platform.Button
}

func (ep EntryPoint) Message() platform.Message {
	return platform.Message{
		Content: ep.Content,
		Rows:    []platform.Row{{Buttons: []platform.Button{ep.Button}}},
	}
}

func RegisterEntryPoint(channelName string) EntryPoint {
	return EntryPoint{
		ChannelName: channelName,
		Content:     "Click the button below to register a new team:",
		Button: platform.Button{
			CustomID: command.New(command.CreateTeam).Encode(),
			Label:    "Create Team",
			Style:    platform.ButtonPrimary,
		},
	}
}

func MyIDEntryPoint(channelName string) EntryPoint {
	return EntryPoint{
		ChannelName: channelName,
		Content:     "Click the button below to see your Discord ID:",
		Button: platform.Button{
			CustomID: command.New(command.ShowMyID).Encode(),
			Label:    "My Discord ID",
			Style:    platform.ButtonPrimary,
		},
	}
}

// SlashCommand describes an application command registered at startup.
type SlashCommand struct {
	Name        string
	Description string
}

func SlashCommands() []SlashCommand {
	return []SlashCommand{
		{Name: command.MyIDCommand, Description: "Display your Discord user ID"},
	}
}
