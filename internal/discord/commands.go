package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/prinketaru/scriptura/internal/bible"
)

func translationChoices() []*discordgo.ApplicationCommandOptionChoice {
	all := bible.All()
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(all))
	for _, t := range all {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("%s — %s", t.Code, t.Name),
			Value: t.Code,
		})
	}
	return choices
}

func triStateChoices() []*discordgo.ApplicationCommandOptionChoice {
	return []*discordgo.ApplicationCommandOptionChoice{
		{Name: "auto", Value: string(bible.TriAuto)},
		{Name: "on", Value: string(bible.TriOn)},
		{Name: "off", Value: string(bible.TriOff)},
	}
}

func commandDefinitions() []*discordgo.ApplicationCommand {
	translationOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "translation",
		Description: "Translation to use for this request",
		Choices:     translationChoices(),
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        "verse",
			Description: "Look up a passage by reference, or search when it isn't one",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "query",
					Description: "Reference (John 3:16, Romans 8:1-11) or phrase",
					Required:    true,
				},
				translationOpt,
			},
		},
		{
			Name:        "search",
			Description: "Search scripture for a phrase",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "query",
					Description: "Phrase to search for",
					Required:    true,
				},
				translationOpt,
			},
		},
		{
			Name:        "votd",
			Description: "Verse of the day",
		},
		{
			Name:        "version",
			Description: "Show or change your preferred translation",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "show",
					Description: "Show your current translation",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Set your preferred translation",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "translation",
							Description: "Translation code",
							Required:    true,
							Choices:     translationChoices(),
						},
					},
				},
			},
		},
		{
			Name:        "formatting",
			Description: "Show or change how passages are displayed",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "show",
					Description: "Show your display preferences",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Change display preferences",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "footnotes",
							Description: "Include footnotes",
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "headings",
							Description: "Section headings",
							Choices:     triStateChoices(),
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "verse-numbers",
							Description: "Show verse numbers",
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "line-by-line",
							Description: "One verse per line",
							Choices:     triStateChoices(),
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "reset",
					Description: "Reset display preferences to defaults",
				},
			},
		},
		{
			Name:        "help",
			Description: "How to use the bot",
		},
	}
}

func (b *Bot) registerCommands() error {
	appID := b.session.State.User.ID
	cmds, err := b.session.ApplicationCommandBulkOverwrite(appID, b.guildID, commandDefinitions())
	if err != nil {
		return fmt.Errorf("discord: register commands: %w", err)
	}
	b.log.Info("registered commands", "count", len(cmds), "guild", b.guildID)
	return nil
}
