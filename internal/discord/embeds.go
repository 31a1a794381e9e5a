package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/prinketaru/scriptura/internal/bible"
	"github.com/prinketaru/scriptura/internal/present"
	"github.com/prinketaru/scriptura/internal/store"
)

const (
	colorAccent = 0x5865F2
	colorError  = 0xED4245

	// Discord caps embed descriptions at 4096 characters; leave headroom
	// for the ellipsis.
	descriptionLimit = 4000
)

func passageEmbed(title string, p bible.Passage, t bible.Translation) *discordgo.MessageEmbed {
	if title == "" {
		title = p.Reference
	}
	footer := t.Code
	if p.Copyright != "" {
		footer = p.Copyright + " • " + t.Code
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: truncateRunes(p.Text, descriptionLimit),
		Color:       colorAccent,
		Footer:      &discordgo.MessageEmbedFooter{Text: footer},
	}
}

func searchEmbed(set bible.SearchSet, page, totalPages int, t bible.Translation) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(set.Entries))
	for _, f := range present.Fields(set) {
		fields = append(fields, &discordgo.MessageEmbedField{Name: f.Label, Value: f.Body})
	}

	var footer string
	switch {
	case set.TotalKnown && totalPages > 0:
		footer = fmt.Sprintf("Showing %s of %d • %s",
			present.RangeLabel(page, present.PageSize, set.Total), set.Total, t.Code)
	default:
		footer = fmt.Sprintf("Page %d • %s", page+1, t.Code)
	}

	return &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("Search results for %q", set.Query),
		Color:  colorAccent,
		Fields: fields,
		Footer: &discordgo.MessageEmbedFooter{Text: footer},
	}
}

func emptyEmbed(query string, t bible.Translation) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Nothing found",
		Description: fmt.Sprintf("No passage or verse matched %q.", query),
		Color:       colorError,
		Footer:      &discordgo.MessageEmbedFooter{Text: contextFooter(query, t)},
	}
}

// errorEmbed is the user-visible failure notice. It carries the query and
// translation for diagnosis but never credentials or raw backend payloads.
func errorEmbed(query string, t bible.Translation, message string) *discordgo.MessageEmbed {
	if message == "" {
		message = "Something went wrong talking to the scripture backend. Try again in a moment."
	}
	return &discordgo.MessageEmbed{
		Title:       "Lookup failed",
		Description: message,
		Color:       colorError,
		Footer:      &discordgo.MessageEmbedFooter{Text: contextFooter(query, t)},
	}
}

func prefsEmbed(translation string, prefs store.DisplayPrefs) *discordgo.MessageEmbed {
	if translation == "" {
		translation = bible.DefaultCode + " (default)"
	}
	return &discordgo.MessageEmbed{
		Title: "Your settings",
		Color: colorAccent,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Translation", Value: translation, Inline: true},
			{Name: "Footnotes", Value: onOff(prefs.Footnotes), Inline: true},
			{Name: "Headings", Value: string(prefs.Headings), Inline: true},
			{Name: "Verse numbers", Value: onOff(prefs.VerseNumbers), Inline: true},
			{Name: "Line-by-line", Value: string(prefs.LineByLine), Inline: true},
		},
	}
}

func helpEmbed() *discordgo.MessageEmbed {
	var sb strings.Builder
	sb.WriteString("`/verse query` — look up a passage (`John 3:16`, `Romans 8:1-11`) or search a phrase\n")
	sb.WriteString("`/search query` — search scripture for a phrase\n")
	sb.WriteString("`/votd` — verse of the day\n")
	sb.WriteString("`/version show|set` — your preferred translation\n")
	sb.WriteString("`/formatting show|set|reset` — footnotes, headings, verse numbers, line-by-line\n")
	sb.WriteString("\nPass `translation` on any lookup to override your preference once.")
	return &discordgo.MessageEmbed{
		Title:       "Scriptura",
		Description: sb.String(),
		Color:       colorAccent,
	}
}

func contextFooter(query string, t bible.Translation) string {
	return fmt.Sprintf("query: %s • translation: %s", query, t.Code)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
