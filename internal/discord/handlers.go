package discord

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/prinketaru/scriptura/internal/bible"
	"github.com/prinketaru/scriptura/internal/present"
	"github.com/prinketaru/scriptura/internal/resolver"
	"github.com/prinketaru/scriptura/internal/store"
)

func (b *Bot) handleVerse(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.handleLookup(ctx, s, i, "")
}

func (b *Bot) handleSearch(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.handleLookup(ctx, s, i, "")
}

func (b *Bot) handleVotd(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	ref := b.votd.For(time.Now())
	b.handleLookup(ctx, s, i, ref)
}

// handleLookup runs the full pipeline for one query. When fixedQuery is set
// (verse of the day) it replaces the query option.
func (b *Bot) handleLookup(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, fixedQuery string) {
	var query, explicit string
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "query":
			query = opt.StringValue()
		case "translation":
			explicit = opt.StringValue()
		}
	}
	if fixedQuery != "" {
		query = fixedQuery
	}
	user := interactionUser(i)

	if err := b.deferResponse(s, i); err != nil {
		b.log.Error("defer response", "err", err)
		return
	}

	t, err := b.translationFor(ctx, user.ID, explicit)
	if err != nil {
		if errors.Is(err, bible.ErrUnsupportedTranslation) {
			b.replaceWithEphemeral(s, i, errorEmbed(query, bible.Default(), "That translation is not supported."))
			return
		}
		b.log.Error("resolve translation", "user", user.ID, "err", err)
		b.replaceWithEphemeral(s, i, errorEmbed(query, bible.Default(), ""))
		return
	}

	prefs, err := b.store.DisplayPrefs(ctx, user.ID)
	if err != nil {
		b.log.Error("load display prefs", "user", user.ID, "err", err)
		prefs = store.DefaultDisplayPrefs()
	}

	backend := b.backendFor(t)
	opts := resolverOptions(prefs, 0, present.PageSize)
	res := resolver.Resolve(ctx, backend, query, opts)

	switch res.Kind {
	case bible.KindPassage:
		title := ""
		if fixedQuery != "" {
			title = "Verse of the day — " + res.Passage.Reference
		}
		embed := passageEmbed(title, res.Passage, t)
		if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Embeds: &[]*discordgo.MessageEmbed{embed},
		}); err != nil {
			b.log.Error("edit response", "err", err)
		}
	case bible.KindSearch:
		b.showSearch(ctx, s, i, user.ID, t, backend, opts, res.Search)
	case bible.KindEmpty:
		b.replaceWithEphemeral(s, i, emptyEmbed(query, t))
	case bible.KindFailure:
		b.log.Error("lookup failed",
			"query", query,
			"translation", t.Code,
			"status", res.Failure.Status,
			"err", res.Failure.Message,
		)
		b.replaceWithEphemeral(s, i, errorEmbed(query, t, ""))
	}
}

func (b *Bot) handleVersion(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}
	user := interactionUser(i)
	sub := data.Options[0]

	switch sub.Name {
	case "show":
		code, err := b.store.Translation(ctx, user.ID)
		if err != nil {
			b.log.Error("load translation", "user", user.ID, "err", err)
			b.respondEphemeral(s, i, errorEmbed("", bible.Default(), "Could not load your settings."))
			return
		}
		prefs, err := b.store.DisplayPrefs(ctx, user.ID)
		if err != nil {
			prefs = store.DefaultDisplayPrefs()
		}
		b.respondEphemeral(s, i, prefsEmbed(code, prefs))
	case "set":
		code := sub.Options[0].StringValue()
		if !bible.IsValid(code) {
			b.respondEphemeral(s, i, errorEmbed(code, bible.Default(), "That translation is not supported."))
			return
		}
		if err := b.store.SetTranslation(ctx, user.ID, code); err != nil {
			b.log.Error("set translation", "user", user.ID, "err", err)
			b.respondEphemeral(s, i, errorEmbed(code, bible.Default(), "Could not save your preference."))
			return
		}
		b.respondEphemeralText(s, i, "Preferred translation set to **"+code+"**.")
	}
}

func (b *Bot) handleFormatting(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}
	user := interactionUser(i)
	sub := data.Options[0]

	switch sub.Name {
	case "show":
		code, _ := b.store.Translation(ctx, user.ID)
		prefs, err := b.store.DisplayPrefs(ctx, user.ID)
		if err != nil {
			b.log.Error("load display prefs", "user", user.ID, "err", err)
			b.respondEphemeral(s, i, errorEmbed("", bible.Default(), "Could not load your settings."))
			return
		}
		b.respondEphemeral(s, i, prefsEmbed(code, prefs))
	case "set":
		var upd store.DisplayPrefsUpdate
		for _, opt := range sub.Options {
			switch opt.Name {
			case "footnotes":
				v := opt.BoolValue()
				upd.Footnotes = &v
			case "headings":
				v := bible.TriState(opt.StringValue())
				upd.Headings = &v
			case "verse-numbers":
				v := opt.BoolValue()
				upd.VerseNumbers = &v
			case "line-by-line":
				v := bible.TriState(opt.StringValue())
				upd.LineByLine = &v
			}
		}
		if err := b.store.SetDisplayPrefs(ctx, user.ID, upd); err != nil {
			b.log.Error("set display prefs", "user", user.ID, "err", err)
			b.respondEphemeral(s, i, errorEmbed("", bible.Default(), "Could not save your preferences."))
			return
		}
		prefs, _ := b.store.DisplayPrefs(ctx, user.ID)
		b.respondEphemeral(s, i, prefsEmbed("", prefs))
	case "reset":
		if err := b.store.ResetDisplayPrefs(ctx, user.ID); err != nil {
			b.log.Error("reset display prefs", "user", user.ID, "err", err)
			b.respondEphemeral(s, i, errorEmbed("", bible.Default(), "Could not reset your preferences."))
			return
		}
		b.respondEphemeralText(s, i, "Display preferences reset to defaults. Your translation preference is unchanged.")
	}
}

func (b *Bot) handleHelp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.respondEphemeral(s, i, helpEmbed())
}

func (b *Bot) deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

func (b *Bot) respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.log.Error("ephemeral respond", "err", err)
	}
}

func (b *Bot) respondEphemeralText(s *discordgo.Session, i *discordgo.InteractionCreate, text string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: text,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.log.Error("ephemeral respond", "err", err)
	}
}

// replaceWithEphemeral retracts a deferred public response and delivers the
// notice privately to the requester instead.
func (b *Bot) replaceWithEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if err := s.InteractionResponseDelete(i.Interaction); err != nil {
		b.log.Warn("delete deferred response", "err", err)
	}
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
		Flags:  discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		b.log.Error("ephemeral followup", "err", err)
	}
}
