// Package discord is the interactive messaging front end: slash commands,
// embeds, and pager buttons over a discordgo session.
package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/prinketaru/scriptura/internal/apibible"
	"github.com/prinketaru/scriptura/internal/bible"
	"github.com/prinketaru/scriptura/internal/esv"
	"github.com/prinketaru/scriptura/internal/ratelimit"
	"github.com/prinketaru/scriptura/internal/resolver"
	"github.com/prinketaru/scriptura/internal/store"
	"github.com/prinketaru/scriptura/internal/votd"
)

// Config wires the bot's collaborators.
type Config struct {
	Token    string
	GuildID  string // empty registers commands globally
	Store    store.Store
	ESV      *esv.Client
	APIBible *apibible.Client
	Votd     votd.List
	Limiter  ratelimit.Limiter // nil disables command throttling
	Logger   *slog.Logger
}

// Bot owns the Discord session and routes interactions into the resolution
// pipeline.
type Bot struct {
	session  *discordgo.Session
	store    store.Store
	esv      *esv.Client
	apiBible *apibible.Client
	votd     votd.List
	limiter  ratelimit.Limiter
	guildID  string
	log      *slog.Logger

	mu     sync.Mutex
	pagers map[string]*pagerSession
}

// New constructs the bot without opening the gateway connection.
func New(cfg Config) (*Bot, error) {
	if cfg.Token == "" {
		return nil, errors.New("discord: bot token is required")
	}
	if cfg.Store == nil {
		return nil, errors.New("discord: preference store is required")
	}
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("discord: create session: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	b := &Bot{
		session:  session,
		store:    cfg.Store,
		esv:      cfg.ESV,
		apiBible: cfg.APIBible,
		votd:     cfg.Votd,
		limiter:  cfg.Limiter,
		guildID:  cfg.GuildID,
		log:      logger,
		pagers:   make(map[string]*pagerSession),
	}
	session.Identify.Intents = discordgo.IntentsGuilds
	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)
	return b, nil
}

// Run opens the session, registers commands, and blocks until the context
// is canceled.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("discord: open session: %w", err)
	}
	defer b.session.Close()

	if err := b.registerCommands(); err != nil {
		return err
	}

	go b.reapPagers(ctx)

	<-ctx.Done()
	b.log.Info("shutting down discord session")
	return nil
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	b.log.Info("discord session ready", "user", r.User.Username, "guilds", len(r.Guilds))
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.routeCommand(ctx, s, i)
	case discordgo.InteractionMessageComponent:
		b.handleComponent(ctx, s, i)
	}
}

func (b *Bot) routeCommand(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if b.limiter != nil {
		user := interactionUser(i)
		userID := ""
		if user != nil {
			userID = user.ID
		}
		if !b.limiter.Allow(userID) {
			b.log.Warn("command throttled", "user", userID)
			b.respondEphemeralText(s, i, "You're sending commands too quickly. Try again in a moment.")
			return
		}
	}

	data := i.ApplicationCommandData()
	switch data.Name {
	case "verse":
		b.handleVerse(ctx, s, i)
	case "search":
		b.handleSearch(ctx, s, i)
	case "votd":
		b.handleVotd(ctx, s, i)
	case "version":
		b.handleVersion(ctx, s, i)
	case "formatting":
		b.handleFormatting(ctx, s, i)
	case "help":
		b.handleHelp(s, i)
	default:
		b.log.Warn("unknown command", "name", data.Name)
	}
}

// interactionUser returns the invoking user for both guild and DM
// interactions.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// translationFor resolves the effective translation: an explicit request
// wins, then the stored preference, then the default. Unknown codes are
// rejected before any backend call.
func (b *Bot) translationFor(ctx context.Context, userID, explicit string) (bible.Translation, error) {
	if explicit != "" {
		t, ok := bible.Lookup(explicit)
		if !ok {
			return bible.Translation{}, fmt.Errorf("%w: %s", bible.ErrUnsupportedTranslation, explicit)
		}
		return t, nil
	}
	stored, err := b.store.Translation(ctx, userID)
	if err != nil {
		return bible.Translation{}, fmt.Errorf("load translation preference: %w", err)
	}
	if stored != "" {
		if t, ok := bible.Lookup(stored); ok {
			return t, nil
		}
		b.log.Warn("stored translation no longer supported, falling back", "code", stored, "user", userID)
	}
	return bible.Default(), nil
}

// backendFor picks the client serving a translation.
func (b *Bot) backendFor(t bible.Translation) resolver.Backend {
	if t.BibleID == "" {
		return resolver.NewESVBackend(b.esv)
	}
	return resolver.NewAPIBibleBackend(b.apiBible, t.BibleID)
}

// resolverOptions maps stored display preferences onto resolver options.
func resolverOptions(prefs store.DisplayPrefs, page, pageSize int) resolver.Options {
	return resolver.Options{
		Footnotes:    prefs.Footnotes,
		Headings:     prefs.Headings,
		VerseNumbers: prefs.VerseNumbers,
		LineByLine:   prefs.LineByLine,
		Page:         page,
		PageSize:     pageSize,
	}
}
