package discord

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/prinketaru/scriptura/internal/bible"
	"github.com/prinketaru/scriptura/internal/pager"
	"github.com/prinketaru/scriptura/internal/resolver"
	"github.com/prinketaru/scriptura/internal/util"
)

const (
	customIDPrefix = "pager"
	reapInterval   = 30 * time.Second
)

// pagerSession binds a pager to the message carrying its buttons.
type pagerSession struct {
	id          string
	pager       *pager.Pager
	translation bible.Translation
	channelID   string
	messageID   string
}

// showSearch renders the first result page and arms the navigation buttons.
// A pager only exists for a successful, non-empty first fetch; empty and
// failed outcomes never reach this point.
func (b *Bot) showSearch(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate,
	ownerID string, t bible.Translation, backend resolver.Backend, opts resolver.Options, first bible.SearchSet) {

	fetch := func(ctx context.Context, page int) (bible.SearchSet, error) {
		o := opts
		o.Page = page
		res := resolver.Resolve(ctx, backend, first.Query, o)
		switch res.Kind {
		case bible.KindSearch:
			return res.Search, nil
		case bible.KindEmpty:
			return bible.SearchSet{Query: first.Query}, nil
		case bible.KindFailure:
			return bible.SearchSet{}, errors.New(res.Failure.Message)
		}
		return bible.SearchSet{}, errors.New("unexpected result kind " + res.Kind.String())
	}

	p := pager.New(ownerID, first, fetch)
	session := &pagerSession{
		id:          util.NewID(),
		pager:       p,
		translation: t,
	}

	totalPages := p.TotalPages()
	embed := searchEmbed(first, 0, totalPages, t)
	components := pagerComponents(session.id, 0, totalPages, false)

	msg, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	})
	if err != nil {
		b.log.Error("edit search response", "err", err)
		return
	}
	session.channelID = msg.ChannelID
	session.messageID = msg.ID

	b.mu.Lock()
	b.pagers[session.id] = session
	b.mu.Unlock()
}

func (b *Bot) handleComponent(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	parts := strings.Split(i.MessageComponentData().CustomID, ":")
	if len(parts) != 3 || parts[0] != customIDPrefix {
		return
	}
	id, direction := parts[1], parts[2]

	b.mu.Lock()
	session := b.pagers[id]
	b.mu.Unlock()

	if session == nil || session.pager.Expired() {
		// Stale buttons: freeze them in place.
		b.updateComponentMessage(s, i, i.Message.Embeds, disabledComponents(id))
		if session != nil {
			b.dropPager(id)
		}
		return
	}

	user := interactionUser(i)
	if user.ID != session.pager.OwnerID() {
		b.respondEphemeralText(s, i, "These buttons belong to someone else's search.")
		return
	}

	delta := 1
	if direction == "prev" {
		delta = -1
	}
	set, err := session.pager.Move(ctx, delta)
	if err != nil {
		if errors.Is(err, pager.ErrExpired) {
			b.updateComponentMessage(s, i, i.Message.Embeds, disabledComponents(id))
			b.dropPager(id)
			return
		}
		b.log.Error("pager fetch", "query", session.pager.Current().Query, "err", err)
		b.respondEphemeralText(s, i, "Could not fetch that page. Try again in a moment.")
		return
	}

	page := session.pager.Page()
	totalPages := session.pager.TotalPages()
	embed := searchEmbed(set, page, totalPages, session.translation)
	b.updateComponentMessage(s, i, []*discordgo.MessageEmbed{embed}, pagerComponents(id, page, totalPages, false))
}

func (b *Bot) updateComponentMessage(s *discordgo.Session, i *discordgo.InteractionCreate,
	embeds []*discordgo.MessageEmbed, components []discordgo.MessageComponent) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     embeds,
			Components: components,
		},
	})
	if err != nil {
		b.log.Error("update component message", "err", err)
	}
}

// reapPagers periodically disables navigation on expired pagers and drops
// them. Runs until the bot context is canceled.
func (b *Bot) reapPagers(ctx context.Context) {
	ticker := time.NewTicker(reapInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		b.mu.Lock()
		expired := make([]*pagerSession, 0)
		for id, session := range b.pagers {
			if session.pager.Expired() {
				expired = append(expired, session)
				delete(b.pagers, id)
			}
		}
		b.mu.Unlock()

		for _, session := range expired {
			components := disabledComponents(session.id)
			_, err := b.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
				Channel:    session.channelID,
				ID:         session.messageID,
				Components: &components,
			})
			if err != nil {
				b.log.Warn("disable expired pager", "message", session.messageID, "err", err)
			}
		}
	}
}

func (b *Bot) dropPager(id string) {
	b.mu.Lock()
	delete(b.pagers, id)
	b.mu.Unlock()
}

func pagerComponents(id string, page, totalPages int, disabled bool) []discordgo.MessageComponent {
	prevDisabled := disabled || page <= 0
	// With an unknown total, Next stays enabled until an empty fetch pins
	// the last page; the pager itself refuses to run past it.
	nextDisabled := disabled || (totalPages > 0 && page >= totalPages-1)
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Prev",
					Style:    discordgo.SecondaryButton,
					CustomID: customIDPrefix + ":" + id + ":prev",
					Disabled: prevDisabled,
				},
				discordgo.Button{
					Label:    "Next",
					Style:    discordgo.SecondaryButton,
					CustomID: customIDPrefix + ":" + id + ":next",
					Disabled: nextDisabled,
				},
			},
		},
	}
}

func disabledComponents(id string) []discordgo.MessageComponent {
	return pagerComponents(id, 0, 1, true)
}
