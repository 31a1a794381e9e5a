package main

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/prinketaru/scriptura/internal/apibible"
	"github.com/prinketaru/scriptura/internal/config"
	"github.com/prinketaru/scriptura/internal/discord"
	"github.com/prinketaru/scriptura/internal/esv"
	"github.com/prinketaru/scriptura/internal/ratelimit"
	"github.com/prinketaru/scriptura/internal/store"
	"github.com/prinketaru/scriptura/internal/util"
	"github.com/prinketaru/scriptura/internal/votd"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	esvClient, err := esv.NewClient(cfg.ESVBaseURL, cfg.ESVAPIKey)
	if err != nil {
		log.Fatalf("failed to init ESV client: %v", err)
	}
	apiBibleClient := apibible.NewClient(cfg.APIBibleURL, cfg.APIBibleKey)

	prefStore, err := newStore(cfg)
	if err != nil {
		log.Fatalf("failed to init preference store: %v", err)
	}
	defer func() {
		if err := prefStore.Close(); err != nil {
			logger.Error("close preference store", "err", err)
		}
	}()

	votdList, err := newVotdList(cfg.VotdPath)
	if err != nil {
		log.Fatalf("failed to load verse-of-the-day list: %v", err)
	}

	bot, err := discord.New(discord.Config{
		Token:    cfg.DiscordToken,
		GuildID:  cfg.GuildID,
		Store:    prefStore,
		ESV:      esvClient,
		APIBible: apiBibleClient,
		Votd:     votdList,
		Limiter:  newLimiter(cfg),
		Logger:   logger,
	})
	if err != nil {
		log.Fatalf("failed to init bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return bot.Run(ctx)
	})

	slog.Info("bot started")
	if err := g.Wait(); err != nil {
		logger.Error("bot error", "err", err)
	}
}

// newStore picks the preference backend: Postgres when configured, then
// Redis, then in-process memory for development.
func newStore(cfg config.FileConfig) (store.Store, error) {
	switch {
	case cfg.DatabaseURL != "":
		return store.NewGormStore(cfg.DatabaseURL)
	case cfg.RedisAddr != "":
		return store.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword), nil
	default:
		slog.Warn("no databaseURL or redisAddr configured, preferences will not survive restarts")
		return store.NewMemoryStore(), nil
	}
}

const (
	commandQuota  = 10
	commandWindow = 30 * time.Second
)

// newLimiter picks the command throttle backend: Redis when configured so
// replicas share one quota, else process-local.
func newLimiter(cfg config.FileConfig) ratelimit.Limiter {
	if cfg.RedisAddr != "" {
		return ratelimit.NewRedisLimiter(cfg.RedisAddr, cfg.RedisPassword, commandQuota, commandWindow)
	}
	return ratelimit.NewMemoryLimiter(commandQuota, commandWindow)
}

func newVotdList(path string) (votd.List, error) {
	if path == "" {
		return votd.DefaultList(), nil
	}
	return votd.Load(path)
}
