package notifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"excer/internal/adapters/config"
	"excer/internal/domain/stocks"
	"excer/pkg/errors"
	"excer/pkg/logger"
)

// digestSize limits how many symbols make it into one message
const digestSize = 5

// Telegram posts a short trending digest to a configured chat after each
// successful ingestion run.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
	log    *logger.Logger
}

// NewTelegram creates the digest notifier
func NewTelegram(cfg config.TelegramConfig) (*Telegram, error) {
	if cfg.BotToken == "" {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "telegram bot token is required")
	}
	if cfg.ChatID == 0 {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "telegram chat id is required")
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create telegram bot")
	}

	return &Telegram{
		api:    api,
		chatID: cfg.ChatID,
		log:    logger.Get().With("component", "notifier"),
	}, nil
}

// SendDigest posts the top trending symbols from a snapshot. Error
// snapshots and empty runs are skipped silently.
func (t *Telegram) SendDigest(ctx context.Context, snapshot *stocks.Snapshot) error {
	if !snapshot.OK() || len(snapshot.Stocks) == 0 {
		return nil
	}

	msg := tgbotapi.NewMessage(t.chatID, FormatDigest(snapshot))
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := t.api.Send(msg); err != nil {
		return errors.Wrap(err, "failed to send telegram digest")
	}

	t.log.Debugw("digest sent", "stocks", len(snapshot.Stocks))
	return nil
}

// FormatDigest renders the top trending symbols as a Markdown message
func FormatDigest(snapshot *stocks.Snapshot) string {
	var b strings.Builder

	updated := time.UnixMilli(snapshot.LastUpdated)
	fmt.Fprintf(&b, "*Trending penny stocks* (%s)\n", humanize.Time(updated))

	top := snapshot.Stocks
	if len(top) > digestSize {
		top = top[:digestSize]
	}

	for i, stock := range top {
		fmt.Fprintf(&b, "%d. *%s* score %.1f, %s across %s\n",
			i+1,
			stock.Symbol,
			stock.TrendingScore,
			pluralize(stock.Mentions, "mention"),
			pluralize(stock.UniquePosts, "post"),
		)
	}

	fmt.Fprintf(&b, "_%s tracked from %d subreddits_",
		pluralize(len(snapshot.Stocks), "symbol"), snapshot.TotalSources)

	return b.String()
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%s %ss", humanize.Comma(int64(n)), noun)
}
