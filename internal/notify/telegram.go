package notify

import (
	"context"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Telegram struct {
	bot   sender
	chats mapset.Set[int64]
	log   *logrus.Entry
}

func NewTelegram(cfg Config, l *logrus.Logger) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("env TELEGRAM_APITOKEN: %w", err)
	}
	bot.Debug = cfg.Debug
	_, err = bot.GetMe()
	if err != nil {
		return nil, err
	}
	return newTelegram(bot, cfg.ChatIDs, l), nil
}

func newTelegram(bot sender, chatIDs []int64, l *logrus.Logger) *Telegram {
	return &Telegram{
		bot:   bot,
		chats: mapset.NewSet[int64](chatIDs...),
		log:   l.WithField("from", "tg-notifier"),
	}
}

func (t *Telegram) Notify(ctx context.Context, text string) {
	for _, chatID := range t.chats.ToSlice() {
		if ctx.Err() != nil {
			return
		}
		msg := tgbotapi.NewMessage(chatID, text)
		if _, err := t.bot.Send(msg); err != nil {
			t.log.WithError(err).WithField("chat", chatID).Error("send error")
		}
	}
}

// New returns the Telegram notifier when enabled and Nop otherwise.
func New(cfg Config, l *logrus.Logger) (Notifier, error) {
	if !cfg.Enabled {
		return Nop{}, nil
	}
	return NewTelegram(cfg, l)
}
