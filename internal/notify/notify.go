package notify

import "context"

// Notifier delivers short texts to the admins. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, text string)
}

type Config struct {
	Enabled       bool    `toml:"enabled"`
	TelegramToken string  `toml:"telegram_apitoken"`
	ChatIDs       []int64 `toml:"chat_ids"`
	Debug         bool    `toml:"debug"`
}

type Nop struct{}

func (Nop) Notify(context.Context, string) {}
