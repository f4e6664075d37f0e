package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Notifier delivers a plain text alert to the admins.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Sender is the part of *tgbotapi.BotAPI the notifier uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramNotifier struct {
	sender Sender
	chatID int64
	logger *zap.Logger
}

func NewTelegramNotifier(token string, chatID int64, logger ...*zap.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	bot.Debug = false
	n := NewTelegramNotifierWithSender(bot, chatID, logger...)
	n.logger.Info("telegram notifier ready", zap.String("bot", bot.Self.UserName))
	return n, nil
}

func NewTelegramNotifierWithSender(sender Sender, chatID int64, logger ...*zap.Logger) *TelegramNotifier {
	l := zap.L().Named("notify.telegram")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notify.telegram")
	}
	return &TelegramNotifier{sender: sender, chatID: chatID, logger: l}
}

func (n *TelegramNotifier) Notify(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := n.sender.Send(msg); err != nil {
		n.logger.Error("telegram send failed", zap.Int64("chat_id", n.chatID), zap.Error(err))
		return err
	}
	return nil
}

// LogNotifier writes alerts to the log. It is used when no bot is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger ...*zap.Logger) *LogNotifier {
	l := zap.L().Named("notify.log")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notify.log")
	}
	return &LogNotifier{logger: l}
}

func (n *LogNotifier) Notify(ctx context.Context, text string) error {
	n.logger.Info("admin notification", zap.String("text", text))
	return nil
}
