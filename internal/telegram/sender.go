package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Message struct {
	ChatID      int64
	Text        string
	ParseMode   string
	ReplyMarkup interface{}
}

type Photo struct {
	ChatID      int64
	Name        string
	Data        []byte
	Caption     string
	ReplyMarkup interface{}
}

type Document struct {
	ChatID  int64
	Name    string
	Data    []byte
	Caption string
}

// Sender is the outbound chat-delivery capability shared by the command
// router and the webhook bridge. Implementations must be safe for
// concurrent use.
type Sender interface {
	SendText(ctx context.Context, msg Message) error
	SendPhoto(ctx context.Context, photo Photo) error
	SendDocument(ctx context.Context, doc Document) error
}

// BotSender delivers through the Bot API. tgbotapi.BotAPI only wraps an
// http.Client, so concurrent sends are fine.
type BotSender struct {
	api    *tgbotapi.BotAPI
	logger *zap.Logger
}

var _ Sender = (*BotSender)(nil)

func NewAPI(token string, debug bool, logger *zap.Logger) (*tgbotapi.BotAPI, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}
	botAPI.Debug = debug

	logger.Info("Bot authorized",
		zap.String("username", botAPI.Self.UserName),
		zap.Int64("id", botAPI.Self.ID))
	return botAPI, nil
}

func NewBotSender(api *tgbotapi.BotAPI, logger *zap.Logger) *BotSender {
	return &BotSender{api: api, logger: logger}
}

func (s *BotSender) SendText(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(m.ChatID, m.Text)
	msg.ParseMode = m.ParseMode
	if m.ReplyMarkup != nil {
		msg.ReplyMarkup = m.ReplyMarkup
	}

	// Callers log the failure at the level they need.
	if _, err := s.api.Send(msg); err != nil {
		s.logger.Debug("Telegram rejected message",
			zap.Int64("chat_id", m.ChatID),
			zap.String("parse_mode", m.ParseMode),
			zap.Error(err))
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func (s *BotSender) SendPhoto(ctx context.Context, p Photo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	photo := tgbotapi.NewPhoto(p.ChatID, tgbotapi.FileBytes{Name: p.Name, Bytes: p.Data})
	photo.Caption = p.Caption
	if p.ReplyMarkup != nil {
		photo.ReplyMarkup = p.ReplyMarkup
	}

	if _, err := s.api.Send(photo); err != nil {
		s.logger.Error("Failed to send photo",
			zap.Int64("chat_id", p.ChatID),
			zap.Error(err))
		return fmt.Errorf("send photo: %w", err)
	}
	return nil
}

func (s *BotSender) SendDocument(ctx context.Context, d Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc := tgbotapi.NewDocument(d.ChatID, tgbotapi.FileBytes{Name: d.Name, Bytes: d.Data})
	doc.Caption = d.Caption

	if _, err := s.api.Send(doc); err != nil {
		s.logger.Error("Failed to send document",
			zap.Int64("chat_id", d.ChatID),
			zap.String("name", d.Name),
			zap.Error(err))
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}

// SetCommands publishes the slash-command menu shown by Telegram clients.
func (s *BotSender) SetCommands(cmds []tgbotapi.BotCommand) error {
	if _, err := s.api.Request(tgbotapi.NewSetMyCommands(cmds...)); err != nil {
		return fmt.Errorf("set commands: %w", err)
	}
	return nil
}
