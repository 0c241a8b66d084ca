package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	name, username := senderName(msg)

	// A failed registration must not block the welcome screen.
	res, err := b.backend.RegisterUser(ctx, chatID, name, username)
	switch {
	case err != nil:
		b.logger.Warn("Failed to register user",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	case !res.Success:
		b.logger.Warn("User registration rejected",
			zap.Int64("chat_id", chatID),
			zap.String("reason", res.Error))
	}

	b.reply(ctx, chatID, msgWelcome, b.menuKeyboard(chatID))
}

func (b *Bot) handleHelp(ctx context.Context, msg *tgbotapi.Message) {
	b.reply(ctx, msg.Chat.ID, helpText(b.opts.SupportContact), mainKeyboard())
}

func (b *Bot) handleMainMenu(ctx context.Context, msg *tgbotapi.Message) {
	b.reply(ctx, msg.Chat.ID, msgMainMenu, b.menuKeyboard(msg.Chat.ID))
}

func (b *Bot) handleSubscribe(ctx context.Context, msg *tgbotapi.Message) {
	b.reply(ctx, msg.Chat.ID, subscribeText(b.opts.SupportContact), mainKeyboard())
}

func (b *Bot) handleUseCode(ctx context.Context, msg *tgbotapi.Message) {
	b.reply(ctx, msg.Chat.ID, msgUseCode, removeKeyboard())
	b.setPending(ctx, msg.Chat.ID, PendingAccessCode)
}

func (b *Bot) handleStatus(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	access, err := b.backend.CheckAccess(ctx, chatID)
	if err != nil {
		b.backendFailed(ctx, chatID, "check_access", err, mainKeyboard())
		return
	}
	if !access.HasAccess {
		b.reply(ctx, chatID, noAccessStatusText(b.opts.SupportContact), mainKeyboard())
		return
	}

	// Session state is secondary; render it as disconnected if the lookup fails.
	session, err := b.backend.UserSession(ctx, chatID)
	if err != nil {
		b.logger.Warn("Failed to get user session",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		session = nil
	}

	b.reply(ctx, chatID, statusText(access, session), mainKeyboard())
}
