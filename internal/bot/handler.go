package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Routes reported to metrics.
const (
	routeCommand      = "command"
	routeAdminCommand = "admin_command"
	routeDenied       = "denied"
	routeButton       = "button"
	routeAdminButton  = "admin_button"
	routeSettings     = "settings"
	routePendingInput = "pending_input"
	routeIgnored      = "ignored"
)

// dispatch picks exactly one handler for msg, first match wins: slash
// commands, user buttons, admin buttons (admins only, anyone else falls
// through), settings toggles, then the pending-input processor. Anything
// left over is dropped without a reply.
func (b *Bot) dispatch(ctx context.Context, msg *tgbotapi.Message) string {
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		return b.dispatchCommand(ctx, msg)
	}

	text := msg.Text
	if h, ok := b.buttons[text]; ok {
		h(ctx, msg)
		return routeButton
	}
	if h, ok := b.adminButtons[text]; ok && b.isAdmin(chatID) {
		h(ctx, msg)
		return routeAdminButton
	}
	if h, ok := b.settingsButtons[text]; ok {
		h(ctx, msg)
		return routeSettings
	}

	pending, err := b.state.Pending(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to get pending input",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return routeIgnored
	}

	process, ok := b.processors[pending]
	if !ok {
		return routeIgnored
	}

	next := pending.After(process(ctx, msg))
	if next != pending {
		b.setPending(ctx, chatID, next)
	}
	return routePendingInput
}

func (b *Bot) dispatchCommand(ctx context.Context, msg *tgbotapi.Message) string {
	cmd := msg.Command()

	if h, ok := b.commands[cmd]; ok {
		h(ctx, msg)
		return routeCommand
	}

	if h, ok := b.adminCommands[cmd]; ok {
		if !b.isAdmin(msg.Chat.ID) {
			b.logger.Info("Admin command refused",
				zap.Int64("chat_id", msg.Chat.ID),
				zap.String("command", cmd))
			b.sendError(ctx, msg.Chat.ID, msgAdminOnly, nil)
			return routeDenied
		}
		h(ctx, msg)
		return routeAdminCommand
	}

	return routeIgnored
}
