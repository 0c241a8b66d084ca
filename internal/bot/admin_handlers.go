package bot

import (
	"context"
	"strconv"
	"strings"

	"novamd-bot/internal/report"
	"novamd-bot/internal/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Admin handlers assume the caller is already authorized by dispatch.

func (b *Bot) handleAdminPanel(ctx context.Context, msg *tgbotapi.Message) {
	b.reply(ctx, msg.Chat.ID, msgAdminPanel, adminKeyboard())
}

func (b *Bot) handleGenerateCodeHelp(ctx context.Context, msg *tgbotapi.Message) {
	b.reply(ctx, msg.Chat.ID, msgGenerateHelp, nil)
}

// parseGenerateArgs reads "[plan] [days]". A non-numeric days argument is
// ignored and the backend picks the plan's default duration.
func parseGenerateArgs(args string) (plan string, duration *int) {
	plan = defaultPlan
	fields := strings.Fields(args)
	if len(fields) > 0 {
		plan = fields[0]
	}
	if len(fields) > 1 {
		if d, err := strconv.Atoi(fields[1]); err == nil && d > 0 {
			duration = &d
		}
	}
	return plan, duration
}

func (b *Bot) handleGenerateCode(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	plan, duration := parseGenerateArgs(msg.CommandArguments())

	b.reply(ctx, chatID, "🔄 Génération d'un code "+plan+"...", nil)

	res, err := b.backend.GenerateCode(ctx, plan, duration)
	if err != nil {
		b.backendFailed(ctx, chatID, "generate_code", err, nil)
		return
	}
	if !res.Success {
		text := "Erreur lors de la génération du code."
		if res.Error != "" {
			text += "\n\n" + res.Error
		}
		b.sendError(ctx, chatID, text, nil)
		return
	}

	b.logger.Info("Access code generated",
		zap.Int64("chat_id", chatID),
		zap.String("plan", plan),
		zap.Int("duration", res.Duration))

	expires := FormatExpiry(res.ExpiresAt, res.Duration, b.opts.Now())
	b.reply(ctx, chatID, generatedCodeText(res, plan, expires), nil)
}

func (b *Bot) handleStats(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	stats, err := b.backend.Stats(ctx)
	if err != nil {
		b.backendFailed(ctx, chatID, "stats", err, nil)
		return
	}

	live, err := b.backend.SessionsHealth(ctx)
	if err != nil {
		b.logger.Warn("Failed to get sessions health",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		live = nil
	}

	b.reply(ctx, chatID, statsText(stats, live), nil)
}

func (b *Bot) handleCommandsInfo(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	info, err := b.backend.CommandsInfo(ctx)
	if err != nil {
		b.backendFailed(ctx, chatID, "commands_info", err, nil)
		return
	}

	b.reply(ctx, chatID, commandsText(info), nil)
}

// handleUsers lists the first users inline and attaches the full list as a
// spreadsheet.
func (b *Bot) handleUsers(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	users, err := b.backend.ActiveUsers(ctx)
	if err != nil {
		b.backendFailed(ctx, chatID, "active_users", err, nil)
		return
	}
	if len(users) == 0 {
		b.sendError(ctx, chatID, msgNoUsers, nil)
		return
	}

	b.reply(ctx, chatID, usersText(users), nil)

	data, err := report.ActiveUsersWorkbook(users)
	if err != nil {
		b.logger.Error("Failed to build users report",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return
	}
	if err := b.sender.SendDocument(ctx, telegram.Document{
		ChatID:  chatID,
		Name:    report.UsersFilename(b.opts.Now()),
		Data:    data,
		Caption: "👥 Export des utilisateurs actifs",
	}); err != nil {
		b.logger.Error("Failed to send users report",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

// handleUpgrade checks for a new version and asks for confirmation.
func (b *Bot) handleUpgrade(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	b.reply(ctx, chatID, msgCheckingUp, nil)

	check, err := b.backend.CheckUpdates(ctx)
	if err != nil {
		b.backendFailed(ctx, chatID, "check_updates", err, adminKeyboard())
		return
	}

	text := upToDateText(check)
	if check.UpdateAvailable {
		text = updateAvailableText(check)
	}
	b.reply(ctx, chatID, text, upgradeKeyboard())
	b.setPending(ctx, chatID, PendingUpdateConfirmation)
}
