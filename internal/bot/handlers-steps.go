package bot

import (
	"context"

	"novamd-bot/pkg/api"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) processAccessCode(ctx context.Context, msg *tgbotapi.Message) InputOutcome {
	chatID := msg.Chat.ID

	code := NormalizeAccessCode(msg.Text)
	if !IsValidAccessCode(code) {
		b.sendError(ctx, chatID, msgBadCode, nil)
		return InputRejected
	}

	b.reply(ctx, chatID, msgCheckCode, nil)

	res, err := b.backend.ValidateCode(ctx, chatID, code)
	if err != nil {
		b.backendFailed(ctx, chatID, "validate_code", err, mainKeyboard())
		return InputProcessed
	}
	if !res.Valid {
		b.logger.Info("Access code rejected",
			zap.Int64("chat_id", chatID),
			zap.String("reason", res.Reason))
		b.sendError(ctx, chatID, codeRejectedText(res.Reason, b.opts.SupportContact), mainKeyboard())
		return InputProcessed
	}

	b.logger.Info("Access code accepted",
		zap.Int64("chat_id", chatID),
		zap.String("plan", res.Plan))

	expires := FormatExpiry(res.ExpiresAt, res.Duration, b.opts.Now())
	b.reply(ctx, chatID, codeAcceptedText(res.Plan, res.Duration, expires), mainKeyboard())
	return InputProcessed
}

func (b *Bot) processPhoneNumber(ctx context.Context, msg *tgbotapi.Message) InputOutcome {
	chatID := msg.Chat.ID
	name, _ := senderName(msg)

	phone := NormalizePhoneNumber(msg.Text)
	if !IsValidPhoneNumber(phone) {
		b.sendError(ctx, chatID, msgBadPhone, nil)
		return InputRejected
	}

	b.reply(ctx, chatID, msgPairing, nil)

	// The number is only forwarded, never logged or stored.
	res, err := b.backend.CreateSessionWithPhone(ctx, api.CreateSessionRequest{
		ChatID:      api.FormatChatID(chatID),
		UserName:    name,
		Method:      sessionMethodPairing,
		PhoneNumber: phone,
		Persistent:  true,
	})
	if err != nil {
		b.backendFailed(ctx, chatID, "create_session_with_phone", err, mainKeyboard())
		return InputProcessed
	}
	if !res.Success {
		reason := res.Error
		if reason == "" {
			reason = msgUnknownErr
		}
		b.sendError(ctx, chatID, "Erreur génération code\n\n"+reason+"\n\nRéessayez ou utilisez le QR Code.", mainKeyboard())
		return InputProcessed
	}

	b.reply(ctx, chatID, msgPairingOK, mainKeyboard())
	return InputProcessed
}

// processUpdateConfirmation answers the upgrade prompt. Anything other than
// the two confirm captions cancels.
func (b *Bot) processUpdateConfirmation(ctx context.Context, msg *tgbotapi.Message) InputOutcome {
	chatID := msg.Chat.ID

	var force bool
	switch msg.Text {
	case BtnConfirmUpgrade:
	case BtnForceUpgrade:
		force = true
	default:
		b.reply(ctx, chatID, msgUpgradeCxl, adminKeyboard())
		return InputProcessed
	}

	if !b.isAdmin(chatID) {
		return InputProcessed
	}

	b.reply(ctx, chatID, msgUpgrading, nil)

	res, err := b.backend.Upgrade(ctx, force)
	if err != nil {
		b.backendFailed(ctx, chatID, "upgrade", err, adminKeyboard())
		return InputProcessed
	}
	if !res.Success {
		reason := res.Error
		if reason == "" {
			reason = res.Message
		}
		b.sendError(ctx, chatID, "Échec de la mise à jour\n\n"+orNA(reason), adminKeyboard())
		return InputProcessed
	}

	b.logger.Info("Upgrade completed",
		zap.Int64("chat_id", chatID),
		zap.Bool("force", force),
		zap.String("version", res.Version.String()))
	b.reply(ctx, chatID, upgradeDoneText(res), adminKeyboard())
	return InputProcessed
}
