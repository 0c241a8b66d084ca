package bot

import (
	"context"

	"novamd-bot/internal/telegram"
	"novamd-bot/pkg/api"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// handleConnectOptions offers QR/pairing to subscribers and the trial or
// premium choice to everyone else.
func (b *Bot) handleConnectOptions(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	access, err := b.backend.CheckAccess(ctx, chatID)
	if err != nil {
		b.backendFailed(ctx, chatID, "check_access", err, mainKeyboard())
		return
	}
	if !access.HasAccess {
		b.reply(ctx, chatID, msgTrialChoice, trialKeyboard())
		return
	}

	b.reply(ctx, chatID, connectMethodsText(FormatDate(access.EndDate)), connectionKeyboard())
}

func (b *Bot) handleConnectQR(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	name, _ := senderName(msg)

	access, err := b.backend.CheckAccess(ctx, chatID)
	if err != nil {
		b.backendFailed(ctx, chatID, "check_access", err, mainKeyboard())
		return
	}
	if !access.HasAccess {
		b.sendError(ctx, chatID, msgNoAccess, mainKeyboard())
		return
	}
	endDate := FormatDate(access.EndDate)

	existing, err := b.backend.UserSession(ctx, chatID)
	if err != nil {
		b.logger.Warn("Failed to get user session",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
	if existing.Connected() {
		b.reply(ctx, chatID, sessionActiveText(existing.DaysSince(b.opts.Now()), endDate), mainKeyboard())
		return
	}

	b.reply(ctx, chatID, msgQRPending, nil)

	res, err := b.backend.CreateSession(ctx, api.CreateSessionRequest{
		ChatID:     api.FormatChatID(chatID),
		UserName:   name,
		Method:     sessionMethodQR,
		Persistent: true,
	})
	if err != nil {
		b.backendFailed(ctx, chatID, "create_session", err, mainKeyboard())
		return
	}
	if !res.Success {
		b.sendError(ctx, chatID, "Erreur lors de la création de la session.\n\n"+orNA(res.Error), mainKeyboard())
		return
	}
	if res.QRCode == "" {
		// The backend pushes the QR through the bridge once it is ready.
		b.reply(ctx, chatID, msgQRLater, mainKeyboard())
		return
	}

	b.sendQR(ctx, chatID, res.QRCode, endDate)
}

// sendQR sends the instructions then the QR image. If the image cannot be
// produced or delivered, the raw payload goes out as text instead.
func (b *Bot) sendQR(ctx context.Context, chatID int64, payload, validUntil string) {
	b.reply(ctx, chatID, QRInstructions(validUntil), nil)

	png, err := telegram.RenderQR(payload)
	if err == nil {
		err = b.sender.SendPhoto(ctx, telegram.Photo{
			ChatID:      chatID,
			Name:        qrPhotoName,
			Data:        png,
			Caption:     msgQRCaption,
			ReplyMarkup: mainKeyboard(),
		})
	}
	if err != nil {
		b.logger.Error("Failed to send QR image",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.reply(ctx, chatID, QRFallback(payload), mainKeyboard())
	}
}

func (b *Bot) handleConnectPairing(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	access, err := b.backend.CheckAccess(ctx, chatID)
	if err != nil {
		b.backendFailed(ctx, chatID, "check_access", err, mainKeyboard())
		return
	}
	if !access.HasAccess {
		b.sendError(ctx, chatID, msgNoAccess, mainKeyboard())
		return
	}

	b.reply(ctx, chatID, msgAskPhone, removeKeyboard())
	b.setPending(ctx, chatID, PendingPhoneNumber)
}

func (b *Bot) handleFreeTrial(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	name, _ := senderName(msg)

	b.reply(ctx, chatID, msgTrialStart, nil)

	res, err := b.backend.CreateSession(ctx, api.CreateSessionRequest{
		ChatID:     api.FormatChatID(chatID),
		UserName:   name,
		Method:     sessionMethodQR,
		Persistent: false,
	})
	if err != nil {
		b.backendFailed(ctx, chatID, "create_session", err, mainKeyboard())
		return
	}
	if !res.Success {
		reason := res.Error
		if reason == "" {
			reason = msgUnknownErr
		}
		b.sendError(ctx, chatID, "Impossible de créer l'essai\n\nErreur: "+reason+"\n\nRéessayez ou contactez le support.", mainKeyboard())
		return
	}

	b.reply(ctx, chatID, msgTrialOK, connectionKeyboard())
}
