package bot

import (
	"context"

	"novamd-bot/pkg/api"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type settingsToggle struct {
	update  api.SettingsUpdate
	success string
	failure string
}

func boolPtr(v bool) *bool { return &v }

// settingsToggles maps each toggle caption to the exact payload it sends.
var settingsToggles = map[string]settingsToggle{
	BtnSilentOn: {
		update:  api.SettingsUpdate{SilentMode: boolPtr(true)},
		success: "✅ Mode silencieux activé\n\nSur WhatsApp:\n• Seul vous verrez les réponses\n• Les autres ne voient rien\n• Utilisez !silent pour désactiver",
		failure: "Erreur activation mode silencieux",
	},
	BtnSilentOff: {
		update:  api.SettingsUpdate{SilentMode: boolPtr(false)},
		success: "✅ Mode silencieux désactivé\n\nSur WhatsApp:\n• Tout le monde voit les commandes\n• Les réponses sont publiques",
		failure: "Erreur désactivation mode silencieux",
	},
	BtnPrivateOn: {
		update:  api.SettingsUpdate{PrivateMode: boolPtr(true), AllowedUsers: []string{"all"}},
		success: "✅ Mode privé activé\n\nSur WhatsApp:\n• Seuls les utilisateurs autorisés peuvent utiliser le bot\n• Par défaut: tout le monde est autorisé\n• Utilisez !private +237612345678 sur WhatsApp pour restreindre",
		failure: "Erreur activation mode privé",
	},
	BtnPrivateOff: {
		update:  api.SettingsUpdate{PrivateMode: boolPtr(false), AllowedUsers: []string{}},
		success: "✅ Mode privé désactivé\n\nSur WhatsApp:\n• Tout le monde peut utiliser le bot\n• Aucune restriction d'accès",
		failure: "Erreur désactivation mode privé",
	},
}

func (b *Bot) handleWhatsAppSettings(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	access, err := b.backend.CheckAccess(ctx, chatID)
	if err != nil {
		b.backendFailed(ctx, chatID, "check_access", err, mainKeyboard())
		return
	}
	if !access.HasAccess {
		b.sendError(ctx, chatID, msgNeedAccess, mainKeyboard())
		return
	}

	settings, err := b.backend.WhatsAppSettings(ctx, chatID)
	if err != nil {
		b.logger.Warn("Failed to get WhatsApp settings, showing defaults",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		settings = &api.WhatsAppSettings{}
	}

	b.reply(ctx, chatID, settingsText(settings), settingsKeyboard())
}

func (b *Bot) handleSettingsToggle(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	toggle, ok := settingsToggles[msg.Text]
	if !ok {
		return
	}

	res, err := b.backend.UpdateWhatsAppSettings(ctx, chatID, toggle.update)
	if err != nil {
		b.backendFailed(ctx, chatID, "update_settings", err, mainKeyboard())
		return
	}
	if !res.Success {
		text := toggle.failure
		if res.Error != "" {
			text += "\n\n" + res.Error
		}
		b.sendError(ctx, chatID, text, mainKeyboard())
		return
	}

	b.reply(ctx, chatID, toggle.success, mainKeyboard())
}

func (b *Bot) handleManageAccess(ctx context.Context, msg *tgbotapi.Message) {
	b.reply(ctx, msg.Chat.ID, msgManageAccess, mainKeyboard())
}
