package bot

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

func withPlaceholder(kb tgbotapi.ReplyKeyboardMarkup, placeholder string) tgbotapi.ReplyKeyboardMarkup {
	kb.InputFieldPlaceholder = placeholder
	return kb
}

func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return withPlaceholder(tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnUseCode),
			tgbotapi.NewKeyboardButton(BtnSubscribe),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnConnect),
			tgbotapi.NewKeyboardButton(BtnStatus),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnSettings),
			tgbotapi.NewKeyboardButton(BtnHelp),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnMainMenu),
		),
	), "Choisissez une option...")
}

func adminKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return withPlaceholder(tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnGenerateCode),
			tgbotapi.NewKeyboardButton(BtnStatistics),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnUpgrade),
			tgbotapi.NewKeyboardButton(BtnCommands),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnMainMenu),
			tgbotapi.NewKeyboardButton(BtnUsers),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnSettings),
		),
	), "Options administrateur...")
}

func connectionKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return withPlaceholder(tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnQRCode),
			tgbotapi.NewKeyboardButton(BtnPairingCode),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnFreeTrial),
			tgbotapi.NewKeyboardButton(BtnMainMenu),
		),
	), "Choisissez la méthode...")
}

func trialKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return withPlaceholder(tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnFreeTrial),
			tgbotapi.NewKeyboardButton(BtnBuyPremium),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnMainMenu),
		),
	), "Choisissez une option...")
}

func settingsKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return withPlaceholder(tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnSilentOn),
			tgbotapi.NewKeyboardButton(BtnSilentOff),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnPrivateOn),
			tgbotapi.NewKeyboardButton(BtnPrivateOff),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnManageAccess),
			tgbotapi.NewKeyboardButton(BtnMainMenu),
		),
	), "Paramètres WhatsApp...")
}

func upgradeKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewOneTimeReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnConfirmUpgrade),
			tgbotapi.NewKeyboardButton(BtnForceUpgrade),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnCancelUpgrade),
		),
	)
}

func removeKeyboard() tgbotapi.ReplyKeyboardRemove {
	return tgbotapi.NewRemoveKeyboard(false)
}

// menuKeyboard is the home keyboard for chatID.
func (b *Bot) menuKeyboard(chatID int64) tgbotapi.ReplyKeyboardMarkup {
	if b.isAdmin(chatID) {
		return adminKeyboard()
	}
	return mainKeyboard()
}
