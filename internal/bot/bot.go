package bot

import (
	"context"
	"errors"
	"sync"
	"time"

	"novamd-bot/internal/metrics"
	"novamd-bot/internal/telegram"
	"novamd-bot/pkg/api"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Options struct {
	AdminIDs       map[int64]struct{}
	SupportContact string
	// Now is used for expiry estimates and session age; defaults to time.Now.
	Now func() time.Time
}

type messageHandler func(ctx context.Context, msg *tgbotapi.Message)

// inputProcessor consumes the text that answers a pending prompt.
type inputProcessor func(ctx context.Context, msg *tgbotapi.Message) InputOutcome

type Bot struct {
	updates UpdateSource
	sender  telegram.Sender
	backend Backend
	state   StateStore
	logger  *zap.Logger
	opts    Options
	mu      sync.Mutex

	commands        map[string]messageHandler
	adminCommands   map[string]messageHandler
	buttons         map[string]messageHandler
	adminButtons    map[string]messageHandler
	settingsButtons map[string]messageHandler
	processors      map[PendingInput]inputProcessor
}

func New(
	updates UpdateSource,
	sender telegram.Sender,
	backend Backend,
	state StateStore,
	logger *zap.Logger,
	opts Options,
) *Bot {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.AdminIDs == nil {
		opts.AdminIDs = map[int64]struct{}{}
	}

	b := &Bot{
		updates: updates,
		sender:  sender,
		backend: backend,
		state:   state,
		logger:  logger,
		opts:    opts,
	}

	b.registerHandlers()
	return b
}

func (b *Bot) registerHandlers() {
	b.commands = map[string]messageHandler{
		CmdStart:            b.handleStart,
		CmdHelp:             b.handleHelp,
		CmdUseCode:          b.handleUseCode,
		CmdSubscribe:        b.handleSubscribe,
		CmdConnect:          b.handleConnectOptions,
		CmdStatus:           b.handleStatus,
		CmdMenu:             b.handleMainMenu,
		CmdWhatsAppSettings: b.handleWhatsAppSettings,
	}

	b.adminCommands = map[string]messageHandler{
		CmdAdmin:        b.handleAdminPanel,
		CmdGenerateCode: b.handleGenerateCode,
		CmdStats:        b.handleStats,
		CmdUpgrade:      b.handleUpgrade,
		CmdCommands:     b.handleCommandsInfo,
	}

	b.buttons = map[string]messageHandler{
		BtnUseCode:     b.handleUseCode,
		BtnSubscribe:   b.handleSubscribe,
		BtnConnect:     b.handleConnectOptions,
		BtnStatus:      b.handleStatus,
		BtnHelp:        b.handleHelp,
		BtnMainMenu:    b.handleMainMenu,
		BtnSettings:    b.handleWhatsAppSettings,
		BtnQRCode:      b.handleConnectQR,
		BtnPairingCode: b.handleConnectPairing,
		BtnFreeTrial:   b.handleFreeTrial,
		BtnBuyPremium:  b.handleSubscribe,
	}

	b.adminButtons = map[string]messageHandler{
		BtnGenerateCode: b.handleGenerateCodeHelp,
		BtnStatistics:   b.handleStats,
		BtnUpgrade:      b.handleUpgrade,
		BtnCommands:     b.handleCommandsInfo,
		BtnUsers:        b.handleUsers,
	}

	b.settingsButtons = map[string]messageHandler{
		BtnSilentOn:     b.handleSettingsToggle,
		BtnSilentOff:    b.handleSettingsToggle,
		BtnPrivateOn:    b.handleSettingsToggle,
		BtnPrivateOff:   b.handleSettingsToggle,
		BtnManageAccess: b.handleManageAccess,
	}

	b.processors = map[PendingInput]inputProcessor{
		PendingAccessCode:         b.processAccessCode,
		PendingPhoneNumber:        b.processPhoneNumber,
		PendingUpdateConfirmation: b.processUpdateConfirmation,
	}
}

// Start consumes updates until ctx is cancelled or the update channel closes.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Starting bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.updates.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Shutting down bot")
			b.updates.StopReceivingUpdates()
			return nil

		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.mu.Lock()
			b.HandleMessage(ctx, update.Message)
			b.mu.Unlock()
		}
	}
}

// HandleMessage routes one incoming message. A panicking handler is logged
// and does not take the update loop down.
func (b *Bot) HandleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg == nil || msg.Chat == nil {
		return
	}
	chatID := msg.Chat.ID

	defer func() {
		if r := recover(); r != nil {
			metrics.IncUpdate("panic")
			b.logger.Error("Recovered from handler panic",
				zap.Int64("chat_id", chatID),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()

	b.logger.Debug("Processing message",
		zap.Int64("chat_id", chatID),
		zap.String("text", msg.Text))

	metrics.IncUpdate(b.dispatch(ctx, msg))
}

func (b *Bot) isAdmin(chatID int64) bool {
	_, ok := b.opts.AdminIDs[chatID]
	return ok
}

// CommandMenu lists the public slash commands for the client-side menu.
func CommandMenu() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: CmdStart, Description: "Démarrer le bot"},
		{Command: CmdMenu, Description: "Menu principal"},
		{Command: CmdUseCode, Description: "Activer un code d'accès"},
		{Command: CmdSubscribe, Description: "Informations abonnement"},
		{Command: CmdConnect, Description: "Connecter WhatsApp"},
		{Command: CmdStatus, Description: "Vérifier votre statut"},
		{Command: CmdWhatsAppSettings, Description: "Paramètres WhatsApp"},
		{Command: CmdHelp, Description: "Aide"},
	}
}

// reply sends text as MarkdownV2 with every special character escaped.
func (b *Bot) reply(ctx context.Context, chatID int64, text string, markup interface{}) {
	msg := telegram.Message{
		ChatID:      chatID,
		Text:        tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, text),
		ParseMode:   tgbotapi.ModeMarkdownV2,
		ReplyMarkup: markup,
	}
	if err := telegram.SendLongText(ctx, b.sender, msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

func (b *Bot) sendError(ctx context.Context, chatID int64, text string, markup interface{}) {
	b.reply(ctx, chatID, "❌ "+text, markup)
}

// backendFailed reports an unreachable or failing backend with the generic
// message.
func (b *Bot) backendFailed(ctx context.Context, chatID int64, op string, err error, markup interface{}) {
	if errors.Is(err, api.ErrUnavailable) {
		b.logger.Warn("Backend unavailable",
			zap.Int64("chat_id", chatID),
			zap.String("op", op),
			zap.Error(err))
	} else {
		b.logger.Error("Backend call failed",
			zap.Int64("chat_id", chatID),
			zap.String("op", op),
			zap.Error(err))
	}
	b.sendError(ctx, chatID, msgServerDown, markup)
}

func (b *Bot) setPending(ctx context.Context, chatID int64, p PendingInput) {
	if err := b.state.SetPending(ctx, chatID, p); err != nil {
		b.logger.Error("Failed to set pending input",
			zap.Int64("chat_id", chatID),
			zap.Stringer("pending", p),
			zap.Error(err))
	}
}

func senderName(msg *tgbotapi.Message) (firstName, username string) {
	if msg.From == nil {
		return "", ""
	}
	return msg.From.FirstName, msg.From.UserName
}
