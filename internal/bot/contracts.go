package bot

import (
	"context"

	"novamd-bot/pkg/api"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Backend is the subset of the backend REST API the router calls.
type Backend interface {
	RegisterUser(ctx context.Context, chatID int64, name, username string) (*api.RegisterUserResult, error)
	ValidateCode(ctx context.Context, chatID int64, code string) (*api.CodeValidation, error)
	CheckAccess(ctx context.Context, chatID int64) (*api.Access, error)
	GenerateCode(ctx context.Context, plan string, duration *int) (*api.GeneratedCode, error)
	Stats(ctx context.Context) (*api.SystemStats, error)
	CreateSession(ctx context.Context, req api.CreateSessionRequest) (*api.SessionResult, error)
	CreateSessionWithPhone(ctx context.Context, req api.CreateSessionRequest) (*api.SessionResult, error)
	UserSession(ctx context.Context, chatID int64) (*api.Session, error)
	SessionsHealth(ctx context.Context) (*api.SessionsHealth, error)
	CommandsInfo(ctx context.Context) (*api.CommandsInfo, error)
	ActiveUsers(ctx context.Context) ([]api.User, error)
	WhatsAppSettings(ctx context.Context, chatID int64) (*api.WhatsAppSettings, error)
	UpdateWhatsAppSettings(ctx context.Context, chatID int64, upd api.SettingsUpdate) (*api.OperationResult, error)
	CheckUpdates(ctx context.Context) (*api.UpdateCheck, error)
	Upgrade(ctx context.Context, force bool) (*api.UpgradeResult, error)
}

var _ Backend = (*api.Client)(nil)

// StateStore keeps the single pending-input flag of each chat.
type StateStore interface {
	Pending(ctx context.Context, chatID int64) (PendingInput, error)
	SetPending(ctx context.Context, chatID int64, p PendingInput) error
	ClearPending(ctx context.Context, chatID int64) error
}

// UpdateSource is satisfied by *tgbotapi.BotAPI.
type UpdateSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}
