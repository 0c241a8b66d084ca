package state_manager

import (
	"context"
	"fmt"
	"time"

	"novamd-bot/internal/bot"
	"novamd-bot/internal/storage/redis"
)

// UserDialogStateManager stores pending-input flags in Redis so they
// survive a restart within the key TTL.
type UserDialogStateManager struct {
	redisStorage RedisStorage
	now          func() time.Time
}

var _ bot.StateStore = (*UserDialogStateManager)(nil)

func New(redisStorage RedisStorage) *UserDialogStateManager {
	return &UserDialogStateManager{redisStorage: redisStorage, now: time.Now}
}

func (u *UserDialogStateManager) Pending(ctx context.Context, chatID int64) (bot.PendingInput, error) {
	state, err := u.redisStorage.GetUserDialogState(ctx, chatID)
	if err != nil {
		return bot.PendingNone, fmt.Errorf("redisStorage.GetUserDialogState failed: %w", err)
	}

	pending, err := bot.ParsePendingInput(state.Step)
	if err != nil {
		// Unknown steps are left over from an older release; treat as idle.
		return bot.PendingNone, nil
	}
	return pending, nil
}

func (u *UserDialogStateManager) SetPending(ctx context.Context, chatID int64, p bot.PendingInput) error {
	if p == bot.PendingNone {
		return u.ClearPending(ctx, chatID)
	}

	state := &redis.UserState{Step: p.String(), UpdatedAt: u.now().UTC()}
	if err := u.redisStorage.SetUserDialogState(ctx, chatID, state); err != nil {
		return fmt.Errorf("redisStorage.SetUserDialogState failed: %w", err)
	}
	return nil
}

func (u *UserDialogStateManager) ClearPending(ctx context.Context, chatID int64) error {
	if err := u.redisStorage.DropUserDialogState(ctx, chatID); err != nil {
		return fmt.Errorf("redisStorage.DropUserDialogState failed: %w", err)
	}
	return nil
}
