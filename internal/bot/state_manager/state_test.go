package state_manager

import (
	"context"
	"errors"
	"testing"

	"novamd-bot/internal/bot"
	"novamd-bot/internal/storage/redis"
)

type fakeRedis struct {
	states map[int64]*redis.UserState
	err    error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{states: make(map[int64]*redis.UserState)}
}

func (f *fakeRedis) GetUserDialogState(_ context.Context, chatID int64) (*redis.UserState, error) {
	if f.err != nil {
		return nil, f.err
	}
	if s, ok := f.states[chatID]; ok {
		return s, nil
	}
	return &redis.UserState{}, nil
}

func (f *fakeRedis) SetUserDialogState(_ context.Context, chatID int64, state *redis.UserState) error {
	if f.err != nil {
		return f.err
	}
	f.states[chatID] = state
	return nil
}

func (f *fakeRedis) DropUserDialogState(_ context.Context, chatID int64) error {
	if f.err != nil {
		return f.err
	}
	delete(f.states, chatID)
	return nil
}

func TestUserDialogStateManager_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newFakeRedis()
	m := New(kv)

	if p, err := m.Pending(ctx, 7); err != nil || p != bot.PendingNone {
		t.Fatalf("Pending() on empty store = %v, %v", p, err)
	}

	if err := m.SetPending(ctx, 7, bot.PendingPhoneNumber); err != nil {
		t.Fatalf("SetPending failed: %v", err)
	}
	if got := kv.states[7].Step; got != "awaiting_phone" {
		t.Errorf("stored step = %q, want awaiting_phone", got)
	}
	if kv.states[7].UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set")
	}

	p, err := m.Pending(ctx, 7)
	if err != nil || p != bot.PendingPhoneNumber {
		t.Fatalf("Pending() = %v, %v, want awaiting_phone", p, err)
	}

	if err := m.SetPending(ctx, 7, bot.PendingNone); err != nil {
		t.Fatalf("SetPending(none) failed: %v", err)
	}
	if _, ok := kv.states[7]; ok {
		t.Error("PendingNone should drop the key")
	}
}

func TestUserDialogStateManager_UnknownStepIsIdle(t *testing.T) {
	kv := newFakeRedis()
	kv.states[1] = &redis.UserState{Step: "dimensions"}

	p, err := New(kv).Pending(context.Background(), 1)
	if err != nil || p != bot.PendingNone {
		t.Errorf("Pending() = %v, %v, want idle", p, err)
	}
}

func TestUserDialogStateManager_StorageError(t *testing.T) {
	boom := errors.New("connection refused")
	kv := newFakeRedis()
	kv.err = boom
	m := New(kv)

	if _, err := m.Pending(context.Background(), 1); !errors.Is(err, boom) {
		t.Errorf("Pending() error = %v, want wrapped %v", err, boom)
	}
	if err := m.SetPending(context.Background(), 1, bot.PendingAccessCode); !errors.Is(err, boom) {
		t.Errorf("SetPending() error = %v, want wrapped %v", err, boom)
	}
}
