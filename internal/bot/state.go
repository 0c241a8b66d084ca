package bot

import (
	"context"
	"fmt"
	"sync"
)

// PendingInput is the per-chat "waiting for X" flag. At most one is active.
type PendingInput int

const (
	PendingNone PendingInput = iota
	PendingAccessCode
	PendingPhoneNumber
	PendingUpdateConfirmation
)

var pendingNames = map[PendingInput]string{
	PendingNone:               "idle",
	PendingAccessCode:         "awaiting_code",
	PendingPhoneNumber:        "awaiting_phone",
	PendingUpdateConfirmation: "awaiting_update_confirmation",
}

func (p PendingInput) String() string {
	if name, ok := pendingNames[p]; ok {
		return name
	}
	return fmt.Sprintf("pending(%d)", int(p))
}

func ParsePendingInput(s string) (PendingInput, error) {
	if s == "" {
		return PendingNone, nil
	}
	for p, name := range pendingNames {
		if name == s {
			return p, nil
		}
	}
	return PendingNone, fmt.Errorf("unknown pending input %q", s)
}

// InputOutcome is what a processor reports about the text it consumed.
type InputOutcome int

const (
	// InputRejected means the text failed local format validation.
	InputRejected InputOutcome = iota
	// InputProcessed means the text was acted on, whatever the result.
	InputProcessed
)

// After returns the flag to keep once a text message has been consumed.
// Code and phone entry stay armed on a format rejection so the user can
// retry; everything else returns to idle.
func (p PendingInput) After(o InputOutcome) PendingInput {
	if o == InputRejected && (p == PendingAccessCode || p == PendingPhoneNumber) {
		return p
	}
	return PendingNone
}

// MemoryStateStore keeps pending flags in process memory.
type MemoryStateStore struct {
	mu      sync.RWMutex
	pending map[int64]PendingInput
}

var _ StateStore = (*MemoryStateStore)(nil)

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{pending: make(map[int64]PendingInput)}
}

func (s *MemoryStateStore) Pending(_ context.Context, chatID int64) (PendingInput, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending[chatID], nil
}

func (s *MemoryStateStore) SetPending(ctx context.Context, chatID int64, p PendingInput) error {
	if p == PendingNone {
		return s.ClearPending(ctx, chatID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[chatID] = p
	return nil
}

func (s *MemoryStateStore) ClearPending(_ context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, chatID)
	return nil
}
