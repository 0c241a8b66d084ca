package redis

import "time"

// UserState is the per-chat conversation record kept under state:<chat_id>.
type UserState struct {
	Step      string    `json:"step"`
	UpdatedAt time.Time `json:"updated_at"`
}
