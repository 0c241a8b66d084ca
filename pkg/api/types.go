package api

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// FlexString decodes a JSON string or number into a string. The backend is
// not consistent about ids: chat ids come back both as "123" and 123.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

type RegisterUserRequest struct {
	ChatID   string `json:"chat_id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

type RegisterUserResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type ValidateCodeRequest struct {
	ChatID string `json:"chat_id"`
	Code   string `json:"code"`
}

// CodeValidation is the answer to POST /api/auth/validate-code.
// Plan defaults to "monthly" and Duration to 30 days when omitted.
type CodeValidation struct {
	Valid     bool   `json:"valid"`
	Plan      string `json:"plan"`
	Duration  int    `json:"duration"`
	ExpiresAt string `json:"expiresAt"`
	Reason    string `json:"reason"`
}

func (v *CodeValidation) applyDefaults() {
	if v.Plan == "" {
		v.Plan = "monthly"
	}
	if v.Duration == 0 {
		v.Duration = 30
	}
}

// Access is the subscription status of a chat. EndDate is passed through
// verbatim; an empty EndDate renders as "N/A".
type Access struct {
	HasAccess bool   `json:"hasAccess"`
	EndDate   string `json:"endDate"`
	Plan      string `json:"plan"`
	DaysLeft  int    `json:"daysLeft"`
	Reason    string `json:"reason"`
}

type GenerateCodeRequest struct {
	Plan     string `json:"plan"`
	Duration *int   `json:"duration"`
}

type GeneratedCode struct {
	Success   bool   `json:"success"`
	Code      string `json:"code"`
	Plan      string `json:"plan"`
	Duration  int    `json:"duration"`
	ExpiresAt string `json:"expiresAt"`
	Error     string `json:"error"`
}

type SessionStats struct {
	Total              int `json:"total"`
	Connected          int `json:"connected"`
	PersistentSessions int `json:"persistentSessions"`
}

type ResourceStats struct {
	Status string `json:"status"`
}

type SystemStats struct {
	ActiveSubs    int           `json:"activeSubs"`
	TotalCodes    int           `json:"totalCodes"`
	UsedCodes     int           `json:"usedCodes"`
	SessionStats  SessionStats  `json:"sessionStats"`
	Version       FlexString    `json:"version"`
	Uptime        float64       `json:"uptime"`
	ResourceStats ResourceStats `json:"resourceStats"`
}

type CreateSessionRequest struct {
	ChatID      string `json:"chat_id"`
	UserName    string `json:"user_name"`
	Method      string `json:"method"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Persistent  bool   `json:"persistent"`
}

type SessionResult struct {
	Success   bool   `json:"success"`
	SessionID string `json:"session_id"`
	QRCode    string `json:"qr_code"`
	Error     string `json:"error"`
}

// Session is the WhatsApp session linked to a chat.
type Session struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// Connected reports whether the device link is live.
func (s *Session) Connected() bool {
	return s != nil && s.Status == "connected"
}

// DaysSince returns whole days elapsed since CreatedAt, or 0 if unknown.
func (s *Session) DaysSince(now time.Time) int {
	if s == nil || s.CreatedAt == "" {
		return 0
	}
	created, err := time.Parse(time.RFC3339, s.CreatedAt)
	if err != nil {
		return 0
	}
	d := now.Sub(created)
	if d < 0 {
		return 0
	}
	return int(d.Hours() / 24)
}

type SessionsHealth struct {
	Total     int `json:"total"`
	Connected int `json:"connected"`
}

type CommandsInfo struct {
	Total      int            `json:"total"`
	Categories map[string]int `json:"categories"`
}

type User struct {
	ChatID    FlexString `json:"chat_id"`
	FirstName string     `json:"first_name"`
	Username  string     `json:"username"`
	Plan      string     `json:"plan"`
	EndDate   string     `json:"end_date"`
}

// WhatsAppSettings mirrors the bot behaviour flags on the WhatsApp side.
// An empty AllowedUsers list means everyone may use the bot.
type WhatsAppSettings struct {
	SilentMode   bool     `json:"silent_mode"`
	PrivateMode  bool     `json:"private_mode"`
	AllowedUsers []string `json:"allowed_users"`
}

// SettingsUpdate carries only the fields that change. AllowedUsers is sent
// when non-nil, including an explicit empty list.
type SettingsUpdate struct {
	SilentMode   *bool
	PrivateMode  *bool
	AllowedUsers []string
}

func (u SettingsUpdate) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 3)
	if u.SilentMode != nil {
		m["silent_mode"] = *u.SilentMode
	}
	if u.PrivateMode != nil {
		m["private_mode"] = *u.PrivateMode
	}
	if u.AllowedUsers != nil {
		m["allowed_users"] = u.AllowedUsers
	}
	return json.Marshal(m)
}

type OperationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

type UpdateCheck struct {
	UpdateAvailable bool       `json:"updateAvailable"`
	CurrentVersion  FlexString `json:"currentVersion"`
	LatestVersion   FlexString `json:"latestVersion"`
	Changelog       string     `json:"changelog"`
}

type UpgradeResult struct {
	Success bool       `json:"success"`
	Version FlexString `json:"version"`
	Message string     `json:"message"`
	Error   string     `json:"error"`
}

type BotRegistration struct {
	BotID       string `json:"bot_id"`
	BotUsername string `json:"bot_username"`
	WebhookURL  string `json:"webhook_url"`
}

type HealthStatus struct {
	Status string `json:"status"`
}

// FormatChatID renders a chat id the way the backend keys users.
func FormatChatID(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}
