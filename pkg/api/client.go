package api

// BACKEND API CLIENT

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Observer is notified once per backend call with the operation name,
// the outcome ("ok" or "error") and the call duration.
type Observer func(op, outcome string, elapsed time.Duration)

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithObserver(o Observer) Option {
	return func(c *Client) { c.observe = o }
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	observe    Observer
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) RegisterUser(ctx context.Context, chatID int64, name, username string) (*RegisterUserResult, error) {
	var out RegisterUserResult
	err := c.do(ctx, "register_user", http.MethodPost, "/api/users/register", RegisterUserRequest{
		ChatID:   FormatChatID(chatID),
		Name:     name,
		Username: username,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ValidateCode(ctx context.Context, chatID int64, code string) (*CodeValidation, error) {
	var out CodeValidation
	err := c.do(ctx, "validate_code", http.MethodPost, "/api/auth/validate-code", ValidateCodeRequest{
		ChatID: FormatChatID(chatID),
		Code:   code,
	}, &out)
	if err != nil {
		return nil, err
	}
	out.applyDefaults()
	return &out, nil
}

func (c *Client) CheckAccess(ctx context.Context, chatID int64) (*Access, error) {
	var out Access
	path := "/api/auth/access/" + url.PathEscape(FormatChatID(chatID))
	if err := c.do(ctx, "check_access", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateCode asks the backend for a new access code. A nil duration lets
// the backend pick the plan's default.
func (c *Client) GenerateCode(ctx context.Context, plan string, duration *int) (*GeneratedCode, error) {
	var out GeneratedCode
	err := c.do(ctx, "generate_code", http.MethodPost, "/api/admin/generate-code", GenerateCodeRequest{
		Plan:     plan,
		Duration: duration,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Stats(ctx context.Context) (*SystemStats, error) {
	var out SystemStats
	if err := c.do(ctx, "stats", http.MethodGet, "/api/admin/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionResult, error) {
	var out SessionResult
	if err := c.do(ctx, "create_session", http.MethodPost, "/api/sessions/create", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSessionWithPhone(ctx context.Context, req CreateSessionRequest) (*SessionResult, error) {
	var out SessionResult
	if err := c.do(ctx, "create_session_with_phone", http.MethodPost, "/api/sessions/create-with-phone", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserSession returns the chat's WhatsApp session, or nil when the backend
// answers with null.
func (c *Client) UserSession(ctx context.Context, chatID int64) (*Session, error) {
	var out *Session
	path := "/api/sessions/user/" + url.PathEscape(FormatChatID(chatID))
	if err := c.do(ctx, "user_session", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SessionsHealth(ctx context.Context) (*SessionsHealth, error) {
	var out SessionsHealth
	if err := c.do(ctx, "sessions_health", http.MethodGet, "/api/sessions/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CommandsInfo(ctx context.Context) (*CommandsInfo, error) {
	var out CommandsInfo
	if err := c.do(ctx, "commands_info", http.MethodGet, "/api/commands/info", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ActiveUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, "active_users", http.MethodGet, "/api/users/active", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) WhatsAppSettings(ctx context.Context, chatID int64) (*WhatsAppSettings, error) {
	var out WhatsAppSettings
	path := "/api/user/" + url.PathEscape(FormatChatID(chatID)) + "/whatsapp-settings"
	if err := c.do(ctx, "get_settings", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateWhatsAppSettings(ctx context.Context, chatID int64, upd SettingsUpdate) (*OperationResult, error) {
	var out OperationResult
	path := "/api/user/" + url.PathEscape(FormatChatID(chatID)) + "/whatsapp-settings"
	if err := c.do(ctx, "update_settings", http.MethodPost, path, upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CheckUpdates(ctx context.Context) (*UpdateCheck, error) {
	var out UpdateCheck
	if err := c.do(ctx, "check_updates", http.MethodGet, "/api/updates/check", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Upgrade(ctx context.Context, force bool) (*UpgradeResult, error) {
	path := "/api/updates/upgrade"
	if force {
		path += "?force=true"
	}
	var out UpgradeResult
	if err := c.do(ctx, "upgrade", http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConnectBot announces the bot and its webhook bridge URL to the backend.
func (c *Client) ConnectBot(ctx context.Context, reg BotRegistration) (*OperationResult, error) {
	var out OperationResult
	if err := c.do(ctx, "connect_bot", http.MethodPost, "/api/bot/connect", reg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.do(ctx, "health", http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) (err error) {
	start := time.Now()
	defer func() {
		if c.observe == nil {
			return
		}
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		c.observe(op, outcome, time.Since(start))
	}()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Backend request failed",
			zap.String("op", op),
			zap.String("request_id", requestID),
			zap.Error(err))
		return &Error{Op: op, Err: fmt.Errorf("do request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("Backend returned unexpected status",
			zap.String("op", op),
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode))
		_, _ = io.Copy(io.Discard, resp.Body)
		return &Error{Op: op, StatusCode: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
