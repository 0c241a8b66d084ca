package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"novamd-bot/internal/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap/zaptest"
)

type fakeSender struct {
	mu       sync.Mutex
	texts    []telegram.Message
	photos   []telegram.Photo
	textErrs []error
	photoErr error
}

// SendText rejects text over the Bot API limit the way Telegram does.
func (f *fakeSender) SendText(_ context.Context, m telegram.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if utf8.RuneCountInString(m.Text) > telegram.MaxMessageLength {
		return errors.New("Bad Request: message is too long")
	}
	f.texts = append(f.texts, m)
	if len(f.textErrs) > 0 {
		err := f.textErrs[0]
		f.textErrs = f.textErrs[1:]
		return err
	}
	return nil
}

func (f *fakeSender) SendPhoto(_ context.Context, p telegram.Photo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.photoErr != nil {
		return f.photoErr
	}
	f.photos = append(f.photos, p)
	return nil
}

func (f *fakeSender) SendDocument(context.Context, telegram.Document) error {
	return nil
}

func newTestServer(t *testing.T, sender telegram.Sender) http.Handler {
	t.Helper()
	return NewServer(":0", sender, zaptest.NewLogger(t)).Routes()
}

func post(t *testing.T, h http.Handler, path, body string) (int, response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec.Code, resp
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, &fakeSender{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"OK"`) {
		t.Errorf("health = %d %s", rec.Code, rec.Body.String())
	}
}

func TestSendMessage(t *testing.T) {
	sender := &fakeSender{}
	h := newTestServer(t, sender)

	code, resp := post(t, h, "/webhook/send-message", `{"user_id": 42, "message": "*hi*"}`)

	if code != http.StatusOK || !resp.Success || resp.UserID != "42" || resp.Timestamp == "" {
		t.Fatalf("response = %d %+v", code, resp)
	}
	if len(sender.texts) != 1 || sender.texts[0].ChatID != 42 || sender.texts[0].ParseMode != tgbotapi.ModeMarkdownV2 {
		t.Errorf("texts = %+v", sender.texts)
	}
}

func TestSendMessage_FallsBackToPlainText(t *testing.T) {
	sender := &fakeSender{textErrs: []error{errors.New("can't parse entities")}}
	h := newTestServer(t, sender)

	code, resp := post(t, h, "/webhook/send-message", `{"user_id": "42", "message": "a_b"}`)

	if code != http.StatusOK || !resp.Success {
		t.Fatalf("response = %d %+v", code, resp)
	}
	if len(sender.texts) != 2 || sender.texts[1].ParseMode != "" {
		t.Errorf("texts = %+v, want formatted then plain", sender.texts)
	}
}

func TestSendMessage_DeliveryFailure(t *testing.T) {
	sender := &fakeSender{textErrs: []error{errors.New("blocked"), errors.New("blocked")}}
	h := newTestServer(t, sender)

	code, resp := post(t, h, "/webhook/send-message", `{"user_id": "42", "message": "x"}`)

	if code != http.StatusInternalServerError || resp.Success || resp.Error == "" {
		t.Errorf("response = %d %+v", code, resp)
	}
}

func TestMissingFields(t *testing.T) {
	h := newTestServer(t, &fakeSender{})

	tests := []struct {
		path string
		body string
	}{
		{"/webhook/send-message", `{"message": "x"}`},
		{"/webhook/send-message", `{"user_id": "42"}`},
		{"/webhook/send-message", `{"user_id": "abc", "message": "x"}`},
		{"/webhook/send-qr", `{"user_id": "42"}`},
		{"/webhook/send-pairing", `{"user_id": "42", "phone_number": "237600000000"}`},
		{"/webhook/send-pairing", `not json`},
	}

	for _, tt := range tests {
		code, resp := post(t, h, tt.path, tt.body)
		if code != http.StatusBadRequest || resp.Success || resp.Error == "" {
			t.Errorf("%s %s: response = %d %+v", tt.path, tt.body, code, resp)
		}
	}
}

func TestSendQR(t *testing.T) {
	sender := &fakeSender{}
	h := newTestServer(t, sender)

	code, resp := post(t, h, "/webhook/send-qr", `{"user_id": "42", "qr_code": "2@abc,def", "session_id": "s-1"}`)

	if code != http.StatusOK || !resp.Success || resp.SessionID != "s-1" {
		t.Fatalf("response = %d %+v", code, resp)
	}
	if len(sender.texts) != 1 || len(sender.photos) != 1 {
		t.Errorf("texts = %d photos = %d, want instructions then image", len(sender.texts), len(sender.photos))
	}
}

func TestSendQR_OversizedPayloadUsesTextFallback(t *testing.T) {
	sender := &fakeSender{}
	h := newTestServer(t, sender)

	payload := strings.Repeat("x", 5000)
	code, resp := post(t, h, "/webhook/send-qr", `{"user_id": 42, "qr_code": "`+payload+`"}`)

	if code != http.StatusOK || !resp.Success {
		t.Fatalf("response = %d %+v", code, resp)
	}
	if len(sender.photos) != 0 {
		t.Error("oversized payload should not produce an image")
	}
	if len(sender.texts) < 3 {
		t.Fatalf("texts = %d, want instructions and a split fallback", len(sender.texts))
	}
	var fallback strings.Builder
	for _, m := range sender.texts[1:] {
		fallback.WriteString(m.Text)
	}
	if !strings.Contains(fallback.String(), payload) {
		t.Error("fallback text does not carry the payload")
	}
}

func TestSendMessage_LongTextIsSplit(t *testing.T) {
	sender := &fakeSender{}
	h := newTestServer(t, sender)

	text := strings.Repeat("a", telegram.MaxMessageLength) + strings.Repeat("b", 100)
	code, resp := post(t, h, "/webhook/send-message", `{"user_id": "42", "message": "`+text+`"}`)

	if code != http.StatusOK || !resp.Success {
		t.Fatalf("response = %d %+v", code, resp)
	}
	if len(sender.texts) != 2 || sender.texts[0].Text+sender.texts[1].Text != text {
		t.Errorf("texts = %d, want the message in two parts", len(sender.texts))
	}
}

func TestSendQR_PhotoFailureUsesTextFallback(t *testing.T) {
	sender := &fakeSender{photoErr: errors.New("photo too big")}
	h := newTestServer(t, sender)

	code, resp := post(t, h, "/webhook/send-qr", `{"user_id": "42", "qr_code": "2@abc"}`)

	if code != http.StatusOK || !resp.Success {
		t.Fatalf("response = %d %+v", code, resp)
	}
	if len(sender.texts) != 2 {
		t.Errorf("texts = %d, want instructions and fallback", len(sender.texts))
	}
}

func TestSendPairing(t *testing.T) {
	sender := &fakeSender{}
	h := newTestServer(t, sender)

	code, resp := post(t, h, "/webhook/send-pairing", `{"user_id": "42", "pairing_code": "ABCD-1234", "phone_number": "237600000000"}`)

	if code != http.StatusOK || !resp.Success {
		t.Fatalf("response = %d %+v", code, resp)
	}
	if len(sender.texts) != 1 || !strings.Contains(sender.texts[0].Text, `ABCD\-1234`) {
		t.Errorf("texts = %+v", sender.texts)
	}
}

type panicSender struct{ fakeSender }

func (p *panicSender) SendText(context.Context, telegram.Message) error {
	panic("sender exploded")
}

func TestPanicReturnsJSON500(t *testing.T) {
	h := newTestServer(t, &panicSender{})

	code, resp := post(t, h, "/webhook/send-message", `{"user_id": "42", "message": "x"}`)

	if code != http.StatusInternalServerError || resp.Success || !strings.Contains(resp.Error, "sender exploded") {
		t.Errorf("response = %d %+v", code, resp)
	}
}
