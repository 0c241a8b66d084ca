package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// newStubAPI answers getMe and rejects every sendMessage as a markup error.
func newStubAPI(t *testing.T) *tgbotapi.BotAPI {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/getMe") {
			w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"nova","username":"nova_bot"}}`))
			return
		}
		w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: can't parse entities"}`))
	}))
	t.Cleanup(srv.Close)

	api, err := tgbotapi.NewBotAPIWithClient("token", srv.URL+"/bot%s/%s", srv.Client())
	if err != nil {
		t.Fatalf("NewBotAPIWithClient failed: %v", err)
	}
	return api
}

func TestSendText_RejectionLoggedBelowWarn(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sender := NewBotSender(newStubAPI(t), zap.New(core))

	err := sender.SendText(context.Background(), Message{
		ChatID:    42,
		Text:      "Hello.",
		ParseMode: tgbotapi.ModeMarkdownV2,
	})
	if err == nil || !strings.Contains(err.Error(), "can't parse entities") {
		t.Fatalf("SendText error = %v, want the Telegram rejection", err)
	}

	for _, entry := range logs.All() {
		if entry.Level >= zapcore.WarnLevel {
			t.Errorf("unexpected %s log %q; the caller owns the failure", entry.Level, entry.Message)
		}
	}
}
