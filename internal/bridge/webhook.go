package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"novamd-bot/internal/bot"
	"novamd-bot/internal/metrics"
	"novamd-bot/internal/telegram"
	"novamd-bot/pkg/api"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	kindMessage = "message"
	kindQR      = "qr"
	kindPairing = "pairing"

	outcomeOK       = "ok"
	outcomeFallback = "fallback"
	outcomeError    = "error"

	qrImageName = "whatsapp-qr.png"
	qrCaption   = "Scannez ce QR code avec WhatsApp 📲"
)

type sendMessageRequest struct {
	UserID  api.FlexString `json:"user_id"`
	Message string         `json:"message"`
}

type sendQRRequest struct {
	UserID    api.FlexString `json:"user_id"`
	QRCode    string         `json:"qr_code"`
	SessionID string         `json:"session_id"`
}

type sendPairingRequest struct {
	UserID      api.FlexString `json:"user_id"`
	PairingCode string         `json:"pairing_code"`
	PhoneNumber string         `json:"phone_number"`
}

type response struct {
	Success   bool   `json:"success"`
	UserID    string `json:"user_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

func failure(msg string, now time.Time) response {
	return response{Success: false, Error: msg, Timestamp: now.UTC().Format(time.RFC3339)}
}

func (s *Server) ok(userID, sessionID string) response {
	return response{Success: true, UserID: userID, SessionID: sessionID, Timestamp: s.now().UTC().Format(time.RFC3339)}
}

var errBadRequest = errors.New("bad request")

func decode(r *http.Request, w http.ResponseWriter, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}

func parseChatID(id api.FlexString) (int64, error) {
	raw := strings.TrimSpace(id.String())
	if raw == "" {
		return 0, fmt.Errorf("%w: user_id is required", errBadRequest)
	}
	chatID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid user_id %q", errBadRequest, raw)
	}
	return chatID, nil
}

func (s *Server) badRequest(w http.ResponseWriter, err error) {
	msg := strings.TrimPrefix(err.Error(), errBadRequest.Error()+": ")
	s.writeJSON(w, http.StatusBadRequest, failure(msg, s.now()))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"service":   "telegram-bridge",
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := decode(r, w, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	chatID, err := parseChatID(req.UserID)
	if err != nil {
		s.badRequest(w, err)
		return
	}
	if req.Message == "" {
		s.badRequest(w, errors.New("message is required"))
		return
	}

	outcome, err := s.deliverMessage(r.Context(), chatID, req.Message)
	metrics.IncDelivery(kindMessage, outcome)
	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, failure(err.Error(), s.now()))
		return
	}
	s.writeJSON(w, http.StatusOK, s.ok(req.UserID.String(), ""))
}

// deliverMessage sends text as MarkdownV2 and, if Telegram rejects the
// markup, once more as plain text. Text over the message limit goes out in
// several messages, each with its own plain-text retry.
func (s *Server) deliverMessage(ctx context.Context, chatID int64, text string) (string, error) {
	outcome := outcomeOK
	for _, chunk := range telegram.SplitText(text, telegram.MaxMessageLength) {
		err := s.sender.SendText(ctx, telegram.Message{
			ChatID:    chatID,
			Text:      chunk,
			ParseMode: tgbotapi.ModeMarkdownV2,
		})
		if err == nil {
			continue
		}

		s.logger.Warn("Formatted delivery failed, retrying as plain text",
			zap.Int64("chat_id", chatID),
			zap.Error(err))

		if err := s.sender.SendText(ctx, telegram.Message{ChatID: chatID, Text: chunk}); err != nil {
			return outcomeError, fmt.Errorf("deliver message: %w", err)
		}
		outcome = outcomeFallback
	}
	return outcome, nil
}

func (s *Server) handleSendQR(w http.ResponseWriter, r *http.Request) {
	var req sendQRRequest
	if err := decode(r, w, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	chatID, err := parseChatID(req.UserID)
	if err != nil {
		s.badRequest(w, err)
		return
	}
	if req.QRCode == "" {
		s.badRequest(w, errors.New("qr_code is required"))
		return
	}

	outcome, err := s.deliverQR(r.Context(), chatID, req.QRCode)
	metrics.IncDelivery(kindQR, outcome)
	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, failure(err.Error(), s.now()))
		return
	}

	s.logger.Info("QR code delivered",
		zap.Int64("chat_id", chatID),
		zap.String("session_id", req.SessionID),
		zap.String("outcome", outcome))
	s.writeJSON(w, http.StatusOK, s.ok(req.UserID.String(), req.SessionID))
}

// deliverQR sends the instructions followed by the rendered QR. A payload
// that cannot be rendered or sent as a photo is delivered as text instead,
// split across messages when it exceeds the message limit.
func (s *Server) deliverQR(ctx context.Context, chatID int64, payload string) (string, error) {
	if err := s.sender.SendText(ctx, telegram.Message{
		ChatID:    chatID,
		Text:      tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, bot.QRInstructions("")),
		ParseMode: tgbotapi.ModeMarkdownV2,
	}); err != nil {
		s.logger.Warn("Failed to send QR instructions",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}

	png, err := telegram.RenderQR(payload)
	if err == nil {
		err = s.sender.SendPhoto(ctx, telegram.Photo{
			ChatID:  chatID,
			Name:    qrImageName,
			Data:    png,
			Caption: qrCaption,
		})
	}
	if err == nil {
		return outcomeOK, nil
	}

	s.logger.Warn("QR image delivery failed, sending payload as text",
		zap.Int64("chat_id", chatID),
		zap.Int("payload_len", len(payload)),
		zap.Error(err))

	if err := telegram.SendLongText(ctx, s.sender, telegram.Message{ChatID: chatID, Text: bot.QRFallback(payload)}); err != nil {
		return outcomeError, fmt.Errorf("deliver qr: %w", err)
	}
	return outcomeFallback, nil
}

func (s *Server) handleSendPairing(w http.ResponseWriter, r *http.Request) {
	var req sendPairingRequest
	if err := decode(r, w, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	chatID, err := parseChatID(req.UserID)
	if err != nil {
		s.badRequest(w, err)
		return
	}
	if req.PairingCode == "" {
		s.badRequest(w, errors.New("pairing_code is required"))
		return
	}

	err = telegram.SendLongText(r.Context(), s.sender, telegram.Message{
		ChatID:    chatID,
		Text:      tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, bot.PairingInstructions(req.PairingCode)),
		ParseMode: tgbotapi.ModeMarkdownV2,
	})
	if err != nil {
		metrics.IncDelivery(kindPairing, outcomeError)
		s.writeJSON(w, http.StatusInternalServerError, failure(fmt.Sprintf("deliver pairing code: %v", err), s.now()))
		return
	}

	metrics.IncDelivery(kindPairing, outcomeOK)
	s.logger.Info("Pairing code delivered", zap.Int64("chat_id", chatID))
	s.writeJSON(w, http.StatusOK, s.ok(req.UserID.String(), ""))
}
