package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

const telegramAPI = "https://api.telegram.org"

// TelegramNotifier pushes operator alerts through the Telegram Bot API.
type TelegramNotifier struct {
	BotToken string
	ChatID   string
	APIBase  string
	Client   *http.Client
	Logger   *logrus.Entry
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// NewTelegramNotifier creates a notifier. proxyURL may be empty.
func NewTelegramNotifier(botToken, chatID, proxyURL string, logger *logrus.Logger) *TelegramNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &TelegramNotifier{
		BotToken: botToken,
		ChatID:   chatID,
		APIBase:  telegramAPI,
		Client:   &http.Client{Timeout: 15 * time.Second, Transport: transport},
		Logger:   logger.WithField("component", "telegram"),
	}
}

// Enabled reports whether both token and chat id are configured.
func (t *TelegramNotifier) Enabled() bool {
	return t != nil && t.BotToken != "" && t.ChatID != ""
}

// Send delivers one HTML-formatted message.
func (t *TelegramNotifier) Send(ctx context.Context, text string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:                t.ChatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	endpoint := t.APIBase + "/bot" + t.BotToken + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return fmt.Errorf("post message: %w", err)
	}
	defer resp.Body.Close()

	// Telegram reports failures as {"ok":false,...}; an empty 200 body counts as delivered.
	var ar apiResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&ar)
	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && ar.Description != "" {
			return fmt.Errorf("telegram: %d %s", resp.StatusCode, ar.Description)
		}
		return fmt.Errorf("telegram: status %d", resp.StatusCode)
	}
	if decodeErr == nil && !ar.OK && ar.Description != "" {
		return fmt.Errorf("telegram: %s", ar.Description)
	}
	return nil
}

// SendWithRetry retries Send with exponential backoff starting at one second.
func (t *TelegramNotifier) SendWithRetry(ctx context.Context, text string, maxRetries int) error {
	var err error
	for attempt := 0; ; attempt++ {
		if err = t.Send(ctx, text); err == nil {
			return nil
		}
		if attempt >= maxRetries {
			return fmt.Errorf("telegram gave up after %d attempts: %w", attempt+1, err)
		}
		wait := time.Second << uint(attempt)
		t.Logger.WithError(err).WithField("attempt", attempt+1).Warnf("send failed, retrying in %v", wait)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}
