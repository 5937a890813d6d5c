// Package notify implements the delivery channels behind repository.Notifier.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"VaderBoot/internal/domain/models"
	domrepo "VaderBoot/internal/domain/repository"
	xhttp "VaderBoot/pkg/http"
)

// TelegramConfig holds the bot credentials and endpoint.
type TelegramConfig struct {
	BotToken string
	ChatID   string
	BaseURL  string
	Timeout  time.Duration
}

// TelegramNotifier sends the rendered report with the Bot API sendMessage call.
// Delivery is attempted once.
type TelegramNotifier struct {
	token   string
	chatID  string
	baseURL string
	client  *xhttp.Client
}

var _ domrepo.Notifier = (*TelegramNotifier)(nil)

func NewTelegramNotifier(cfg TelegramConfig) *TelegramNotifier {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = "https://api.telegram.org"
	}
	return &TelegramNotifier{
		token:   cfg.BotToken,
		chatID:  cfg.ChatID,
		baseURL: base,
		client:  xhttp.NewClient(xhttp.WithTimeout(cfg.Timeout)),
	}
}

func (t *TelegramNotifier) Name() string { return "telegram" }

// Enabled reports whether a bot token is configured.
func (t *TelegramNotifier) Enabled() bool { return t.token != "" }

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (t *TelegramNotifier) Notify(ctx context.Context, n models.Notification) error {
	if !t.Enabled() {
		return fmt.Errorf("telegram: no bot token configured")
	}
	var resp telegramResponse
	err := t.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token),
		Body: map[string]string{
			"chat_id": t.chatID,
			"text":    n.Text,
		},
	}, &resp)
	if err != nil {
		return fmt.Errorf("telegram sendMessage: %w", redact(err, t.token))
	}
	if !resp.OK {
		return fmt.Errorf("telegram sendMessage: %s", resp.Description)
	}
	return nil
}

// redact keeps the bot token out of logged transport errors, which quote the URL.
func redact(err error, token string) error {
	if token == "" || !strings.Contains(err.Error(), token) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), token, "<token>"))
}
