package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"storefront/internal/usecase"

	"go.uber.org/zap"
)

// HTTPMailer はメールAPI（Resend互換の POST /emails）に送る。
type HTTPMailer struct {
	endpoint string
	apiKey   string
	from     string
	client   *http.Client
}

func NewHTTPMailer(endpoint, apiKey, from string) *HTTPMailer {
	return &HTTPMailer{
		endpoint: endpoint,
		apiKey:   apiKey,
		from:     from,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

func (m *HTTPMailer) Send(ctx context.Context, mail usecase.Mail) error {
	body, err := json.Marshal(sendRequest{
		From:    m.from,
		To:      mail.To,
		Subject: mail.Subject,
		HTML:    mail.HTML,
		Text:    mail.Text,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal mail: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("mail request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("mail api returned status %d: %s", resp.StatusCode, string(b))
	}
	return nil
}

// LogMailer は送らずにログに出すだけ（開発用）
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, mail usecase.Mail) error {
	m.log.Info("mail (not sent)",
		zap.Strings("to", mail.To),
		zap.String("subject", mail.Subject),
	)
	return nil
}

// 設定からどちらかを選ぶ
func New(endpoint, apiKey, from string, log *zap.Logger) usecase.Mailer {
	if endpoint == "" {
		return NewLogMailer(log)
	}
	return NewHTTPMailer(endpoint, apiKey, from)
}
