// Package email — исходящие письма через транзакционный HTTP API
// (Resend-совместимый: POST /emails с {from, to[], subject, html}).
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Mailer — интерфейс отправки письма (для подмены моком в тестах).
type Mailer interface {
	Send(ctx context.Context, to []string, subject, html string) error
}

// Client отправляет письма через HTTP API. Без API-ключа работает как no-op
// с логом — удобно для разработки без доменной верификации.
type Client struct {
	baseURL    string
	apiKey     string
	from       string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, from string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		from:    from,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Enabled сообщает, настроена ли реальная отправка.
func (c *Client) Enabled() bool { return c.apiKey != "" }

type sendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (c *Client) Send(ctx context.Context, to []string, subject, html string) error {
	if !c.Enabled() {
		log.Printf("email: would send to %v: %s", to, subject)
		return nil
	}
	body, err := json.Marshal(sendPayload{
		From:    c.from,
		To:      to,
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("email: marshal: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("email: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("email: dispatch failed: status %d: %s", resp.StatusCode, detail)
	}
	return nil
}
