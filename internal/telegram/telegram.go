package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	apiBaseURL = "https://api.telegram.org"
	timeout    = 10 * time.Second
)

var (
	ErrMissingToken  = errors.New("bot token is required")
	ErrMissingChatID = errors.New("chat ID is required")
)

// Client represents a Telegram Bot API client bound to one chat
type Client struct {
	botToken   string
	chatID     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string) (*Client, error) {
	if botToken == "" {
		return nil, ErrMissingToken
	}
	if chatID == "" {
		return nil, ErrMissingChatID
	}

	return &Client{
		botToken:   botToken,
		chatID:     chatID,
		baseURL:    apiBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// WithBaseURL points the client at another Bot API server
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendMessage sends an HTML formatted message to the configured chat
func (c *Client) SendMessage(ctx context.Context, text string) error {
	if text == "" {
		return fmt.Errorf("message text is required")
	}

	payload, err := json.Marshal(sendMessageRequest{
		ChatID:                c.chatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var result apiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("telegram API error (status %d)", resp.StatusCode)
		}
		return fmt.Errorf("parsing response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !result.OK {
		return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, result.Description)
	}

	return nil
}
