// Package llm wraps the external text-completion service behind a
// narrow interface so prompt assembly stays testable without the
// network. The service has no contract beyond "may fail, may be slow";
// every failure mode is reported as a *models.ServiceError.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"budgetlens/internal/models"
)

type Config struct {
	APIKey   string
	Model    string
	Endpoint string
	Timeout  time.Duration
}

// Client calls the Gemini generateContent API.
type Client struct {
	config Config
	client *http.Client
}

// New creates a completion client. Zero config fields get defaults.
func New(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://generativelanguage.googleapis.com/v1beta/models"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// Complete sends a prompt and returns the generated text. The request
// honors ctx for cancellation on top of the client timeout.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.config.Endpoint, c.config.Model, c.config.APIKey)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", &models.ServiceError{Reason: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &models.ServiceError{Reason: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &models.ServiceError{Reason: "request failed", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &models.ServiceError{Reason: "read response", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &models.ServiceError{Reason: fmt.Sprintf("status %d", resp.StatusCode)}
	}

	var gen generateResponse
	if err := json.Unmarshal(respBody, &gen); err != nil {
		return "", &models.ServiceError{Reason: "decode response", Err: err}
	}
	if gen.Error != nil {
		return "", &models.ServiceError{Reason: fmt.Sprintf("API error %d: %s", gen.Error.Code, gen.Error.Message)}
	}
	if len(gen.Candidates) == 0 || len(gen.Candidates[0].Content.Parts) == 0 {
		return "", &models.ServiceError{Reason: "empty response"}
	}
	return gen.Candidates[0].Content.Parts[0].Text, nil
}
