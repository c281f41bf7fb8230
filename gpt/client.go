// Package gpt is the boundary to the description generator: it sends an
// image payload plus an instruction prompt to the OpenAI chat-completions
// endpoint and returns the free-form text, or an APIError when the
// generator itself reports failure. Retries and backoff are deliberately
// not implemented; callers treat a generator error as fatal to the run.
package gpt

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL   = "https://api.openai.com/v1"
	defaultMaxTokens = 300
)

// APIError is an explicit error response from the generator, as opposed to
// generated content. It aborts the whole run.
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("generator error: %s", e.Message)
}

// Client calls the chat-completions endpoint with vision payloads.
// The API key is passed in at construction; there is no package-level state.
type Client struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient builds a generator client for the given key and model.
func NewClient(apiKey, model string) *Client {
	return &Client{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: defaultBaseURL,
		HTTPClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type message struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type completionRequest struct {
	Model     string    `json:"model"`
	Messages  []message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
}

type completionResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *APIError `json:"error"`
}

// Describe sends the image and prompt to the generator and returns the raw
// generated text. An optional existing caption is folded into the prompt as
// extra context. An error response from the generator comes back as
// *APIError.
func (c *Client) Describe(ctx context.Context, imageData []byte, prompt, caption string) (string, error) {
	fullPrompt := prompt
	if caption != "" {
		fullPrompt = fmt.Sprintf("%s. Use the following context to enhance your response: %s", prompt, caption)
	}

	reqBody := completionRequest{
		Model: c.Model,
		Messages: []message{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: fullPrompt},
					{Type: "image_url", ImageURL: &imageURL{
						URL: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(imageData),
					}},
				},
			},
		},
		MaxTokens: defaultMaxTokens,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call generator: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var completion completionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}

	if completion.Error != nil {
		return "", completion.Error
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("generator returned no choices (status %d)", resp.StatusCode)
	}

	return completion.Choices[0].Message.Content, nil
}
