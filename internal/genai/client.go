// Package genai is the client for the generative-AI chat service.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/daniil-kharaman/movie-web-app/internal/apperr"
)

const (
	defaultMaxOutputTokens = 200
	defaultTemperature     = 1.0
)

// Client is the chat API client.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

// NewClient creates a new chat API client for the given model.
func NewClient(apiKey, baseURL, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ---- Wire Types ----

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
}

type generateRequest struct {
	SystemInstruction *content         `json:"system_instruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Chat is one conversational session. It accumulates the exchange
// history and replays it with every message, so the service sees the
// full conversation each time.
type Chat struct {
	client       *Client
	instructions string

	mu      sync.Mutex
	history []content
}

// NewChat opens a chat session guided by the given system instructions,
// with a bounded output length and a fixed sampling temperature.
func (c *Client) NewChat(instructions string) *Chat {
	return &Chat{client: c, instructions: instructions}
}

// Send forwards a message in the session and returns the reply text.
// The exchange is appended to the session history only on success.
func (ch *Chat) Send(ctx context.Context, message string) (string, error) {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	userTurn := content{Role: "user", Parts: []part{{Text: message}}}

	reqBody := generateRequest{
		Contents: append(append([]content{}, ch.history...), userTurn),
		GenerationConfig: generationConfig{
			MaxOutputTokens: defaultMaxOutputTokens,
			Temperature:     defaultTemperature,
		},
	}
	if ch.instructions != "" {
		reqBody.SystemInstruction = &content{Parts: []part{{Text: ch.instructions}}}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", apperr.Wrap(apperr.Transport, "recommendation service is unavailable", err)
	}

	reqURL := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		ch.client.baseURL, ch.client.model, ch.client.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return "", apperr.Wrap(apperr.Transport, "recommendation service is unavailable", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ch.client.http.Do(req)
	if err != nil {
		return "", apperr.Wrap(apperr.Transport, "recommendation service is unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", apperr.Wrap(apperr.Transport, "recommendation service is unavailable",
			fmt.Errorf("chat API returned status %d: %s", resp.StatusCode, string(body)))
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", apperr.Wrap(apperr.Transport, "recommendation service is unavailable",
			fmt.Errorf("failed to decode chat response: %w", err))
	}
	if len(result.Candidates) == 0 {
		return "", apperr.Wrap(apperr.Transport, "recommendation service is unavailable",
			fmt.Errorf("chat API returned no candidates"))
	}

	var reply string
	for _, p := range result.Candidates[0].Content.Parts {
		reply += p.Text
	}

	modelTurn := content{Role: "model", Parts: []part{{Text: reply}}}
	ch.history = append(ch.history, userTurn, modelTurn)

	return reply, nil
}
