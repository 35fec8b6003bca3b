package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/triagedesk/backend/internal/logger"
)

// Generator is the text-generation capability: one prompt in, one completion
// out. Calls may take seconds and must never be made while holding a store
// lock.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// LLMService calls the Gemini generateContent REST API. The API key is read
// once at startup; model and timeout are configurable through the environment.
type LLMService struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

type geminiGenerateRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

func NewLLMService(baseURL, apiKey, model string) *LLMService {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}

	timeout := 60 * time.Second
	if timeoutStr := os.Getenv("GEMINI_TIMEOUT_SECONDS"); timeoutStr != "" {
		if t, err := time.ParseDuration(timeoutStr + "s"); err == nil {
			timeout = t
		}
	}

	return &LLMService{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// Generate sends the prompt and returns the completion text of the first
// candidate. An empty completion is returned as-is: callers decide whether to
// degrade or fall back. Transport errors, timeouts and non-200 statuses all
// surface as errors.
func (ls *LLMService) Generate(ctx context.Context, prompt string) (string, error) {
	startTime := time.Now()

	request := geminiGenerateRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", ls.baseURL, ls.model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", ls.apiKey)

	logger.WithLLM(ls.model, "generate").Debugf("sending prompt of %d characters", len(prompt))

	resp, err := ls.client.Do(req)
	elapsed := time.Since(startTime)
	if err != nil {
		logger.WithLLM(ls.model, "generate").Errorf("request failed after %v: %v", elapsed, err)
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	logger.WithLLM(ls.model, "generate").Debugf("request completed in %v with status %d", elapsed, resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Gemini API returned status %d, body: %s", resp.StatusCode, string(respBytes))
	}

	var geminiResp geminiGenerateResponse
	if err := json.Unmarshal(respBytes, &geminiResp); err != nil {
		return "", fmt.Errorf("failed to decode Gemini response: %w", err)
	}
	if geminiResp.Error != nil {
		return "", fmt.Errorf("Gemini API error: %s", geminiResp.Error.Message)
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}

// Configured reports whether a credential was supplied at startup.
func (ls *LLMService) Configured() bool {
	return ls.apiKey != ""
}
