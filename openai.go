package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	openAIDefaultBaseURL = "https://api.openai.com/v1"
	openAIModel          = "gpt-4o-mini"
	openAIMaxTokens      = 300
	openAISystemPrompt   = "You are a helpful assistant."

	// noSuggestionsMsg is a soft outcome, not a failure: the endpoint answered
	// but offered no choices.
	noSuggestionsMsg = "No suggestions received"

	fetchFailedMsg  = "Failed to fetch suggestions"
	decodeFailedMsg = "Failed to decode suggestions"
)

var errMissingAPIKey = errors.New("openai api key is required")

// suggestionGenerator produces raw suggestion text for a prompt.
type suggestionGenerator interface {
	FetchSuggestions(ctx context.Context, prompt string) (string, error)
}

// suggestionError pairs the short message shown to the user with the
// underlying cause, which only ever reaches the logs.
type suggestionError struct {
	Message string
	cause   error
}

func (e *suggestionError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *suggestionError) Unwrap() error { return e.cause }

// displayMessage extracts the user-facing message from a cycle error.
func displayMessage(err error) string {
	var se *suggestionError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// openAIClient talks to an OpenAI-style chat completions endpoint. One call
// per invocation, no retry; cancellation comes from the caller's context.
type openAIClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func newOpenAIClient(apiKey, baseURL string) (*openAIClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errMissingAPIKey
	}
	if baseURL == "" {
		baseURL = openAIDefaultBaseURL
	}
	return &openAIClient{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{},
	}, nil
}

func (c *openAIClient) FetchSuggestions(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: openAIModel,
		Messages: []chatMessage{
			{Role: "system", Content: openAISystemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: openAIMaxTokens,
	})
	if err != nil {
		return "", &suggestionError{Message: fetchFailedMsg, cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", &suggestionError{Message: fetchFailedMsg, cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &suggestionError{Message: fetchFailedMsg, cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &suggestionError{Message: fetchFailedMsg, cause: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &suggestionError{Message: fetchFailedMsg, cause: err}
	}
	if len(data) == 0 {
		return "", &suggestionError{Message: fetchFailedMsg, cause: errors.New("empty response body")}
	}

	var decoded chatResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return "", &suggestionError{Message: decodeFailedMsg, cause: err}
	}
	if len(decoded.Choices) == 0 {
		return noSuggestionsMsg, nil
	}
	return decoded.Choices[0].Message.Content, nil
}
