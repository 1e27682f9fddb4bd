// Package ai is a thin typed client for the external explanation /
// similar-question service. The service is an opaque capability; the local
// similarity engine neither feeds nor validates it.
package ai

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

// ErrDisabled is returned when no backend URL is configured.
var ErrDisabled = errors.New("ai backend not configured")

type Client struct {
	baseURL string
	hc      *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

// ExplainRequest carries one question to the backend.
type ExplainRequest struct {
	QuestionText   string   `json:"question_text"`
	Options        []string `json:"options,omitempty"`
	CorrectAnswers []string `json:"correct_answers,omitempty"`
	DetailLevel    string   `json:"detail_level,omitempty"` // short|full
	Language       string   `json:"language,omitempty"`
}

// AcronymPair expands one abbreviation found in the explanation.
type AcronymPair struct {
	Acronym   string `json:"acronym"`
	Expansion string `json:"expansion"`
}

type ExplainResponse struct {
	Explanation string        `json:"explanation"`
	Acronyms    []AcronymPair `json:"acronyms,omitempty"`
}

// SimilarRequest asks the backend for questions resembling the given one.
type SimilarRequest struct {
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options,omitempty"`
	Limit        int      `json:"limit,omitempty"`
}

type SimilarMatch struct {
	ID           string  `json:"id"`
	QuestionText string  `json:"question_text"`
	Score        float64 `json:"score"`
}

type SimilarResponse struct {
	Matches []SimilarMatch `json:"matches"`
}

func (c *Client) Explain(ctx context.Context, req ExplainRequest) (ExplainResponse, error) {
	var out ExplainResponse
	err := c.post(ctx, "/v1/explain", req, &out)
	return out, err
}

func (c *Client) SimilarQuestions(ctx context.Context, req SimilarRequest) (SimilarResponse, error) {
	var out SimilarResponse
	err := c.post(ctx, "/v1/similar", req, &out)
	return out, err
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	if c.baseURL == "" {
		return ErrDisabled
	}
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("ai backend %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
