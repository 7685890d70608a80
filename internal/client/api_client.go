package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"tg-quiz-webapp/internal/domain"
)

// RequestIDHeader carries a per-request correlation id, logged by the server.
const RequestIDHeader = "X-Request-ID"

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("quiz api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("quiz api: status %d: %s", e.StatusCode, e.Detail)
}

// APIClient talks to the quiz backend over HTTP/JSON.
type APIClient struct {
	baseURL string
	http    *http.Client
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type questionsResponse struct {
	Questions []domain.Question `json:"questions"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (c *APIClient) Questions(ctx context.Context) ([]domain.Question, error) {
	var resp questionsResponse
	if err := c.do(ctx, http.MethodGet, "/api/questions", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Questions == nil {
		return nil, fmt.Errorf("quiz api: response without questions")
	}
	return resp.Questions, nil
}

func (c *APIClient) SubmitAnswer(ctx context.Context, sub domain.Submission) (domain.Verdict, error) {
	var verdict domain.Verdict
	if err := c.do(ctx, http.MethodPost, "/api/submit_answer", sub, &verdict); err != nil {
		return domain.Verdict{}, err
	}
	return verdict, nil
}

func (c *APIClient) UserStats(ctx context.Context, userID int64) (domain.UserStats, error) {
	var stats domain.UserStats
	path := "/api/user_stats/" + strconv.FormatInt(userID, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, &stats); err != nil {
		return domain.UserStats{}, err
	}
	return stats, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set(RequestIDHeader, uuid.NewString())
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &StatusError{StatusCode: resp.StatusCode, Detail: e.Detail}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
