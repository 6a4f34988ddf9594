// Package remote предоставляет клиент внешнего API расходов.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmeshcher/billed/internal/model"
	"github.com/mmeshcher/billed/internal/session"
	"github.com/mmeshcher/billed/internal/store"
)

// DefaultTimeout ограничивает длительность одного запроса к API.
const DefaultTimeout = 5 * time.Second

const maxErrorBody = 512

// Client инкапсулирует HTTP-взаимодействие с API расходов.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент API расходов по указанному адресу.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// List запрашивает расходы текущего пользователя. Токен сессии берётся из контекста запроса.
func (c *Client) List(ctx context.Context) ([]model.Bill, error) {
	if c == nil || c.baseURL == "" {
		return nil, fmt.Errorf("bills api client not configured")
	}

	base := c.baseURL
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/bills", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token := session.TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return nil, store.NewStatusError(resp.StatusCode)
	}

	var result []model.Bill
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return result, nil
}
