package payout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fundchain/campaign-engine/internal/campaigns/domain"
)

// Client releases withdrawn funds through the external settlement
// service that fronts the chain. Any transport error or non-2xx
// response counts as a failed transfer; the engine rolls the ledger
// back in that case.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type transferRequest struct {
	To     domain.Account `json:"to"`
	Amount domain.Money   `json:"amount"`
}

func (c *Client) Transfer(ctx context.Context, to domain.Account, amount domain.Money) error {
	body, err := json.Marshal(transferRequest{To: to, Amount: amount})
	if err != nil {
		return fmt.Errorf("marshal transfer: %w", err)
	}

	url := fmt.Sprintf("%s/v1/transfers", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build transfer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call settlement service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("settlement service returned status %d: %s", resp.StatusCode, string(msg))
	}
	return nil
}

// Noop accepts every transfer. Used for local development with the
// memory store, where there is no real value to move.
type Noop struct{}

func (Noop) Transfer(context.Context, domain.Account, domain.Money) error { return nil }
