package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type tokenResponse struct {
	Token string `json:"token"`
}

// TokenProvider exchanges the long-lived API key for a short-lived
// streaming token via the provider's token endpoint.
type TokenProvider struct {
	cfg Config
}

func NewTokenProvider(cfg Config) *TokenProvider {
	return &TokenProvider{cfg: cfg.withDefaults()}
}

func (p *TokenProvider) Fetch(ctx context.Context) (string, error) {
	url := fmt.Sprintf("%s/v3/token?expires_in_seconds=%d", p.cfg.APIBaseURL, int(p.cfg.TokenTTL.Seconds()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Authorization", p.cfg.APIKey)

	resp, err := p.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request: status %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tr.Token == "" {
		return "", fmt.Errorf("token response missing token")
	}

	return tr.Token, nil
}
