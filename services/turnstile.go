package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"file_bridge_app_go/config"
)

// DefaultTurnstileVerifyURL is Cloudflare's siteverify endpoint.
const DefaultTurnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

var turnstileClient = &http.Client{Timeout: 10 * time.Second}

type TurnstileResponse struct {
	Success     bool      `json:"success"`
	ChallengeTS time.Time `json:"challenge_ts"`
	Hostname    string    `json:"hostname"`
	ErrorCodes  []string  `json:"error-codes"`
}

// TurnstileRejectedError means Cloudflare answered and refused the token.
// Any other error from Verify means the token could not be checked at all.
type TurnstileRejectedError struct {
	Codes []string
}

func (e *TurnstileRejectedError) Error() string {
	if len(e.Codes) == 0 {
		return "turnstile token rejected"
	}
	return "turnstile token rejected: " + strings.Join(e.Codes, ", ")
}

// IsTurnstileRejection reports whether err is a refused token rather than a
// failure to reach or understand the verification endpoint.
func IsTurnstileRejection(err error) bool {
	var rejected *TurnstileRejectedError
	return errors.As(err, &rejected)
}

// TurnstileVerifier checks visitor tokens against the siteverify endpoint.
type TurnstileVerifier struct {
	URL    string
	Secret string
	Client *http.Client
}

// NewTurnstileVerifier builds a verifier from the Turnstile settings in cfg.
func NewTurnstileVerifier(cfg *config.Config) *TurnstileVerifier {
	u := cfg.TurnstileVerifyURL
	if u == "" {
		u = DefaultTurnstileVerifyURL
	}
	return &TurnstileVerifier{URL: u, Secret: cfg.TurnstileSecretKey, Client: turnstileClient}
}

// Verify returns nil when the token is valid and a *TurnstileRejectedError
// when it is missing or refused.
func (v *TurnstileVerifier) Verify(ctx context.Context, token, ip string) error {
	if v.Secret == "" {
		return errors.New("turnstile secret key is not configured")
	}
	if token == "" {
		return &TurnstileRejectedError{Codes: []string{"missing-input-response"}}
	}

	form := url.Values{
		"secret":   {v.Secret},
		"response": {token},
		"remoteip": {ip},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build turnstile request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to verify token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("turnstile siteverify returned status %d", resp.StatusCode)
	}

	var result TurnstileResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode turnstile response: %w", err)
	}
	if !result.Success {
		return &TurnstileRejectedError{Codes: result.ErrorCodes}
	}
	return nil
}
