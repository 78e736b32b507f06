package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/viant/tripclient/auth/credential"
	"github.com/viant/tripclient/envelope"
)

const refreshFailed = "Token refresh failed"

// Refresher exchanges a refresh credential for a new credential pair
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*credential.Pair, error)
}

// HTTPRefresher posts the refresh credential to the API refresh endpoint
type HTTPRefresher struct {
	URL    string
	client *http.Client
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh performs an unauthenticated refresh call
func (h *HTTPRefresher) Refresh(ctx context.Context, refreshToken string) (*credential.Pair, error) {
	payload, err := json.Marshal(&refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	anEnvelope, err := envelope.Decode[credential.Pair](resp.Body)
	if err != nil {
		if resp.StatusCode/100 != 2 {
			return nil, fmt.Errorf("%s: %s", refreshFailed, http.StatusText(resp.StatusCode))
		}
		return nil, err
	}
	if resp.StatusCode/100 != 2 && anEnvelope.IsSuccess {
		return nil, fmt.Errorf("%s: %s", refreshFailed, http.StatusText(resp.StatusCode))
	}
	pair, err := anEnvelope.UnwrapOr(refreshFailed)
	if err != nil {
		return nil, err
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		return nil, errors.New(refreshFailed)
	}
	return pair, nil
}

// NewHTTPRefresher creates a refresher that bypasses credential attachment by using transport directly
func NewHTTPRefresher(URL string, transport http.RoundTripper) *HTTPRefresher {
	return &HTTPRefresher{URL: URL, client: &http.Client{Transport: transport}}
}
