package transport

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
)

// ErrChallenge marks a failure to get past the endpoint's bot-mitigation check.
var ErrChallenge = errors.New("bot-mitigation challenge not passed")

// Doer sends a request. *http.Client satisfies it, and so do challenge-solving clients.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Challenge wraps a collaborator-specific failure so callers can classify it as a challenge failure.
func Challenge(err error) error {
	if err == nil {
		return ErrChallenge
	}
	return fmt.Errorf("%w: %w", ErrChallenge, err)
}

type client struct {
	hc Doer
}

// NewClient returns a Doer over a pooled HTTP client. It cannot solve a challenge;
// it reports one it sees as ErrChallenge instead of handing back the interstitial page.
func NewClient() *client {
	return Wrap(cleanhttp.DefaultPooledClient())
}

// Wrap adds challenge detection to any Doer.
func Wrap(hc Doer) *client {
	return &client{hc: hc}
}

func (c *client) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}

	if isChallenge(resp) {
		slog.WarnContext(req.Context(), "Endpoint answered with a challenge", "status", resp.StatusCode, "url", req.URL.String())
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, Challenge(fmt.Errorf("status %d from %s", resp.StatusCode, req.URL.Host))
	}

	return resp, nil
}

func isChallenge(resp *http.Response) bool {
	return strings.EqualFold(resp.Header.Get("Cf-Mitigated"), "challenge")
}
