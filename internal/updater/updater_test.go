package updater

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"volaryddns/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.APIConfig{
		URL:     srv.URL,
		Token:   "test-token",
		Timeout: time.Second,
	}
	return New(cfg, zaptest.NewLogger(t)), srv
}

// TestSubmit tests the update transaction end to end
func TestSubmit(t *testing.T) {
	t.Run("sends json payload and headers", func(t *testing.T) {
		var gotBody updateRequest
		var contentType, ua string
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			contentType = r.Header.Get("Content-Type")
			ua = r.Header.Get("User-Agent")
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &gotBody)
			_, _ = w.Write([]byte(`{"status":"updated"}`))
		})

		result := c.Submit(context.Background(), "1.2.3.5")
		assert.Equal(t, StatusSuccess, result.Status)
		assert.Equal(t, "application/json", contentType)
		assert.Contains(t, ua, "VolaryDDNS-Client/")
		assert.Equal(t, "test-token", gotBody.Token)
		assert.Equal(t, "1.2.3.5", gotBody.IP)
	})

	t.Run("transport failure", func(t *testing.T) {
		c, srv := testClient(t, func(w http.ResponseWriter, r *http.Request) {})
		srv.Close()

		result := c.Submit(context.Background(), "1.2.3.5")
		assert.Equal(t, StatusTransportError, result.Status)
		assert.NotEmpty(t, result.Reason)
		assert.NotContains(t, result.Reason, "test-token")
	})

	t.Run("error body with failing status code", func(t *testing.T) {
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"invalid token"}`))
		})

		result := c.Submit(context.Background(), "1.2.3.5")
		assert.Equal(t, StatusRemoteError, result.Status)
		assert.Equal(t, "invalid token", result.Reason)
	})
}

// TestClassify pins the success classification contract
func TestClassify(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		wantStatus Status
		wantReason string
	}{
		{"json status updated", `{"status":"updated"}`, StatusSuccess, ""},
		{"bare ok", "OK", StatusSuccess, ""},
		{"mixed case success among other text", "The operation was a Success! Have a nice day.", StatusSuccess, ""},
		// Substring matching is the deployed contract even where it
		// misclassifies; these pin the looseness.
		{"not ok still matches", "not ok", StatusSuccess, ""},
		{"error text containing updated", `{"error":"record already updated by another host"}`, StatusSuccess, ""},
		{"empty body", "", StatusRemoteError, "empty response from server"},
		{"whitespace body", " \n\t", StatusRemoteError, "empty response from server"},
		{"json error field", `{"error":"invalid token"}`, StatusRemoteError, "invalid token"},
		{"json message field", `{"message":"subdomain suspended"}`, StatusRemoteError, "subdomain suspended"},
		{"error preferred over message", `{"error":"bad request","message":"see docs"}`, StatusRemoteError, "bad request"},
		{"malformed json error field", `{"error":"rate limited",`, StatusRemoteError, "rate limited"},
		{"malformed json message field", `{"message":"maintenance window",`, StatusRemoteError, "maintenance window"},
		{"plain text failure", "record not found", StatusRemoteError, "record not found"},
		{"empty structured fields fall back to raw", `{"error":"","message":""}`, StatusRemoteError, `{"error":"","message":""}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := classify([]byte(tc.body))
			assert.Equal(t, tc.wantStatus, result.Status)
			assert.Equal(t, tc.wantReason, result.Reason)
		})
	}
}

// TestClassifyIgnoresHTTPStatus verifies the body-only contract: an empty
// body is a failure even on HTTP 200, and a success marker wins even when
// the transport path succeeded trivially.
func TestClassifyIgnoresHTTPStatus(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	result := c.Submit(context.Background(), "1.2.3.5")
	require.Equal(t, StatusRemoteError, result.Status)
	assert.Equal(t, "empty response from server", result.Reason)
}
