package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse verifies error response with expected status and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	// Error responses are plain text in this API
	assert.Contains(t, string(body), expectedMessage, "error message mismatch")
}

// AssertErrorStatus verifies the status of a failed request and that its
// plain-text body mentions the error
func AssertErrorStatus(t *testing.T, resp *http.Response, expectedStatus int, err error) {
	t.Helper()
	AssertErrorResponse(t, resp, expectedStatus, err.Error())
}

// DecodeJSON decodes a successful JSON response into v
func DecodeJSON(t *testing.T, resp *http.Response, expectedStatus int, v interface{}) {
	t.Helper()

	if resp.StatusCode != expectedStatus {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("unexpected status code %d (want %d): %s", resp.StatusCode, expectedStatus, string(body))
	}
	AssertJSONResponse(t, resp, v)
}

