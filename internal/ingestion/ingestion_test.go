package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Empty", "", ""},
		{"Normalizes CRLF", "line one\r\nline two", "line one\nline two"},
		{"Normalizes bare CR", "line one\rline two", "line one\nline two"},
		{"Collapses spaces within lines", "too   many\t\tspaces", "too many spaces"},
		{"Trims lines", "  padded line  ", "padded line"},
		{"Collapses blank line runs", "para one\n\n\n\n\npara two", "para one\n\npara two"},
		{"Keeps single blank line", "para one\n\npara two", "para one\n\npara two"},
		{"Trims surrounding blank lines", "\n\nbody\n\n", "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestIngestFromURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
			<nav>Menu</nav>
			<div class="job-description">
				<h1>Backend Engineer</h1>
				<p>We need Go   experience.</p>
			</div>
		</body></html>`))
	}))
	defer ts.Close()

	text, err := IngestFromURL(context.Background(), ts.URL, false, false)
	require.NoError(t, err)

	assert.Contains(t, text, "Backend Engineer")
	assert.Contains(t, text, "We need Go experience.")
	assert.NotContains(t, text, "Menu")
}

func TestIngestFromURL_RequestFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := IngestFromURL(context.Background(), ts.URL, false, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
}

func TestIngestFromURL_InvalidURL(t *testing.T) {
	_, err := IngestFromURL(context.Background(), "not-a-url", false, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
}
