package onering

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		baseURL string
		header  Header
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			baseURL: DefaultBaseURL,
			header:  BearerHeader("test-token"),
			wantErr: false,
		},
		{
			name:    "missing URL",
			baseURL: "",
			header:  BearerHeader("test-token"),
			wantErr: true,
			errMsg:  "base URL is required",
		},
		{
			name:    "missing header",
			baseURL: DefaultBaseURL,
			header:  nil,
			wantErr: true,
			errMsg:  "authorization header is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, tt.header, logger)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.baseURL, client.baseURL)
			assert.Equal(t, tt.header, client.header)
		})
	}
}

func TestClientOptions(t *testing.T) {
	t.Run("trims trailing slash", func(t *testing.T) {
		client, err := NewClient("http://localhost/v2/", BearerHeader("t"), zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, "http://localhost/v2", client.baseURL)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient(DefaultBaseURL, BearerHeader("t"), zerolog.Nop(), WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Equal(t, customClient, client.httpClient)
	})

	t.Run("default http client has no timeout", func(t *testing.T) {
		client, err := NewClient(DefaultBaseURL, BearerHeader("t"), zerolog.Nop())
		require.NoError(t, err)
		assert.Zero(t, client.httpClient.Timeout)
	})
}

func TestDocs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v2/movie/", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"docs":[{"_id":"1a","name":"movieA"},{"_id":"1b","name":"movieB"}],"total":2,"limit":1000,"offset":0,"page":1,"pages":1}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL+"/v2", BearerHeader("test-token"), zerolog.Nop())
	require.NoError(t, err)

	docs, err := client.Docs(context.Background(), MoviesEndpoint)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	id, ok := docs[0].Get("_id")
	require.True(t, ok)
	assert.Equal(t, "1a", id)
	name, _ := docs[1].Get("name")
	assert.Equal(t, "movieB", name)
}

func TestDocsLogsCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"docs":[]}`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	client, err := NewClient(server.URL+"/v2", BearerHeader("test-token"), zerolog.New(&buf))
	require.NoError(t, err)

	docs, err := client.Docs(context.Background(), QuotesEndpoint("m1"))
	require.NoError(t, err)
	assert.Empty(t, docs)

	line, err := buf.ReadBytes('\n')
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(line, &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Running call to "+server.URL+"/v2/movie/m1/quote/", entry["message"])
	assert.NotContains(t, buf.String(), "test-token")
}

func TestDocsErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantErr    error
	}{
		{
			name:       "unauthorized",
			status:     http.StatusUnauthorized,
			body:       `{"success":false,"message":"Unauthorized."}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "server error",
			status:     http.StatusInternalServerError,
			body:       "Something went wrong.",
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:    "missing docs",
			status:  http.StatusOK,
			body:    `{"total":0}`,
			wantErr: ErrMissingDocs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, err := NewClient(server.URL, BearerHeader("test-token"), zerolog.Nop())
			require.NoError(t, err)

			_, err = client.Docs(context.Background(), MovieEndpoint("5cd95395de30eff6ebccde5c"))
			require.Error(t, err)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.body, apiErr.Body)
			assert.Contains(t, err.Error(), tt.body)
		})
	}
}

func TestAPIError(t *testing.T) {
	assert.True(t, (&APIError{StatusCode: 404}).IsNotFound())
	assert.True(t, (&APIError{StatusCode: 401}).IsUnauthorized())
	assert.True(t, (&APIError{StatusCode: 403}).IsUnauthorized())
	assert.True(t, (&APIError{StatusCode: 429}).IsRateLimited())
	assert.False(t, (&APIError{StatusCode: 500}).IsNotFound())
}

func TestEndpoints(t *testing.T) {
	assert.Equal(t, "/movie/", MoviesEndpoint)
	assert.Equal(t, "/movie/abc123/", MovieEndpoint("abc123"))
	assert.Equal(t, "/movie/abc123/quote/", QuotesEndpoint("abc123"))
	assert.Equal(t, "/movie/a%2Fb/", MovieEndpoint("a/b"))
}

func TestBearerHeader(t *testing.T) {
	assert.Equal(t, Header{"Authorization": "Bearer fake_token"}, BearerHeader("fake_token"))
}
