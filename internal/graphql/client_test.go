package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	header http.Header
	body   map[string]any
}

func newServer(t *testing.T, status int, reply string) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.header = r.Header.Clone()
		b, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(b, &got.body))
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func TestNewClientRequiresEndpoint(t *testing.T) {
	_, err := NewClient(Config{Endpoint: "  "})
	assert.ErrorIs(t, err, ErrEndpointEmpty)
}

func TestExecuteDecodesData(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"data":{"product":{"id":"p1"}}}`)
	c, err := NewClient(Config{Endpoint: srv.URL, Token: "secret"})
	require.NoError(t, err)

	var out struct {
		Product struct {
			ID string `json:"id"`
		} `json:"product"`
	}
	err = c.Execute(context.Background(), "Product", "query Product { product { id } }", map[string]any{"id": "p1"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "p1", out.Product.ID)

	assert.Equal(t, "Bearer secret", got.header.Get("Authorization"))
	assert.Equal(t, "application/json", got.header.Get("Content-Type"))
	assert.Equal(t, "Product", got.body["operationName"])
	assert.Equal(t, map[string]any{"id": "p1"}, got.body["variables"])
}

func TestExecuteOmitsAuthWithoutToken(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"data":{}}`)
	c, err := NewClient(Config{Endpoint: srv.URL})
	require.NoError(t, err)

	require.NoError(t, c.Execute(context.Background(), "Op", "query Op { x }", nil, nil))
	assert.Empty(t, got.header.Get("Authorization"))
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		reply  string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "http status",
			status: http.StatusBadGateway,
			reply:  "upstream down",
			check: func(t *testing.T, err error) {
				var se *StatusError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, "upstream down", se.Body)
			},
		},
		{
			name:   "graphql errors",
			status: http.StatusOK,
			reply:  `{"errors":[{"message":"boom","path":["productUpdate"]}]}`,
			check: func(t *testing.T, err error) {
				var re *ResponseError
				require.True(t, errors.As(err, &re))
				assert.Contains(t, err.Error(), "boom")
			},
		},
		{
			name:   "user errors",
			status: http.StatusOK,
			reply:  `{"data":{"productUpdate":{"errors":[{"field":"name","message":"required","code":"REQUIRED"}]},"updateMetadata":{"errors":[]}}}`,
			check: func(t *testing.T, err error) {
				var ue *UserErrorsError
				require.True(t, errors.As(err, &ue))
				require.Len(t, ue.Errors, 1)
				assert.Equal(t, "Op failed: name: required", err.Error())
			},
		},
		{
			name:   "malformed body",
			status: http.StatusOK,
			reply:  `not json`,
			check: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
		{
			name:   "missing data",
			status: http.StatusOK,
			reply:  `{"data":null}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMissingData)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newServer(t, tt.status, tt.reply)
			c, err := NewClient(Config{Endpoint: srv.URL})
			require.NoError(t, err)
			var out map[string]any
			tt.check(t, c.Execute(context.Background(), "Op", "mutation Op { x }", nil, &out))
		})
	}
}

func TestExecuteHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c, err := NewClient(Config{Endpoint: srv.URL})
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err = c.Execute(ctx, "Op", "query Op { x }", nil, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
