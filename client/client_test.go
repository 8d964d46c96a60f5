package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenomics_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/tokenomics", r.URL.Path)
		_, _ = w.Write([]byte(`{"totalSupply":"1000","circulatingSupply":"900","burnedTokens":"100","holders":42}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", nil, nil)
	view, err := client.Tokenomics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "900", view.CirculatingSupply)
	assert.Equal(t, int64(42), view.Holders)
}

func TestTokenomics_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":   "Failed to fetch tokenomics data",
			"details": "solscan token/meta: unexpected status 503",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, nil)
	_, err := client.Tokenomics(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "Failed to fetch tokenomics data", apiErr.Message)
	assert.Contains(t, err.Error(), "unexpected status 503")
}

func TestNonJSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("bad gateway"))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, nil)
	_, err := client.Health(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "bad gateway", apiErr.Message)
}

func TestBurnHistory_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/burns/history", r.URL.Path)
		_, _ = w.Write([]byte(`[{"signature":"a","timestamp":"2024-03-01T00:00:00Z","amount":10},{"signature":"b","timestamp":"2024-02-29T00:00:00Z","amount":0}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, nil)
	history, err := client.BurnHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "a", history[0].Signature)
	assert.Equal(t, uint64(10), history[0].Amount)
}

func TestBurnArchive_Limit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/burns/archive", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Header().Set("X-Total-Count", "42")
		_, _ = w.Write([]byte(`[{"txHash":"tx","burnAmount":3,"timestamp":"2024-03-01T00:00:00Z"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, nil)
	burns, total, err := client.BurnArchive(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, burns, 1)
	assert.Equal(t, "tx", burns[0].TxHash)
	assert.Equal(t, int64(42), total)
}

func TestBurnArchive_TotalFallsBackToPageSize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"txHash":"a"},{"txHash":"b"}]`))
	}))
	defer server.Close()

	_, total, err := NewClient(server.URL, nil, nil).BurnArchive(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, nil)
	_, err := client.Roadmap(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}
