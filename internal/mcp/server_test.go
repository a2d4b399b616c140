package mcp

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/hh-analyst/internal/config"
	"github.com/honeycarbs/hh-analyst/pkg/hh"
	"github.com/honeycarbs/hh-analyst/pkg/logging"
)

type nopFetcher struct{}

func (nopFetcher) Fetch(context.Context, hh.Criteria) (*hh.ListingResponse, error) {
	return &hh.ListingResponse{}, nil
}

func (nopFetcher) SnapshotPath(hh.Criteria) string { return "" }

func TestNewServer(t *testing.T) {
	cfg := config.Default()
	cfg.Host = "127.0.0.1"
	cfg.Port = "0"

	srv, err := NewServer(logging.NewNop(), cfg, nopFetcher{})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:0", srv.Addr())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, srv.Shutdown(ctx))

	_, err = NewServer(logging.NewNop(), cfg, nil)
	assert.Error(t, err)
}

func TestHealthz(t *testing.T) {
	ts := httptest.NewServer(newMux(http.NotFoundHandler()))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}
