package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tinytelemetry/chuckle/internal/mockapi"
)

func newMockServer(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fixtures, err := mockapi.DefaultFixtures()
	require.NoError(t, err)
	srv := httptest.NewServer(mockapi.NewServer("", fixtures, mockapi.WithPicker(sequence())).Handler())
	t.Cleanup(srv.Close)
	return srv.URL
}

// sequence picks indexes 0, 1, 2, ... wrapping at n.
func sequence() func(int) int {
	next := 0
	return func(n int) int {
		i := next % n
		next++
		return i
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	base := []string{"--config", filepath.Join(t.TempDir(), "none.yml"), "--env-file", filepath.Join(t.TempDir(), "none.env")}
	cmd.SetArgs(append(base, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:    dev")
	assert.Contains(t, out, "Go version:")
}

func TestJokesCommand(t *testing.T) {
	url := newMockServer(t)

	out, err := execute(t, "jokes", "dev", "--base-url", url, "--joke-count", "3")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "1. Chuck Norris writes code that optimizes itself.", lines[0])
	assert.Equal(t, "2. Chuck Norris can compile syntax errors.", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "3. "))
}

func TestJokesCommandDeduplicates(t *testing.T) {
	url := newMockServer(t)

	// science has two fixtures; five requests cycle through them.
	out, err := execute(t, "jokes", "science", "--base-url", url)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)
}

func TestJokesCommandUnknownCategory(t *testing.T) {
	url := newMockServer(t)

	_, err := execute(t, "jokes", "nope", "--base-url", url)
	require.Error(t, err)
	assert.Equal(t, "fetching nope jokes: A data request error occurred. (code: 404)", err.Error())
}

func TestJokesCommandRequiresCategory(t *testing.T) {
	_, err := execute(t, "jokes")
	require.Error(t, err)
}

func TestCategoriesCommand(t *testing.T) {
	url := newMockServer(t)

	out, err := execute(t, "categories", "--base-url", url, "--filter", "^s")
	require.NoError(t, err)

	parts := strings.SplitN(out, "\n\n", 2)
	require.Len(t, parts, 2)
	assert.NotEmpty(t, strings.TrimSpace(parts[0]))
	assert.Equal(t, "science\nsport\n", parts[1])
}

func TestCategoriesCommandServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	out, err := execute(t, "categories", "--base-url", srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(code: 503)")
	assert.Contains(t, out, "Random joke unavailable: A data request error occurred. (code: 503)")
}

func TestBadLogLevel(t *testing.T) {
	_, err := execute(t, "jokes", "dev", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging:")
}

func TestNewAPIClientRegistersMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	cfg := appConfig{RequestTimeout: time.Second}

	_, err := newAPIClient(cfg, zap.NewNop(), reg)
	require.NoError(t, err)

	_, err = newAPIClient(cfg, zap.NewNop(), reg)
	assert.Error(t, err, "a registry takes one client's metrics")
}

func TestMetricsHandler(t *testing.T) {
	reg := newMetricsRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "chuckle_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	srv := httptest.NewServer(metricsHandler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "chuckle_test_total 1")
	assert.Equal(t, 1.0, testutil.ToFloat64(counter))
}

func TestServeMetricsStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serveMetrics(ctx, "127.0.0.1:0", newMetricsRegistry(), zap.NewNop()) }()

	cancel()
	assert.NoError(t, <-done)
}
