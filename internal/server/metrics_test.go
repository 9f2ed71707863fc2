package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetfewer/meetfewer/internal/instrumentation"
)

func newTestProvider(t *testing.T, enabled bool) *instrumentation.Provider {
	t.Helper()
	ctx := context.Background()
	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
		ServiceName:     "meetfewer-test",
		ServiceVersion:  "0.0.1",
		Enabled:         enabled,
		MetricsExporter: instrumentation.ExporterPrometheus,
		TracingExporter: instrumentation.ExporterNone,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Shutdown(ctx) })
	return provider
}

func TestNewMetricsServer(t *testing.T) {
	srv, err := NewMetricsServer(MetricsServerConfig{
		Addr:                    ":9090",
		Enabled:                 true,
		InstrumentationProvider: newTestProvider(t, true),
	})
	require.NoError(t, err)
	assert.Equal(t, ":9090", srv.Addr())
}

func TestNewMetricsServerDefaultsAddr(t *testing.T) {
	srv, err := NewMetricsServer(MetricsServerConfig{
		Enabled:                 true,
		InstrumentationProvider: newTestProvider(t, true),
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultMetricsAddr, srv.Addr())
}

func TestNewMetricsServerRequiresProvider(t *testing.T) {
	_, err := NewMetricsServer(MetricsServerConfig{Addr: ":9090", Enabled: true})
	assert.ErrorContains(t, err, "instrumentation provider is required")

	_, err = NewMetricsServer(MetricsServerConfig{
		Addr:                    ":9090",
		Enabled:                 true,
		InstrumentationProvider: newTestProvider(t, false),
	})
	assert.ErrorContains(t, err, "instrumentation provider is not enabled")
}

func TestMetricsServerStartAndShutdown(t *testing.T) {
	srv, err := NewMetricsServer(MetricsServerConfig{
		Addr:                    "127.0.0.1:19293",
		Enabled:                 true,
		InstrumentationProvider: newTestProvider(t, true),
	})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		defer close(done)
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			done <- err
		}
	}()
	time.Sleep(100 * time.Millisecond)

	resp, err := http.Get("http://" + srv.Addr() + "/healthz")
	if err == nil {
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	} else {
		t.Logf("skipping HTTP probe, server not reachable: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server goroutine did not exit after shutdown")
	}
}

func TestMetricsServerShutdownWithoutStart(t *testing.T) {
	srv, err := NewMetricsServer(MetricsServerConfig{
		Addr:                    ":9090",
		Enabled:                 true,
		InstrumentationProvider: newTestProvider(t, true),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, srv.Shutdown(ctx))
}
