package cli

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"diskusage/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeRejectsUnknownTransport(t *testing.T) {
	rootCmd.SetArgs([]string{"serve", "--transport", "carrier-pigeon"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown transport "carrier-pigeon"`)
}

func TestServeHTTPStopsOnContextCancel(t *testing.T) {
	registry := services.NewToolRegistry()
	require.NoError(t, registry.Register(services.Tool{
		Name:        services.DiskUsageToolName,
		Description: "disk usage",
		Handler: func(context.Context) map[string]string {
			return map[string]string{"total_gb": "500.0GB"}
		},
	}))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serveHTTP(ctx, ln, registry) }()

	resp, err := http.Post("http://"+ln.Addr().String()+"/tools/"+services.DiskUsageToolName, "application/json", nil)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "500.0GB")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("serveHTTP did not return after cancel")
	}
}
