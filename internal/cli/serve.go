package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"diskusage/internal/routes"
	"diskusage/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// TransportStdio serves MCP over stdin/stdout
	TransportStdio = "stdio"
	// TransportHTTP serves the JSON API and MCP streamable HTTP at /mcp
	TransportHTTP = "http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the disk usage tool",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	for _, cmd := range []*cobra.Command{rootCmd, serveCmd} {
		cmd.Flags().StringP("transport", "t", TransportStdio, "Transport to serve on (stdio or http)")
		cmd.Flags().StringP("addr", "a", "localhost:8080", "Listen address for the http transport")
	}

	viper.SetDefault("transport", TransportStdio)
	viper.SetDefault("addr", "localhost:8080")
}

func runServe(cmd *cobra.Command, args []string) error {
	// flags are bound per invocation since root and serve share keys
	if err := viper.BindPFlag("transport", cmd.Flags().Lookup("transport")); err != nil {
		return err
	}
	if err := viper.BindPFlag("addr", cmd.Flags().Lookup("addr")); err != nil {
		return err
	}

	registry, err := services.NewDefaultRegistry(services.NewDiskUsageService(services.ExecRunner{}))
	if err != nil {
		return err
	}

	switch transport := viper.GetString("transport"); transport {
	case TransportStdio:
		return services.ServeStdio(registry)
	case TransportHTTP:
		parent := cmd.Context()
		if parent == nil {
			parent = context.Background()
		}
		ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
		defer stop()

		ln, err := net.Listen("tcp", viper.GetString("addr"))
		if err != nil {
			return fmt.Errorf("failed to listen: %w", err)
		}
		return serveHTTP(ctx, ln, registry)
	default:
		return fmt.Errorf("unknown transport %q (want %s or %s)", transport, TransportStdio, TransportHTTP)
	}
}

// serveHTTP serves on ln until ctx is done, then shuts down gracefully
func serveHTTP(ctx context.Context, ln net.Listener, registry *services.ToolRegistry) error {
	gin.SetMode(gin.ReleaseMode)
	router, mcpHandler := routes.NewRouter(registry)

	// cancelled on shutdown so long-lived MCP streams return
	baseCtx, cancelRequests := context.WithCancel(context.Background())
	defer cancelRequests()

	srv := &http.Server{
		Handler:     router,
		BaseContext: func(net.Listener) context.Context { return baseCtx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Disk usage server starting on %s (MCP at /mcp)", ln.Addr())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := mcpHandler.Shutdown(shutdownCtx); err != nil {
		log.Printf("Warning: MCP transport shutdown: %v", err)
	}
	cancelRequests()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	log.Println("Server stopped gracefully")
	return nil
}
