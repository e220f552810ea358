package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/majorcontext/awscreds/internal/config"
	"github.com/majorcontext/awscreds/internal/credentials"
	"github.com/majorcontext/awscreds/internal/log"
)

var (
	serveListen    string
	serveAuthToken string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve resolved credentials on a local HTTP endpoint",
	Long: `Serve resolves the effective credential provider and exposes it on a
loopback HTTP endpoint in credential_process format. Point
AWS_CONTAINER_CREDENTIALS_FULL_URI at the endpoint to let SDKs in local
containers fetch credentials on demand.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, _, provider, err := resolveProvider(ctx)
		if err != nil {
			return err
		}

		listen := serveListen
		if listen == "" {
			listen = cfg.Endpoint.Listen
		}
		if listen == "" {
			listen = config.DefaultListen
		}
		authToken := serveAuthToken
		if authToken == "" {
			authToken = cfg.Endpoint.AuthToken
		}

		handler := credentials.NewEndpointHandler(provider)
		if authToken != "" {
			handler.SetAuthToken(authToken)
		}

		mux := http.NewServeMux()
		mux.Handle("/credentials", handler)

		srv := &http.Server{
			Addr:              listen,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("serving credentials", "addr", listen, "provider", credentials.Describe(provider))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			return fmt.Errorf("credential endpoint: %w", err)
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("shutting down credential endpoint: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "host:port to bind (overrides endpoint.listen)")
	serveCmd.Flags().StringVar(&serveAuthToken, "auth-token", "", "require a bearer token on the endpoint (overrides endpoint.auth_token)")
	rootCmd.AddCommand(serveCmd)
}
