package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/inletworks/capsule/analyze"
	"github.com/inletworks/capsule/capability"
	"github.com/inletworks/capsule/internal"
	"github.com/inletworks/capsule/internal/config"
	"github.com/inletworks/capsule/lookup"
	"github.com/inletworks/capsule/server"
	"github.com/inletworks/capsule/workspace"
)

var rootCmd = &cobra.Command{
	Use:   "capsule",
	Short: "A capability server for file, lookup, and analysis operations",
	Long: `capsule serves a registry of named capabilities over a JSON-RPC stdio
transport: file operations confined to a workspace directory, external
weather and quote lookups with graceful fallbacks, and a JSON structure
analyzer. Requests are read line by line from stdin and every invocation
is answered with a uniform result envelope on stdout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		if !verbose {
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}

		g, ctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			cfg, err := config.LoadFile(configPath)
			if err != nil {
				return err
			}
			if workspaceDir != "" {
				cfg.Workspace = workspaceDir
			}

			apiKey, wasRef, err := internal.ResolveSecretReference(ctx, cfg.Weather.APIKey)
			if err != nil {
				return fmt.Errorf("resolving weather API key: %w", err)
			}
			if wasRef {
				logger.Info("resolved weather API key from secret reference")
			}

			retryClient := retryablehttp.NewClient()
			retryClient.RetryMax = retries
			retryClient.RetryWaitMin = 1 * time.Second
			retryClient.RetryWaitMax = 30 * time.Second
			retryClient.HTTPClient.Timeout = timeout
			retryClient.Logger = nil
			retryClient.HTTPClient.Transport = &internal.HeaderTransport{
				Headers: http.Header{"User-Agent": {"capsule/" + version}},
			}

			if rps > 0 {
				retryClient.Backoff = func(min, max time.Duration, attemptNum int, resp *http.Response) time.Duration {
					// Wait at least 1/rps between requests
					minWait := time.Second / time.Duration(rps)
					if min < minWait {
						min = minWait
					}
					return retryablehttp.DefaultBackoff(min, max, attemptNum, resp)
				}
			}

			client := retryClient.StandardClient()

			ws, err := workspace.New(cfg.Workspace)
			if err != nil {
				return err
			}
			logger.Info("workspace ready", "dir", ws.Root())

			weather := lookup.NewWeatherService(client, cfg.Weather.Endpoint, apiKey, cfg.Weather.Units)
			quotes := lookup.NewQuoteService(client, cfg.Quote.Endpoint)

			registry := capability.NewRegistry()
			descriptors := ws.Capabilities()
			descriptors = append(descriptors, weather.Capability(), quotes.Capability(), analyze.Capability())

			for _, d := range descriptors {
				if cfg.IsDisabled(d.Name) {
					logger.Info("capability disabled by config", "name", d.Name)
					continue
				}
				if err := registry.Register(d); err != nil {
					return fmt.Errorf("registering capabilities: %w", err)
				}
			}

			srv := server.New(registry,
				server.WithLogger(logger),
				server.WithWorkspace(ws.Root()),
				server.WithPrompts(server.DefaultPrompts()...),
			)

			logger.Info("serving", "capabilities", registry.Len())
			transport := server.NewStdioTransport(srv, os.Stdin, os.Stdout, os.Stderr)
			return transport.Run(ctx)
		})

		return g.Wait()
	},
}

var (
	configPath   string
	workspaceDir string
	verbose      bool
	retries      int
	timeout      time.Duration
	rps          int

	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to YAML configuration file")
	rootCmd.Flags().StringVarP(&workspaceDir, "workspace", "w", "", "Workspace directory for file capabilities (overrides config)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging to stderr")
	rootCmd.Flags().IntVar(&retries, "retries", 3, "Maximum number of retries for failed lookup requests")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "HTTP request timeout")
	rootCmd.Flags().IntVarP(&rps, "rps", "r", 0, "Maximum requests per second (0 for no limit)")

	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built at: %s)", version, commit, date)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
