package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jasonpaulso/mcp-server-requests/packages/config"
	"github.com/jasonpaulso/mcp-server-requests/packages/logging"
	"github.com/jasonpaulso/mcp-server-requests/packages/mcpserver"
	"github.com/jasonpaulso/mcp-server-requests/packages/request"
	"github.com/jasonpaulso/mcp-server-requests/packages/useragent"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	userAgentFlag string
	randomUAFlag  bool
	uaBrowserFlag string
	uaOSFlag      string
	forceUAFlag   bool
	listUAFlag    bool
	configFlag    string
	timeoutFlag   string
	logLevelFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "mcp-server-requests",
	Short: "HTTP requests for MCP agents. One string in, one string out.",
	Long: `mcp-server-requests exposes HTTP GET/POST/PUT/PATCH/DELETE operations
to an MCP client over stdio, rendering every exchange (or failure) as a
single canonical text block. HTML bodies can be cleaned or converted to
Markdown before they are returned.

Run without a subcommand to start the MCP server.`,
	RunE: serveCommand,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		var argErr *request.ArgumentError
		if errors.As(err, &argErr) {
			os.Exit(ExitUsageError)
		}
		os.Exit(ExitError)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&userAgentFlag, "user-agent", getEnvString("MCP_REQUESTS_UA", ""), "Specify user agent string directly (env: MCP_REQUESTS_UA)")
	rootCmd.PersistentFlags().BoolVar(&randomUAFlag, "random-user-agent", false, "Use a random user agent from the catalog")
	rootCmd.PersistentFlags().StringVar(&uaBrowserFlag, "ua-browser", "", "Constrain the random user agent to a browser")
	rootCmd.PersistentFlags().StringVar(&uaOSFlag, "ua-os", "", "Constrain the random user agent to an operating system")
	rootCmd.PersistentFlags().BoolVar(&forceUAFlag, "force-user-agent", false, "Force the configured UA, overriding any UA supplied per request")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", getEnvString("MCP_REQUESTS_CONFIG", ""), "Path to config file (env: MCP_REQUESTS_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&timeoutFlag, "timeout", getEnvString("MCP_REQUESTS_TIMEOUT", ""), "Request timeout (e.g., 30s, 1m), 0 disables (env: MCP_REQUESTS_TIMEOUT)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", getEnvString("MCP_REQUESTS_LOG_LEVEL", ""), "Log level: debug, info, warn, error (env: MCP_REQUESTS_LOG_LEVEL)")
	rootCmd.Flags().BoolVar(&listUAFlag, "list-os-and-browser", false, "List available browsers and operating systems for UA selection")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(newHTTPCommand("GET"))
	rootCmd.AddCommand(newHTTPCommand("POST"))
	rootCmd.AddCommand(newHTTPCommand("PUT"))
	rootCmd.AddCommand(newHTTPCommand("PATCH"))
	rootCmd.AddCommand(newHTTPCommand("DELETE"))
	rootCmd.AddCommand(llmsCmd)
	rootCmd.AddCommand(versionCmd)
}

func serveCommand(cmd *cobra.Command, args []string) error {
	if listUAFlag {
		printUACatalog(cmd)
		return nil
	}

	_, client, err := buildClient()
	if err != nil {
		return err
	}

	return mcpserver.New(version, client).ServeStdio()
}

// loadConfig resolves the effective configuration: file values first, then
// command-line flags on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w", err)
	}

	if userAgentFlag != "" {
		cfg.UserAgent = userAgentFlag
	}
	if randomUAFlag {
		cfg.RandomUserAgent = config.BoolPtr(true)
	}
	if uaBrowserFlag != "" {
		cfg.UABrowser = uaBrowserFlag
	}
	if uaOSFlag != "" {
		cfg.UAOS = uaOSFlag
	}
	if forceUAFlag {
		cfg.ForceUserAgent = config.BoolPtr(true)
	}
	if timeoutFlag != "" {
		d, err := time.ParseDuration(timeoutFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout value %q: %w", timeoutFlag, err)
		}
		cfg.Timeout = int(d.Milliseconds())
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}

	return cfg, nil
}

// buildClient assembles the request client from the effective configuration.
func buildClient() (*config.Config, *request.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	if cfg.LogLevel != "" {
		if err := logging.SetLevel(cfg.LogLevel); err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
	}

	ua, err := resolveUserAgent(cfg)
	if err != nil {
		return nil, nil, err
	}

	opts := []request.ClientOption{
		request.WithTimeout(time.Duration(cfg.Timeout) * time.Millisecond),
		request.WithMaxRedirects(cfg.MaxRedirects),
		request.WithValidateSSL(cfg.GetValidateSSL()),
		request.WithFollowRedirects(cfg.GetFollowRedirects()),
		request.WithUserAgent(ua, cfg.GetForceUserAgent()),
	}
	if cfg.Proxy != "" {
		opts = append(opts, request.WithProxy(cfg.Proxy))
	}
	if len(cfg.Headers) > 0 {
		opts = append(opts, request.WithDefaultHeaders(cfg.Headers))
	}
	if cfg.RateLimit > 0 {
		opts = append(opts, request.WithRateLimit(cfg.RateLimit))
	}

	return cfg, request.NewClient(opts...), nil
}

// resolveUserAgent picks the outbound User-Agent: an explicit value wins,
// then a random catalog pick when requested, then the service default.
func resolveUserAgent(cfg *config.Config) (string, error) {
	if cfg.UserAgent != "" {
		return cfg.UserAgent, nil
	}
	if cfg.GetRandomUserAgent() {
		return useragent.Random(cfg.UABrowser, cfg.UAOS)
	}
	return useragent.Default(version), nil
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
