// Package main provides the QuickAuth terminal application, a workaround
// for browsers that no longer prompt for HTTP Basic Auth credentials. It
// keeps a registry of protected servers and establishes sessions for them
// by opening short-lived helper views carrying the credentials in the URL.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/quickauthhq/quickauth/pkg/browser"
	appconfig "github.com/quickauthhq/quickauth/pkg/config"
	"github.com/quickauthhq/quickauth/pkg/executor/cli"
	"github.com/quickauthhq/quickauth/pkg/executor/tui"
	"github.com/quickauthhq/quickauth/pkg/logging"
	"github.com/quickauthhq/quickauth/pkg/session"
)

const version = "0.1.0" // Version of the QuickAuth helper

// Config holds the application configuration
type Config struct {
	ConfigPath  string
	Authorize   string
	Username    string
	Password    string
	ImportPath  string
	ShowBrowser bool
	ShowVersion bool
}

func main() {
	// Parse command line flags
	config := parseFlags()

	// Show version if requested
	if config.ShowVersion {
		fmt.Printf("QuickAuth v%s\n", version)
		return
	}

	// Validate configuration
	if err := config.validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Create context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nShutting down gracefully...")
		cancel()
	}()

	// Run the application
	if runErr := run(ctx, config); runErr != nil {
		cancel()
		log.Fatalf("Application error: %v", runErr)
	}
}

// parseFlags parses command line flags and environment variables
func parseFlags() *Config {
	config := &Config{}

	flag.StringVar(&config.ConfigPath, "config", os.Getenv("QUICKAUTH_CONFIG"), "Path to config file (or set QUICKAUTH_CONFIG env var, default: ~/.quickauth/config.json)")
	flag.StringVar(&config.Authorize, "authorize", "", "Authorize a single server URL and exit (one-shot mode)")
	flag.StringVar(&config.Username, "username", os.Getenv("QUICKAUTH_USERNAME"), "Username for one-shot mode (or set QUICKAUTH_USERNAME env var)")
	flag.StringVar(&config.Password, "password", os.Getenv("QUICKAUTH_PASSWORD"), "Password for one-shot mode (or set QUICKAUTH_PASSWORD env var)")
	flag.StringVar(&config.ImportPath, "import", "", "Import server URLs from a YAML file and exit")
	flag.BoolVar(&config.ShowBrowser, "show-browser", false, "Run helper views in a visible browser window")
	flag.BoolVar(&config.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "QuickAuth - HTTP Basic Auth session helper\n\n")
		fmt.Fprintf(os.Stderr, "Usage: quickauth [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  QUICKAUTH_CONFIG      Path to config file\n")
		fmt.Fprintf(os.Stderr, "  QUICKAUTH_USERNAME    Username for one-shot mode\n")
		fmt.Fprintf(os.Stderr, "  QUICKAUTH_PASSWORD    Password for one-shot mode\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # TUI Mode (default)\n")
		fmt.Fprintf(os.Stderr, "  quickauth                                # Browse and authorize registered servers\n")
		fmt.Fprintf(os.Stderr, "  quickauth -config /path/to/config.json\n")
		fmt.Fprintf(os.Stderr, "\n  # One-shot Mode (scripts, cron)\n")
		fmt.Fprintf(os.Stderr, "  quickauth -authorize https://dav.example.com -username alice -password s3cret\n")
		fmt.Fprintf(os.Stderr, "  QUICKAUTH_PASSWORD=s3cret quickauth -authorize https://dav.example.com -username alice\n")
		fmt.Fprintf(os.Stderr, "\n  # Bulk import\n")
		fmt.Fprintf(os.Stderr, "  quickauth -import servers.yaml\n")
	}

	flag.Parse()
	return config
}

// validate checks that the configuration is valid
func (c *Config) validate() error {
	if c.Authorize != "" && c.ImportPath != "" {
		return fmt.Errorf("-authorize and -import cannot be combined")
	}

	// One-shot mode needs both credentials up front
	if c.Authorize != "" {
		if c.Username == "" {
			return fmt.Errorf("username is required. Set QUICKAUTH_USERNAME environment variable or use -username flag")
		}
		if c.Password == "" {
			return fmt.Errorf("password is required. Set QUICKAUTH_PASSWORD environment variable or use -password flag")
		}
	}

	if c.ImportPath != "" {
		info, err := os.Stat(c.ImportPath)
		if err != nil {
			return fmt.Errorf("import file error: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("import path '%s' is a directory", c.ImportPath)
		}
	}

	return nil
}

// run executes the main application logic
func run(ctx context.Context, config *Config) error {
	// Initialize global configuration (registry and session settings)
	if err := appconfig.Initialize(config.ConfigPath); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	// Import mode touches only the registry, no browser needed
	if config.ImportPath != "" {
		return runImport(config)
	}

	logger, err := logging.NewLogger("quickauth")
	if err != nil {
		// Sessions just won't be logged to file
		log.Printf("Warning: failed to create session logger: %v", err)
		logger = nil
	} else {
		defer func() { _ = logger.Close() }()
	}

	sessionCfg := appconfig.GetSession()

	headless := sessionCfg.IsHeadless()
	if config.ShowBrowser {
		headless = false
	}

	guard, err := session.NewHostGuard(sessionCfg.GetAllowedHosts())
	if err != nil {
		return fmt.Errorf("failed to build host guard: %w", err)
	}

	manager := browser.NewManager(browser.Options{Headless: headless})
	defer func() {
		if err := manager.Shutdown(); err != nil {
			log.Printf("Warning: browser shutdown error: %v", err)
		}
	}()

	// One-shot mode
	if config.Authorize != "" {
		return runCLI(ctx, config, manager, guard, logger)
	}

	// TUI mode (default)
	return runTUI(ctx, manager, guard, logger)
}

// runCLI executes one-shot mode: authorize a single server and exit
func runCLI(ctx context.Context, config *Config, manager *browser.Manager, guard *session.HostGuard, logger *logging.Logger) error {
	opts := []cli.ExecutorOption{cli.WithGuard(guard)}
	if logger != nil {
		opts = append(opts, cli.WithLogger(logger))
	}
	if sessionCfg := appconfig.GetSession(); sessionCfg != nil {
		attempts, interval, initialDelay := sessionCfg.GetSchedule()
		opts = append(opts, cli.WithSchedule(session.Schedule{
			Attempts:     attempts,
			Interval:     interval,
			InitialDelay: initialDelay,
		}))
	}

	executor := cli.NewExecutor(manager, opts...)
	return executor.Authorize(ctx, config.Authorize, config.Username, config.Password)
}

// runTUI executes the TUI mode
func runTUI(ctx context.Context, manager *browser.Manager, guard *session.HostGuard, logger *logging.Logger) error {
	executor := tui.NewExecutor(manager, guard, logger, "")

	// Display welcome message
	fmt.Printf("QuickAuth v%s - Basic Auth session helper\n", version)
	fmt.Printf("Registry: %s\n", appconfig.Path())
	fmt.Println("\nStarting TUI...")
	fmt.Println()

	// Run the executor
	if err := executor.Run(ctx); err != nil {
		return fmt.Errorf("executor error: %w", err)
	}

	return nil
}

// importFile is the mapping form accepted by -import. A plain YAML list of
// URLs is accepted as well.
type importFile struct {
	Servers []string `yaml:"servers"`
}

// runImport bulk-adds server URLs from a YAML file through the same
// validation as interactive adds, reporting entries it skips.
func runImport(config *Config) error {
	data, err := os.ReadFile(config.ImportPath)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	var entries []string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		var wrapped importFile
		if err := yaml.Unmarshal(data, &wrapped); err != nil {
			return fmt.Errorf("failed to parse import file: %w", err)
		}
		entries = wrapped.Servers
	}

	if len(entries) == 0 {
		return fmt.Errorf("import file contains no server URLs")
	}

	servers := appconfig.GetServers()
	if servers == nil {
		return fmt.Errorf("config is not initialized")
	}

	added := 0
	for _, entry := range entries {
		if err := servers.AddServer(entry); err != nil {
			fmt.Printf("⚠️  Skipped %s: %v\n", entry, err)
			continue
		}
		added++
		fmt.Printf("✅ Added %s\n", entry)
	}

	if err := appconfig.Global().SaveAll(); err != nil {
		return fmt.Errorf("failed to save registry: %w", err)
	}

	fmt.Printf("\nImported %d of %d servers into %s\n", added, len(entries), appconfig.Path())
	return nil
}
