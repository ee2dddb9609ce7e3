// Package commands implements the jutge command-line interface using Cobra.
package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/petal-labs/jutge/cli/config"
	"github.com/petal-labs/jutge/cli/keystore"
	"github.com/petal-labs/jutge/cli/logging"
	"github.com/petal-labs/jutge/core"
	"github.com/petal-labs/jutge/rpc"
)

// ConfigLoader loads CLI config from a path.
type ConfigLoader func(path string) (*config.Config, error)

// BackendFactory creates the backend calls are sent through.
type BackendFactory func(opts ...rpc.Option) core.Backend

// KeystoreFactory creates a keystore instance.
type KeystoreFactory func() (keystore.Keystore, error)

// AppOption customizes App dependencies.
type AppOption func(*App)

// App holds CLI state and runtime dependencies.
type App struct {
	root *cobra.Command

	loadConfig  ConfigLoader
	newBackend  BackendFactory
	newKeystore KeystoreFactory
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	input       *bufio.Reader
	cachePath   string
	cfgFile     string
	apiURL      string
	jsonOutput  bool
	verbose     bool
	cfg         *config.Config
	logger      *zap.Logger

	loginEmail string
	callInput  string
	callFiles  []string
	callOut    string
	callYAML   bool
}

// WithConfigLoader injects a config loader dependency.
func WithConfigLoader(loader ConfigLoader) AppOption {
	return func(a *App) {
		if loader != nil {
			a.loadConfig = loader
		}
	}
}

// WithBackendFactory injects a backend factory dependency.
func WithBackendFactory(factory BackendFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.newBackend = factory
		}
	}
}

// WithKeystoreFactory injects a keystore factory dependency.
func WithKeystoreFactory(factory KeystoreFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.newKeystore = factory
		}
	}
}

// WithCachePath sets the response cache file.
func WithCachePath(path string) AppOption {
	return func(a *App) {
		if path != "" {
			a.cachePath = path
		}
	}
}

// WithIO injects process I/O streams.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) AppOption {
	return func(a *App) {
		if stdin != nil {
			a.stdin = stdin
		}
		if stdout != nil {
			a.stdout = stdout
		}
		if stderr != nil {
			a.stderr = stderr
		}
	}
}

// NewApp creates a new CLI app with default dependencies.
func NewApp(opts ...AppOption) *App {
	a := &App{
		loadConfig:  config.LoadConfig,
		newBackend:  defaultBackendFactory,
		newKeystore: keystore.NewKeystore,
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		cachePath:   config.DefaultCachePath(),
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.root = a.newRootCommand()
	return a
}

func defaultBackendFactory(opts ...rpc.Option) core.Backend {
	return rpc.New(opts...)
}

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "jutge",
		Short: "jutge - command-line client for the Jutge API",
		Long: `jutge is a command-line client for the Jutge API.

Use jutge to log in, call any API function and save the files it returns.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags available to all commands.
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ~/.jutge/config.yaml)")
	root.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "API URL (default $"+rpc.DefaultURLEnvVar+" or "+rpc.DefaultURL+")")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "emit JSON output")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "enable debug logging")

	root.AddCommand(a.newLoginCommand())
	root.AddCommand(a.newLogoutCommand())
	root.AddCommand(a.newWhoamiCommand())
	root.AddCommand(a.newCallCommand())
	root.AddCommand(a.newCacheCommand())
	root.AddCommand(a.newVersionCommand())

	return root
}

// SetArgs sets the command-line arguments, for tests and embedding.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Execute runs the root command. Errors that were not reported by a command
// are printed to stderr.
func (a *App) Execute() error {
	err := a.root.Execute()
	if err == nil {
		return nil
	}
	var exitErr *exitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
	}
	return err
}

func (a *App) initConfig() error {
	path := a.cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := a.loadConfig(path)
	if err != nil {
		return a.validationError(fmt.Errorf("load config %s: %w", path, err))
	}
	a.cfg = cfg
	a.logger = logging.New(a.stderr, a.verbose)

	return nil
}

// endpointURL resolves the API URL: flag, then environment, then config.
func (a *App) endpointURL() string {
	if a.apiURL != "" {
		return a.apiURL
	}
	if env := os.Getenv(rpc.DefaultURLEnvVar); env != "" {
		return env
	}
	if a.cfg != nil && a.cfg.APIURL != "" {
		return a.cfg.APIURL
	}
	return rpc.DefaultURL
}

func (a *App) endpointOptions() []rpc.Option {
	opts := []rpc.Option{
		rpc.WithURL(a.endpointURL()),
		rpc.WithHeader("User-Agent", "jutge-cli/"+Version),
	}
	if a.cfg != nil && a.cfg.Timeout > 0 {
		opts = append(opts, rpc.WithTimeout(a.cfg.Timeout))
	}
	return opts
}

var defaultApp = NewApp()

// Execute runs the default app root command.
func Execute() error {
	return defaultApp.Execute()
}
