package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rohmanhakim/carpool/internal/build"
	"github.com/rohmanhakim/carpool/internal/config"
	"github.com/rohmanhakim/carpool/pkg/fileutil"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgFile         string
	origin          string
	contentSelector string
	userAgent       string
	timeout         time.Duration
	noCoalesce      bool
	initialPath     string
	paths           []string
	outputFile      string
	verbose         bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "carpool",
	Short: "Partial-page navigation over plain HTML pages.",
	Long: `carpool loads a page, then navigates through further routes by fetching
each one, extracting its content region and title, and swapping them into
the page already loaded, instead of replacing the whole document.

Every fetched page is memoized by URL, so returning to a route costs no
network round trip.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), build.FullVersion())
	},
}

var navigateCmd = &cobra.Command{
	Use:   "navigate",
	Short: "Load the initial page and swap in each --path in order",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd.ErrOrStderr(), verbose)

		cfg, err := InitConfigWithError(origin)
		if err != nil {
			logger.Error().Err(err).Msg("Could not initialize config")
			return err
		}

		var document bytes.Buffer
		err = RunNavigate(cmd.Context(), NavigateParam{
			Config:      cfg,
			InitialPath: initialPath,
			Paths:       paths,
			Output:      &document,
			Logger:      logger,
		})
		if err == nil {
			err = writeDocument(cmd.OutOrStdout(), outputFile, document.String())
		}
		if err != nil {
			logger.Error().Err(err).Msg("Navigation failed, a full page load is needed")
		}
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(navigateCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path, JSON or YAML (e.g., /home/myuser/carpool.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log cache and fetch events")

	navigateCmd.Flags().StringVar(&origin, "origin", "", "scheme and host that route paths are joined to (e.g., https://example.com)")
	navigateCmd.Flags().StringVar(&contentSelector, "content-selector", "", "CSS selector of the swapped content region (default .js-content)")
	navigateCmd.Flags().StringVar(&userAgent, "user-agent", "", "user agent string for HTTP requests")
	navigateCmd.Flags().DurationVar(&timeout, "timeout", 0, "timeout for a single page fetch")
	navigateCmd.Flags().BoolVar(&noCoalesce, "no-coalesce", false, "fetch once per request even when loads of one URL overlap")
	navigateCmd.Flags().StringVar(&initialPath, "initial", "/", "path of the natively loaded page")
	navigateCmd.Flags().StringArrayVar(&paths, "path", []string{}, "route path to navigate to (can be repeated)")
	navigateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the final document to this file instead of stdout")
}

// writeDocument sends the final document to path, or to stdout when path is empty.
func writeDocument(stdout io.Writer, path string, document string) error {
	if path == "" {
		_, err := io.WriteString(stdout, document)
		return err
	}
	if err := fileutil.WriteFile(path, document); err != nil {
		return err
	}
	return nil
}

// newLogger mirrors a console logger at info level, debug when verbose.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
}

// InitConfigWithError builds the config from the config file when one is
// given, otherwise from the flags over the defaults.
func InitConfigWithError(originFlag string) (config.Config, error) {
	if cfgFile != "" {
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("error initializing config from file: %w", err)
		}
		return cfg, nil
	}

	if originFlag == "" {
		return config.Config{}, fmt.Errorf("%w: --origin is required without --config-file", config.ErrInvalidConfig)
	}

	configBuilder := config.WithDefault(originFlag)

	if contentSelector != "" {
		configBuilder = configBuilder.WithContentSelector(contentSelector)
	}

	if userAgent != "" {
		configBuilder = configBuilder.WithUserAgent(userAgent)
	}

	if timeout > 0 {
		configBuilder = configBuilder.WithTimeout(timeout)
	}

	if noCoalesce {
		configBuilder = configBuilder.WithCoalesceInFlight(false)
	}

	return configBuilder.Build()
}

// NewRootCommandForTest returns the root command with output redirected.
func NewRootCommandForTest(stdout io.Writer, stderr io.Writer, args []string) *cobra.Command {
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	return rootCmd
}

func ResetFlags() {
	cfgFile = ""
	origin = ""
	contentSelector = ""
	userAgent = ""
	timeout = 0
	noCoalesce = false
	initialPath = "/"
	paths = []string{}
	outputFile = ""
	verbose = false
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetContentSelectorForTest(selector string) {
	contentSelector = selector
}

func SetUserAgentForTest(agent string) {
	userAgent = agent
}

func SetTimeoutForTest(t time.Duration) {
	timeout = t
}

func SetNoCoalesceForTest(disable bool) {
	noCoalesce = disable
}
