package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/onering/auth"
	"github.com/s0up4200/onering/config"
	"github.com/s0up4200/onering/onering"
	"github.com/s0up4200/onering/query"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger

	// Command flags
	opts lookupOptions
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "onering",
	Short: "Query movies and quotes from The One API",
	Long: `onering is a CLI for the movie endpoint of The One API
(https://the-one-api.dev). It covers:
  - /movie
  - /movie/{id}
  - /movie/{id}/quote

Results can be narrowed with a key,value substring search, an expression
filter and a field projection. The result is written to the log.`,
	Example: `  onering -a $TOKEN -m
  onering -c creds.json -m -i 5cd95395de30eff6ebccde5d -f name,runtimeInMinutes
  onering -c creds.json -q -i 5cd95395de30eff6ebccde5d -s dialog,Precious`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initializeApp,
	RunE:              runLookup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.credsJSON, "creds-json", "c", "", "path to credentials json file which will contain access-token field")
	flags.StringVarP(&opts.accessToken, "access-token", "a", "", "access token value for The One API")
	flags.BoolVarP(&opts.movie, "movie", "m", false, "look up movie")
	flags.StringVarP(&opts.movieID, "movie-id", "i", "", "use movie id")
	flags.BoolVarP(&opts.quote, "quote", "q", false, "look up quotes")
	flags.StringVarP(&opts.search, "search-filter", "s", "", "comma separated key/value for simple contains filtering")
	flags.StringVarP(&opts.fields, "field-filter", "f", "", "comma separated fields for filtering from the result")
	flags.StringVarP(&opts.where, "where", "w", "", "expression filter over record fields, e.g. 'runtimeInMinutes > 200'")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// initializeApp loads the configuration and sets up the logger
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func runLookup(cmd *cobra.Command, args []string) error {
	token, credsFile := credentialSources(opts, cfg.API)

	header, source, err := auth.NewResolver(nil).Resolve(token, credsFile)
	if err != nil {
		return err
	}
	logger.Debug().Str("source", string(source)).Msg("Resolved credentials")

	client, err := onering.NewClient(cfg.API.BaseURL, header, logger)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	result, err := lookup(cmd.Context(), query.NewService(client, logger), opts)
	if err != nil {
		return err
	}

	return logResult(logger, result)
}

// credentialSources picks the token and credentials file to resolve. Flags
// win over config values; the resolver prefers the token over the file.
func credentialSources(o lookupOptions, api config.APIConfig) (token, credsFile string) {
	if o.accessToken != "" || o.credsJSON != "" {
		return o.accessToken, o.credsJSON
	}
	return api.AccessToken, api.CredsJSON
}

// logResult writes the query result to the log, the CLI's only output
func logResult(logger zerolog.Logger, result any) error {
	out, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	logger.Info().RawJSON("result", out).Msg("API request results")
	return nil
}
