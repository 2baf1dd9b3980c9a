package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/fmhf/recipe-pick/internal/adapter/driven/csvfile"
	"github.com/fmhf/recipe-pick/internal/adapter/driven/planning"
	"github.com/fmhf/recipe-pick/internal/application"
	"github.com/fmhf/recipe-pick/internal/config"
)

// defaultMarket is used when --market is not given.
const defaultMarket = "it"

// options holds the flag values shared by the root command and its children.
type options struct {
	file       string
	market     string
	configPath string
	outDir     string
	delimiter  string
	timeout    time.Duration
	verbose    bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "picklist",
		Short: "Generate a warehouse picklist CSV from recipe codes",
		Long: `Reads recipe codes from the first column of a CSV file, looks the recipes up
in the culinary planning service and writes one picklist row per recipe item
with the number of picks needed for 1 to 6 servings.

Credentials are read from a YAML config file (config.yaml by default).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPicklist(cmd.Context(), opts, stdout, stderr)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "path to the YAML config file")
	pf.DurationVar(&opts.timeout, "timeout", 0, "per-request timeout (overrides config)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", "", "csv file path")
	f.StringVarP(&opts.market, "market", "m", defaultMarket, "market")
	f.StringVarP(&opts.outDir, "out-dir", "o", ".", "directory to write the picklist into")
	f.StringVar(&opts.delimiter, "delimiter", ",", "field delimiter of the input file")
	_ = cmd.MarkFlagRequired("file")

	cmd.AddCommand(newCheckCmd(opts, stdout, stderr))

	return cmd
}

func runPicklist(ctx context.Context, opts *options, stdout, stderr io.Writer) error {
	delim, err := parseDelimiter(opts.delimiter)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, opts.verbose)

	cfg, client, err := loadClient(opts, logger)
	if err != nil {
		return err
	}

	svc := application.NewPicklistService(client, client, csvfile.NewWriter(opts.outDir), logger)
	path, err := svc.Generate(ctx, application.PicklistRequest{
		Codes:       csvfile.NewCodeReader(opts.file, delim),
		Credentials: cfg.Credentials,
		Market:      opts.market,
	})
	if err != nil {
		return err
	}

	name := lipgloss.NewRenderer(stdout).NewStyle().Foreground(lipgloss.Color("10")).Render(path)
	fmt.Fprintf(stdout, "Picklist generated: %s\n", name)
	return nil
}

// newLogger installs a text slog handler on w as the default logger. The
// adapters log through the package-level slog functions.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// loadClient reads the config file and builds the planning client from it.
func loadClient(opts *options, logger *slog.Logger) (*config.Config, *planning.Client, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.timeout > 0 {
		cfg.Timeout = opts.timeout
	}
	logger.Debug("config loaded",
		"path", opts.configPath,
		"auth_url", cfg.AuthURL,
		"planning_url", cfg.PlanningURL,
		"timeout", cfg.Timeout,
		"credentials", cfg.Credentials,
	)

	client, err := planning.NewClient(cfg.AuthURL, cfg.PlanningURL, cfg.Timeout)
	if err != nil {
		return nil, nil, err
	}
	return cfg, client, nil
}

func parseDelimiter(s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	return r, nil
}
