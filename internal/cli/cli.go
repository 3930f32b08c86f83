package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/hansol-dev/school-letters/internal/config"
	"github.com/hansol-dev/school-letters/internal/logger"
	"github.com/hansol-dev/school-letters/internal/scraper"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagURL     string
	flagSite    string
	flagConfig  string
	flagFormat  string
	flagOut     string
	flagLogFile string
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "school-letters",
		Short: "Extract family letter postings from a school listing page",
		Long: `A CLI tool that fetches a school website's family letter (notice)
listing page and extracts its postings as structured records.
Each invocation processes exactly one listing page: pass the page with
--url, or name a preset from a TOML config file with --config and --site.`,
		RunE: runExtract,
	}

	cmd.Flags().StringVar(&flagURL, "url", "", "Listing page URL (required unless --config is used)")
	cmd.Flags().StringVar(&flagSite, "site", "", "Site label; with --config, selects the preset by name")
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to TOML site presets file")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flagOut, "out", "", "Also write the JSON envelope to this file")
	cmd.Flags().StringVar(&flagLogFile, "log-file", "", "Diagnostic log file (truncated at start; default stderr)")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

// runExtract is the main command logic
func runExtract(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	pageURL := flagURL
	siteName := flagSite
	detailTemplate := ""
	logFile := flagLogFile

	if flagConfig != "" {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if logFile == "" {
			logFile = cfg.LogFile
		}

		site, err := selectSite(cfg, flagSite)
		if err != nil {
			return err
		}
		pageURL = site.URL
		siteName = site.Name
		detailTemplate = site.DetailTemplate
	}

	if pageURL == "" {
		return fmt.Errorf("--url is required (or --config with a site preset)")
	}

	level := logger.LevelInfo
	if flagVerbose {
		level = logger.LevelDebug
	}

	log := logger.New(level, os.Stderr)
	if logFile != "" {
		fileLog, err := logger.NewFile(level, logFile)
		if err != nil {
			return fmt.Errorf("initializing log file: %w", err)
		}
		log = fileLog
	}

	opts := []scraper.Option{}
	if detailTemplate != "" {
		opts = append(opts, scraper.WithDetailTemplate(detailTemplate))
	}

	sc := scraper.New(log, opts...)
	envelope := sc.Extract(pageURL, siteName)
	log.Close() // nolint:errcheck

	if err := WriteOutput(os.Stdout, envelope, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if flagOut != "" {
		if err := SaveEnvelope(flagOut, envelope); err != nil {
			return fmt.Errorf("saving envelope: %w", err)
		}
	}

	if envelope.Meta.Error != "" {
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
	return nil
}

// selectSite picks the preset named by --site, or the sole preset when the
// config holds exactly one.
func selectSite(cfg *config.Config, name string) (*config.Site, error) {
	if name == "" {
		if len(cfg.Sites) == 1 {
			return &cfg.Sites[0], nil
		}
		return nil, fmt.Errorf("--site is required when the config defines %d sites", len(cfg.Sites))
	}
	site, ok := cfg.FindSite(name)
	if !ok {
		return nil, fmt.Errorf("site %q not found in config", name)
	}
	return site, nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
