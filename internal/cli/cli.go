package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Ilikepi739/swim/internal/calendar"
	"github.com/Ilikepi739/swim/internal/config"
	"github.com/Ilikepi739/swim/internal/fetch"
	"github.com/Ilikepi739/swim/internal/filter"
	"github.com/Ilikepi739/swim/internal/listing"
	"github.com/Ilikepi739/swim/internal/logger"
	"github.com/Ilikepi739/swim/internal/meet"
	"github.com/Ilikepi739/swim/internal/storage"
	"github.com/Ilikepi739/swim/internal/swimmer"
	"github.com/Ilikepi739/swim/internal/version"
)

const (
	ExitSuccess  = 0
	ExitError    = 1
	ExitNewMeets = 2
)

var (
	flagConfig  string
	flagDataDir string
	flagFormat  string
	flagVerbose bool

	flagCheck    bool
	flagRange    string
	flagName     string
	flagWeekends bool
	flagOutput   string
)

// app bundles the pieces each command needs, built once per run from
// the loaded configuration.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	closer  io.Closer
	fetcher *fetch.Client
	scraper *listing.Scraper
}

func buildApp() (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}

	level := logger.ParseLevel(cfg.LogLevel)
	if flagVerbose {
		level = zapcore.DebugLevel
	}

	plugin := logger.NewStderrPlugin(level)
	var closer io.Closer
	if cfg.LogFile != "" {
		filePlugin, fileCloser := logger.NewFilePlugin(cfg.LogFile, level)
		plugin = zapcore.NewTee(plugin, filePlugin)
		closer = fileCloser
	}
	log := logger.New(plugin)

	fetchOpts := []fetch.Option{
		fetch.WithTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithRateLimit(cfg.RequestsPerSecond, cfg.RateBurst),
		fetch.WithLogger(log),
	}
	if cfg.MaxRetries > 0 {
		fetchOpts = append(fetchOpts, fetch.WithRetries(cfg.MaxRetries))
	}
	if cfg.PageCacheSeconds > 0 {
		fetchOpts = append(fetchOpts, fetch.WithCache(time.Duration(cfg.PageCacheSeconds)*time.Second))
	}
	fetcher := fetch.New(fetchOpts...)

	scraper := listing.NewScraper(fetcher,
		listing.WithTeamsURL(cfg.TeamsURL),
		listing.WithMeetsURL(cfg.MeetsURL),
		listing.WithSwimmerBaseURL(cfg.SwimmerBaseURL),
		listing.WithMeetBaseURL(cfg.MeetBaseURL),
		listing.WithCrawlWorkers(cfg.CrawlWorkers),
		listing.WithLogger(log))

	return &app{
		cfg:     cfg,
		log:     log,
		closer:  closer,
		fetcher: fetcher,
		scraper: scraper,
	}, nil
}

func (a *app) close() {
	a.log.Sync()
	if a.closer != nil {
		a.closer.Close()
	}
}

func outputFormat() (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	return format, nil
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swim",
		Short: "Scrape Section III swim results, rosters, and meet listings",
		Long: `A CLI tool for scraping Section III boys swimming data:
team lists, rosters, meet histories, full meet results, and swimmer
performance histories. Tracks meets across runs and reports only
newly-posted meets since the last check.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file (or set SWIM_CONFIG)")
	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Data directory for snapshots (overrides config)")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(newTeamsCmd())
	cmd.AddCommand(newRosterCmd())
	cmd.AddCommand(newMeetsCmd())
	cmd.AddCommand(newMeetCmd())
	cmd.AddCommand(newSwimmerCmd())
	cmd.AddCommand(newAllMeetsCmd())
	cmd.AddCommand(newCalendarCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newTeamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "List the section's teams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.close()

			teams, err := a.scraper.Teams(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetching teams: %w", err)
			}

			return writeTeams(os.Stdout, &TeamsResult{
				CheckedAt: time.Now().UTC(),
				Teams:     teams,
			}, format)
		},
	}
}

func newRosterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roster <team-url>",
		Short: "List a team's swimmers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.close()

			swimmers, err := a.scraper.Roster(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetching roster: %w", err)
			}

			return writeRoster(os.Stdout, &RosterResult{
				CheckedAt: time.Now().UTC(),
				TeamURL:   args[0],
				Swimmers:  swimmers,
			}, format)
		},
	}
}

func newMeetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meets <team-url>",
		Short: "List a team's meet history",
		Long: `List a team's meet history. With --check, compares against the
stored snapshot, saves the new one, and prints only newly-posted
meets; exits with code 2 when new meets are found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.close()

			meets, err := a.scraper.MeetHistory(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetching meet history: %w", err)
			}

			f, err := buildFilter()
			if err != nil {
				return err
			}
			meets = f.Apply(meets)

			result := &MeetsResult{
				CheckedAt: time.Now().UTC(),
				TeamURL:   args[0],
			}

			if !flagCheck {
				result.Meets = meets
				return writeMeets(os.Stdout, result, format)
			}

			store, err := storage.New(a.cfg.DataDir)
			if err != nil {
				return fmt.Errorf("initializing storage: %w", err)
			}

			key := listing.TeamKey(args[0])
			previous, err := store.LoadMeets(key)
			if err != nil {
				return fmt.Errorf("loading snapshot: %w", err)
			}

			diff := listing.Diff(previous, meets)
			if err := store.SaveMeetList(key, meets); err != nil {
				return fmt.Errorf("saving snapshot: %w", err)
			}

			result.CheckMode = true
			result.NewMeets = diff.NewMeets
			if err := writeMeets(os.Stdout, result, format); err != nil {
				return err
			}

			if len(diff.NewMeets) > 0 {
				a.close()
				os.Exit(ExitNewMeets)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagCheck, "check", false, "Report only meets new since the last check")
	cmd.Flags().StringVar(&flagRange, "range", "", "Date range filter, e.g. 'Mar 1-15' or 'March'")
	cmd.Flags().StringVar(&flagName, "name", "", "Meet name substring filter")
	cmd.Flags().BoolVar(&flagWeekends, "weekends", false, "Weekend meets only")

	return cmd
}

func buildFilter() (*filter.Filter, error) {
	f := filter.New()
	if flagRange != "" {
		from, to, err := filter.ParseDateRange(flagRange)
		if err != nil {
			return nil, fmt.Errorf("parsing date range: %w", err)
		}
		f.DateFrom = from
		f.DateTo = to
	}
	if flagName != "" {
		f.Names = []string{flagName}
	}
	f.WeekendsOnly = flagWeekends
	return f, nil
}

func newMeetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "meet <meet-url>",
		Short: "Show the full results of a meet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.close()

			events, err := meet.Results(cmd.Context(), a.fetcher, args[0])
			if err != nil {
				return fmt.Errorf("fetching meet results: %w", err)
			}

			return writeMeet(os.Stdout, &MeetResult{
				CheckedAt: time.Now().UTC(),
				MeetURL:   args[0],
				Events:    events,
			}, format)
		},
	}
}

func newSwimmerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "swimmer <swimmer-url>",
		Short: "Show a swimmer's profile and performance history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.close()

			years, err := a.cfg.GraduationMap()
			if err != nil {
				return err
			}

			swim, err := swimmer.Fetch(cmd.Context(), a.fetcher, args[0], years)
			if err != nil {
				return fmt.Errorf("fetching swimmer: %w", err)
			}

			return writeSwimmer(os.Stdout, &SwimmerResult{
				CheckedAt:  time.Now().UTC(),
				SwimmerURL: args[0],
				Swimmer:    swim,
			}, format)
		},
	}
}

func newAllMeetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all-meets",
		Short: "Crawl the section's full meet listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.close()

			urls, err := a.scraper.AllMeetURLs(cmd.Context())
			if err != nil {
				return fmt.Errorf("crawling meets: %w", err)
			}

			return writeAllMeets(os.Stdout, &AllMeetsResult{
				CheckedAt: time.Now().UTC(),
				MeetURLs:  urls,
			}, format)
		},
	}
}

func newCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar <team-url>",
		Short: "Export a team's meet schedule as an iCalendar file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.close()

			meets, err := a.scraper.MeetHistory(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetching meet history: %w", err)
			}

			ics := calendar.GenerateICS("", meets)

			if flagOutput == "" {
				fmt.Print(ics)
				return nil
			}
			if err := os.WriteFile(flagOutput, []byte(ics), 0644); err != nil {
				return fmt.Errorf("writing calendar: %w", err)
			}
			fmt.Printf("Wrote %s\n", flagOutput)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagOutput, "output", "", "Write the .ics to a file instead of stdout")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show build version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Version:          ", version.String())
			fmt.Println("Git Commit:       ", version.GitHash)
			fmt.Println("Build Time (UTC): ", version.BuildTime)
		},
	}
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
