package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/utahvbr/bizdirctl/internal/config"
	"github.com/utahvbr/bizdirctl/internal/directory"
	"github.com/utahvbr/bizdirctl/internal/directory/markdown"
	"github.com/utahvbr/bizdirctl/internal/directory/remote"
	"github.com/utahvbr/bizdirctl/internal/directory/sqlite"
	"github.com/utahvbr/bizdirctl/internal/finder"
	"github.com/utahvbr/bizdirctl/internal/logging"
	"github.com/utahvbr/bizdirctl/internal/ui"
	"golang.org/x/term"
)

var (
	cfgFile     string
	jsonOutput  bool
	backendFlag string
	appConfig   *config.Config
	dir         directory.Directory
	logCleanup  func() error
	isTerminal  = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
)

var rootCmd = &cobra.Command{
	Use:   "bizdirctl",
	Short: "Find registered businesses",
	Long: `bizdirctl searches a business registration directory by name, business
category and county. Run without a subcommand on a terminal to open the
interactive finder.`,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if dir != nil {
			if err := dir.Close(); err != nil {
				slog.Warn("closing directory", slog.String("error", err.Error()))
			}
		}
		if logCleanup != nil {
			return logCleanup()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		fcfg, err := finderConfig(appConfig)
		if err != nil {
			return err
		}
		if !isTerminal() {
			// Non-TTY: print the unfiltered result set
			return runSearch(cmd.Context(), cmd.OutOrStdout(), fcfg, finder.Request{}, false)
		}
		return ui.RunTUI(dir, fcfg, ui.TUIConfig{
			MaxWidth:        appConfig.MaxWidth,
			Theme:           ui.ResolveTheme(appConfig.Theme),
			DetailCacheSize: appConfig.DetailCacheSize,
			ToastTTL:        ui.DefaultToastTTL,
		})
	},
}

// rootPersistentPreRunE loads config, sets up logging and opens the directory.
// It is attached in init to avoid an initialization cycle on rootCmd.
func rootPersistentPreRunE(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	appConfig = cfg

	if backendFlag != "" {
		appConfig.Backend = backendFlag
	}

	// The finder owns the terminal, so its logs go to the log file or nowhere.
	fallback := io.Writer(os.Stderr)
	if cmd == rootCmd && isTerminal() {
		fallback = io.Discard
	}
	logCleanup, err = logging.Setup(logging.Config{
		Level:      appConfig.Log.Level,
		FilePath:   appConfig.Log.File,
		MaxSizeMB:  appConfig.Log.MaxSizeMB,
		MaxBackups: appConfig.Log.MaxBackups,
		MaxAgeDays: appConfig.Log.MaxAgeDays,
		Compress:   appConfig.Log.Compress,
		Fallback:   fallback,
	})
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}

	dir, err = openDirectory(appConfig)
	if err != nil {
		return err
	}
	slog.Debug("directory opened", slog.String("backend", appConfig.Backend), slog.String("data_dir", appConfig.DataDir))
	return nil
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

// ExitCode maps a command error onto the process exit status: 1 for usage
// and not-found errors, 2 when the directory itself failed.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, directory.ErrStorage), errors.Is(err, directory.ErrUnavailable):
		return 2
	default:
		return 1
	}
}

func init() {
	rootCmd.PersistentPreRunE = rootPersistentPreRunE
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "directory backend (markdown|sqlite|remote)")

	// Silence Cobra's built-in error and usage printing so we control stderr output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

// openDirectory initializes the configured backend.
func openDirectory(cfg *config.Config) (directory.Directory, error) {
	switch cfg.Backend {
	case "markdown":
		s, err := markdown.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initializing markdown storage: %w", err)
		}
		return s, nil
	case "sqlite":
		s, err := sqlite.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initializing sqlite storage: %w", err)
		}
		return s, nil
	case "remote":
		opts := []remote.Option{
			remote.WithBaseURL(cfg.Remote.BaseURL),
			remote.WithTimeout(cfg.Remote.Timeout),
		}
		if cfg.Remote.TokenURL != "" {
			opts = append(opts, remote.WithClientCredentials(cfg.Remote.TokenURL, cfg.Remote.ClientID, cfg.Remote.ClientSecret))
		}
		return remote.New(opts...), nil
	default:
		return nil, fmt.Errorf("unknown directory backend: %s", cfg.Backend)
	}
}

// finderConfig maps the application config onto the finder component's.
func finderConfig(cfg *config.Config) (finder.Config, error) {
	ordering, err := finder.ParseOrdering(cfg.Query.Ordering)
	if err != nil {
		return finder.Config{}, err
	}
	return finder.Config{
		ObjectAPIName:  cfg.RecordType.Object,
		RecordTypeName: cfg.RecordType.Name,
		RecordTypeID:   cfg.RecordType.ID,
		Ordering:       ordering,
		QueryTimeout:   cfg.Query.Timeout,
	}, nil
}

// runSearch applies req through a headless finder and prints the results.
func runSearch(ctx context.Context, w io.Writer, fcfg finder.Config, req finder.Request, idOnly bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	h := finder.NewHeadless(fcfg, dir)
	if err := h.Apply(ctx, req); err != nil {
		return fmt.Errorf("%s: %w", finder.TitleQueryFailed, err)
	}
	for _, n := range h.Notifications() {
		slog.Warn(n.Title, slog.String("message", n.Message))
	}

	records := h.Results()
	switch {
	case idOnly:
		ui.FormatRecordIDs(w, records)
		return nil
	case jsonOutput:
		return ui.FormatJSON(w, ui.SearchResult{
			SearchText: h.SearchText(),
			Categories: h.Categories(),
			Counties:   h.Counties(),
			Count:      len(records),
			Records:    records,
		})
	}

	var buf bytes.Buffer
	ui.FormatRecordList(&buf, records)
	return ui.OutputOrPage(w, buf.String(), false, appConfig.MaxWidth, ui.ResolveTheme(appConfig.Theme))
}
