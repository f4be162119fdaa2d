package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/searcher/internal/config"
	"github.com/Iron-Ham/searcher/internal/logging"
	"github.com/Iron-Ham/searcher/internal/tui"
	"github.com/Iron-Ham/searcher/internal/tui/styles"
)

type browseOptions struct {
	term       string
	watch      bool
	showHidden bool
}

func newBrowseCmd() *cobra.Command {
	opts := &browseOptions{}

	cmd := &cobra.Command{
		Use:   "browse <file>",
		Short: "Filter an HTML document interactively",
		Long: `Open an HTML document in the terminal and filter its items as you type.

Every keystroke runs a search pass over the document, exactly as typing in
the page's search box would. Use --watch to reload the document whenever
the file changes; the current query is applied to the new content.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.term, "term", "t", "", "initial search term")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload the document when the file changes")
	cmd.Flags().BoolVar(&opts.showHidden, "show-hidden", false, "list hidden items dimmed instead of omitting them")

	return cmd
}

func init() {
	rootCmd.AddCommand(newBrowseCmd())
}

func runBrowse(cmd *cobra.Command, path string, opts *browseOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	defer logger.Close()

	app, err := newBrowseApp(path, cfg, opts, logger)
	if err != nil {
		return err
	}
	return app.Run()
}

// newBrowseApp applies the theme and builds the browser for path.
func newBrowseApp(path string, cfg *config.Config, opts *browseOptions, logger *logging.Logger) (*tui.App, error) {
	_, loadErrs := styles.DiscoverCustomThemes(config.ThemesDir())
	for _, err := range loadErrs {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if !styles.IsValidTheme(cfg.TUI.Theme) {
		fmt.Fprintf(os.Stderr, "Warning: unknown theme %q, using default\n", cfg.TUI.Theme)
	}
	styles.SetActiveTheme(styles.ThemeName(cfg.TUI.Theme), cfg.TUI.HighlightStyle)

	searchOpts, err := cfg.SearchOptions()
	if err != nil {
		return nil, err
	}

	return tui.New(tui.Options{
		Path:              path,
		ContainerSelector: cfg.Searcher.ContainerSelector,
		Search:            searchOpts,
		ToggleClass:       cfg.Searcher.ToggleClass,
		ShowHidden:        cfg.TUI.ShowHidden || opts.showHidden,
		Watch:             opts.watch,
		Term:              opts.term,
		Logger:            logger,
	})
}
