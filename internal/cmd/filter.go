package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Iron-Ham/searcher/internal/config"
	"github.com/Iron-Ham/searcher/internal/dom"
	"github.com/Iron-Ham/searcher/internal/errors"
	"github.com/Iron-Ham/searcher/internal/logging"
	"github.com/Iron-Ham/searcher/internal/searcher"
	"github.com/Iron-Ham/searcher/internal/util"
)

// Output formats for the filter command
const (
	formatHTML = "html"
	formatText = "text"
)

type filterOptions struct {
	term          string
	caseSensitive bool
	highlight     string
	container     string
	items         string
	text          string
	input         string
	toggle        string
	toggleClass   string
	format        string
	output        string
	summary       bool
}

func newFilterCmd() *cobra.Command {
	opts := &filterOptions{}

	cmd := &cobra.Command{
		Use:   "filter <file>",
		Short: "Filter an HTML document by a search term",
		Long: `Filter the items of every container in an HTML document.

Items whose text contains the term stay visible and the rest are hidden.
Matches are wrapped in the highlight template, where $1 stands for the
matched text. The filtered document is written to stdout, or only the
visible items as text lines with --format text.

Flags override the searcher section of the config file.

Examples:
  searcher filter menu.html --term pie
  searcher filter menu.html --term pie --highlight '<b>$1</b>' -o out.html
  searcher filter list.html --container ul --items li --text '' --format text`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.term, "term", "t", "", "search term (default: the document input's value)")
	f.BoolVar(&opts.caseSensitive, "case-sensitive", false, "match case-sensitively")
	f.StringVar(&opts.highlight, "highlight", "", "highlight template, $1 is the match (empty disables)")
	f.StringVar(&opts.container, "container", "", "container selector")
	f.StringVar(&opts.items, "items", "", "item selector")
	f.StringVar(&opts.text, "text", "", "text selector (empty = the item itself)")
	f.StringVar(&opts.input, "input", "", "input selector")
	f.StringVar(&opts.toggle, "toggle", "", "toggle mode: "+strings.Join(dom.ToggleModes(), ", "))
	f.StringVar(&opts.toggleClass, "toggle-class", "", "class added to hidden items in class mode")
	f.StringVar(&opts.format, "format", formatHTML, "output format: html or text")
	f.StringVarP(&opts.output, "output", "o", "", "write output to a file instead of stdout")
	f.BoolVar(&opts.summary, "summary", false, "print match counts to stderr")

	return cmd
}

func init() {
	rootCmd.AddCommand(newFilterCmd())
}

// apply overlays the flags that were set onto the searcher section.
func (o *filterOptions) apply(cmd *cobra.Command, sc *config.SearcherConfig) {
	changed := cmd.Flags().Changed

	if changed("case-sensitive") {
		sc.CaseSensitive = o.caseSensitive
	}
	if changed("highlight") {
		sc.Highlight = o.highlight
	}
	if changed("container") {
		sc.ContainerSelector = o.container
	}
	if changed("items") {
		sc.ItemSelector = o.items
	}
	if changed("text") {
		sc.TextSelector = o.text
	}
	if changed("input") {
		sc.InputSelector = o.input
	}
	if changed("toggle") {
		sc.Toggle = o.toggle
	}
	if changed("toggle-class") {
		sc.ToggleClass = o.toggleClass
	}
}

func runFilter(cmd *cobra.Command, path string, opts *filterOptions) error {
	if opts.format != formatHTML && opts.format != formatText {
		return fmt.Errorf("invalid format %q: expected %s or %s", opts.format, formatHTML, formatText)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	opts.apply(cmd, &cfg.Searcher)
	if errs := cfg.Validate(); len(errs) > 0 {
		return config.ValidationErrors(errs)
	}

	logger := newLogger(cfg)
	defer logger.Close()

	doc, searchers, input, err := attach(path, cfg, logger)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("term") {
		err = input.Change(opts.term)
	} else {
		err = input.Dispatch(searcher.EventChange)
	}
	if err != nil {
		return err
	}

	if opts.summary {
		matched, total := 0, 0
		for _, s := range searchers {
			matched += s.Stats().Matched
			total += s.Stats().Items
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d items match %q\n", matched, total, input.Value())
	}

	w := cmd.OutOrStdout()
	if opts.output != "" {
		file, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		w = file
	}

	if opts.format == formatText {
		return writeRows(w, searchers, cfg.Searcher.ToggleClass, terminalWidth(w))
	}
	return doc.Render(w)
}

// attach loads the document at path and attaches a Searcher to every
// container, all listening to one input. The input is the document's own
// when the input selector finds one.
func attach(path string, cfg *config.Config, logger *logging.Logger) (*dom.Document, []*searcher.Searcher, *dom.Input, error) {
	doc, err := dom.Load(path)
	if err != nil {
		return nil, nil, nil, err
	}
	logger = logger.WithDocument(path)
	doc.SetLogger(logger)

	containers := doc.Query(cfg.Searcher.ContainerSelector)
	if len(containers) == 0 {
		return nil, nil, nil, errors.Wrapf(errors.ErrNoContainer, "selector %q in %s", cfg.Searcher.ContainerSelector, path)
	}

	opts, err := cfg.SearchOptions()
	if err != nil {
		return nil, nil, nil, err
	}

	var input *dom.Input
	if sel := cfg.Searcher.InputSelector; sel != "" {
		if input = doc.InputElement(sel); input == nil {
			logger.Warn("input not found", "selector", sel, "error", errors.ErrNoInput)
		}
	}
	if input == nil {
		input = dom.NewStandaloneInput()
	}
	opts.Input = input

	registry := searcher.NewRegistry(doc, logger)
	return doc, registry.AttachAll(containers, opts), input, nil
}

// writeRows writes the text of every visible item, one line per item with
// its text elements separated by tabs. Lines are cut to width when it is
// positive.
func writeRows(w io.Writer, searchers []*searcher.Searcher, toggleClass string, width int) error {
	for _, s := range searchers {
		for _, item := range s.Items() {
			el, ok := item.(dom.Element)
			if !ok || dom.Hidden(el, toggleClass) {
				continue
			}

			var cells []string
			for _, t := range s.Texts(item) {
				if tel, ok := t.(dom.Element); ok {
					cells = append(cells, util.CollapseSpace(tel.Text()))
				}
			}

			line := util.TruncateANSI(strings.Join(cells, "\t"), width)
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// terminalWidth returns the width of w if it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
