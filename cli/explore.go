package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spektr-org/wari/config"
	"github.com/spektr-org/wari/engine"
	"github.com/spektr-org/wari/loader"
	"github.com/spektr-org/wari/logging"
	"github.com/spektr-org/wari/session"
)

const explorePrompt = "wari> "

// NewExploreCommand creates the interactive explorer.
func NewExploreCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Explore occupations interactively",
		Long: `Start an interactive explorer over the occupation records.

Type "help" for commands. A line starting with "/" searches as you type.
With --watch a local source file is reloaded whenever it changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, _ := openSession(cmd)
			defer s.Close()
			return runExplorer(cmd, s, watch)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Reload when the source file changes (local files only)")
	return cmd
}

func runExplorer(cmd *cobra.Command, s *session.Session, watch bool) error {
	cfg := GetConfig(cmd.Context())
	logger := logging.FromContext(cmd.Context())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	x := &explorer{
		ctx:    ctx,
		cfg:    cfg,
		s:      s,
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          explorePrompt,
		HistoryFile:     cfg.HistoryFile,
		AutoComplete:    x.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		Listener:        readline.FuncListener(x.onKey),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize explorer: %w", err)
	}
	defer func() { _ = rl.Close() }()
	x.out = rl.Stdout()
	x.errOut = rl.Stderr()

	// Live search results go to the prompt.
	s.OnChange(func(snap session.Snapshot) {
		rl.SetPrompt(fmt.Sprintf("wari [%s]> ", engine.ResultsCount(snap.View.FilteredCount, snap.View.TotalCount)))
		rl.Refresh()
	})

	eg, egctx := errgroup.WithContext(ctx)

	if watch {
		src := s.Source()
		if src.IsRemote() {
			_, _ = fmt.Fprintln(x.errOut, mutedStyle.Render("--watch ignored: source is not a local file"))
		} else {
			eg.Go(func() error {
				return loader.Watch(egctx, src.Location, 0, func() {
					if err := s.Reload(egctx); err != nil {
						printLoadWarning(x.errOut, err, len(s.Records()))
						return
					}
					_, _ = fmt.Fprintf(x.out, "\nSource changed, reloaded %s.\n", pluralOccupations(len(s.Records())))
				}, loader.WithLogger(logger))
			})
		}
	}

	eg.Go(func() error {
		defer cancel()

		_, _ = fmt.Fprintf(x.out, "wari explorer (%s)\n", s.Source().Location)
		_, _ = fmt.Fprintln(x.out, "Type help for commands, quit to exit")
		_, _ = fmt.Fprintln(x.out)
		x.status()

		for {
			line, err := rl.Readline()
			if errors.Is(err, readline.ErrInterrupt) {
				rl.SetPrompt(explorePrompt)
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}

			if x.handle(line) {
				return nil
			}
			rl.SetPrompt(explorePrompt)
		}
	})

	return eg.Wait()
}

// explorer dispatches REPL lines to session commands.
type explorer struct {
	ctx    context.Context
	cfg    *config.Config
	s      *session.Session
	out    io.Writer
	errOut io.Writer
}

// onKey feeds "/term" lines to the debounced search. Without a debounce
// window the search would run inside the readline listener, so it waits
// for Enter instead.
func (x *explorer) onKey(line []rune, _ int, _ rune) ([]rune, int, bool) {
	if x.cfg.SearchDebounce <= 0 {
		return nil, 0, false
	}
	if term, ok := strings.CutPrefix(string(line), "/"); ok {
		x.s.TypeSearch(term)
	}
	return nil, 0, false
}

// handle runs one line and reports whether the explorer should exit.
func (x *explorer) handle(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if term, ok := strings.CutPrefix(line, "/"); ok {
		x.s.CancelSearch()
		x.s.SetSearch(term)
		x.show()
		return false
	}

	command, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(command) {
	case "quit", "exit", ".quit", ".exit":
		return true

	case "help", "?":
		printExploreHelp(x.out)

	case "show", "list", "ls":
		x.show()

	case "search":
		x.s.SetSearch(arg)
		x.show()

	case "sector":
		x.s.SetCategory(matchChoice(arg, x.s.Categories()))
		x.show()

	case "risk":
		x.s.SetRisk(matchChoice(arg, engine.RiskTiers))
		x.show()

	case "sort":
		key, err := engine.ParseSortKey(arg)
		if err != nil {
			x.errorf("%v", err)
			return false
		}
		x.s.SetSort(key)
		x.show()

	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil {
			x.errorf("usage: page <number>")
			return false
		}
		x.s.SetPage(n)
		x.show()

	case "next", "n":
		x.s.NextPage()
		x.show()

	case "prev", "p":
		x.s.PrevPage()
		x.show()

	case "focus":
		x.focus(arg)

	case "sectors":
		rows := x.s.Sectors()
		renderTableData(x.out, engine.BuildSectorTable(rows), x.cfg.Output)

	case "chart":
		renderBars(x.out, engine.BuildSectorChart(x.s.Sectors()), 40)

	case "export":
		dir := arg
		if dir == "" {
			dir = x.cfg.ExportDir
		}
		path, rows, err := writeExport(x.s, dir)
		if err != nil {
			x.errorf("%v", err)
			return false
		}
		_, _ = fmt.Fprintf(x.out, "Exported %s to %s\n", pluralOccupations(rows), path)

	case "reload":
		if err := x.s.Reload(x.ctx); err != nil {
			printLoadWarning(x.errOut, err, len(x.s.Records()))
		} else {
			_, _ = fmt.Fprintf(x.out, "Reloaded %s.\n", pluralOccupations(len(x.s.Records())))
		}

	case "reset":
		x.s.SetSearch("")
		x.s.SetCategory(engine.All)
		x.s.SetRisk(engine.All)
		x.s.SetSort(engine.ScoreDesc)
		x.show()

	case "status":
		x.status()

	default:
		x.errorf("unknown command: %s (type help for commands)", command)
	}
	return false
}

// focus selects a sector by its position in the sectors table or by name.
func (x *explorer) focus(arg string) {
	rows := x.s.Sectors()
	var category string
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(rows) {
			x.errorf("no sector #%d (see sectors)", n)
			return
		}
		category = rows[n-1].Category
	} else {
		category = matchChoice(arg, x.s.Categories())
	}
	x.s.FocusCategory(category)
	x.show()
}

func (x *explorer) show() {
	snap := x.s.Snapshot()
	_, _ = fmt.Fprintln(x.out, mutedStyle.Render(engine.ResultsCount(snap.View.FilteredCount, snap.View.TotalCount)))
	renderTableData(x.out, engine.BuildPageTable(snap.View.Page), x.cfg.Output)
}

func (x *explorer) status() {
	snap := x.s.Snapshot()
	_, _ = fmt.Fprintln(x.out, engine.DescribeSummary(engine.Summarize(x.s.Records())))
	_, _ = fmt.Fprintf(x.out, "Showing %s, sorted by %s, page %d of %d\n",
		engine.ResultsCount(snap.View.FilteredCount, snap.View.TotalCount),
		snap.State.Sort, snap.State.Page, snap.View.MaxPage)
	if a := snap.View.Active; !a.IsEmpty() {
		_, _ = fmt.Fprintf(x.out, "Filters: sector=%q risk=%q search=%q\n", a.Category, a.Risk, a.Search)
	}
	if snap.LoadErr != nil {
		_, _ = fmt.Fprintln(x.errOut, warningStyle.Render("Data failed to load; showing sample records. Type reload to retry."))
	}
	logging.FromContext(x.ctx).Debug("status", zap.Int("filtered", snap.View.FilteredCount))
}

func (x *explorer) errorf(format string, args ...any) {
	_, _ = fmt.Fprintf(x.errOut, "Error: "+format+"\n", args...)
}

func (x *explorer) completer() *readline.PrefixCompleter {
	sectors := make([]readline.PrefixCompleterInterface, 0)
	for _, c := range x.s.Categories() {
		sectors = append(sectors, readline.PcItem(c))
	}
	risks := make([]readline.PrefixCompleterInterface, 0, len(engine.RiskTiers)+1)
	risks = append(risks, readline.PcItem(engine.All))
	for _, r := range engine.RiskTiers {
		risks = append(risks, readline.PcItem(r))
	}
	sorts := make([]readline.PrefixCompleterInterface, 0)
	for _, k := range engine.SortKeyNames() {
		sorts = append(sorts, readline.PcItem(k))
	}

	return readline.NewPrefixCompleter(
		readline.PcItem("search"),
		readline.PcItem("sector", append(sectors, readline.PcItem(engine.All))...),
		readline.PcItem("risk", risks...),
		readline.PcItem("sort", sorts...),
		readline.PcItem("page"),
		readline.PcItem("next"),
		readline.PcItem("prev"),
		readline.PcItem("focus", sectors...),
		readline.PcItem("sectors"),
		readline.PcItem("chart"),
		readline.PcItem("export"),
		readline.PcItem("reload"),
		readline.PcItem("reset"),
		readline.PcItem("status"),
		readline.PcItem("show"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

func printExploreHelp(w io.Writer) {
	help := `
Commands:
  /<text>             Search as you type (job or sector substring)
  search <text>       Set the search term (empty clears it)
  sector <name|all>   Filter by sector
  risk <tier|all>     Filter by risk tier (Very Low, Low, Medium, High, Very High)
  sort <key>          wari-desc | wari-asc | alpha | sector
  page <n>            Jump to page n
  next / prev         Move one page
  focus <n|name>      Filter to a sector from the sectors table
  sectors             Average WARI per sector
  chart               Average WARI per sector as bars
  export [dir]        Write the current view as CSV
  reload              Load the source again
  reset               Clear search, filters and sort
  status              Summary of the data and current view
  show                Show the current page
  help                Show this help message
  quit / exit         Exit the explorer

Tips:
  - Filters reset to page 1; sorting keeps the page
  - Use arrow keys to navigate history
  - Tab completion works for sectors, risk tiers and sort keys
`
	_, _ = fmt.Fprintln(w, help)
}
