package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spektr-org/wari/engine"
	"github.com/spektr-org/wari/logging"
	"github.com/spektr-org/wari/session"
)

// queryFlags are the QueryState flags shared by list and export.
type queryFlags struct {
	search string
	sector string
	risk   string
	sort   string
	page   int
}

func (q *queryFlags) bind(cmd *cobra.Command, withPage bool) {
	f := cmd.Flags()
	f.StringVar(&q.search, "search", "", "Case-insensitive substring of job or sector")
	f.StringVar(&q.sector, "sector", engine.All, "Exact sector, or \"all\"")
	f.StringVar(&q.risk, "risk", engine.All, "Risk tier (e.g. \"Very High\"), or \"all\"")
	f.StringVar(&q.sort, "sort", engine.ScoreDesc.String(), "Sort order ("+strings.Join(engine.SortKeyNames(), "|")+")")
	if withPage {
		f.IntVar(&q.page, "page", 1, "Page number (50 occupations per page)")
	}

	_ = cmd.RegisterFlagCompletionFunc("sort", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return engine.SortKeyNames(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("risk", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return append([]string{engine.All}, engine.RiskTiers...), cobra.ShellCompDirectiveNoFileComp
	})
}

// apply replays the flags as session commands: filters first, then sort,
// then page, so the page is clamped against the filtered count.
func (q *queryFlags) apply(s *session.Session) error {
	key, err := engine.ParseSortKey(q.sort)
	if err != nil {
		return err
	}

	s.SetSearch(q.search)
	s.SetCategory(matchChoice(q.sector, s.Categories()))
	s.SetRisk(matchChoice(q.risk, engine.RiskTiers))
	s.SetSort(key)
	if q.page > 1 {
		s.SetPage(q.page)
	}
	return nil
}

// openSession builds a session from the command's config and loads it.
// A load error is reported as a warning; the session then holds the
// sample records.
func openSession(cmd *cobra.Command) (*session.Session, error) {
	ctx := cmd.Context()
	cfg := GetConfig(ctx)
	logger := logging.FromContext(ctx)

	s := session.New(cfg.LoaderSource(),
		session.WithLogger(logger),
		session.WithLocale(cfg.Language()),
		session.WithSearchDebounce(cfg.SearchDebounce),
	)
	err := s.Reload(ctx)
	if err != nil {
		printLoadWarning(cmd.ErrOrStderr(), err, len(s.Records()))
	}
	return s, err
}

// matchChoice resolves v case-insensitively against known values.
// Unknown values pass through unchanged and simply match nothing.
func matchChoice(v string, known []string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, engine.All) {
		return engine.All
	}
	for _, k := range known {
		if strings.EqualFold(k, v) {
			return k
		}
	}
	return v
}

func printLoadWarning(w io.Writer, err error, sampleCount int) {
	_, _ = fmt.Fprintln(w, warningStyle.Render("Warning: could not load occupation data"))
	_, _ = fmt.Fprintf(w, "  %v\n", err)
	_, _ = fmt.Fprintf(w, "  Showing %d sample occupations. Retry the command, or type \"reload\" in wari explore.\n", sampleCount)
}
