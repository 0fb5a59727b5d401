package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/juris/internal/core/domain"
)

var (
	searchThreshold float64
	searchPage      int
	searchPageSize  int
	searchJSON      bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search processed documents",
	Long: `Ranks every processed document against the query using TF-IDF cosine
similarity over the title, summary and full text, weighted 0.3/0.4/0.3.
Documents scoring below the threshold are left out.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Float64VarP(&searchThreshold, "threshold", "t", domain.DefaultSearchThreshold, "minimum overall score between 0 and 1")
	searchCmd.Flags().IntVarP(&searchPage, "page", "p", 1, "result page")
	searchCmd.Flags().IntVarP(&searchPageSize, "page-size", "n", 10, "results per page")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errNotConfigured("search")
	}

	opts := domain.SearchOptions{
		Page:     searchPage,
		PageSize: searchPageSize,
	}
	// An unset flag defers to the configured default.
	if cmd.Flags().Changed("threshold") {
		threshold := searchThreshold
		opts.Threshold = &threshold
	}

	resp, err := searchService.Search(commandContext(cmd), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, resp)
	}

	return outputSearchTable(cmd, resp)
}

func outputSearchTable(cmd *cobra.Command, resp *domain.SearchResponse) error {
	if len(resp.Results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	p := resp.Pagination
	cmd.Printf("Results: %d matching documents (page %d of %d, threshold %.2f)\n",
		p.Total, p.Page, p.Pages, resp.Threshold)
	cmd.Println()

	offset, _ := p.Bounds()
	for i := range resp.Results {
		r := &resp.Results[i]
		pct := r.Scores.Percentages()

		// Format: [N] Filename (Score)
		cmd.Printf("  [%d] %s %s\n", offset+i+1, r.Document.Title(),
			render(cmd, scoreStyle, "("+formatPercent(pct.Overall)+")"))
		cmd.Println(render(cmd, mutedStyle, fmt.Sprintf("      title %s  summary %s  content %s",
			formatPercent(pct.Title), formatPercent(pct.Summary), formatPercent(pct.Content))))
		if r.Document.Content != nil && r.Document.Content.Summary != "" {
			cmd.Printf("      %s\n", truncate(r.Document.Content.Summary, 160))
		}
		cmd.Println()
	}

	if p.HasNext {
		cmd.Printf("More results: juris search %q --page %d\n", resp.Query, p.Page+1)
	}
	return nil
}
