package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recall-labs/recall/internal/core/domain"
)

var (
	searchLimit   int
	searchMinSim  float64
	searchDynamic bool
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search your knowledge base",
	Long: `Searches your ingested documents semantically.
The query is embedded and ranked against your passages by cosine
similarity; results carry scores, relevance labels and provenance.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultSearchLimit, "maximum number of results (1-10)")
	searchCmd.Flags().Float64Var(&searchMinSim, "min-similarity", domain.DefaultMinSimilarity, "similarity cutoff (0-1)")
	searchCmd.Flags().BoolVar(&searchDynamic, "dynamic", false, "adjust the cutoff by query length")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output the full response as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := initServices(cmd.Context()); err != nil {
		return err
	}

	opts := domain.SearchOptions{
		Limit:            searchLimit,
		MinSimilarity:    searchMinSim,
		DynamicThreshold: searchDynamic,
	}

	resp := retrievalService.Search(cmd.Context(), args[0], owner, opts)

	if searchJSON {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal response: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	return outputSearchText(cmd, resp)
}

func outputSearchText(cmd *cobra.Command, resp *domain.SearchResponse) error {
	if resp.Error != "" {
		return fmt.Errorf("search failed: %s", resp.Error)
	}

	if resp.TotalResults == 0 {
		cmd.Println(resp.Message)
		for _, s := range resp.Suggestions {
			cmd.Printf("  try: %s\n", s)
		}
		return nil
	}

	cmd.Println(resp.Summary)
	cmd.Println()
	for i, res := range resp.Results {
		cmd.Printf("[%d] %s (chunk %d) - %s (%.2f)\n",
			i+1, res.DocumentTitle, res.ChunkIndex, res.Relevance, res.Score)
		cmd.Printf("    %s\n", snippet(res.Content, 160))
	}
	return nil
}

// snippet returns the leading runes of s on a single line.
func snippet(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		s = string(runes[:n]) + "..."
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\n' || r == '\r' {
			r = ' '
		}
		out = append(out, r)
	}
	return string(out)
}
