package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"recall/internal/usecase"
)

var (
	queryText string
	queryTopK int
	queryJSON bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Search indexed child chunks",
	Long: `Search the child index with hybrid dense+sparse retrieval.

A query may scope itself to specific documents by naming them in a
trailing "in" or "from" clause:

  recall query -q "what is self_attention in attention_is_all_you_need pdf"
  recall query -q "action items from weekly_sync.pdf" --top-k 10 --json`,
	RunE: runQueryCmd,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryText, "query", "q", "", "search query (required)")
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of results (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
	queryCmd.MarkFlagRequired("query")
}

func runQueryCmd(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	root := GetRootDir()

	index, db, err := openChildIndex(cfg, root)
	if err != nil {
		return err
	}
	defer db.Close()

	parents, err := openParentStore(cfg, root)
	if err != nil {
		return fmt.Errorf("open parent store: %w", err)
	}

	topK := cfg.Search.TopK
	if queryTopK > 0 {
		topK = queryTopK
	}

	tools := usecase.NewTools(index, parents, cfg.Search.ScoreThreshold)
	results := tools.SearchChildChunks(queryText, topK)

	if queryJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results")
		return nil
	}
	for i, r := range results {
		fmt.Printf("%d. [%s] parent=%s\n%s\n\n", i+1, r.Source, r.ParentID, r.Content)
	}
	return nil
}
