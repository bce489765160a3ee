package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var fetchJSON bool

var fetchCmd = &cobra.Command{
	Use:   "fetch PARENT_ID...",
	Short: "Fetch full parent chunks by ID",
	Long: `Fetch the full parent chunks for the given IDs, as returned in the
parent_id field of query results. Duplicate IDs are collapsed and
unknown IDs are silently skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "output as JSON")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	root := GetRootDir()

	parents, err := openParentStore(cfg, root)
	if err != nil {
		return fmt.Errorf("open parent store: %w", err)
	}

	records, err := parents.GetMany(args)
	if err != nil {
		return err
	}

	if fetchJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No matching parent chunks")
		return nil
	}
	for _, r := range records {
		fmt.Printf("=== %s (source: %s)\n%s\n\n", r.ParentID, r.Metadata["source"], r.Content)
	}
	return nil
}
