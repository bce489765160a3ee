// Package cli implements the recall command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"recall/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "recall",
	Short: "Meeting knowledge base - convert, index and query meeting documents",
	Long: `Recall builds a searchable knowledge base from meeting documents.

PDFs are converted to markdown, split into parent chunks for context and
child chunks for retrieval, and indexed with hybrid dense+sparse search.

Example usage:
  recall convert                      # Convert docs/*.pdf to markdown
  recall index                        # Rebuild the search index
  recall query -q "deadline in kickoff pdf"
  recall ask -q "what was decided about the budget?"`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./recall.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
