package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"recall/internal/adapter/llm"
	"recall/internal/port"
	"recall/internal/usecase"
)

var (
	askText string
	askTopK int
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask a question about the indexed documents",
	Long: `Answer a question with retrieval-augmented generation: search the child
index, expand hits to their parent chunks and pass the assembled context
to the configured language model.

Example:
  recall ask -q "what was decided about the Q3 budget in planning_sync pdf?"`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askText, "question", "q", "", "question to answer (required)")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "child chunks to retrieve (default from config)")
	askCmd.MarkFlagRequired("question")
}

func newLLM(provider, model, baseURL string) (port.LLM, error) {
	if provider == "mock" {
		return llm.NewMockLLM("mock answer"), nil
	}
	return llm.NewOpenAIClient(provider, model, baseURL, "")
}

func runAsk(cmd *cobra.Command, args []string) error {
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

	model, err := newLLM(cfg.LLM.Provider, cfg.LLM.Model, cfg.LLM.BaseURL)
	if err != nil {
		return err
	}

	topK := cfg.Search.TopK
	if askTopK > 0 {
		topK = askTopK
	}

	tools := usecase.NewTools(index, parents, cfg.Search.ScoreThreshold)
	answer, err := usecase.NewAsker(tools, model, topK).Ask(askText)
	if err != nil {
		return err
	}

	fmt.Println(answer.Text)
	if len(answer.Sources) > 0 {
		fmt.Printf("\nSources: %s\n", strings.Join(answer.Sources, ", "))
	}
	return nil
}
