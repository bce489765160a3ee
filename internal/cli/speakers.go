package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"recall/config"
	"recall/internal/adapter/store"
	"recall/internal/domain"
)

var speakersCmd = &cobra.Command{
	Use:   "speakers",
	Short: "Manage enrolled speaker profiles",
	Long: `Manage the speaker profiles used to attribute meeting transcript
segments. Profiles are produced by the external diarization pipeline
and imported here as JSON.`,
}

var speakersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List enrolled speakers",
	RunE: func(cmd *cobra.Command, args []string) error {
		speakers, err := openSpeakerStore()
		if err != nil {
			return err
		}
		profiles := speakers.List()
		if len(profiles) == 0 {
			fmt.Println("No enrolled speakers")
			return nil
		}
		for _, p := range profiles {
			fmt.Printf("%s\tdim=%d\tenrolled=%s\n", p.Name, len(p.Embedding),
				time.Unix(p.EnrolledAt, 0).Format("2006-01-02"))
		}
		return nil
	},
}

var speakersRemoveCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: "Remove an enrolled speaker",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		speakers, err := openSpeakerStore()
		if err != nil {
			return err
		}
		if err := speakers.Remove(args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed %s\n", args[0])
		return nil
	},
}

var speakersImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import speaker profiles from a JSON file",
	Long: `Import profiles from a JSON array of {name, embedding, enrolled_at}
objects. Existing profiles with the same name are overwritten.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var profiles []domain.SpeakerProfile
		if err := json.Unmarshal(data, &profiles); err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}

		speakers, err := openSpeakerStore()
		if err != nil {
			return err
		}
		for _, p := range profiles {
			if p.Name == "" {
				return fmt.Errorf("profile with empty name in %s", args[0])
			}
			if p.EnrolledAt == 0 {
				p.EnrolledAt = time.Now().Unix()
			}
			if err := speakers.Add(p); err != nil {
				return err
			}
		}
		fmt.Printf("Imported %d profile(s)\n", len(profiles))
		return nil
	},
}

func init() {
	speakersCmd.AddCommand(speakersListCmd, speakersRemoveCmd, speakersImportCmd)
	rootCmd.AddCommand(speakersCmd)
}

func openSpeakerStore() (*store.SpeakerStore, error) {
	return store.NewSpeakerStore(config.Resolve(GetRootDir(), GetConfig().Paths.SpeakerDB))
}
