package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/study-session/internal/model"
	"github.com/rcliao/study-session/internal/store"
)

func init() {
	vocabCmd := &cobra.Command{
		Use:   "vocab",
		Short: "Manage words for production practice",
	}

	addCmd := &cobra.Command{
		Use:   "add [word]",
		Short: "Track a word for practice",
		Args:  cobra.ExactArgs(1),
		Run:   runVocabAdd,
	}
	addCmd.Flags().String("reading", "", "Reading or pronunciation")
	addCmd.Flags().String("meaning", "", "Meaning")
	addCmd.Flags().StringP("lang", "l", "", "Language (default from config)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked words",
		Run:   runVocabList,
	}
	listCmd.Flags().StringP("lang", "l", "", "Filter by language")
	listCmd.Flags().Bool("pending", false, "Only words needing practice")
	listCmd.Flags().IntP("limit", "n", 50, "Max results")

	practicedCmd := &cobra.Command{
		Use:   "practiced [id]",
		Short: "Mark a word as practiced",
		Args:  cobra.ExactArgs(1),
		Run:   runVocabPracticed,
	}

	vocabCmd.AddCommand(addCmd, listCmd, practicedCmd)
	RootCmd.AddCommand(vocabCmd)
}

func runVocabAdd(cmd *cobra.Command, args []string) {
	reading, _ := cmd.Flags().GetString("reading")
	meaning, _ := cmd.Flags().GetString("meaning")
	lang, _ := cmd.Flags().GetString("lang")
	if lang == "" {
		lang = cfg.Language
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	word, err := s.AddVocab(cmd.Context(), store.AddVocabParams{
		Word:     args[0],
		Reading:  reading,
		Meaning:  meaning,
		Language: lang,
	})
	if err != nil {
		exitErr("add vocab", err)
	}
	printJSON(cmd, word)
}

func runVocabList(cmd *cobra.Command, args []string) {
	lang, _ := cmd.Flags().GetString("lang")
	pending, _ := cmd.Flags().GetBool("pending")
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	words, err := s.ListVocab(cmd.Context(), store.ListVocabParams{
		Language:      lang,
		NeedsPractice: pending,
		Limit:         limit,
	})
	if err != nil {
		exitErr("list vocab", err)
	}
	if words == nil {
		words = []model.VocabWord{}
	}
	printJSON(cmd, words)
}

func runVocabPracticed(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	word, err := s.MarkPracticed(cmd.Context(), args[0])
	if err != nil {
		exitErr("mark practiced", err)
	}
	printJSON(cmd, word)
}
