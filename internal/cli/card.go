package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/study-session/internal/model"
	"github.com/rcliao/study-session/internal/store"
)

func init() {
	cardCmd := &cobra.Command{
		Use:   "card",
		Short: "Manage flashcards",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new card",
		Run:   runCardAdd,
	}
	addCmd.Flags().String("front", "", "Front of the card (required)")
	addCmd.Flags().String("back", "", "Back of the card")
	addCmd.Flags().String("deck", "", "Deck name (default: default)")
	addCmd.Flags().StringP("lang", "l", "", "Language (default from config)")
	addCmd.MarkFlagRequired("front")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List cards, soonest due first",
		Run:   runCardList,
	}
	listCmd.Flags().String("deck", "", "Filter by deck")
	listCmd.Flags().StringP("lang", "l", "", "Filter by language")
	listCmd.Flags().String("state", "", "Filter by state: new, learning, review, relearning")
	listCmd.Flags().Bool("due", false, "Only cards due now")
	listCmd.Flags().IntP("limit", "n", 50, "Max results")

	reviewCmd := &cobra.Command{
		Use:   "review",
		Short: "Record a review outcome",
		Long:  "Record the next state and interval for a card, as decided by your spaced-repetition scheduler.",
		Run:   runCardReview,
	}
	reviewCmd.Flags().String("id", "", "Card ID (required)")
	reviewCmd.Flags().String("state", "review", "Next state: learning, review, relearning")
	reviewCmd.Flags().String("next", "", "Interval until the card is due again, e.g. 10m, 1d, 7d (required)")
	reviewCmd.MarkFlagRequired("id")
	reviewCmd.MarkFlagRequired("next")

	rmCmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete a card",
		Run:   runCardRm,
	}
	rmCmd.Flags().String("id", "", "Card ID (required)")
	rmCmd.Flags().Bool("hard", false, "Permanent delete (irreversible)")
	rmCmd.MarkFlagRequired("id")

	cardCmd.AddCommand(addCmd, listCmd, reviewCmd, rmCmd)
	RootCmd.AddCommand(cardCmd)
}

func runCardAdd(cmd *cobra.Command, args []string) {
	front, _ := cmd.Flags().GetString("front")
	back, _ := cmd.Flags().GetString("back")
	deck, _ := cmd.Flags().GetString("deck")
	lang, _ := cmd.Flags().GetString("lang")
	if lang == "" {
		lang = cfg.Language
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	card, err := s.AddCard(cmd.Context(), store.AddCardParams{
		Deck:     deck,
		Front:    front,
		Back:     back,
		Language: lang,
	})
	if err != nil {
		exitErr("add card", err)
	}
	log.Info("card added", "id", card.ID, "deck", card.Deck)
	printJSON(cmd, card)
}

func runCardList(cmd *cobra.Command, args []string) {
	deck, _ := cmd.Flags().GetString("deck")
	lang, _ := cmd.Flags().GetString("lang")
	state, _ := cmd.Flags().GetString("state")
	due, _ := cmd.Flags().GetBool("due")
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	cards, err := s.ListCards(cmd.Context(), store.ListCardsParams{
		Deck:     deck,
		Language: lang,
		State:    model.CardState(state),
		DueOnly:  due,
		Limit:    limit,
	})
	if err != nil {
		exitErr("list cards", err)
	}

	if formatFlag == "text" {
		for _, c := range cards {
			dueStr := "-"
			if c.Due != nil {
				dueStr = c.Due.Local().Format("2006-01-02 15:04")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-10s %-16s %s\n", c.ID, c.State, dueStr, c.Front)
		}
		return
	}
	if cards == nil {
		cards = []model.Card{}
	}
	printJSON(cmd, cards)
}

func runCardReview(cmd *cobra.Command, args []string) {
	id, _ := cmd.Flags().GetString("id")
	state, _ := cmd.Flags().GetString("state")
	next, _ := cmd.Flags().GetString("next")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	card, err := s.RescheduleCard(cmd.Context(), store.RescheduleParams{
		ID:       id,
		State:    model.CardState(state),
		Interval: next,
	})
	if err != nil {
		exitErr("review card", err)
	}
	log.Info("card rescheduled", "id", card.ID, "state", card.State, "due", card.Due)
	printJSON(cmd, card)
}

func runCardRm(cmd *cobra.Command, args []string) {
	id, _ := cmd.Flags().GetString("id")
	hard, _ := cmd.Flags().GetBool("hard")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.RmCard(cmd.Context(), store.RmCardParams{ID: id, Hard: hard}); err != nil {
		exitErr("rm card", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q}`+"\n", id)
}
