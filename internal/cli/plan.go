package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/study-session/internal/model"
	"github.com/rcliao/study-session/internal/planner"
	"github.com/rcliao/study-session/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a study session",
		Long: "Plan a study session from the cards, words and content in the database.\n" +
			"Counts can be overridden with flags; --offline plans from flags alone.",
		Run: runPlan,
	}

	cmd.Flags().Float64P("minutes", "m", 0, "Session length in minutes (0 = automatic; presets: 5, 15, 30)")
	cmd.Flags().StringP("goal", "g", "", "Learning goal: exam, travel, professional, media, casual (default from config)")
	cmd.Flags().StringP("lang", "l", "", "Content language (default from config)")
	cmd.Flags().String("deck", "", "Only count cards in this deck")
	cmd.Flags().Int("new-limit", 0, "New cards per day; negative for no limit (default from config)")
	cmd.Flags().Bool("offline", false, "Do not read the database; plan from flags only")

	cmd.Flags().Int("due", 0, "Override the due card count")
	cmd.Flags().Int("new", 0, "Override the new card count")
	cmd.Flags().Int("vocab", 0, "Override the number of words needing practice")
	cmd.Flags().String("content-id", "", "Override the recommended content ID")
	cmd.Flags().String("content-type", "story", "Type of the overriding content: story or video")
	cmd.Flags().String("content-title", "", "Title of the overriding content")
	cmd.Flags().Int("content-duration", 0, "Duration of the overriding content in seconds")
	cmd.Flags().Bool("no-content", false, "Plan without any content")

	RootCmd.AddCommand(cmd)
}

type planOutput struct {
	Input         model.PlannerInput `json:"input"`
	BudgetMinutes float64            `json:"budgetMinutes"`
	Plan          model.SessionPlan  `json:"plan"`
	Summary       planner.Summary    `json:"summary"`
	Description   string             `json:"description"`
}

func runPlan(cmd *cobra.Command, args []string) {
	in, err := plannerInput(cmd)
	if err != nil {
		exitErr("plan", err)
	}

	plan := planner.BuildSessionPlan(in)
	out := planOutput{
		Input:         in,
		BudgetMinutes: planner.ResolveDuration(in.SelectedDurationMinutes, in.DueCardCount+in.NewCardCount, in.VocabToReview),
		Plan:          plan,
		Summary:       planner.Summarize(plan),
		Description:   planner.Describe(plan),
	}
	log.Debug("session planned",
		"goal", in.LearningGoal,
		"due", in.DueCardCount,
		"new", in.NewCardCount,
		"vocab", in.VocabToReview,
		"content", in.RecommendedContent != nil,
		"budget", out.BudgetMinutes,
		"activities", len(plan.Activities),
		"estimated", plan.EstimatedMinutes)

	if formatFlag == "text" {
		printPlanText(cmd, out)
		return
	}
	printJSON(cmd, out)
}

func plannerInput(cmd *cobra.Command) (model.PlannerInput, error) {
	flags := cmd.Flags()
	minutes, _ := flags.GetFloat64("minutes")
	goalStr, _ := flags.GetString("goal")
	lang, _ := flags.GetString("lang")
	deck, _ := flags.GetString("deck")
	newLimit, _ := flags.GetInt("new-limit")
	offline, _ := flags.GetBool("offline")

	if minutes < 0 {
		return model.PlannerInput{}, fmt.Errorf("minutes must be positive, got %v", minutes)
	}
	var selected *float64
	if minutes > 0 {
		selected = &minutes
	}

	goal := cfg.Goal
	if flags.Changed("goal") {
		g, err := model.ParseGoal(goalStr)
		if err != nil {
			return model.PlannerInput{}, err
		}
		goal = g
	}
	if lang == "" {
		lang = cfg.Language
	}
	lang = strings.ToLower(lang)
	if !model.ValidLanguages[lang] {
		return model.PlannerInput{}, fmt.Errorf("unsupported language %q", lang)
	}
	if !flags.Changed("new-limit") {
		newLimit = *cfg.NewCardsPerDay
	}

	in := model.PlannerInput{SelectedDurationMinutes: selected, LearningGoal: goal}
	if !offline {
		s, err := openStore()
		if err != nil {
			return in, fmt.Errorf("open store: %w", err)
		}
		defer s.Close()

		in, err = store.Snapshot(cmd.Context(), s, s, s, store.SnapshotParams{
			Language:        lang,
			Deck:            deck,
			Goal:            goal,
			SelectedMinutes: selected,
			NewLimit:        newLimit,
		})
		if err != nil {
			return in, fmt.Errorf("snapshot: %w", err)
		}
	}

	if flags.Changed("due") {
		in.DueCardCount, _ = flags.GetInt("due")
	}
	if flags.Changed("new") {
		in.NewCardCount, _ = flags.GetInt("new")
	}
	if flags.Changed("vocab") {
		in.VocabToReview, _ = flags.GetInt("vocab")
	}

	if noContent, _ := flags.GetBool("no-content"); noContent {
		in.RecommendedContent = nil
	} else if id, _ := flags.GetString("content-id"); id != "" {
		rc, err := contentFromFlags(cmd, id, lang)
		if err != nil {
			return in, err
		}
		in.RecommendedContent = rc
	}
	return in, nil
}

func contentFromFlags(cmd *cobra.Command, id, lang string) (*model.RecommendedContent, error) {
	typeStr, _ := cmd.Flags().GetString("content-type")
	title, _ := cmd.Flags().GetString("content-title")
	duration, _ := cmd.Flags().GetInt("content-duration")

	ct, err := model.ParseContentType(typeStr)
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = id
	}
	rc := &model.RecommendedContent{ContentType: ct, ContentID: id, Title: title, Language: lang}
	if duration > 0 {
		rc.DurationSeconds = &duration
	}
	return rc, nil
}

func printPlanText(cmd *cobra.Command, out planOutput) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s (~%d of %g min)\n", out.Description, out.Plan.EstimatedMinutes, out.BudgetMinutes)
	for i, a := range out.Plan.Activities {
		switch v := a.(type) {
		case model.ReviewActivity:
			fmt.Fprintf(w, "%d. review  %d cards\n", i+1, v.CardCount)
		case model.InputActivity:
			fmt.Fprintf(w, "%d. %-7s %q [%s]\n", i+1, v.ContentType, v.Title, v.ContentID)
		case model.OutputActivity:
			fmt.Fprintf(w, "%d. write   %d sentences\n", i+1, v.WordCount)
		}
	}
}
