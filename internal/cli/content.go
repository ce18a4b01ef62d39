package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/study-session/internal/model"
	"github.com/rcliao/study-session/internal/store"
)

func init() {
	contentCmd := &cobra.Command{
		Use:   "content",
		Short: "Manage stories and videos",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a story or video",
		Long:  "Add a story or video. A body (text or transcript) can be read from --body-file or piped via stdin.",
		Run:   runContentAdd,
	}
	addCmd.Flags().StringP("type", "t", "story", "Content type: story or video")
	addCmd.Flags().String("title", "", "Title (required)")
	addCmd.Flags().StringP("lang", "l", "", "Language (default from config)")
	addCmd.Flags().String("level", "", "Level label, e.g. N5 or A2")
	addCmd.Flags().Int("duration", 0, "Duration in seconds (estimated from the body when omitted)")
	addCmd.Flags().String("body-file", "", "Read the body from this file")
	addCmd.MarkFlagRequired("title")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List content not yet consumed",
		Run:   runContentList,
	}
	listCmd.Flags().StringP("lang", "l", "", "Filter by language")
	listCmd.Flags().StringP("type", "t", "", "Filter by type")
	listCmd.Flags().Bool("all", false, "Include consumed content")
	listCmd.Flags().IntP("limit", "n", 50, "Max results")

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a content item with its segments",
		Args:  cobra.ExactArgs(1),
		Run:   runContentShow,
	}

	consumedCmd := &cobra.Command{
		Use:   "consumed [id]",
		Short: "Mark content as finished so it is no longer recommended",
		Args:  cobra.ExactArgs(1),
		Run:   runContentConsumed,
	}

	contentCmd.AddCommand(addCmd, listCmd, showCmd, consumedCmd)
	RootCmd.AddCommand(contentCmd)
}

func runContentAdd(cmd *cobra.Command, args []string) {
	typeStr, _ := cmd.Flags().GetString("type")
	title, _ := cmd.Flags().GetString("title")
	lang, _ := cmd.Flags().GetString("lang")
	level, _ := cmd.Flags().GetString("level")
	duration, _ := cmd.Flags().GetInt("duration")
	bodyFile, _ := cmd.Flags().GetString("body-file")
	if lang == "" {
		lang = cfg.Language
	}

	// Body: file first, then check stdin
	var body string
	if bodyFile != "" {
		b, err := os.ReadFile(bodyFile)
		if err != nil {
			exitErr("read body", err)
		}
		body = string(b)
	} else if in := cmd.InOrStdin(); piped(in) {
		b, err := io.ReadAll(in)
		if err != nil {
			exitErr("read stdin", err)
		}
		body = string(b)
	}

	var durationPtr *int
	if cmd.Flags().Changed("duration") {
		durationPtr = &duration
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	item, err := s.AddContent(cmd.Context(), store.AddContentParams{
		ContentType:     model.ContentType(typeStr),
		Title:           title,
		Language:        lang,
		Level:           level,
		DurationSeconds: durationPtr,
		Body:            body,
	})
	if err != nil {
		exitErr("add content", err)
	}
	log.Info("content added", "id", item.ID, "type", item.ContentType, "segments", item.SegmentCount)

	item.Body = ""
	printJSON(cmd, item)
}

func runContentList(cmd *cobra.Command, args []string) {
	lang, _ := cmd.Flags().GetString("lang")
	typeStr, _ := cmd.Flags().GetString("type")
	all, _ := cmd.Flags().GetBool("all")
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	items, err := s.ListContent(cmd.Context(), store.ListContentParams{
		Language:        lang,
		ContentType:     model.ContentType(typeStr),
		IncludeConsumed: all,
		Limit:           limit,
	})
	if err != nil {
		exitErr("list content", err)
	}

	if formatFlag == "text" {
		for _, it := range items {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-5s %-8s %s\n", it.ID, it.ContentType, it.Language, it.Title)
		}
		return
	}
	if items == nil {
		items = []model.ContentItem{}
	}
	printJSON(cmd, items)
}

func runContentShow(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	item, err := s.GetContent(cmd.Context(), args[0])
	if err != nil {
		exitErr("show content", err)
	}

	if formatFlag == "text" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, %s)\n\n", item.Title, item.ContentType, item.Language)
		for _, sg := range item.Segments {
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", sg.Kind, sg.Text)
		}
		return
	}
	item.Body = ""
	printJSON(cmd, item)
}

func runContentConsumed(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	item, err := s.MarkConsumed(cmd.Context(), args[0])
	if err != nil {
		exitErr("mark consumed", err)
	}
	item.Body = ""
	item.Segments = nil
	printJSON(cmd, item)
}

// piped reports whether r carries input. A terminal does not.
func piped(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return true
	}
	stat, err := f.Stat()
	return err == nil && (stat.Mode()&os.ModeCharDevice) == 0
}
