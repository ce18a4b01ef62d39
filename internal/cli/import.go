package cli

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/study-session/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import cards, vocabulary and content from JSON",
		Long:  "Import from JSON on stdin. Expects the format produced by export; existing IDs are skipped.",
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	raw, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		exitErr("read stdin", err)
	}

	var data store.Export
	if err := json.Unmarshal(raw, &data); err != nil {
		exitErr("parse json", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	res, err := s.Import(cmd.Context(), &data)
	if err != nil {
		exitErr("import", err)
	}
	log.Info("import finished", "cards", res.Cards, "vocab", res.Vocab, "content", res.Content)

	printJSON(cmd, map[string]interface{}{"ok": true, "imported": res})
}
