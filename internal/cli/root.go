// Package cli implements the study-session CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/study-session/internal/config"
	"github.com/rcliao/study-session/internal/logger"
	"github.com/rcliao/study-session/internal/store"
)

var (
	dbPath      string
	configPath  string
	formatFlag  string
	verboseFlag bool

	cfg = config.Default()
	log = logger.Nop()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "study-session",
	Short: "Plan time-boxed language study sessions",
	Long: "Plans a bounded study session from your review backlog, vocabulary and reading list.\n" +
		"Cards, words and content live in a local SQLite database.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) { log.Sync() },
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $STUDY_SESSION_DB, config db_path, or ~/.study-session/study.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $STUDY_SESSION_CONFIG or ~/.study-session/config.yaml)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
	RootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Debug logging on stderr")
}

func setup(cmd *cobra.Command, args []string) error {
	if formatFlag != "json" && formatFlag != "text" {
		return fmt.Errorf("invalid format %q (valid: json, text)", formatFlag)
	}

	loaded, err := config.Load(config.Path(configPath))
	if err != nil {
		return err
	}
	cfg = loaded

	l, err := logger.New(cfg.LogMode, verboseFlag)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	log = l.With("cmd", cmd.Name())
	return nil
}

func getDBPath() string {
	return cfg.ResolveDBPath(dbPath)
}

func openStore() (*store.SQLiteStore, error) {
	path := getDBPath()
	log.Debug("opening store", "db", path)
	return store.NewSQLiteStore(path)
}

func printJSON(cmd *cobra.Command, v interface{}) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
