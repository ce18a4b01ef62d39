package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/study-session/internal/config"
)

func init() {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Run:   runConfigShow,
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Run:   runConfigInit,
	}

	configCmd.AddCommand(showCmd, initCmd)
	RootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) {
	printJSON(cmd, map[string]interface{}{
		"config_path":       config.Path(configPath),
		"db_path":           getDBPath(),
		"language":          cfg.Language,
		"goal":              cfg.Goal,
		"new_cards_per_day": *cfg.NewCardsPerDay,
		"log_mode":          cfg.LogMode,
	})
}

func runConfigInit(cmd *cobra.Command, args []string) {
	path := config.Path(configPath)
	if err := config.Write(path, cfg); err != nil {
		exitErr("write config", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"path":%q}`+"\n", path)
}
