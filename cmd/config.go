package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"taskboard/cli/internal/config"
	"taskboard/cli/internal/dsn"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Show or change settings",
	Annotations: map[string]string{annNoApp: "true"},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings, including environment overrides",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		values := map[string]string{
			"log_level":             cfg.LogLevel,
			"provider":              cfg.Provider,
			"data_source":           cfg.DataSource,
			"api_url":               cfg.APIURL,
			"mock_latency":          cfg.MockLatency.Std().String(),
			"session_dedup":         cfg.SessionDedup,
			"session_check_timeout": cfg.SessionCheckTimeout.Std().String(),
		}
		data := pterm.TableData{{"Key", "Value"}}
		for _, k := range config.Keys() {
			data = append(data, []string{k, values[k]})
		}
		if cfg.DatabaseURL != "" {
			shown := "(invalid)"
			if info, err := dsn.Parse(cfg.DatabaseURL); err == nil {
				shown = info.Redacted()
			}
			data = append(data, []string{"database_url (env)", shown})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		pterm.Printf("✅ %s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configSetCmd)
}
