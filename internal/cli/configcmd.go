package cli

import (
	"encoding/json"
	"fmt"

	"github.com/Lichas/wecombot-go/internal/config"
	"github.com/spf13/cobra"
)

var configBotName string

func init() {
	configSetKeyCmd.Flags().StringVarP(&configBotName, "bot", "b", "", "Save the key under a bot name instead of as the default")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetKeyCmd)

	rootCmd.AddCommand(configCmd)
}

// configCmd 配置命令
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage wecombot configuration",
}

// configShowCmd 显示当前配置
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}

		fmt.Printf("config file: %s\n%s\n", config.GetConfigPath(), data)
		return nil
	},
}

// configSetKeyCmd 保存 webhook key
var configSetKeyCmd = &cobra.Command{
	Use:   "set-key <key>",
	Short: "Save a webhook key to the config file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if configBotName != "" {
			if cfg.Bots == nil {
				cfg.Bots = map[string]string{}
			}
			cfg.Bots[configBotName] = args[0]
		} else {
			cfg.DefaultKey = args[0]
		}

		if err := config.SaveConfig(cfg); err != nil {
			return err
		}

		fmt.Printf("✓ key saved to %s\n", config.GetConfigPath())
		return nil
	},
}
