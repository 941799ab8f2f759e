package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	logo    = `🤖`
)

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "wecombot",
	Short: "wecombot - WeCom group bot webhook client",
	Long:  fmt.Sprintf("%s wecombot - Send messages to a WeCom group bot via its webhook API", logo),
}

// Execute 执行根命令
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// versionCmd 版本命令
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s wecombot v%s\n", logo, version)
	},
}
