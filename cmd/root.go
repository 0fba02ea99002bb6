package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the meetpresence application
var rootCmd = &cobra.Command{
	Use:   "meetpresence",
	Short: "Mirrors Google Meet presence into a Home Assistant entity",
	Long: `meetpresence watches for active Google Meet sessions and keeps a
Home Assistant entity in sync: "on" while you are in a meeting, "off"
when you leave.

Presence can come from open browser tabs (via the Chrome DevTools
endpoint) or from the Google Meet API. Delivery uses either the Home
Assistant REST API or a webhook.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "meetpresence version %s\n" .Version}}`)

	// If no subcommand is provided, run the watch command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "watch")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newConfigureCmd())
	rootCmd.AddCommand(newTestCmd())
	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
