package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	httpcmd "github.com/Alijeyrad/trialbook_backend/cmd/http"
	systemcmd "github.com/Alijeyrad/trialbook_backend/cmd/system"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "trialbook",
	Short: "Clinical trial appointment booking backend.",
	Long: `trialbook serves the booking API and chat assistant behind a clinical trial
kiosk: participants browse open slots, book through a guided conversation and
get answers to frequent questions, with a conversational model as fallback.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global config flag, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	rootCmd.AddCommand(systemcmd.NewSystemCommand())
	rootCmd.AddCommand(httpcmd.NewHTTPCommand())
}
