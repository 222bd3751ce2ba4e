package cli

import (
	"os"

	"flight-tracker/flightboard/internal/client"
	"flight-tracker/flightboard/internal/config"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the flightctl command tree.
func NewRootCmd() *cobra.Command {
	defaultURL := os.Getenv(config.EnvFlightAPIURL)
	if defaultURL == "" {
		defaultURL = client.DefaultBaseURL
	}

	rootCmd := &cobra.Command{
		Use:   "flightctl",
		Short: "Command line client for the flight board API",
		Long: `flightctl lists, creates, updates and deletes flights on a flight board
server, and can watch the board live.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("api-url", defaultURL, "flight board server base URL (env "+config.EnvFlightAPIURL+")")

	rootCmd.AddCommand(HealthCmd())
	rootCmd.AddCommand(ListCmd())
	rootCmd.AddCommand(GetCmd())
	rootCmd.AddCommand(CreateCmd())
	rootCmd.AddCommand(UpdateCmd())
	rootCmd.AddCommand(DeleteCmd())
	rootCmd.AddCommand(WatchCmd())

	return rootCmd
}

func apiClient(cmd *cobra.Command) *client.Client {
	url, _ := cmd.Flags().GetString("api-url")
	return client.New(url)
}
