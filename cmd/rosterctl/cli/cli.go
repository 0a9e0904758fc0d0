// Package cli implements the rosterctl command tree for managing players on
// a running roster server over its HTTP API.
package cli

import (
	"time"

	"github.com/okian/roster/internal/client"
	"github.com/spf13/cobra"
)

// NewRootCommand returns the root command with all subcommands wired in.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rosterctl",
		Short:         "Manage the player roster",
		Long:          "Connect to a running roster server and list, add, edit, and delete players.",
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().String("url", "http://localhost:9080", "server base URL")
	cmd.PersistentFlags().Duration("timeout", 10*time.Second, "request timeout")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table or json")

	cmd.AddCommand(
		newListCmd(),
		newGetCmd(),
		newAddCmd(),
		newUpdateCmd(),
		newDeleteCmd(),
		newLeaguesCmd(),
	)
	return cmd
}

// clientFromCmd builds an API client from the persistent flags on cmd.
func clientFromCmd(cmd *cobra.Command) *client.Client {
	url, _ := cmd.Flags().GetString("url")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	return client.New(url, timeout)
}

func outputFormat(cmd *cobra.Command) string {
	f, _ := cmd.Flags().GetString("output")
	return f
}

func printerFromCmd(cmd *cobra.Command) *printer {
	return newPrinter(outputFormat(cmd), cmd.OutOrStdout())
}
