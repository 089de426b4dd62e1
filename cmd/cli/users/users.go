package users

import (
	"time"

	"github.com/crucial707/account-service/cmd/cli/client"
	"github.com/crucial707/account-service/cmd/cli/config"
	"github.com/crucial707/account-service/cmd/cli/output"
	"github.com/spf13/cobra"
)

// InitUsers registers the profile commands on the root command.
func InitUsers(rootCmd *cobra.Command) {
	rootCmd.AddCommand(meCmd())
}

// ==========================
// Me
// ==========================
func meCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "me",
		Short: "Show the logged-in account",
		Long:  "Fetch the profile of the account the stored token belongs to.",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.LoadToken()
			if err != nil {
				return err
			}

			profile, err := client.New(config.APIURL()).Me(cmd.Context(), token)
			if err != nil {
				return err
			}

			if asJSON {
				return output.PrintJSON(cmd.OutOrStdout(), profile)
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"Field", "Value"}, [][]interface{}{
				{"User ID", profile.UserID},
				{"Email", profile.Email},
				{"Name", profile.Name},
				{"Created", formatTime(profile.CreatedAt)},
			})
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON instead of a table")

	return cmd
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.RFC3339)
}
