package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Inspect and manage enrolled users",
}

var usersGetCmd = &cobra.Command{
	Use:   "get <user-id>",
	Short: "Show one enrolled user",
	Args:  cobra.ExactArgs(1),
	FParseErrWhitelist: cobra.FParseErrWhitelist{
		UnknownFlags: true,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _ := newClient()
		defer func() { _ = client.Close() }()

		u, err := client.GetUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("id:      %s\n", u.ID)
		fmt.Printf("name:    %s\n", u.Name)
		fmt.Printf("created: %s\n", u.CreatedAt)
		if u.CurrentStreak > 0 || u.LongestStreak > 0 {
			fmt.Printf("streak:  %d (best %d)\n", u.CurrentStreak, u.LongestStreak)
		}
		return nil
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a user without face enrollment",
	Args:  cobra.ExactArgs(1),
	FParseErrWhitelist: cobra.FParseErrWhitelist{
		UnknownFlags: true,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _ := newClient()
		defer func() { _ = client.Close() }()

		u, err := client.CreateUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("created %s (%s)\n", u.Name, u.ID)
		return nil
	},
}

func init() {
	usersCmd.AddCommand(usersGetCmd, usersCreateCmd)
	rootCmd.AddCommand(usersCmd)
}
