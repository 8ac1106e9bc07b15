package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(o *opts) *cobra.Command {
	return &cobra.Command{
		Use:   "login <username>",
		Short: "Set the active identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.app.Session.Login(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", o.app.Session.Current())
			return nil
		},
	}
}

func newLogoutCmd(o *opts) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the active identity and reset the guest catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.app.Session.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newWhoamiCmd(o *opts) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the active identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), o.app.Session.Current())
			return nil
		},
	}
}
