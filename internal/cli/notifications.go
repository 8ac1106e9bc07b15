package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ssselery/techtrack/internal/model"
)

func newNotifyCmd(o *opts) *cobra.Command {
	var (
		description string
		typ         string
	)

	cmd := &cobra.Command{
		Use:   "notify <title>",
		Short: "Create a notification for the active identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := o.app.Notifier.Notify(cmd.Context(), args[0], description,
				model.NotificationType(typ))
			fmt.Fprintf(cmd.OutOrStdout(), "notification %d created\n", n.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Detail text")
	cmd.Flags().StringVar(&typ, "type", "info", "Type (info|success|warning|error)")

	return cmd
}

func newNotificationsCmd(o *opts) *cobra.Command {
	var unreadOnly bool

	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "List the active identity's notification history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			history := o.app.Notifier.History(cmd.Context())

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tREAD\tTITLE")
			for _, n := range history {
				if unreadOnly && n.Read {
					continue
				}
				fmt.Fprintf(w, "%d\t%s\t%v\t%s\n", n.ID, n.Type, n.Read, n.Title)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "Show unread entries only")

	cmd.AddCommand(&cobra.Command{
		Use:   "read [id]",
		Short: "Mark one notification as read, or all with no argument",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				o.app.Notifier.MarkAllAsRead(cmd.Context())
				return nil
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid notification id %q", args[0])
			}
			o.app.Notifier.MarkRead(cmd.Context(), id)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Empty the notification history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.app.Notifier.ClearAll(cmd.Context())
			return nil
		},
	})

	return cmd
}
