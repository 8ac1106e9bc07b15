package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ssselery/techtrack/internal/model"
)

func newAddCmd(o *opts) *cobra.Command {
	var (
		description string
		category    string
		source      string
		notes       string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a technology to your catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			created := o.app.Catalog.Add(cmd.Context(), model.Technology{
				Title:       args[0],
				Description: description,
				Category:    category,
				Source:      source,
				Notes:       notes,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "added #%d %s\n", created.ID, created.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Short description")
	cmd.Flags().StringVar(&category, "category", "", "Category tag")
	cmd.Flags().StringVar(&source, "source", "", "Provenance URL")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	return cmd
}

func newListCmd(o *opts) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the active identity's catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := o.app.Catalog.List(cmd.Context())
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "catalog is empty")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tSTATUS\tCREATED")
			for _, t := range list {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					t.ID, t.Title, t.Category, t.Status, t.CreatedAt)
			}
			return w.Flush()
		},
	}
}

func newShowCmd(o *opts) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one technology in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			t, ok := o.app.Catalog.GetByID(cmd.Context(), id)
			if !ok {
				return fmt.Errorf("no technology with id %d", id)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "#%d %s\n", t.ID, t.Title)
			fmt.Fprintf(out, "  category:    %s\n", t.Category)
			fmt.Fprintf(out, "  status:      %s\n", t.Status)
			fmt.Fprintf(out, "  created:     %s\n", t.CreatedAt)
			if t.Description != "" {
				fmt.Fprintf(out, "  description: %s\n", t.Description)
			}
			if t.Source != "" {
				fmt.Fprintf(out, "  source:      %s\n", t.Source)
			}
			if t.Notes != "" {
				fmt.Fprintf(out, "  notes:       %s\n", t.Notes)
			}
			if t.Deadline != nil {
				fmt.Fprintf(out, "  deadline:    %s (%s)\n", t.Deadline.Date, t.Deadline.Comment)
			}
			return nil
		},
	}
}

func newStatusCmd(o *opts) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <not-started|in-progress|completed>",
		Short: "Update a technology's learning status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !model.ValidStatus(args[1]) {
				return fmt.Errorf("unknown status %q", args[1])
			}

			o.app.Catalog.UpdateStatus(cmd.Context(), id, args[1])
			return nil
		},
	}
}

func newNotesCmd(o *opts) *cobra.Command {
	return &cobra.Command{
		Use:   "notes <id> <text>",
		Short: "Replace a technology's notes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			o.app.Catalog.UpdateNotes(cmd.Context(), id, args[1])
			return nil
		},
	}
}

func newDeadlineCmd(o *opts) *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   "deadline <id> <date>",
		Short: "Set a study deadline (date must not be in the past)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return o.app.Catalog.UpdateDeadline(cmd.Context(), id, model.Deadline{
				Date:    args[1],
				Comment: comment,
			})
		},
	}

	cmd.Flags().StringVar(&comment, "comment", "", "Deadline comment (at least 5 characters)")

	return cmd
}

func newClearCmd(o *opts) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the active identity's catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.app.Catalog.Clear(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "catalog cleared")
			return nil
		},
	}
}

func newResetCmd(o *opts) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Replace the catalog with the built-in seed list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.app.Catalog.ResetToDefaults(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "catalog reset to defaults")
			return nil
		},
	}
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
