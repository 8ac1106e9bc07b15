package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(o *opts) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "import [url]",
		Short: "Import technologies from a JSON source",
		Long: `Fetches a JSON document that is either a bare array of records or an
object with a "technologies" array, normalizes each record, and merges
them into the active identity's catalog with freshly allocated ids.

With --search, the document is only loaded and filtered; nothing is
committed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := o.app.Config.Import.DefaultURL
			if len(args) > 0 {
				url = args[0]
			}
			if url == "" {
				return fmt.Errorf("no URL given and import.default_url is not configured")
			}

			if search != "" {
				if _, err := o.app.Importer.Load(cmd.Context(), url); err != nil {
					return err
				}
				for _, r := range o.app.Importer.Search(search) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", r.Title, r.Category, r.Source)
				}
				return nil
			}

			count, err := o.app.Importer.Run(cmd.Context(), url)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d technologies\n", count)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter the source by query instead of importing")

	return cmd
}
