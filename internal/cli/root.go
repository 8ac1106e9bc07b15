// Package cli is the thin command-line boundary over the core
// services. Commands parse arguments, call into the core, and print;
// nothing here holds state of its own.
package cli

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ssselery/techtrack/internal/app"
	"github.com/ssselery/techtrack/internal/model"
)

// opts carries persistent flags shared by every command.
type opts struct {
	ConfigPath string
	Verbose    bool

	app *app.App
}

// NewRootCmd builds the techtrack command tree.
func NewRootCmd() *cobra.Command {
	o := &opts{}

	cmd := &cobra.Command{
		Use:          "techtrack",
		Short:        "Track the technologies you are learning",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Log in and list your catalog
  techtrack login alice
  techtrack list

  # Import technologies from a JSON roadmap
  techtrack import https://example.com/roadmap.json

  # Review notifications
  techtrack notifications
`),
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if o.Verbose {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.WarnLevel)
		}

		cfg, err := model.LoadConfig(o.ConfigPath)
		if err != nil {
			return err
		}

		a, err := app.New(cfg)
		if err != nil {
			return err
		}
		o.app = a
		return nil
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if o.app == nil {
			return nil
		}
		return o.app.Close()
	}

	cmd.PersistentFlags().StringVar(&o.ConfigPath, "config", model.DefaultConfigPath(), "Path to the config file")
	cmd.PersistentFlags().BoolVar(&o.Verbose, "verbose", false, "Enable debug logging")

	cmd.AddCommand(newLoginCmd(o))
	cmd.AddCommand(newLogoutCmd(o))
	cmd.AddCommand(newWhoamiCmd(o))
	cmd.AddCommand(newAddCmd(o))
	cmd.AddCommand(newListCmd(o))
	cmd.AddCommand(newShowCmd(o))
	cmd.AddCommand(newStatusCmd(o))
	cmd.AddCommand(newNotesCmd(o))
	cmd.AddCommand(newDeadlineCmd(o))
	cmd.AddCommand(newClearCmd(o))
	cmd.AddCommand(newResetCmd(o))
	cmd.AddCommand(newImportCmd(o))
	cmd.AddCommand(newNotifyCmd(o))
	cmd.AddCommand(newNotificationsCmd(o))

	return cmd
}
