package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/taskflow/pkg/auth"
	"github.com/harrisonrobin/taskflow/pkg/config"
	"github.com/harrisonrobin/taskflow/pkg/logging"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate with Google Calendar",
	Long:  `Discard any stored token and run the Google sign-in flow again.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.Dir()
		if err != nil {
			return fmt.Errorf("could not find path to configuration file: %w", err)
		}
		if err := auth.Reset(dir); err != nil {
			return err
		}
		if _, err := auth.GetClient(cmd.Context(), dir, auth.CalendarScopes); err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}
		logging.Logger.Infof("authentication successful, token saved to %s", auth.TokenFile)
		return nil
	},
}

var setCalendarCmd = &cobra.Command{
	Use:   "set-calendar NAME",
	Short: "Set the default Google Calendar name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.Calendar = args[0]
		var err error
		if configFlag != "" {
			err = config.SaveTo(configFlag, cfg)
		} else {
			err = config.Save(cfg)
		}
		if err != nil {
			return fmt.Errorf("error saving config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Default calendar set to: %s\n", args[0])
		return nil
	},
}
