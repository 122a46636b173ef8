package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/taskflow/pkg/render"
	"github.com/harrisonrobin/taskflow/pkg/view"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, day, err := board()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.DefaultTheme.StatsCards(view.ComputeStats(tasks, day)))
		return nil
	},
}
