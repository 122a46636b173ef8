package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/taskflow/pkg/render"
	"github.com/harrisonrobin/taskflow/pkg/view"
)

var (
	listFilter string
	listSearch string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the board",
	Long:  `Show the stats cards, the filter bar and every task matching the filter and search text.`,
	Args:  cobra.NoArgs,
	RunE:  listTasks,
}

func init() {
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "all", "Filter: all, today, overdue, in-progress, completed")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Only show tasks whose title, description or tags contain this text")
}

func listTasks(cmd *cobra.Command, args []string) error {
	filter, err := view.ParseFilter(listFilter)
	if err != nil {
		return err
	}
	tasks, day, err := board()
	if err != nil {
		return err
	}

	state := view.DefaultState().SelectFilter(filter).Search(listSearch)
	fmt.Fprintln(cmd.OutOrStdout(), render.DefaultTheme.Board(state.Apply(tasks, day), state, day))
	return nil
}
