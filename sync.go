package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/harrisonrobin/taskflow/pkg/auth"
	"github.com/harrisonrobin/taskflow/pkg/colors"
	"github.com/harrisonrobin/taskflow/pkg/config"
	"github.com/harrisonrobin/taskflow/pkg/google"
	"github.com/harrisonrobin/taskflow/pkg/index"
	"github.com/harrisonrobin/taskflow/pkg/logging"
	"github.com/harrisonrobin/taskflow/pkg/model"
	"github.com/harrisonrobin/taskflow/pkg/overdue"
)

var (
	syncCalendar string
	syncPrune    bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push tasks with a due date to Google Calendar",
	Long: `Create or update one all-day event per task with a due date, then
flag the events of tasks that have gone overdue since the last sync.
With --prune, events of tasks that left the board or lost their due date
are deleted.`,
	Args: cobra.NoArgs,
	RunE: syncTasks,
}

var unsyncCmd = &cobra.Command{
	Use:   "unsync TASK_ID",
	Short: "Delete a task's calendar event",
	Args:  cobra.ExactArgs(1),
	RunE:  unsyncTask,
}

func init() {
	for _, cmd := range []*cobra.Command{syncCmd, unsyncCmd} {
		cmd.Flags().StringVar(&syncCalendar, "calendar", "", "Google Calendar name to sync with (overrides config)")
	}
	syncCmd.Flags().BoolVar(&syncPrune, "prune", false, "Delete events whose task is gone or has no due date")
}

// calendarState bundles the files kept next to the config between syncs.
type calendarState struct {
	client *google.CalendarClient
	index  *index.EventIndex
	table  *overdue.Table
	colors *colors.ColorCache
}

func openCalendar(ctx context.Context) (*calendarState, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}

	var st calendarState
	// The caches are optional; sync works without them.
	if st.index, err = index.NewEventIndex(dir); err != nil {
		logging.Logger.Warnf("failed to initialize event index: %v", err)
		st.index = nil
	}
	if st.table, err = overdue.NewTable(dir); err != nil {
		logging.Logger.Warnf("failed to initialize overdue sweep table: %v", err)
		st.table = nil
	}
	if st.colors, err = colors.NewColorCache(dir); err != nil {
		logging.Logger.Warnf("failed to initialize color cache: %v", err)
		st.colors = nil
	}

	httpClient, err := auth.GetClient(ctx, dir, auth.CalendarScopes)
	if err != nil {
		return nil, fmt.Errorf("error authenticating: %w", err)
	}

	name := cfg.Calendar
	if syncCalendar != "" {
		name = syncCalendar
	}
	st.client, err = google.NewClient(ctx, httpClient, name, st.index)
	if err != nil {
		return nil, fmt.Errorf("error creating Google Calendar client: %w", err)
	}
	return &st, nil
}

func (st *calendarState) save() {
	if st.index != nil {
		if err := st.index.Save(); err != nil {
			logging.Logger.Warnf("failed to save event index: %v", err)
		}
	}
	if st.table != nil {
		if err := st.table.Save(); err != nil {
			logging.Logger.Warnf("failed to save sweep table: %v", err)
		}
	}
	if st.colors != nil {
		if err := st.colors.Save(); err != nil {
			logging.Logger.Warnf("failed to save color cache: %v", err)
		}
	}
}

func syncTasks(cmd *cobra.Command, args []string) error {
	tasks, day, err := board()
	if err != nil {
		return err
	}

	st, err := openCalendar(cmd.Context())
	if err != nil {
		return err
	}
	defer st.save()

	syncer := &google.Syncer{Events: st.client, Table: st.table}
	if st.colors != nil {
		syncer.Colors = st.colors
	}

	res, err := syncer.Sync(cmd.Context(), tasks, day)
	logging.Logger.WithFields(logrus.Fields{
		"synced":  res.Synced,
		"skipped": res.Skipped,
		"flagged": res.Flagged,
		"failed":  res.Failed,
	}).Info("sync finished")
	if err != nil {
		return err
	}
	if syncPrune {
		st.prune(cmd.Context(), tasks)
	}
	if res.Failed > 0 {
		return fmt.Errorf("%d of %d tasks failed to sync", res.Failed, res.Synced+res.Failed)
	}
	return nil
}

func unsyncTask(cmd *cobra.Command, args []string) error {
	taskID := args[0]
	st, err := openCalendar(cmd.Context())
	if err != nil {
		return err
	}
	defer st.save()

	event, err := st.client.GetEventByTaskID(cmd.Context(), taskID)
	if err != nil {
		return err
	}
	if event != nil {
		if err := st.client.DeleteEvent(cmd.Context(), event.Id); err != nil {
			return fmt.Errorf("error deleting event: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted event %s for task %s\n", event.Id, taskID)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "No event found for task %s\n", taskID)
	}

	if st.table != nil {
		st.table.Remove(taskID)
	}
	if st.index != nil {
		st.index.Remove(taskID)
	}
	return nil
}

// prune deletes the events of indexed tasks that no longer have one.
func (st *calendarState) prune(ctx context.Context, tasks []model.Task) {
	if st.index == nil {
		logging.Logger.Warn("prune needs the event index, skipping")
		return
	}
	dated := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if _, ok := t.Due(); ok {
			dated[t.ID] = true
		}
	}

	for _, m := range st.index.Prune(func(taskID string) bool { return dated[taskID] }) {
		if err := st.client.DeleteEvent(ctx, m.EventID); err != nil {
			logging.Logger.WithField("task_id", m.TaskID).Warnf("error deleting event %s: %v", m.EventID, err)
			continue
		}
		if st.table != nil {
			st.table.Remove(m.TaskID)
		}
		logging.Logger.WithField("task_id", m.TaskID).Infof("deleted event %s", m.EventID)
	}
}
