package google

import (
	"context"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/calendar/v3"

	"github.com/harrisonrobin/taskflow/pkg/logging"
	"github.com/harrisonrobin/taskflow/pkg/model"
	"github.com/harrisonrobin/taskflow/pkg/overdue"
)

// EventWriter is the part of CalendarClient the syncer needs.
type EventWriter interface {
	SyncEvent(ctx context.Context, task model.Task, target *calendar.Event) (*calendar.Event, error)
	PatchEvent(ctx context.Context, eventID string, patch *calendar.Event) (*calendar.Event, error)
}

type Syncer struct {
	Events EventWriter
	// Table tracks open tasks so their events can be flagged when they
	// become overdue between syncs. Optional.
	Table  *overdue.Table
	Colors ColorSource
}

type Result struct {
	Synced  int
	Skipped int
	Flagged int
	Failed  int
}

// Sync flags events whose tasks went overdue since the last run, then
// pushes every task with a due date. Failures are logged and counted; Sync
// only returns an error when ctx is cancelled.
func (s *Syncer) Sync(ctx context.Context, tasks []model.Task, today model.Date) (Result, error) {
	var res Result

	if s.Table != nil {
		for _, entry := range s.Table.Sweep(today) {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			patch := &calendar.Event{Summary: OverdueSummary(entry.Summary)}
			if _, err := s.Events.PatchEvent(ctx, entry.EventID, patch); err != nil {
				logging.Logger.Warnf("sweep: error patching event %s: %v", entry.EventID, err)
				continue
			}
			res.Flagged++
		}
	}

	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		log := logging.Logger.WithFields(logrus.Fields{"task_id": task.ID})

		target, err := ConvertTask(task, today, s.Colors)
		if err != nil {
			log.Debugf("skipping task: %v", err)
			res.Skipped++
			continue
		}

		event, err := s.Events.SyncEvent(ctx, task, target)
		if err != nil {
			log.Errorf("error syncing event: %v", err)
			res.Failed++
			continue
		}
		res.Synced++
		if s.Table != nil {
			s.Table.Track(task, event.Id, today)
		}
	}
	return res, nil
}
