package google

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/harrisonrobin/taskflow/pkg/index"
	"github.com/harrisonrobin/taskflow/pkg/logging"
	"github.com/harrisonrobin/taskflow/pkg/model"
)

// CalendarClient pushes tasks to one Google calendar. Every API call goes
// through a circuit breaker so a failing API stops a long sync early.
type CalendarClient struct {
	srv        *calendar.Service
	calendarID string
	index      *index.EventIndex
	breaker    *gobreaker.CircuitBreaker
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Warnf("circuit breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})
}

// NewCalendarClient wraps an existing service. idx may be nil.
func NewCalendarClient(srv *calendar.Service, calendarID string, idx *index.EventIndex) *CalendarClient {
	return &CalendarClient{
		srv:        srv,
		calendarID: calendarID,
		index:      idx,
		breaker:    newBreaker("google-calendar"),
	}
}

// NewClient builds a service on httpClient and resolves calendarName to its id.
func NewClient(ctx context.Context, httpClient *http.Client, calendarName string, idx *index.EventIndex, opts ...option.ClientOption) (*CalendarClient, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	srv, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Calendar client: %w", err)
	}

	calendarList, err := srv.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve calendar list: %w", err)
	}

	var calendarID string
	for _, item := range calendarList.Items {
		if item.Summary == calendarName {
			calendarID = item.Id
			break
		}
	}
	if calendarID == "" {
		return nil, fmt.Errorf("calendar '%s' not found", calendarName)
	}

	return NewCalendarClient(srv, calendarID, idx), nil
}

func (c *CalendarClient) event(call func() (*calendar.Event, error)) (*calendar.Event, error) {
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return call()
	})
	if err != nil {
		return nil, err
	}
	return out.(*calendar.Event), nil
}

// SyncEvent creates the task's event or patches the existing one.
func (c *CalendarClient) SyncEvent(ctx context.Context, task model.Task, target *calendar.Event) (*calendar.Event, error) {
	var existing *calendar.Event
	if c.index != nil {
		if eventID := c.index.Get(task.ID); eventID != "" {
			ev, err := c.event(func() (*calendar.Event, error) {
				return c.srv.Events.Get(c.calendarID, eventID).Context(ctx).Do()
			})
			if err == nil && ev.Status != "cancelled" {
				existing = ev
			}
		}
	}

	if existing == nil {
		ev, err := c.GetEventByTaskID(ctx, task.ID)
		if err != nil {
			return nil, fmt.Errorf("error searching for event: %w", err)
		}
		existing = ev
	}

	if existing != nil {
		patch := EventNeedsUpdate(existing, target)
		if patch == nil {
			c.remember(task.ID, existing.Id)
			return existing, nil
		}
		updated, err := c.PatchEvent(ctx, existing.Id, patch)
		if err != nil {
			return nil, err
		}
		c.remember(task.ID, updated.Id)
		return updated, nil
	}

	created, err := c.event(func() (*calendar.Event, error) {
		return c.srv.Events.Insert(c.calendarID, target).Context(ctx).Do()
	})
	if err != nil {
		return nil, err
	}
	c.remember(task.ID, created.Id)
	return created, nil
}

func (c *CalendarClient) remember(taskID, eventID string) {
	if c.index != nil {
		c.index.Set(taskID, eventID)
	}
}

// PatchEvent performs a partial update on an event.
func (c *CalendarClient) PatchEvent(ctx context.Context, eventID string, patch *calendar.Event) (*calendar.Event, error) {
	return c.event(func() (*calendar.Event, error) {
		return c.srv.Events.Patch(c.calendarID, eventID, patch).Context(ctx).Do()
	})
}

func (c *CalendarClient) DeleteEvent(ctx context.Context, eventID string) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.srv.Events.Delete(c.calendarID, eventID).Context(ctx).Do()
	})
	return err
}

// GetEventByTaskID finds the event tagged with taskID, or nil if there is none.
func (c *CalendarClient) GetEventByTaskID(ctx context.Context, taskID string) (*calendar.Event, error) {
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.srv.Events.List(c.calendarID).
			PrivateExtendedProperty(fmt.Sprintf("%s=%s", TaskIDProperty, taskID)).
			Context(ctx).
			Do()
	})
	if err != nil {
		return nil, err
	}
	events := out.(*calendar.Events)
	if len(events.Items) > 0 {
		return events.Items[0], nil
	}
	return nil, nil
}
