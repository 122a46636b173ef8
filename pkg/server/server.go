// Package server exposes the board as JSON over HTTP for a browser front end.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/harrisonrobin/taskflow/pkg/auth"
	"github.com/harrisonrobin/taskflow/pkg/draft"
	"github.com/harrisonrobin/taskflow/pkg/logging"
	"github.com/harrisonrobin/taskflow/pkg/model"
	"github.com/harrisonrobin/taskflow/pkg/view"
)

type Handler struct {
	tasks    []model.Task
	gate     *auth.Gate
	location *time.Location
	now      func() time.Time
	newID    func() string
}

type Option func(*Handler)

// WithClock replaces time.Now, used to work out today's date.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// WithIDs replaces the id generator for tasks built from drafts.
func WithIDs(newID func() string) Option {
	return func(h *Handler) { h.newID = newID }
}

// New serves a read-only view of tasks. The slice is never modified.
func New(tasks []model.Task, gate *auth.Gate, loc *time.Location, opts ...Option) *Handler {
	h := &Handler{
		tasks:    tasks,
		gate:     gate,
		location: loc,
		now:      time.Now,
		newID:    draft.NewID,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Router returns the routes. Everything except login and the filter list
// requires the gate to be open.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(logRequests)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/filters", h.ListFilters).Methods(http.MethodGet)

	gated := api.NewRoute().Subrouter()
	gated.Use(h.requireAuth)
	gated.HandleFunc("/view", h.GetView).Methods(http.MethodGet)
	gated.HandleFunc("/stats", h.GetStats).Methods(http.MethodGet)
	gated.HandleFunc("/tasks/draft", h.BuildDraft).Methods(http.MethodPost)
	return r
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logging.Logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Debug("request")
	})
}

func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.gate.Authenticated() {
			writeError(w, http.StatusUnauthorized, auth.ErrNotAuthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Login stands in for the sign-in screen: it opens the gate.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	h.gate.Signal(true)
	writeJSON(w, http.StatusOK, map[string]bool{"authenticated": h.gate.Authenticated()})
}

func (h *Handler) ListFilters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, view.Filters)
}

func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	today, err := h.today(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	filter, err := view.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	state := view.DefaultState().SelectFilter(filter).Search(r.URL.Query().Get("q"))

	writeJSON(w, http.StatusOK, struct {
		State view.State `json:"state"`
		Date  model.Date `json:"date"`
		view.View
	}{state, today, state.Apply(h.tasks, today)})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	today, err := h.today(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, view.ComputeStats(h.tasks, today))
}

// BuildDraft validates a new task form and returns the task it produces.
// The served collection is left untouched.
func (h *Handler) BuildDraft(w http.ResponseWriter, r *http.Request) {
	var d draft.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	task, err := d.Build(h.newID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *Handler) today(r *http.Request) (model.Date, error) {
	if s := r.URL.Query().Get("date"); s != "" {
		d, err := model.ParseDate(s)
		if err != nil {
			return model.Date{}, errors.New("invalid date parameter: " + s)
		}
		return d, nil
	}
	return model.DateOf(h.now().In(h.location)), nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Logger.Errorf("error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
