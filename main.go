package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/taskflow/pkg/config"
	"github.com/harrisonrobin/taskflow/pkg/logging"
	"github.com/harrisonrobin/taskflow/pkg/model"
	"github.com/harrisonrobin/taskflow/pkg/taskfile"
)

var (
	tasksFlag    string
	configFlag   string
	dateFlag     string
	logLevelFlag string

	cfg *config.Config
	// now is replaced in tests.
	now = time.Now
)

var rootCmd = &cobra.Command{
	Use:           "taskflow",
	Short:         "Task board with filters, stats and calendar sync",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configFlag != "" {
			cfg, err = config.LoadFrom(configFlag)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		level := cfg.LogLevel
		if logLevelFlag != "" {
			level = logLevelFlag
		}
		return logging.Init(logging.Options{Level: level, File: cfg.LogFile})
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&tasksFlag, "tasks", "", "Task file (.json, .jsonc, .yaml, .org, or - for JSON on stdin); defaults to the sample board")
	flags.StringVar(&configFlag, "config", "", "Config file path (default ~/.config/taskflow/config.json)")
	flags.StringVar(&dateFlag, "date", "", "Treat this date (YYYY-MM-DD) as today")
	flags.StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(listCmd, statsCmd, addCmd, serveCmd, authCmd, syncCmd, unsyncCmd, setCalendarCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logging.Logger.Error(err)
		os.Exit(1)
	}
}

// loadTasks reads the board from --tasks, then the configured file, and
// falls back to the sample tasks when neither is set.
func loadTasks() ([]model.Task, error) {
	path := tasksFlag
	if path == "" && cfg != nil {
		path = cfg.TasksFile
	}
	switch path {
	case "":
		logging.Logger.Debug("no task file configured, using sample tasks")
		return taskfile.Sample(), nil
	case "-":
		return taskfile.Decode(os.Stdin, taskfile.JSON)
	}
	return taskfile.Load(path)
}

// today resolves --date, or the current date in the configured zone.
func today() (model.Date, error) {
	if dateFlag != "" {
		d, err := model.ParseDate(dateFlag)
		if err != nil {
			return model.Date{}, fmt.Errorf("invalid --date: %w", err)
		}
		return d, nil
	}
	loc := time.Local
	if cfg != nil {
		l, err := cfg.Location()
		if err != nil {
			return model.Date{}, err
		}
		loc = l
	}
	return model.DateOf(now().In(loc)), nil
}

// board loads the tasks and today's date, which every view command needs.
func board() ([]model.Task, model.Date, error) {
	tasks, err := loadTasks()
	if err != nil {
		return nil, model.Date{}, err
	}
	day, err := today()
	if err != nil {
		return nil, model.Date{}, err
	}
	return tasks, day, nil
}
