package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/taskflow/pkg/draft"
)

var (
	addDraft  draft.Draft
	addTags   []string
	addShares []string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Build a new task",
	Long: `Validate a new task and print it as JSON with a fresh id. The task
file is not modified; append the output to it to keep the task.`,
	Args: cobra.NoArgs,
	RunE: addTask,
}

func init() {
	flags := addCmd.Flags()
	flags.StringVarP(&addDraft.Title, "title", "t", "", "Task title (required)")
	flags.StringVarP(&addDraft.Description, "description", "d", "", "Task description")
	flags.StringVarP(&addDraft.Priority, "priority", "p", "medium", "Priority: low, medium, high")
	flags.StringVar(&addDraft.DueDate, "due", "", "Due date (YYYY-MM-DD)")
	flags.StringVarP(&addDraft.Assignee, "assignee", "a", "", "Who the task is assigned to")
	flags.StringArrayVar(&addTags, "tag", nil, "Tag, may be repeated")
	flags.StringArrayVar(&addShares, "share", nil, "Email address to share with, may be repeated or comma separated")
	if err := addCmd.MarkFlagRequired("title"); err != nil {
		panic(fmt.Sprintf("Failed to mark title flag as required: %v", err))
	}
}

func addTask(cmd *cobra.Command, args []string) error {
	d := addDraft
	d.Tags = nil
	for _, tag := range addTags {
		d.AddTag(tag)
	}
	if err := d.SetSharedWith(strings.Join(addShares, ",")); err != nil {
		return err
	}

	task, err := d.Build(nil)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(task)
}
