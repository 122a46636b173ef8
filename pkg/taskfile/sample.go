package taskfile

import "github.com/harrisonrobin/taskflow/pkg/model"

// Sample returns the demo board used when no task file is configured.
func Sample() []model.Task {
	return []model.Task{
		{
			ID:          "1",
			Title:       "Complete project proposal",
			Description: "Finish the Q4 project proposal for the marketing campaign",
			Priority:    model.HIGH,
			Status:      model.IN_PROGRESS,
			DueDate:     "2025-01-08",
			Assignee:    "John Doe",
			Tags:        []string{"work", "urgent"},
			SharedWith:  []string{"jane@example.com"},
		},
		{
			ID:          "2",
			Title:       "Review design mockups",
			Description: "Check the new UI designs from the design team",
			Priority:    model.MEDIUM,
			Status:      model.TODO,
			DueDate:     "2025-01-10",
			Assignee:    "Jane Smith",
			Tags:        []string{"design", "review"},
			SharedWith:  []string{},
		},
		{
			ID:          "3",
			Title:       "Update documentation",
			Description: "Update the API documentation with new endpoints",
			Priority:    model.LOW,
			Status:      model.COMPLETED,
			DueDate:     "2025-01-05",
			Assignee:    "Mike Johnson",
			Tags:        []string{"docs"},
			SharedWith:  []string{},
		},
	}
}
