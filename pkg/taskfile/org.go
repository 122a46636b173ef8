package taskfile

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/harrisonrobin/taskflow/pkg/model"
)

var (
	headlineRegex = regexp.MustCompile(`^\*+\s+(TODO|STARTED|DONE)\b\s*(?:\[#([A-C])\])?\s*(.*?)(?:\s+(:[\w@-]+(?::[\w@-]+)*:))?\s*$`)
	deadlineRegex = regexp.MustCompile(`DEADLINE:\s+<(\d{4}-\d{2}-\d{2})[^>]*>`)
	propertyRegex = regexp.MustCompile(`^:([A-Z_]+):\s*(.*)$`)
)

var orgStatus = map[string]model.Status{
	"TODO":    model.TODO,
	"STARTED": model.IN_PROGRESS,
	"DONE":    model.COMPLETED,
}

var orgPriority = map[string]model.Priority{
	"A": model.HIGH,
	"B": model.MEDIUM,
	"C": model.LOW,
}

// decodeOrg reads Org-mode headlines:
//
//	* TODO [#A] Complete project proposal :work:urgent:
//	  DEADLINE: <2025-01-08 Wed>
//	  :PROPERTIES:
//	  :ID: 1
//	  :ASSIGNEE: John Doe
//	  :SHARED_WITH: jane@example.com
//	  :END:
//	  Finish the Q4 project proposal.
//
// Headlines without a keyword are ignored. A missing priority cookie means
// MEDIUM, org's own default; a missing :ID: falls back to the line number.
func decodeOrg(r io.Reader) ([]model.Task, error) {
	scanner := bufio.NewScanner(r)
	var (
		tasks   []model.Task
		current *model.Task
		body    []string
		lineNo  int
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Description = strings.TrimSpace(strings.Join(body, "\n"))
		tasks = append(tasks, *current)
		current, body = nil, nil
	}

	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line := strings.TrimSpace(raw)

		if strings.HasPrefix(raw, "*") {
			flush()
			m := headlineRegex.FindStringSubmatch(raw)
			if m == nil {
				continue
			}
			priority := model.MEDIUM
			if p, ok := orgPriority[m[2]]; ok {
				priority = p
			}
			current = &model.Task{
				ID:         fmt.Sprintf("L%d", lineNo),
				Title:      strings.TrimSpace(m[3]),
				Priority:   priority,
				Status:     orgStatus[m[1]],
				Tags:       []string{},
				SharedWith: []string{},
			}
			if m[4] != "" {
				current.Tags = strings.Split(strings.Trim(m[4], ":"), ":")
			}
			continue
		}
		if current == nil {
			continue
		}

		if m := deadlineRegex.FindStringSubmatch(line); m != nil {
			current.DueDate = m[1]
			continue
		}
		if m := propertyRegex.FindStringSubmatch(line); m != nil {
			switch value := strings.TrimSpace(m[2]); m[1] {
			case "ID":
				current.ID = value
			case "ASSIGNEE":
				current.Assignee = value
			case "SHARED_WITH":
				for _, addr := range strings.Split(value, ",") {
					if addr = strings.TrimSpace(addr); addr != "" {
						current.SharedWith = append(current.SharedWith, addr)
					}
				}
			}
			continue
		}
		if line != "" {
			body = append(body, line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read org file: %w", err)
	}
	return tasks, nil
}
