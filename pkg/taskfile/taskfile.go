package taskfile

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/harrisonrobin/taskflow/pkg/logging"
	"github.com/harrisonrobin/taskflow/pkg/model"
)

var ErrDuplicateID = errors.New("duplicate task id")

type Format string

const (
	JSON  Format = "json"
	JSONC Format = "jsonc"
	YAML  Format = "yaml"
	Org   Format = "org"
)

// FormatOf picks a format from a file extension, defaulting to JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	case ".jsonc":
		return JSONC
	case ".org":
		return Org
	}
	return JSON
}

func Load(path string) ([]model.Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tasks, err := Decode(f, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks from %s: %w", path, err)
	}
	return tasks, nil
}

// Decode reads a task collection. JSON input may be a single array or a
// stream of task objects, one after another. Tasks that fail validation are
// kept and logged so a bad record never hides the rest of the board; a
// repeated id is an error.
func Decode(r io.Reader, format Format) ([]model.Task, error) {
	var (
		tasks []model.Task
		err   error
	)
	switch format {
	case YAML:
		tasks, err = decodeYAML(r)
	case JSONC:
		var data []byte
		data, err = io.ReadAll(r)
		if err == nil {
			tasks, err = decodeJSON(bytes.NewReader(jsonc.ToJSON(data)))
		}
	case Org:
		tasks, err = decodeOrg(r)
	case JSON:
		tasks, err = decodeJSON(r)
	default:
		return nil, fmt.Errorf("unsupported task file format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return tasks, check(tasks)
}

func decodeJSON(r io.Reader) ([]model.Task, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	decoder := json.NewDecoder(br)
	if first == '[' {
		var tasks []model.Task
		if err := decoder.Decode(&tasks); err != nil {
			return nil, fmt.Errorf("failed to decode task json: %w", err)
		}
		return tasks, nil
	}

	var tasks []model.Task
	for {
		var task model.Task
		if err := decoder.Decode(&task); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to decode task json: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func decodeYAML(r io.Reader) ([]model.Task, error) {
	var tasks []model.Task
	if err := yaml.NewDecoder(r).Decode(&tasks); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode task yaml: %w", err)
	}
	return tasks, nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}

func check(tasks []model.Task) error {
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateID, t.ID)
		}
		seen[t.ID] = true
		if err := t.Validate(); err != nil {
			logging.Logger.WithFields(logrus.Fields{
				"task_id": t.ID,
				"error":   err,
			}).Warn("task has invalid fields")
		}
	}
	return nil
}

// Encode writes tasks as an indented JSON array.
func Encode(w io.Writer, tasks []model.Task) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tasks)
}
