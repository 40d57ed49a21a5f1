// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var (
	ErrUnknownTask    = errors.New("UNKNOWN_TASK_TYPE")
	ErrInvalidPayload = errors.New("INVALID_TASK_PAYLOAD")
)

// Registry is a loaded TaskRegistry with compiled input schemas.
type Registry struct {
	doc     TaskRegistry
	tasks   map[string]Task
	schemas map[string]*gojsonschema.Schema
}

func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read task registry: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Registry, error) {
	var doc TaskRegistry
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse task registry: %w", err)
	}

	r := &Registry{
		doc:     doc,
		tasks:   make(map[string]Task, len(doc.Tasks)),
		schemas: make(map[string]*gojsonschema.Schema, len(doc.Tasks)),
	}

	for _, t := range doc.Tasks {
		if t.TaskType == "" {
			return nil, fmt.Errorf("task registry entry %q has no taskType", t.DisplayName)
		}
		if _, dup := r.tasks[t.TaskType]; dup {
			return nil, fmt.Errorf("task type %s registered twice", t.TaskType)
		}
		r.tasks[t.TaskType] = t

		if t.InputSchema == nil {
			continue
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(t.InputSchema))
		if err != nil {
			return nil, fmt.Errorf("compile input schema for %s: %w", t.TaskType, err)
		}
		r.schemas[t.TaskType] = schema
	}

	return r, nil
}

func (r *Registry) Version() string {
	return r.doc.Version
}

func (r *Registry) Task(taskType string) (Task, bool) {
	t, ok := r.tasks[taskType]
	return t, ok
}

// TaskTypes returns registered task types in sorted order.
func (r *Registry) TaskTypes() []string {
	out := make([]string, 0, len(r.tasks))
	for k := range r.tasks {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ValidateInput checks raw job variables against the task's input schema.
// Tasks registered without a schema accept any JSON object.
func (r *Registry) ValidateInput(taskType, variables string) error {
	if _, ok := r.tasks[taskType]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTask, taskType)
	}
	schema, ok := r.schemas[taskType]
	if !ok {
		return nil
	}

	res, err := schema.Validate(gojsonschema.NewStringLoader(variables))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if res.Valid() {
		return nil
	}

	problems := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		problems = append(problems, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidPayload, strings.Join(problems, "; "))
}
