// Package loader turns task description files into ground planning tasks.
//
// Three formats describe the same model: TOML and YAML list the ground
// operators explicitly, while Starlark scripts can generate them with loops
// over hosts, services and credentials.
package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/timewinder-dev/attackpath/strips"
)

var ErrUnknownFormat = errors.New("unknown task file format")

// TaskFile is the declarative form shared by the TOML and YAML front ends.
type TaskFile struct {
	Name      string         `toml:"name" yaml:"name"`
	Init      []string       `toml:"init" yaml:"init"`
	Goal      []string       `toml:"goal" yaml:"goal"`
	Operators []OperatorSpec `toml:"operator" yaml:"operator"`
}

type OperatorSpec struct {
	Name string   `toml:"name" yaml:"name"`
	Pre  []string `toml:"pre,omitempty" yaml:"pre,omitempty"`
	Add  []string `toml:"add,omitempty" yaml:"add,omitempty"`
	Del  []string `toml:"del,omitempty" yaml:"del,omitempty"`
}

// checkFact rejects empty facts and facts whose parentheses do not pair up.
// The usual cause is an unquoted YAML flow list splitting "p(a,b)" at the comma.
func checkFact(f strips.Fact) error {
	if f == "" {
		return fmt.Errorf("%w: empty fact", strips.ErrInvalidTask)
	}
	depth := 0
	for _, r := range f {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth < 0 {
			break
		}
	}
	if depth != 0 {
		return fmt.Errorf("%w: fact %q has unbalanced parentheses", strips.ErrInvalidTask, f)
	}
	return nil
}

func toFacts(field string, in []string) ([]strips.Fact, error) {
	out := make([]strips.Fact, len(in))
	for i, s := range in {
		f := strips.Fact(strings.TrimSpace(s))
		if err := checkFact(f); err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		out[i] = f
	}
	return out, nil
}

// Build grounds the file into a task and validates it.
func (f *TaskFile) Build() (*strips.GroundTask, error) {
	if len(f.Goal) == 0 {
		return nil, fmt.Errorf("%w: task %q has no goal", strips.ErrInvalidTask, f.Name)
	}
	ops := make([]*strips.Operator, 0, len(f.Operators))
	for _, o := range f.Operators {
		pre, err := toFacts("operator "+o.Name+" pre", o.Pre)
		if err != nil {
			return nil, err
		}
		add, err := toFacts("operator "+o.Name+" add", o.Add)
		if err != nil {
			return nil, err
		}
		del, err := toFacts("operator "+o.Name+" del", o.Del)
		if err != nil {
			return nil, err
		}
		ops = append(ops, strips.NewOperator(o.Name, pre, add, del))
	}
	initFacts, err := toFacts("init", f.Init)
	if err != nil {
		return nil, err
	}
	goal, err := toFacts("goal", f.Goal)
	if err != nil {
		return nil, err
	}
	return validate(strips.NewGroundTask(f.Name, initFacts, goal, ops))
}

func validate(task *strips.GroundTask) (*strips.GroundTask, error) {
	warnings, err := task.Validate()
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		log.Warn().Str("task", task.Name).Msg(w)
	}
	return task, nil
}

// LoadTaskFromFile picks a front end from the file extension. A task with no
// name is named after its file.
func LoadTaskFromFile(path string) (*strips.GroundTask, error) {
	var (
		task *strips.GroundTask
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		task, err = LoadTOML(path)
	case ".yaml", ".yml":
		task, err = LoadYAML(path)
	case ".star":
		task, err = LoadStarlark(path, nil)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	if task.Name == "" {
		base := filepath.Base(path)
		task.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	log.Debug().
		Str("task", task.Name).
		Int("operators", len(task.Operators)).
		Int("init_facts", task.Init.Len()).
		Msg("Loaded task")
	return task, nil
}
