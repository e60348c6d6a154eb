package loader

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/timewinder-dev/attackpath/strips"
)

// Top-level loops and if statements are allowed so scripts can ground
// operator schemas over their own host lists.
var starlarkOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

type scriptBuilder struct {
	ops []*strips.Operator
}

// LoadStarlark executes a task script. src may be nil to read filename, or
// a string/[]byte holding the script. The script sets the globals init and
// goal (lists of facts), optionally name, and declares operators with
//
//	action(name, pre=[...], add=[...], delete=[...])
//
// fact(pred, *args) renders "pred(a,b)".
func LoadStarlark(filename string, src any) (*strips.GroundTask, error) {
	b := &scriptBuilder{}
	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			log.Debug().Str("file", filename).Msg(msg)
		},
	}
	predeclared := starlark.StringDict{
		"fact":   starlark.NewBuiltin("fact", factBuiltin),
		"action": starlark.NewBuiltin("action", b.action),
	}
	globals, err := starlark.ExecFileOptions(starlarkOptions, thread, filename, src, predeclared)
	if err != nil {
		if evalErr, ok := err.(*starlark.EvalError); ok {
			return nil, fmt.Errorf("executing script: %s", evalErr.Backtrace())
		}
		return nil, fmt.Errorf("executing script: %w", err)
	}

	initFacts, err := globalFacts(globals, "init", false)
	if err != nil {
		return nil, err
	}
	goal, err := globalFacts(globals, "goal", true)
	if err != nil {
		return nil, err
	}
	var name string
	if v, ok := globals["name"]; ok {
		s, ok := starlark.AsString(v)
		if !ok {
			return nil, fmt.Errorf("global name must be a string, got %s", v.Type())
		}
		name = s
	}
	if len(goal) == 0 {
		return nil, fmt.Errorf("%w: script sets an empty goal", strips.ErrInvalidTask)
	}
	return validate(strips.NewGroundTask(name, initFacts, goal, b.ops))
}

func globalFacts(globals starlark.StringDict, name string, required bool) ([]strips.Fact, error) {
	v, ok := globals[name]
	if !ok {
		if required {
			return nil, fmt.Errorf("%w: script does not set %s", strips.ErrInvalidTask, name)
		}
		return nil, nil
	}
	fs, err := factList(v)
	if err != nil {
		return nil, fmt.Errorf("global %s: %w", name, err)
	}
	return fs, nil
}

func factList(v starlark.Value) ([]strips.Fact, error) {
	if v == nil || v == starlark.None {
		return nil, nil
	}
	iter := starlark.Iterate(v)
	if iter == nil {
		return nil, fmt.Errorf("want a list of facts, got %s", v.Type())
	}
	defer iter.Done()
	var out []strips.Fact
	var x starlark.Value
	for iter.Next(&x) {
		s, ok := starlark.AsString(x)
		if !ok {
			return nil, fmt.Errorf("fact must be a string, got %s", x.Type())
		}
		f := strips.Fact(s)
		if err := checkFact(f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func factBuiltin(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) != 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", fn.Name())
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("%s: missing predicate", fn.Name())
	}
	pred, ok := starlark.AsString(args[0])
	if !ok {
		return nil, fmt.Errorf("%s: predicate must be a string, got %s", fn.Name(), args[0].Type())
	}
	if len(args) == 1 {
		return starlark.String(pred), nil
	}
	parts := make([]string, 0, len(args)-1)
	for _, a := range args[1:] {
		if s, ok := starlark.AsString(a); ok {
			parts = append(parts, s)
		} else {
			parts = append(parts, a.String())
		}
	}
	return starlark.String(pred + "(" + strings.Join(parts, ",") + ")"), nil
}

func (b *scriptBuilder) action(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		name          string
		pre, add, del starlark.Value
	)
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs,
		"name", &name, "pre?", &pre, "add?", &add, "delete?", &del); err != nil {
		return nil, err
	}
	preFacts, err := factList(pre)
	if err != nil {
		return nil, fmt.Errorf("%s %s: pre: %w", fn.Name(), name, err)
	}
	addFacts, err := factList(add)
	if err != nil {
		return nil, fmt.Errorf("%s %s: add: %w", fn.Name(), name, err)
	}
	delFacts, err := factList(del)
	if err != nil {
		return nil, fmt.Errorf("%s %s: delete: %w", fn.Name(), name, err)
	}
	b.ops = append(b.ops, strips.NewOperator(name, preFacts, addFacts, delFacts))
	return starlark.None, nil
}
