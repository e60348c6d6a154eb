package strips

import "slices"

// Operator is a ground action. Operators are built once by a front end and are
// read-only afterwards; the search only uses them as path labels.
type Operator struct {
	Name string
	Pre  []Fact
	Add  []Fact
	Del  []Fact
}

// NewOperator builds an operator with sorted, deduplicated fact lists.
func NewOperator(name string, pre, add, del []Fact) *Operator {
	return &Operator{
		Name: name,
		Pre:  normalize(pre),
		Add:  normalize(add),
		Del:  normalize(del),
	}
}

func (o *Operator) Applicable(s State) bool {
	return s.ContainsAll(o.Pre)
}

// Apply returns (s \ Del) ∪ Add. The receiver state is left untouched. The
// fact lists may be in any order, so operators built as struct literals work.
func (o *Operator) Apply(s State) State {
	out := make([]Fact, 0, len(s.facts)+len(o.Add))
	for _, f := range s.facts {
		if slices.Contains(o.Del, f) {
			continue
		}
		out = append(out, f)
	}
	out = append(out, o.Add...)
	return State{facts: normalize(out)}
}

// String renders the operator the way solution tokens are extracted: "<Op NAME>".
func (o *Operator) String() string {
	return "<Op " + o.Name + ">"
}
