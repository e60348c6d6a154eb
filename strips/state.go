package strips

import (
	"io"
	"slices"
	"strings"

	"github.com/shamaton/msgpack/v2"
)

// A Fact is a ground atom such as "at(A)" or "(compromised web1)".
type Fact string

// State is an immutable set of true facts. The zero value is the empty state.
//
// Facts are kept sorted and unique, so two states holding the same facts have
// the same Key and compare Equal regardless of how they were built.
type State struct {
	facts []Fact
}

func NewState(facts ...Fact) State {
	return State{facts: normalize(facts)}
}

func normalize(facts []Fact) []Fact {
	if len(facts) == 0 {
		return nil
	}
	out := slices.Clone(facts)
	slices.Sort(out)
	return slices.Compact(out)
}

// Facts returns a copy of the facts in sorted order.
func (s State) Facts() []Fact {
	return slices.Clone(s.facts)
}

func (s State) Len() int {
	return len(s.facts)
}

func (s State) Contains(f Fact) bool {
	_, ok := slices.BinarySearch(s.facts, f)
	return ok
}

// ContainsAll reports whether every fact in fs holds in s.
func (s State) ContainsAll(fs []Fact) bool {
	for _, f := range fs {
		if !s.Contains(f) {
			return false
		}
	}
	return true
}

func (s State) Equal(o State) bool {
	return slices.Equal(s.facts, o.facts)
}

// Key is a canonical encoding of the fact set, suitable as a map key.
func (s State) Key() string {
	var b strings.Builder
	for i, f := range s.facts {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		b.WriteString(string(f))
	}
	return b.String()
}

func (s State) String() string {
	parts := make([]string, len(s.facts))
	for i, f := range s.facts {
		parts[i] = string(f)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// stateWire is the serialized form; facts are written in sorted order so equal
// states always produce identical bytes.
type stateWire struct {
	Facts []string
}

func (s *State) Serialize(w io.Writer) error {
	wire := stateWire{Facts: make([]string, len(s.facts))}
	for i, f := range s.facts {
		wire.Facts[i] = string(f)
	}
	return msgpack.MarshalWrite(w, wire)
}

func (s *State) Deserialize(r io.Reader) error {
	var wire stateWire
	if err := msgpack.UnmarshalRead(r, &wire); err != nil {
		return err
	}
	facts := make([]Fact, len(wire.Facts))
	for i, f := range wire.Facts {
		facts[i] = Fact(f)
	}
	s.facts = normalize(facts)
	return nil
}
